package scene

import (
	"github.com/rs/zerolog"

	"kayaglobe/internal/geo"
)

type coord struct{ lat, lng float64 }

// BuildPoints emits a start and an end point for every arc and drops later
// points that share exact coordinates with an earlier one.
func BuildPoints(arcs []Arc, size float64, resolve func(string) geo.RGB) []Point {
	points := make([]Point, 0, len(arcs)*2)
	seen := make(map[coord]bool, len(arcs)*2)

	add := func(lat, lng float64, order int, rgb geo.RGB) {
		k := coord{lat, lng}
		if seen[k] {
			return
		}
		seen[k] = true
		points = append(points, Point{
			Size:  size,
			Order: order,
			Lat:   lat,
			Lng:   lng,
			Color: func(t float64) geo.RGBA { return rgb.Fade(t) },
		})
	}

	for _, arc := range arcs {
		rgb := resolve(arc.Color)
		add(arc.StartLat, arc.StartLng, arc.Order, rgb)
		add(arc.EndLat, arc.EndLng, arc.Order, rgb)
	}
	return points
}

// Builder turns arcs, markers and the globe config into a Scene.
type Builder struct {
	cfg      GlobeConfig
	land     Landmass
	dash     Dash
	fallback geo.RGB
	logger   zerolog.Logger
}

func NewBuilder(cfg GlobeConfig, land Landmass, logger zerolog.Logger) *Builder {
	b := &Builder{cfg: cfg, land: land, dash: DefaultDash, logger: logger}
	b.fallback = geo.RGB{R: 255, G: 255, B: 255}
	if rgb, err := geo.ParseColor(cfg.FallbackColor); err == nil {
		b.fallback = rgb
	}
	return b
}

// Color resolves a configured color string, falling back to the configured
// fallback color when it cannot be parsed.
func (b *Builder) Color(s string) geo.RGB {
	rgb, err := geo.ParseColor(s)
	if err != nil {
		b.logger.Warn().Err(err).Str("fallback", b.fallback.Hex()).Msg("Unusable color")
		return b.fallback
	}
	return rgb
}

func (b *Builder) Build(arcs []Arc, markers []*Marker) Scene {
	s := Scene{
		Points:  BuildPoints(arcs, b.cfg.PointSize, b.Color),
		Markers: markers,
		Land:    b.land,
		Dash:    b.dash,
		Material: Material{
			Color:             b.Color(b.cfg.GlobeColor),
			Emissive:          b.Color(b.cfg.Emissive),
			EmissiveIntensity: b.cfg.EmissiveIntensity,
			Shininess:         b.cfg.Shininess,
		},
		Atmosphere: Atmosphere{
			Show:     b.cfg.ShowAtmosphere,
			Color:    b.Color(b.cfg.AtmosphereColor),
			Altitude: b.cfg.AtmosphereAltitude,
		},
		Rings: Rings{Count: b.cfg.Rings, MaxRadius: b.cfg.MaxRings},
	}

	// Land is drawn over the globe material, so translucency blends toward it
	poly, err := geo.ParseRGBA(b.cfg.PolygonColor)
	if err != nil {
		b.logger.Warn().Err(err).Msg("Unusable polygon color")
		poly = geo.RGBA{RGB: b.fallback, A: 1}
	}
	s.PolygonColor = poly.Blend(s.Material.Color)

	var arcTint *geo.RGB
	if b.cfg.ArcColor != "" {
		c := b.Color(b.cfg.ArcColor)
		arcTint = &c
	}

	s.Paths = make([]Path, 0, len(arcs))
	for _, arc := range arcs {
		p := Path{
			Arc:        arc,
			Start:      geo.Project(arc.StartLat, arc.StartLng, 0),
			End:        geo.Project(arc.EndLat, arc.EndLng, 0),
			InitialGap: float64(arc.Order),
		}
		if arcTint != nil {
			p.Tint = *arcTint
		} else {
			p.Tint = b.Color(arc.Color)
		}
		s.Paths = append(s.Paths, p)
	}

	for _, m := range markers {
		m.Refresh()
	}

	b.logger.Debug().
		Int("arcs", len(s.Paths)).
		Int("points", len(s.Points)).
		Int("markers", len(markers)).
		Msg("Scene built")
	return s
}

// Update builds a scene and hands it to the engine.
func (b *Builder) Update(e Engine, arcs []Arc, markers []*Marker) Scene {
	s := b.Build(arcs, markers)
	e.Apply(s)
	return s
}
