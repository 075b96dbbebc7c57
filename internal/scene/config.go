package scene

import "time"

// GlobeConfig holds the look of the globe. Field names follow the TOML
// [globe] table of the dashboard config file.
type GlobeConfig struct {
	PointSize          float64 `toml:"point_size"`
	GlobeColor         string  `toml:"globe_color"`
	ShowAtmosphere     bool    `toml:"show_atmosphere"`
	AtmosphereColor    string  `toml:"atmosphere_color"`
	AtmosphereAltitude float64 `toml:"atmosphere_altitude"`
	Emissive           string  `toml:"emissive"`
	EmissiveIntensity  float64 `toml:"emissive_intensity"`
	Shininess          float64 `toml:"shininess"`
	PolygonColor       string  `toml:"polygon_color"`
	ArcColor           string  `toml:"arc_color"`
	FallbackColor      string  `toml:"fallback_color"`
	Rings              int     `toml:"rings"`
	MaxRings           float64 `toml:"max_rings"`

	InitialPosition struct {
		Lat float64 `toml:"lat"`
		Lng float64 `toml:"lng"`
	} `toml:"initial_position"`
	AutoRotate      bool    `toml:"auto_rotate"`
	AutoRotateSpeed float64 `toml:"auto_rotate_speed"`
}

// DefaultGlobeConfig mirrors the look of the original dashboard globe.
func DefaultGlobeConfig() GlobeConfig {
	cfg := GlobeConfig{
		PointSize:          8,
		GlobeColor:         "#0c5606",
		ShowAtmosphere:     true,
		AtmosphereColor:    "#ffffff",
		AtmosphereAltitude: 0.1,
		Emissive:           "#062056",
		EmissiveIntensity:  0.1,
		Shininess:          0.9,
		PolygonColor:       "rgba(255,255,255,0.7)",
		ArcColor:           "#ffcb21",
		FallbackColor:      "#ffffff",
		Rings:              1,
		MaxRings:           3,
		AutoRotate:         true,
		AutoRotateSpeed:    0.5,
	}
	return cfg
}

// Dash describes the animated dash pattern drawn along every arc. Lengths are
// relative to the arc length.
type Dash struct {
	Length      float64
	Gap         float64
	AnimateTime time.Duration
}

var DefaultDash = Dash{Length: 0.8, Gap: 4, AnimateTime: time.Second}
