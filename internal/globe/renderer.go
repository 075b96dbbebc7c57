// Package globe renders a scene onto a character grid: land shaded by the
// globe material, an atmosphere halo, animated arc dashes, pulsing rings and
// hoverable markers, seen from an orbiting camera.
package globe

import (
	"math"
	"sync"
	"time"

	"kayaglobe/internal/geo"
	"kayaglobe/internal/scene"
)

// RingPeriod is how long one ring takes to grow from a point to its maximum
// radius.
const RingPeriod = 1500 * time.Millisecond

// PointDegrees is the angular radius of a point per unit of Point.Size.
const PointDegrees = 0.25

type light struct {
	dir       geo.Vec3
	intensity float64
}

// Two white directional lights from the upper left, fixed in world space.
var lights = []light{
	{dir: geo.Vec3{X: -400, Y: 100, Z: 400}.Normalize(), intensity: 0.55},
	{dir: geo.Vec3{X: -200, Y: 500, Z: 200}.Normalize(), intensity: 0.45},
}

const ambient = 0.3

type Renderer struct {
	mu         sync.RWMutex
	scene      scene.Scene
	camera     Camera
	width      int
	height     int
	aspect     float64
	charset    Charset
	lighting   bool
	showArcs   bool
	background geo.RGB
}

// New creates a renderer for a width×height cell area. aspect is the height
// of a terminal cell divided by its width.
func New(width, height int, aspect float64, charset Charset) *Renderer {
	if aspect <= 0 {
		aspect = 2.0
	}
	return &Renderer{
		camera:   NewCamera(0, 0),
		width:    max(width, 0),
		height:   max(height, 0),
		aspect:   aspect,
		charset:  charset,
		lighting: true,
		showArcs: true,
	}
}

// Apply replaces the scene. It is the only way scene data reaches the
// renderer.
func (r *Renderer) Apply(s scene.Scene) {
	r.mu.Lock()
	r.scene = s
	r.mu.Unlock()
}

func (r *Renderer) Scene() scene.Scene {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.scene
}

func (r *Renderer) Resize(width, height int) {
	r.mu.Lock()
	r.width, r.height = max(width, 0), max(height, 0)
	r.mu.Unlock()
}

func (r *Renderer) Size() (int, int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.width, r.height
}

func (r *Renderer) Camera() Camera {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.camera
}

func (r *Renderer) SetCamera(c Camera) {
	r.mu.Lock()
	r.camera = c.Clamp()
	r.mu.Unlock()
}

func (r *Renderer) Charset() Charset {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.charset
}

func (r *Renderer) SetCharset(c Charset) {
	r.mu.Lock()
	r.charset = c
	r.mu.Unlock()
}

func (r *Renderer) Lighting() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lighting
}

func (r *Renderer) SetLighting(on bool) {
	r.mu.Lock()
	r.lighting = on
	r.mu.Unlock()
}

func (r *Renderer) ShowArcs() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.showArcs
}

func (r *Renderer) SetShowArcs(on bool) {
	r.mu.Lock()
	r.showArcs = on
	r.mu.Unlock()
}

// SetBackground sets the color that translucent parts fade toward.
func (r *Renderer) SetBackground(c geo.RGB) {
	r.mu.Lock()
	r.background = c
	r.mu.Unlock()
}

type view struct {
	right, up, back geo.Vec3
	cx, cy          float64
	radius          float64 // in columns
	aspect          float64
}

func (r *Renderer) view() view {
	right, up, back := r.camera.basis()
	base := math.Min(float64(r.width)/2.5, float64(r.height)*r.aspect/2.5)
	return view{
		right:  right,
		up:     up,
		back:   back,
		cx:     float64(r.width) / 2,
		cy:     float64(r.height) / 2,
		radius: math.Max(1, base*r.camera.Scale()),
		aspect: r.aspect,
	}
}

// project maps a scene position to a cell. depth is positive on the camera
// side of the globe center; onDisk reports whether the position falls inside
// the globe outline.
func (v view) project(p geo.Vec3) (x, y int, depth float64, onDisk bool) {
	sx := p.Dot(v.right) / geo.Radius
	sy := p.Dot(v.up) / geo.Radius
	depth = p.Dot(v.back) / geo.Radius
	x = int(math.Floor(v.cx + sx*v.radius))
	y = int(math.Floor(v.cy - sy*v.radius/v.aspect))
	return x, y, depth, sx*sx+sy*sy < 1
}

// rim is the distance of a cell center from the globe center in radii.
func (v view) rim(x, y int) float64 {
	sx := (float64(x) + 0.5 - v.cx) / v.radius
	sy := (v.cy - float64(y) - 0.5) * v.aspect / v.radius
	return math.Sqrt(sx*sx + sy*sy)
}

// unproject returns the unit surface normal seen at a cell.
func (v view) unproject(x, y int) (geo.Vec3, bool) {
	sx := (float64(x) + 0.5 - v.cx) / v.radius
	sy := (v.cy - float64(y) - 0.5) * v.aspect / v.radius
	d2 := sx*sx + sy*sy
	if d2 > 1 {
		return geo.Vec3{}, false
	}
	sz := math.Sqrt(1 - d2)
	return v.right.Scale(sx).Add(v.up.Scale(sy)).Add(v.back.Scale(sz)), true
}

// LatLngAt returns the coordinate under a cell, if the cell shows the globe.
func (r *Renderer) LatLngAt(x, y int) (lat, lng float64, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.view().unproject(x, y)
	if !ok {
		return 0, 0, false
	}
	lat, lng = geo.Unproject(n)
	return lat, lng, true
}

// Render draws the current scene as it looks elapsed time after the scene
// animation started.
func (r *Renderer) Render(elapsed time.Duration) *Frame {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f := newFrame(r.width, r.height)
	if r.width == 0 || r.height == 0 {
		return f
	}
	v := r.view()
	r.drawSphere(f, v)
	if r.scene.Atmosphere.Show {
		r.drawAtmosphere(f, v)
	}
	r.drawRings(f, v, elapsed)
	if r.showArcs {
		r.drawArcs(f, v, elapsed)
	}
	r.drawPoints(f, v)
	r.drawMarkers(f, v)
	return f
}

func (r *Renderer) shade(n, eye geo.Vec3) float64 {
	if !r.lighting {
		return 1.0
	}
	m := r.scene.Material
	intensity := ambient
	for _, l := range lights {
		diffuse := n.Dot(l.dir)
		if diffuse <= 0 {
			continue
		}
		intensity += diffuse * l.intensity
		h := l.dir.Add(eye).Normalize()
		intensity += math.Pow(math.Max(0, n.Dot(h)), math.Max(1, m.Shininess)) * 0.15
	}
	return math.Max(0.2, intensity)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func (r *Renderer) oceanColor(intensity float64) geo.RGB {
	m := r.scene.Material
	lit := geo.RGBA{RGB: m.Color, A: clamp01(intensity)}.Blend(r.background)
	return geo.RGBA{RGB: m.Emissive, A: m.EmissiveIntensity}.Blend(lit)
}

func (r *Renderer) drawSphere(f *Frame, v view) {
	density := make([]float64, f.Width*f.Height)
	shading := make([]float64, f.Width*f.Height)
	land := r.scene.Land

	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			n, ok := v.unproject(x, y)
			if !ok {
				continue
			}
			light := r.shade(n, v.back)
			shading[y*f.Width+x] = light
			f.set(x, y, Cell{Rune: ' ', Bg: r.oceanColor(light), HasBg: true, Kind: KindOcean})

			if land == nil {
				continue
			}
			lat, lng := geo.Unproject(n)
			if !land.IsLand(lat, lng) {
				continue
			}
			density[y*f.Width+x] += light
			// Anti-aliasing
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if nx >= 0 && nx < f.Width && ny >= 0 && ny < f.Height {
						density[ny*f.Width+nx] += 0.05 * light
					}
				}
			}
		}
	}

	poly := r.scene.PolygonColor
	for i, d := range density {
		if f.Cells[i].Kind != KindOcean {
			continue
		}
		ch := r.charset.Density(d)
		if ch == ' ' {
			continue
		}
		c := f.Cells[i]
		c.Rune = ch
		c.Fg = geo.RGBA{RGB: poly, A: clamp01(shading[i])}.Blend(r.background)
		c.Kind = KindLand
		f.Cells[i] = c
	}
}

func (r *Renderer) drawAtmosphere(f *Frame, v view) {
	atm := r.scene.Atmosphere
	// At least one cell of halo regardless of altitude.
	thickness := math.Max(atm.Altitude, 1.0/v.radius)
	g := r.charset.glyphs()

	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			d := v.rim(x, y)
			if d <= 1 || d > 1+thickness {
				continue
			}
			fade := (d - 1) / thickness
			color := geo.RGBA{RGB: atm.Color, A: 0.6 * (1 - fade)}.Blend(r.background)
			f.set(x, y, Cell{Rune: g.atmosphere, Fg: color, Kind: KindAtmosphere})
		}
	}
}

// DashLit reports whether the position t (0 at the arc start, 1 at its end)
// falls inside a dash once the pattern has advanced s arc lengths. The
// pattern repeats every length+gap.
func DashLit(s, t, length, gap float64) bool {
	period := length + gap
	if period <= 0 {
		return true
	}
	m := math.Mod(s-t, period)
	if m < 0 {
		m += period
	}
	return m < length
}

const arcSteps = 64

func (r *Renderer) drawArcs(f *Frame, v view, elapsed time.Duration) {
	dash := r.scene.Dash
	animate := dash.AnimateTime
	if animate <= 0 {
		animate = scene.DefaultDash.AnimateTime
	}
	advance := elapsed.Seconds() / animate.Seconds()
	g := r.charset.glyphs()

	for _, p := range r.scene.Paths {
		a, b := p.Start.Normalize(), p.End.Normalize()
		s := advance - p.InitialGap
		for i := 0; i <= arcSteps; i++ {
			t := float64(i) / arcSteps
			if !DashLit(s, t, dash.Length, dash.Gap) {
				continue
			}
			lift := p.Alt * math.Sin(math.Pi*t)
			pos := geo.Slerp(a, b, t).Scale(geo.Radius * (1 + lift))
			x, y, depth, onDisk := v.project(pos)
			if depth < 0 && onDisk {
				continue
			}
			f.set(x, y, Cell{Rune: g.dash, Fg: p.Tint, Kind: KindArc})
		}
	}
}

func (r *Renderer) drawRings(f *Frame, v view, elapsed time.Duration) {
	rings := r.scene.Rings
	if rings.Count <= 0 || rings.MaxRadius <= 0 {
		return
	}
	g := r.charset.glyphs()
	cycle := elapsed.Seconds() / RingPeriod.Seconds()

	for _, p := range r.scene.Points {
		if p.Color == nil {
			continue
		}
		c := geo.Project(p.Lat, p.Lng, 0).Normalize()
		if c.Dot(v.back) < 0 {
			continue
		}
		e1 := worldUp.Cross(c)
		if e1.Len() < 1e-9 {
			e1 = geo.Vec3{X: 1}
		}
		e1 = e1.Normalize()
		e2 := c.Cross(e1)

		for k := 0; k < rings.Count; k++ {
			phase := cycle + float64(k)/float64(rings.Count)
			phase -= math.Floor(phase)
			radius := phase * rings.MaxRadius * math.Pi / 180
			if radius <= 0 {
				continue
			}
			color := p.Color(phase).Blend(r.background)
			for j := 0; j < 32; j++ {
				a := 2 * math.Pi * float64(j) / 32
				dir := e1.Scale(math.Cos(a)).Add(e2.Scale(math.Sin(a)))
				q := c.Scale(math.Cos(radius)).Add(dir.Scale(math.Sin(radius)))
				x, y, depth, _ := v.project(q.Scale(geo.Radius))
				if depth < 0 {
					continue
				}
				f.set(x, y, Cell{Rune: g.ring, Fg: color, Kind: KindRing})
			}
		}
	}
}

func (r *Renderer) drawPoints(f *Frame, v view) {
	g := r.charset.glyphs()
	for _, p := range r.scene.Points {
		if p.Color == nil {
			continue
		}
		x, y, depth, _ := v.project(geo.Project(p.Lat, p.Lng, 0))
		if depth < 0 {
			continue
		}
		cell := Cell{Rune: g.point, Fg: p.Color(0).RGB, Kind: KindPoint}
		f.set(x, y, cell)

		radius := p.Size * PointDegrees * math.Pi / 180
		if radius <= 0 {
			continue
		}
		c := geo.Project(p.Lat, p.Lng, 0).Normalize()
		rx := int(math.Ceil(math.Sin(radius)*v.radius)) + 1
		ry := int(math.Ceil(math.Sin(radius)*v.radius/v.aspect)) + 1
		for cy := y - ry; cy <= y+ry; cy++ {
			for cx := x - rx; cx <= x+rx; cx++ {
				n, ok := v.unproject(cx, cy)
				if ok && n.AngleTo(c) <= radius {
					f.set(cx, cy, cell)
				}
			}
		}
	}
}

func (r *Renderer) drawMarkers(f *Frame, v view) {
	g := r.charset.glyphs()
	for _, m := range r.scene.Markers {
		if !m.Visible() {
			continue
		}
		x, y, depth, _ := v.project(m.Position())
		if depth < 0 || x < 0 || y < 0 || x >= f.Width || y >= f.Height {
			continue
		}
		f.set(x, y, Cell{Rune: g.marker, Fg: m.Color, Kind: KindMarker})
		f.Markers = append(f.Markers, Hit{Marker: m, X: x, Y: y})
	}
}
