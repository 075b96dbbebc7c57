package scene

import (
	"kayaglobe/internal/geo"
)

// Arc is one route between two geographic points. Order staggers the dash
// animation: an arc with a higher order starts its first dash later.
type Arc struct {
	Order    int     `toml:"order" json:"order"`
	StartLat float64 `toml:"start_lat" json:"startLat"`
	StartLng float64 `toml:"start_lng" json:"startLng"`
	EndLat   float64 `toml:"end_lat" json:"endLat"`
	EndLng   float64 `toml:"end_lng" json:"endLng"`
	Alt      float64 `toml:"arc_alt" json:"arcAlt"`
	Color    string  `toml:"color" json:"color"`
}

// Point is an arc endpoint. Color maps an animation progress in [0,1] to a
// color that fades from opaque to transparent.
type Point struct {
	Size  float64
	Order int
	Lat   float64
	Lng   float64
	Color func(t float64) geo.RGBA
}

// Path is an arc resolved for rendering.
type Path struct {
	Arc
	Start      geo.Vec3
	End        geo.Vec3
	Tint       geo.RGB
	InitialGap float64
}

// Landmass answers whether a coordinate is land.
type Landmass interface {
	IsLand(lat, lng float64) bool
}

type Material struct {
	Color             geo.RGB
	Emissive          geo.RGB
	EmissiveIntensity float64
	Shininess         float64
}

type Atmosphere struct {
	Show     bool
	Color    geo.RGB
	Altitude float64
}

type Rings struct {
	Count     int
	MaxRadius float64 // degrees
}

// Scene is the full description handed to the renderer. A Scene is built
// once per data change and never mutated afterwards; the markers it points
// to carry their own visibility state.
type Scene struct {
	Paths        []Path
	Points       []Point
	Markers      []*Marker
	Land         Landmass
	PolygonColor geo.RGB
	Material     Material
	Atmosphere   Atmosphere
	Rings        Rings
	Dash         Dash
}

// Engine is the renderer's configuration surface.
type Engine interface {
	Apply(s Scene)
}
