package scene

import (
	"kayaglobe/internal/geo"
)

// Marker is a named location drawn on the globe that reacts to hover.
type Marker struct {
	Lat    float64
	Lng    float64
	Name   string
	Color  geo.RGB
	Detail string

	position geo.Vec3
	visible  bool
}

func NewMarker(lat, lng float64, name string, color geo.RGB) *Marker {
	m := &Marker{Lat: lat, Lng: lng, Name: name, Color: color, visible: true}
	m.Refresh()
	return m
}

// Refresh recomputes the cached surface position from Lat/Lng.
func (m *Marker) Refresh() {
	m.position = geo.Project(m.Lat, m.Lng, 0)
}

func (m *Marker) Position() geo.Vec3 { return m.position }

func (m *Marker) Visible() bool { return m.visible }

func (m *Marker) SetVisible(v bool) { m.visible = v }
