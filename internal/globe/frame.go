package globe

import (
	"kayaglobe/internal/geo"
	"kayaglobe/internal/scene"
)

// Kind tells the view what a cell shows so a theme can restyle it.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindOcean
	KindLand
	KindAtmosphere
	KindArc
	KindRing
	KindPoint
	KindMarker
)

type Cell struct {
	Rune  rune
	Fg    geo.RGB
	Bg    geo.RGB
	HasBg bool
	Kind  Kind
}

// Hit is a marker drawn at a screen cell.
type Hit struct {
	Marker *scene.Marker
	X, Y   int
}

// Frame is one rendered image of the globe.
type Frame struct {
	Width, Height int
	Cells         []Cell
	Markers       []Hit
}

func newFrame(w, h int) *Frame {
	f := &Frame{Width: w, Height: h, Cells: make([]Cell, w*h)}
	for i := range f.Cells {
		f.Cells[i].Rune = ' '
	}
	return f
}

func (f *Frame) At(x, y int) Cell {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return Cell{Rune: ' '}
	}
	return f.Cells[y*f.Width+x]
}

func (f *Frame) set(x, y int, c Cell) {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return
	}
	i := y*f.Width + x
	if !c.HasBg && f.Cells[i].HasBg {
		c.Bg, c.HasBg = f.Cells[i].Bg, true
	}
	f.Cells[i] = c
}

// MarkerAt returns the marker drawn nearest to (x, y), if any is within one
// cell of it.
func (f *Frame) MarkerAt(x, y int) (*scene.Marker, bool) {
	best, bestDist := -1, 2
	for i, h := range f.Markers {
		d := max(abs(h.X-x), abs(h.Y-y))
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return nil, false
	}
	return f.Markers[best].Marker, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
