package globe

import (
	"fmt"
	"io"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// Bitmap is an equirectangular land mask: row 0 is the north pole and
// column 0 is longitude -180. Any non-space byte is land.
type Bitmap struct {
	rows []string
	w, h int
}

func NewBitmap(rows []string) *Bitmap {
	b := &Bitmap{rows: rows, h: len(rows)}
	if b.h > 0 {
		b.w = len(rows[0])
	}
	return b
}

// DefaultLand is the built-in 120x60 world map.
func DefaultLand() *Bitmap {
	return NewBitmap(earthBitmap)
}

func (b *Bitmap) IsLand(lat, lng float64) bool {
	if b.w == 0 || b.h == 0 {
		return false
	}
	y := int((90 - lat) / 180 * float64(b.h-1))
	x := int((lng + 180) / 360 * float64(b.w-1))
	y = max(0, min(y, b.h-1))
	x = max(0, min(x, b.w-1))

	row := b.rows[y]
	if x >= len(row) {
		return false
	}
	return row[x] != ' '
}

// Grid is a land mask rasterized from polygons onto a regular lat/lng grid.
// With a margin, only the middle of each land cell counts as land, leaving
// gaps between cells like a hex-dot map.
type Grid struct {
	Resolution float64 // degrees per cell
	Margin     float64 // fraction of each cell left empty, in [0, 1)

	rows, cols int
	cells      []bool
}

// LoadGeoJSON rasterizes the Polygon and MultiPolygon features of a GeoJSON
// FeatureCollection.
func LoadGeoJSON(r io.Reader, resolution, margin float64) (*Grid, error) {
	if resolution <= 0 {
		return nil, fmt.Errorf("invalid resolution %v", resolution)
	}
	if margin < 0 || margin >= 1 {
		return nil, fmt.Errorf("invalid margin %v (must be in [0, 1))", margin)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read geojson: %w", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parse geojson: %w", err)
	}

	var polys []orb.Polygon
	for _, f := range fc.Features {
		switch g := f.Geometry.(type) {
		case orb.Polygon:
			polys = append(polys, g)
		case orb.MultiPolygon:
			polys = append(polys, g...)
		}
	}
	return Rasterize(polys, resolution, margin), nil
}

func Rasterize(polys []orb.Polygon, resolution, margin float64) *Grid {
	g := &Grid{
		Resolution: resolution,
		Margin:     margin,
		rows:       int(math.Ceil(180 / resolution)),
		cols:       int(math.Ceil(360 / resolution)),
	}
	g.cells = make([]bool, g.rows*g.cols)

	bounds := make([]orb.Bound, len(polys))
	for i, p := range polys {
		bounds[i] = p.Bound()
	}

	for row := 0; row < g.rows; row++ {
		lat := 90 - (float64(row)+0.5)*resolution
		for col := 0; col < g.cols; col++ {
			pt := orb.Point{-180 + (float64(col)+0.5)*resolution, lat}
			for i, p := range polys {
				if bounds[i].Contains(pt) && planar.PolygonContains(p, pt) {
					g.cells[row*g.cols+col] = true
					break
				}
			}
		}
	}
	return g
}

func (g *Grid) IsLand(lat, lng float64) bool {
	fy := (90 - lat) / g.Resolution
	fx := (lng + 180) / g.Resolution
	row := max(0, min(int(fy), g.rows-1))
	col := max(0, min(int(fx), g.cols-1))
	if !g.cells[row*g.cols+col] {
		return false
	}
	if g.Margin == 0 {
		return true
	}
	half := (1 - g.Margin) / 2
	dx := math.Abs(fx - float64(col) - 0.5)
	dy := math.Abs(fy - float64(row) - 0.5)
	return dx <= half && dy <= half
}

// Cells is the number of land cells.
func (g *Grid) Cells() int {
	n := 0
	for _, c := range g.cells {
		if c {
			n++
		}
	}
	return n
}
