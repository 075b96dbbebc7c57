package globe

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"strings"
)

// BitmapFromImage thresholds an equirectangular image into a w x h bitmap.
// The source is expected to be black and white: dark pixels are land, light
// pixels are water.
func BitmapFromImage(img image.Image, w, h int) *Bitmap {
	bounds := img.Bounds()
	scaleX := float64(bounds.Dx()) / float64(w)
	scaleY := float64(bounds.Dy()) / float64(h)

	rows := make([]string, h)
	var sb strings.Builder
	for y := 0; y < h; y++ {
		sb.Reset()
		for x := 0; x < w; x++ {
			px := bounds.Min.X + int(float64(x)*scaleX)
			py := bounds.Min.Y + int(float64(y)*scaleY)
			r, g, b, _ := img.At(px, py).RGBA()
			if (r+g+b)/3 > 0x8000 {
				sb.WriteByte(' ')
			} else {
				sb.WriteByte('#')
			}
		}
		rows[y] = sb.String()
	}
	return NewBitmap(rows)
}

// SampleBitmap samples any land mask onto a w x h bitmap laid out the way
// Bitmap.IsLand reads it back.
func SampleBitmap(land interface{ IsLand(lat, lng float64) bool }, w, h int) *Bitmap {
	rows := make([]string, h)
	var sb strings.Builder
	for y := 0; y < h; y++ {
		sb.Reset()
		lat := 90 - float64(y)*180/float64(max(h-1, 1))
		for x := 0; x < w; x++ {
			lng := float64(x)*360/float64(max(w-1, 1)) - 180
			if land.IsLand(lat, lng) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte(' ')
			}
		}
		rows[y] = sb.String()
	}
	return NewBitmap(rows)
}

func (b *Bitmap) Size() (w, h int) { return b.w, b.h }

// WriteGo writes the bitmap as a Go source file declaring a []string
// variable, suitable for replacing earth.go.
func (b *Bitmap) WriteGo(w io.Writer, pkg, name string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "package %s\n\n", pkg)
	fmt.Fprintf(bw, "// %s is a %dx%d equirectangular land map, north at the top.\n", name, b.w, b.h)
	fmt.Fprintf(bw, "var %s = []string{\n", name)
	for _, row := range b.rows {
		fmt.Fprintf(bw, "\t%q,\n", row)
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}
