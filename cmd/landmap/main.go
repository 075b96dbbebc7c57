// Command landmap regenerates the globe's built-in land bitmap, either from
// a black and white equirectangular PNG or from a GeoJSON world outline.
//
// Usage:
//
//	go run ./cmd/landmap -png equirectangle_projection.png -o internal/globe/earth.go
//	go run ./cmd/landmap -geojson countries.geojson -o internal/globe/earth.go
package main

import (
	"flag"
	"fmt"
	"image/png"
	"io"
	"os"

	"kayaglobe/internal/globe"
)

func main() {
	var pngFile = flag.String("png", "", "Equirectangular PNG, dark pixels are land")
	var geoFile = flag.String("geojson", "", "GeoJSON file of land polygons")
	var width = flag.Int("w", 120, "Bitmap width in columns")
	var height = flag.Int("h", 60, "Bitmap height in rows")
	var resolution = flag.Float64("res", 1, "GeoJSON rasterization resolution in degrees")
	var outFile = flag.String("o", "", "Output Go file (default stdout)")
	flag.Parse()

	if (*pngFile == "") == (*geoFile == "") {
		fmt.Fprintln(os.Stderr, "Error: exactly one of -png or -geojson is required")
		os.Exit(1)
	}
	if *width < 2 || *height < 2 {
		fmt.Fprintln(os.Stderr, "Error: width and height must be at least 2")
		os.Exit(1)
	}

	bitmap, err := build(*pngFile, *geoFile, *width, *height, *resolution)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var out io.Writer = os.Stdout
	if *outFile != "" {
		f, err := os.Create(*outFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	if err := bitmap.WriteGo(out, "globe", "earthBitmap"); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing bitmap: %v\n", err)
		os.Exit(1)
	}
}

func build(pngFile, geoFile string, w, h int, resolution float64) (*globe.Bitmap, error) {
	if pngFile != "" {
		f, err := os.Open(pngFile)
		if err != nil {
			return nil, fmt.Errorf("open PNG: %w", err)
		}
		defer f.Close()
		img, err := png.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("decode PNG: %w", err)
		}
		return globe.BitmapFromImage(img, w, h), nil
	}

	f, err := os.Open(geoFile)
	if err != nil {
		return nil, fmt.Errorf("open GeoJSON: %w", err)
	}
	defer f.Close()
	grid, err := globe.LoadGeoJSON(f, resolution, 0)
	if err != nil {
		return nil, err
	}
	return globe.SampleBitmap(grid, w, h), nil
}
