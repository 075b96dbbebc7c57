package geo

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor is returned when a color string is neither hex nor a known name.
var ErrInvalidColor = errors.New("invalid color")

var (
	shortHex = regexp.MustCompile(`(?i)^#?([a-f\d])([a-f\d])([a-f\d])$`)
	longHex  = regexp.MustCompile(`(?i)^#?([a-f\d]{2})([a-f\d]{2})([a-f\d]{2})$`)
	rgbaFunc = regexp.MustCompile(`(?i)^rgba?\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*(?:,\s*([\d.]+)\s*)?\)$`)
)

type RGB struct {
	R, G, B uint8
}

// HexToRGB parses "#rrggbb" or the "#rgb" shorthand; the leading '#' is
// optional. ok is false for anything else.
func HexToRGB(hex string) (rgb RGB, ok bool) {
	hex = strings.TrimSpace(hex)
	if m := shortHex.FindStringSubmatch(hex); m != nil {
		hex = m[1] + m[1] + m[2] + m[2] + m[3] + m[3]
	}
	m := longHex.FindStringSubmatch(hex)
	if m == nil {
		return RGB{}, false
	}
	var c [3]uint8
	for i := 0; i < 3; i++ {
		n, err := strconv.ParseUint(m[i+1], 16, 8)
		if err != nil {
			return RGB{}, false
		}
		c[i] = uint8(n)
	}
	return RGB{R: c[0], G: c[1], B: c[2]}, true
}

// ParseColor accepts hex notation first and then falls back to the named
// colors tcell knows about ("green", "aqua", ...).
func ParseColor(s string) (RGB, error) {
	if rgb, ok := HexToRGB(s); ok {
		return rgb, nil
	}
	name := strings.ToLower(strings.TrimSpace(s))
	if name != "" {
		if c, ok := tcell.ColorNames[name]; ok {
			r, g, b := c.RGB()
			return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}, nil
		}
	}
	return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

// ParseRGBA extends ParseColor with CSS rgb()/rgba() notation. Colors without
// an alpha component are opaque.
func ParseRGBA(s string) (RGBA, error) {
	m := rgbaFunc.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		rgb, err := ParseColor(s)
		if err != nil {
			return RGBA{}, err
		}
		return RGBA{RGB: rgb, A: 1}, nil
	}
	var c [3]uint8
	for i := 0; i < 3; i++ {
		n, err := strconv.Atoi(m[i+1])
		if err != nil || n > 255 {
			return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		c[i] = uint8(n)
	}
	a := 1.0
	if m[4] != "" {
		f, err := strconv.ParseFloat(m[4], 64)
		if err != nil || f > 1 {
			return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		a = f
	}
	return RGBA{RGB: RGB{R: c[0], G: c[1], B: c[2]}, A: a}, nil
}

func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c RGB) Tcell() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// RGBA is an RGB color with straight alpha in [0, 1].
type RGBA struct {
	RGB
	A float64
}

// Fade returns c with alpha 1-t, t clamped to [0, 1]: fully opaque at the
// start of an animation and fully transparent at its end.
func (c RGB) Fade(t float64) RGBA {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return RGBA{RGB: c, A: 1 - t}
}

// Blend composites c over bg. Terminals have no alpha channel, so transparency
// is expressed by mixing toward the background.
func (c RGBA) Blend(bg RGB) RGB {
	a := c.A
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	r, g, b := bg.colorful().BlendRgb(c.RGB.colorful(), a).Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

func (c RGBA) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %g)", c.R, c.G, c.B, c.A)
}
