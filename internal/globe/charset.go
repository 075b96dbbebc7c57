package globe

import (
	"fmt"
	"strings"
)

type Charset int

const (
	CharsetASCII Charset = iota
	CharsetBlocks
	CharsetBraille
)

func ParseCharset(s string) (Charset, error) {
	switch strings.ToLower(s) {
	case "ascii":
		return CharsetASCII, nil
	case "blocks":
		return CharsetBlocks, nil
	case "braille":
		return CharsetBraille, nil
	default:
		return CharsetASCII, fmt.Errorf("invalid charset %q (must be ascii, blocks or braille)", s)
	}
}

func (c Charset) String() string {
	switch c {
	case CharsetBlocks:
		return "blocks"
	case CharsetBraille:
		return "braille"
	default:
		return "ascii"
	}
}

// Density maps a shaded land density to a glyph. Densities above 1 are the
// brightest glyph.
func (c Charset) Density(d float64) rune {
	var steps []step
	switch c {
	case CharsetBraille:
		steps = brailleSteps
	case CharsetBlocks:
		steps = blockSteps
	default:
		steps = asciiSteps
	}
	for _, s := range steps {
		if d > s.min {
			return s.r
		}
	}
	return ' '
}

type step struct {
	min float64
	r   rune
}

var asciiSteps = []step{
	{1.0, '@'}, {0.8, '#'}, {0.6, '%'}, {0.4, 'o'}, {0.3, '='},
	{0.2, '+'}, {0.15, '-'}, {0.1, '.'}, {0.05, '`'},
}

var blockSteps = []step{
	{1.0, '█'}, {0.875, '▓'}, {0.75, '▒'}, {0.625, '░'}, {0.5, '▄'},
	{0.375, '▃'}, {0.25, '▂'}, {0.125, '▁'},
}

var brailleSteps = []step{
	{1.0, '⣿'}, {0.9, '⣾'}, {0.8, '⣶'}, {0.7, '⣦'}, {0.6, '⣤'},
	{0.5, '⣀'}, {0.4, '⡀'}, {0.3, '⠄'}, {0.2, '⠂'}, {0.15, '⠁'},
}

// Glyphs used for overlays in each charset.
type glyphs struct {
	atmosphere rune
	dash       rune
	point      rune
	ring       rune
	marker     rune
}

func (c Charset) glyphs() glyphs {
	if c == CharsetASCII {
		return glyphs{atmosphere: '.', dash: '*', point: 'o', ring: ':', marker: '^'}
	}
	return glyphs{atmosphere: '░', dash: '•', point: '●', ring: '∘', marker: '⌂'}
}
