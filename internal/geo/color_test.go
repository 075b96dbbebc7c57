package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexToRGB(t *testing.T) {
	rgb, ok := HexToRGB("#06b6d4")
	require.True(t, ok)
	assert.Equal(t, RGB{R: 6, G: 182, B: 212}, rgb)

	rgb, ok = HexToRGB("#fff")
	require.True(t, ok)
	assert.Equal(t, RGB{R: 255, G: 255, B: 255}, rgb)

	rgb, ok = HexToRGB("FFCB21")
	require.True(t, ok)
	assert.Equal(t, RGB{R: 255, G: 203, B: 33}, rgb)
}

func TestHexToRGB_Invalid(t *testing.T) {
	for _, in := range []string{"", "green", "#12", "#1234567", "#gggggg", "rgba(1,2,3,1)"} {
		_, ok := HexToRGB(in)
		assert.False(t, ok, in)
	}
}

func TestParseColor_NamedFallback(t *testing.T) {
	rgb, err := ParseColor("green")
	require.NoError(t, err)
	assert.Equal(t, RGB{R: 0, G: 128, B: 0}, rgb)

	_, err = ParseColor("not-a-color")
	assert.ErrorIs(t, err, ErrInvalidColor)
}

func TestFade(t *testing.T) {
	c := RGB{R: 6, G: 182, B: 212}
	assert.Equal(t, 1.0, c.Fade(0).A)
	assert.Equal(t, 0.0, c.Fade(1).A)
	assert.InDelta(t, 0.25, c.Fade(0.75).A, 1e-12)
	assert.Equal(t, 1.0, c.Fade(-3).A)
	assert.Equal(t, "rgba(6, 182, 212, 1)", c.Fade(0).String())
}

func TestBlend(t *testing.T) {
	bg := RGB{}
	c := RGB{R: 200, G: 100, B: 50}
	assert.Equal(t, c, c.Fade(0).Blend(bg))
	assert.Equal(t, bg, c.Fade(1).Blend(bg))

	half := c.Fade(0.5).Blend(bg)
	assert.InDelta(t, 100, int(half.R), 1)
	assert.InDelta(t, 50, int(half.G), 1)
}

func TestRGBHex(t *testing.T) {
	assert.Equal(t, "#06b6d4", RGB{R: 6, G: 182, B: 212}.Hex())
}

func TestParseRGBA(t *testing.T) {
	c, err := ParseRGBA("rgba(255,255,255,0.7)")
	require.NoError(t, err)
	assert.Equal(t, RGB{R: 255, G: 255, B: 255}, c.RGB)
	assert.InDelta(t, 0.7, c.A, 1e-12)

	c, err = ParseRGBA("rgb(1, 2, 3)")
	require.NoError(t, err)
	assert.Equal(t, RGBA{RGB: RGB{R: 1, G: 2, B: 3}, A: 1}, c)

	c, err = ParseRGBA("#ffcb21")
	require.NoError(t, err)
	assert.Equal(t, 1.0, c.A)

	_, err = ParseRGBA("rgba(300,0,0,1)")
	assert.ErrorIs(t, err, ErrInvalidColor)
}
