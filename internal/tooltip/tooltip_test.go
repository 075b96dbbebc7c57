package tooltip

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kayaglobe/internal/geo"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	require.NoError(t, s.Init())
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func rowText(s tcell.Screen, x, y, n int) string {
	out := make([]rune, 0, n)
	for i := 0; i < n; i++ {
		r, _, _, _ := s.GetContent(x+i, y)
		out = append(out, r)
	}
	return string(out)
}

func TestShowDrawsNextToPointer(t *testing.T) {
	s := newScreen(t, 60, 20)
	c := New(tcell.ColorWhite, tcell.ColorBlack)
	accent := geo.RGB{R: 6, G: 182, B: 212}

	c.Show(Content{Title: "Acme Steel", Icon: '●', Accent: accent, Lines: []string{"3 items"}}, 10, 5)
	c.Draw(s)

	x, y, w, h := c.Bounds(60, 20)
	assert.Equal(t, 12, x)
	assert.Equal(t, 6, y)
	assert.Equal(t, 2, h)
	assert.Equal(t, len([]rune("● Acme Steel"))+3, w)

	r, _, style, _ := s.GetContent(x, y)
	assert.Equal(t, '▌', r)
	fg, _, _ := style.Decompose()
	assert.Equal(t, accent.Tcell(), fg)

	assert.Equal(t, "● Acme Steel", rowText(s, x+2, y, len([]rune("● Acme Steel"))))
	assert.Equal(t, "3 items", rowText(s, x+2, y+1, 7))
}

func TestBoundsClampToScreen(t *testing.T) {
	c := New(tcell.ColorWhite, tcell.ColorBlack)
	c.Show(Content{Title: "Far Corner Contractor"}, 58, 19)

	x, y, w, h := c.Bounds(60, 20)
	assert.GreaterOrEqual(t, x, 0)
	assert.LessOrEqual(t, x+w, 60)
	assert.Equal(t, 20, y+h, "bottom row stays on screen")
	assert.Less(t, x, 58, "flips to the left of the pointer")
}

func TestHideForgetsContent(t *testing.T) {
	s := newScreen(t, 40, 10)
	c := New(tcell.ColorWhite, tcell.ColorBlack)
	c.Show(Content{Title: "A"}, 1, 1)
	require.True(t, c.Visible())

	c.Hide()
	assert.False(t, c.Visible())
	assert.Equal(t, Content{}, c.Content())

	c.Draw(s)
	r, _, _, _ := s.GetContent(3, 2)
	assert.NotEqual(t, 'A', r)
}
