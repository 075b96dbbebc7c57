// Package tooltip draws the hover box that describes a globe marker.
package tooltip

import (
	"github.com/gdamore/tcell/v2"

	"kayaglobe/internal/geo"
)

// Content is what a tooltip shows: a title with a status icon, an accent
// color for the left border and optional detail lines.
type Content struct {
	Title  string
	Icon   rune
	Accent geo.RGB
	Lines  []string
}

// Controller owns a single overlay. The view that creates it is the only
// one that shows or hides it.
type Controller struct {
	fg, bg  tcell.Color
	visible bool
	content Content
	x, y    int
}

func New(fg, bg tcell.Color) *Controller {
	return &Controller{fg: fg, bg: bg}
}

// Show places the tooltip next to the pointer at (x, y).
func (c *Controller) Show(content Content, x, y int) {
	c.content = content
	c.x, c.y = x, y
	c.visible = true
}

// Hide removes the tooltip and forgets its content.
func (c *Controller) Hide() {
	c.visible = false
	c.content = Content{}
}

func (c *Controller) Visible() bool { return c.visible }

func (c *Controller) Content() Content { return c.content }

func (c *Controller) SetColors(fg, bg tcell.Color) {
	c.fg, c.bg = fg, bg
}

func (c *Controller) lines() []string {
	title := c.content.Title
	if c.content.Icon != 0 {
		title = string(c.content.Icon) + " " + title
	}
	return append([]string{title}, c.content.Lines...)
}

// Bounds returns the box rectangle as it would be drawn on a w×h screen.
func (c *Controller) Bounds(w, h int) (x, y, width, height int) {
	lines := c.lines()
	width = 0
	for _, l := range lines {
		if n := len([]rune(l)); n > width {
			width = n
		}
	}
	width += 3 // border, padding left and right
	height = len(lines)

	if width > w {
		width = w
	}
	x, y = c.x+2, c.y+1
	if x+width > w {
		x = c.x - width - 1
	}
	if y+height > h {
		y = h - height
	}
	x = max(0, min(x, w-width))
	y = max(0, y)
	return x, y, width, height
}

// Draw paints the tooltip over whatever is on screen. It does not call Show
// on the screen.
func (c *Controller) Draw(s tcell.Screen) {
	if !c.visible {
		return
	}
	w, h := s.Size()
	x0, y0, width, height := c.Bounds(w, h)

	accent := tcell.StyleDefault.Foreground(c.content.Accent.Tcell()).Background(c.bg)
	body := tcell.StyleDefault.Foreground(c.fg).Background(c.bg)
	lines := c.lines()

	for row := 0; row < height && y0+row < h; row++ {
		y := y0 + row
		s.SetContent(x0, y, '▌', nil, accent)

		style := body
		if row == 0 {
			style = body.Bold(true)
		}
		text := []rune(lines[row])
		for col := 1; col < width; col++ {
			r := ' '
			if i := col - 2; i >= 0 && i < len(text) {
				r = text[i]
			}
			s.SetContent(x0+col, y, r, nil, style)
		}
	}
}
