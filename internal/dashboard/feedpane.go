package dashboard

import (
	"fmt"
	"strings"
	"time"

	"kayaglobe/internal/feed"
)

// RowHeight is the number of lines one feed card takes, separator included.
const RowHeight = 5

// Line is one rendered line of the feed pane.
type Line struct {
	Text   string
	Status feed.Status
	Title  bool
}

// Card renders an item as RowHeight lines of at most width runes.
func Card(it feed.Item, width int, loc *time.Location) []Line {
	st := it.State()
	status := it.Status
	if status == "" {
		status = st.String()
	}
	title := it.ID
	if it.SubmittalNumber != "" {
		title = fmt.Sprintf("%s  #%s", it.ID, it.SubmittalNumber)
	}

	return []Line{
		{Text: spread(title, status, width), Status: st, Title: true},
		{Text: truncate(it.Description, width)},
		{Text: truncate("Contractor: "+it.Contractor, width)},
		{Text: truncate(fmt.Sprintf("Lead %d days  %s", it.LeadTime, it.DisplayTime(loc)), width)},
		{},
	}
}

// FeedLines returns the height lines visible at a scroll offset measured in
// lines. The list wraps around so the feed scrolls forever.
func FeedLines(items []feed.Item, offset float64, width, height int, loc *time.Location) []Line {
	out := make([]Line, height)
	if len(items) == 0 || height <= 0 {
		return out
	}
	cards := make([][]Line, len(items))
	for i, it := range items {
		cards[i] = Card(it, width, loc)
	}

	total := len(items) * RowHeight
	base := int(offset) % total
	if base < 0 {
		base += total
	}
	for i := range out {
		line := (base + i) % total
		out[i] = cards[line/RowHeight][line%RowHeight]
	}
	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

// spread puts left and right on one line, right-aligned, truncating left.
func spread(left, right string, width int) string {
	rw := len([]rune(right))
	if rw >= width {
		return truncate(right, width)
	}
	left = truncate(left, width-rw-1)
	pad := width - len([]rune(left)) - rw
	return left + strings.Repeat(" ", pad) + right
}
