package dashboard

import (
	"fmt"
	"strings"

	"kayaglobe/internal/feed"
)

// StatusBars renders one horizontal bar per status, scaled to the largest
// count. Partial cells use '=' and '_' like the hourly graph they replace.
func StatusBars(counts []feed.StatusCount, width int) []string {
	maxVal := 0
	for _, c := range counts {
		maxVal = max(maxVal, c.Count)
	}

	const labelWidth = 14
	numWidth := len(fmt.Sprintf("%d", maxVal))
	barWidth := width - labelWidth - numWidth - 2
	if barWidth < 1 {
		barWidth = 1
	}

	lines := make([]string, 0, len(counts))
	for _, c := range counts {
		var bar strings.Builder
		if maxVal > 0 {
			filled := float64(c.Count) / float64(maxVal) * float64(barWidth)
			full := int(filled)
			bar.WriteString(strings.Repeat("#", full))
			if full < barWidth {
				remainder := filled - float64(full)
				switch {
				case remainder >= 0.66:
					bar.WriteByte('#')
				case remainder >= 0.33:
					bar.WriteByte('=')
				case remainder > 0:
					bar.WriteByte('_')
				}
			}
		}
		lines = append(lines, fmt.Sprintf("%-*s %-*s %*d",
			labelWidth-1, c.Status.String(), barWidth, bar.String(), numWidth, c.Count))
	}
	return lines
}
