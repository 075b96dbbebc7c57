// Package feed models the procurement/submittal status feed: its items,
// where they come from, and the animator that scrolls through them.
package feed

import (
	"strings"
	"time"
)

// Item is one procurement or submittal status entry. Fields are taken from
// the source as-is; missing fields stay empty.
type Item struct {
	ID              string `json:"id"`
	Description     string `json:"spec_description"`
	UpdatedAt       string `json:"date_last_updated"`
	Contractor      string `json:"responsible_contractor"`
	LeadTime        int    `json:"lead_time"`
	Status          string `json:"procurement_status"`
	SubmittalNumber string `json:"submittal_number"`
}

type Status int

const (
	StatusUnknown Status = iota
	StatusInProduction
	StatusOnSite
	StatusReleased
)

func ParseStatus(s string) Status {
	switch strings.TrimSpace(s) {
	case "In Production":
		return StatusInProduction
	case "On Site":
		return StatusOnSite
	case "Released":
		return StatusReleased
	default:
		return StatusUnknown
	}
}

func (s Status) String() string {
	switch s {
	case StatusInProduction:
		return "In Production"
	case StatusOnSite:
		return "On Site"
	case StatusReleased:
		return "Released"
	default:
		return "Unknown"
	}
}

// Class is the display style name for a status. Unknown statuses get none.
func (s Status) Class() string {
	switch s {
	case StatusInProduction:
		return "status-in-production"
	case StatusOnSite:
		return "status-on-site"
	case StatusReleased:
		return "status-released"
	default:
		return ""
	}
}

func (it Item) State() Status { return ParseStatus(it.Status) }

// Updated parses UpdatedAt. Sources send RFC 3339, sometimes without a zone.
func (it Item) Updated() (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, it.UpdatedAt); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DisplayTime formats UpdatedAt for a card, falling back to the raw text.
func (it Item) DisplayTime(loc *time.Location) string {
	t, ok := it.Updated()
	if !ok {
		return it.UpdatedAt
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("01/02/2006, 3:04:05 PM")
}

// StatusCount is the number of items carrying one status.
type StatusCount struct {
	Status Status
	Count  int
}

// Summarize counts items per status in a fixed display order.
func Summarize(items []Item) []StatusCount {
	counts := make(map[Status]int, 4)
	for _, it := range items {
		counts[it.State()]++
	}
	order := []Status{StatusInProduction, StatusOnSite, StatusReleased, StatusUnknown}
	out := make([]StatusCount, 0, len(order))
	for _, s := range order {
		out = append(out, StatusCount{Status: s, Count: counts[s]})
	}
	return out
}

// CountByContractor counts items per responsible contractor.
func CountByContractor(items []Item) map[string]int {
	out := make(map[string]int)
	for _, it := range items {
		out[it.Contractor]++
	}
	return out
}
