// Package contractor loads the geocoded contractor locations shown as
// markers on the globe.
package contractor

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"kayaglobe/internal/geo"
	"kayaglobe/internal/scene"
)

//go:embed fixture/contractors.json
var fixtureFS embed.FS

// Contractor is one row of the unique_contractors collection.
type Contractor struct {
	Name            string  `json:"contractor_name"`
	Lat             float64 `json:"latitude"`
	Lng             float64 `json:"longitude"`
	Color           string  `json:"color,omitempty"`
	Item            string  `json:"item"`
	SubmittalNumber string  `json:"submittal_number"`
	LeadTime        int     `json:"lead_time"`
}

// Palette colors contractors that come without one, in order.
var Palette = []string{"#06b6d4", "#f97316", "#a855f7", "#22c55e", "#ef4444", "#eab308"}

type Source interface {
	Fetch(ctx context.Context) ([]Contractor, error)
}

// FixtureSource reads a JSON file, or the bundled list when Path is empty.
type FixtureSource struct {
	Path string
}

func (s FixtureSource) Fetch(_ context.Context) ([]Contractor, error) {
	var (
		r   io.ReadCloser
		err error
	)
	if s.Path == "" {
		r, err = fixtureFS.Open("fixture/contractors.json")
	} else {
		r, err = os.Open(s.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("open contractors: %w", err)
	}
	defer r.Close()

	var out []Contractor
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode contractors: %w", err)
	}
	return out, nil
}

// HTTPSource reads GET {base}/contractors from the feed service.
type HTTPSource struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]Contractor, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/contractors", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get contractors: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("contractors request failed: status %d", resp.StatusCode)
	}
	var out []Contractor
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode contractors: %w", err)
	}
	return out, nil
}

// Markers converts contractors into globe markers. resolve turns a color
// string into RGB; contractors without a color take the next palette entry.
// counts, keyed by contractor name, fills in the "N pcs" detail.
func Markers(cs []Contractor, counts map[string]int, resolve func(string) geo.RGB) []*scene.Marker {
	out := make([]*scene.Marker, 0, len(cs))
	next := 0
	for _, c := range cs {
		color := c.Color
		if color == "" {
			color = Palette[next%len(Palette)]
			next++
		}
		m := scene.NewMarker(c.Lat, c.Lng, c.Name, resolve(color))
		m.Detail = Detail(c, counts[c.Name])
		out = append(out, m)
	}
	return out
}

// Detail is the second tooltip line for a contractor.
func Detail(c Contractor, count int) string {
	switch {
	case count > 0:
		return fmt.Sprintf("%d pcs", count)
	case c.LeadTime > 0:
		return fmt.Sprintf("%s, %d days", c.SubmittalNumber, c.LeadTime)
	case c.SubmittalNumber != "" && c.SubmittalNumber != "N/A":
		return c.SubmittalNumber
	default:
		return ""
	}
}
