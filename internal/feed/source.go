package feed

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

//go:embed fixture/feed_items.json
var fixtureFS embed.FS

// Source yields the full, ordered list of feed items.
type Source interface {
	Fetch(ctx context.Context) ([]Item, error)
}

// HTTPSource reads GET {BaseURL}/feed_items.
type HTTPSource struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]Item, error) {
	url := fmt.Sprintf("%s/feed_items", s.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get feed items: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed request failed: status %d", resp.StatusCode)
	}
	return decodeItems(resp.Body)
}

// FixtureSource reads a static JSON array, either from a file or from the
// fixture bundled with the binary when Path is empty.
type FixtureSource struct {
	Path string
}

func (s FixtureSource) Fetch(_ context.Context) ([]Item, error) {
	var (
		r   io.ReadCloser
		err error
	)
	if s.Path == "" {
		r, err = fixtureFS.Open("fixture/feed_items.json")
	} else {
		r, err = os.Open(s.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("open fixture: %w", err)
	}
	defer r.Close()
	return decodeItems(r)
}

// decodeItems tolerates fields whose JSON type does not match: such fields
// are left blank and the rest of the item is kept.
func decodeItems(r io.Reader) ([]Item, error) {
	var items []Item
	err := json.NewDecoder(r).Decode(&items)
	var typeErr *json.UnmarshalTypeError
	if err != nil && !errors.As(err, &typeErr) {
		return nil, fmt.Errorf("failed to decode feed items: %w", err)
	}
	return items, nil
}
