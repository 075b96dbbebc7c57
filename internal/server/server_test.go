package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kayaglobe/internal/contractor"
	"kayaglobe/internal/feed"
	"kayaglobe/internal/geocode"
	"kayaglobe/internal/store"
)

type fakeGeocoder map[string]geocode.Location

func (g fakeGeocoder) Geocode(_ context.Context, address string) (geocode.Location, error) {
	if loc, ok := g[address]; ok {
		return loc, nil
	}
	return geocode.Location{}, fmt.Errorf("%w for %q", geocode.ErrNoResults, address)
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.OpenSQLite(filepath.Join(t.TempDir(), "server.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.UpsertFeedItems(context.Background(), []store.FeedItem{
		{ID: "FI-001", SpecDescription: "Structural steel", DateLastUpdated: "2024-07-20T10:00:00Z",
			ResponsibleContractor: "Kyiv Steel Fabricators", LeadTime: 42, ProcurementStatus: "In Production", SubmittalNumber: "05 12 00-01"},
		{ID: "FI-002", DateLastUpdated: "2024-07-22T10:00:00Z", ResponsibleContractor: "Beijing Facade Works"},
		{ID: "FI-003", DateLastUpdated: "2024-07-21T10:00:00Z", ResponsibleContractor: "Atlantis Pumps"},
		{ID: "FI-004"},
	}))
	return s
}

func newTestServer(repo Repository, g geocode.Geocoder) *Server {
	return New(repo, Options{
		Addr:        ":0",
		CORSOrigins: []string{"http://localhost:3000"},
		Geocoder:    g,
		Metrics:     NewMetricsForTesting(),
		Logger:      zerolog.Nop(),
	})
}

func do(t *testing.T, s *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestFeedItems_AppliesDefaults(t *testing.T) {
	s := newTestServer(newTestStore(t), nil)

	rec := do(t, s, http.MethodGet, "/feed_items")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var items []feed.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 4)

	assert.Equal(t, "FI-002", items[0].ID, "newest first")
	assert.Equal(t, DefaultDescription, items[0].Description)
	assert.Equal(t, DefaultLeadTime, items[0].LeadTime)
	assert.Equal(t, DefaultStatus, items[0].Status)
	assert.Equal(t, DefaultSubmittal, items[0].SubmittalNumber)

	last := items[3]
	assert.Equal(t, "FI-004", last.ID)
	assert.Equal(t, DefaultUpdatedAt, last.UpdatedAt)
	assert.Equal(t, DefaultContractor, last.Contractor)

	assert.InDelta(t, 4, testutil.ToFloat64(s.metrics.FeedItemsServed), 0)
}

func TestFeedItems_LastUpdatedFilter(t *testing.T) {
	s := newTestServer(newTestStore(t), nil)

	rec := do(t, s, http.MethodGet, "/feed_items?last_updated=2024-07-20T10:00:00Z")
	require.Equal(t, http.StatusOK, rec.Code)

	var items []feed.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "FI-002", items[0].ID)
	assert.Equal(t, "FI-003", items[1].ID)
}

func TestFeedItems_Limit(t *testing.T) {
	s := New(newTestStore(t), Options{FeedLimit: 2, Logger: zerolog.Nop()})

	rec := do(t, s, http.MethodGet, "/feed_items")
	var items []feed.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	assert.Len(t, items, 2)
}

func TestCreateUniqueContractors(t *testing.T) {
	st := newTestStore(t)
	s := newTestServer(st, fakeGeocoder{
		"Kyiv Steel Fabricators": {Lat: 50.4503, Lng: 30.5245},
		"Beijing Facade Works":   {Lat: 39.9042, Lng: 116.4074},
	})

	rec := do(t, s, http.MethodPost, "/create-unique-contractors/")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body["inserted_count"], "Atlantis Pumps does not geocode and is skipped")

	assert.InDelta(t, 2, testutil.ToFloat64(s.metrics.GeocodeRequests.WithLabelValues("success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(s.metrics.GeocodeRequests.WithLabelValues("empty")), 0)

	rec = do(t, s, http.MethodGet, "/contractors")
	require.Equal(t, http.StatusOK, rec.Code)

	var cs []contractor.Contractor
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cs))
	require.Len(t, cs, 2)

	byName := map[string]contractor.Contractor{}
	for _, c := range cs {
		byName[c.Name] = c
	}
	kyiv := byName["Kyiv Steel Fabricators"]
	assert.Equal(t, 50.4503, kyiv.Lat)
	assert.Equal(t, "Structural steel", kyiv.Item)
	assert.Equal(t, "05 12 00-01", kyiv.SubmittalNumber)
	assert.Equal(t, 42, kyiv.LeadTime)
}

func TestCreateUniqueContractors_WithoutGeocoder(t *testing.T) {
	s := newTestServer(newTestStore(t), nil)

	rec := do(t, s, http.MethodPost, "/create-unique-contractors/")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCreateUniqueContractors_WrongMethod(t *testing.T) {
	s := newTestServer(newTestStore(t), fakeGeocoder{})

	rec := do(t, s, http.MethodGet, "/create-unique-contractors/")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCreateUniqueContractors_NoTrailingSlash(t *testing.T) {
	s := newTestServer(newTestStore(t), fakeGeocoder{})

	rec := do(t, s, http.MethodPost, "/create-unique-contractors")
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/create-unique-contractors/", rec.Header().Get("Location"))

	rec = do(t, s, http.MethodPost, "/create-unique-contractors?dry=1")
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/create-unique-contractors/?dry=1", rec.Header().Get("Location"))
}

func TestContractors_EmptyList(t *testing.T) {
	s := newTestServer(newTestStore(t), nil)

	rec := do(t, s, http.MethodGet, "/contractors")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

type failingRepo struct{ err error }

func (f failingRepo) Ping(context.Context) error { return f.err }
func (f failingRepo) ListFeedItems(context.Context, string, int) ([]store.FeedItem, error) {
	return nil, f.err
}
func (f failingRepo) DistinctContractors(context.Context) ([]store.FeedItem, error) {
	return nil, f.err
}
func (f failingRepo) InsertContractors(context.Context, []store.UniqueContractor) (int, error) {
	return 0, f.err
}
func (f failingRepo) ListContractors(context.Context) ([]store.UniqueContractor, error) {
	return nil, f.err
}

func TestRepositoryErrors(t *testing.T) {
	s := newTestServer(failingRepo{err: errors.New("connection reset")}, fakeGeocoder{})

	for _, tc := range []struct{ method, target string }{
		{http.MethodGet, "/feed_items"},
		{http.MethodGet, "/contractors"},
		{http.MethodPost, "/create-unique-contractors/"},
	} {
		rec := do(t, s, tc.method, tc.target)
		assert.Equal(t, http.StatusInternalServerError, rec.Code, tc.target)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "connection reset", body["detail"])
	}
}

func TestHealthAndReadiness(t *testing.T) {
	s := newTestServer(newTestStore(t), nil)

	rec := do(t, s, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())

	rec = do(t, s, http.MethodGet, "/readyz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ready"}`, rec.Body.String())

	down := newTestServer(failingRepo{err: store.ErrUnavailable}, nil)
	rec = do(t, down, http.MethodGet, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(newTestStore(t), nil)

	rec := do(t, s, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestRequestMetricsUseRoutePattern(t *testing.T) {
	s := newTestServer(newTestStore(t), nil)

	do(t, s, http.MethodGet, "/feed_items?last_updated=x")
	do(t, s, http.MethodGet, "/nope")

	assert.InDelta(t, 1, testutil.ToFloat64(s.metrics.Requests.WithLabelValues("GET /feed_items", "200")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(s.metrics.Requests.WithLabelValues("unmatched", "404")), 0)
}

func TestCORS(t *testing.T) {
	s := newTestServer(newTestStore(t), nil)

	req := httptest.NewRequest(http.MethodOptions, "/feed_items", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "GET")
	req.Header.Set("Access-Control-Request-Headers", "content-type")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "content-type", rec.Header().Get("Access-Control-Allow-Headers"))

	req = httptest.NewRequest(http.MethodGet, "/feed_items", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
