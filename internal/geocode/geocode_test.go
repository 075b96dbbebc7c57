package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "test-key"

func testClient(baseURL string) *Client {
	return NewClient(testKey, baseURL, 5*time.Second, zerolog.Nop())
}

func TestClient_Geocode_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Kyiv Steel Fabricators", r.URL.Query().Get("address"))
		assert.Equal(t, testKey, r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"results": [{
				"formatted_address": "Kyiv, Ukraine",
				"geometry": {"location": {"lat": 50.4503, "lng": 30.5245}}
			}]
		}`))
	}))
	defer srv.Close()

	loc, err := testClient(srv.URL).Geocode(context.Background(), "Kyiv Steel Fabricators")
	require.NoError(t, err)
	assert.Equal(t, 50.4503, loc.Lat)
	assert.Equal(t, 30.5245, loc.Lng)
	assert.Equal(t, "Kyiv, Ukraine", loc.FormattedAddress)
}

func TestClient_Geocode_ZeroResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Geocode(context.Background(), "Nowhere Ltd")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoResults))
}

func TestClient_Geocode_DeniedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status": "REQUEST_DENIED", "error_message": "The provided API key is invalid."}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Geocode(context.Background(), "Acme")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoResults))
	assert.Contains(t, err.Error(), "REQUEST_DENIED")
}

func TestClient_Geocode_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`upstream exploded`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Geocode(context.Background(), "Acme")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestClient_Geocode_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Geocode(context.Background(), "Acme")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

type countingGeocoder struct {
	calls int
	loc   Location
	err   error
}

func (g *countingGeocoder) Geocode(_ context.Context, _ string) (Location, error) {
	g.calls++
	return g.loc, g.err
}

func TestCache_Hit(t *testing.T) {
	inner := &countingGeocoder{loc: Location{Lat: 19.43, Lng: -99.13}}
	c := NewCache(inner, 10, 0, clockwork.NewFakeClock(), zerolog.Nop())

	l1, err := c.Geocode(context.Background(), "Mexico City Mechanical")
	require.NoError(t, err)
	l2, err := c.Geocode(context.Background(), "  mexico city mechanical ")
	require.NoError(t, err)

	assert.Equal(t, l1, l2)
	assert.Equal(t, 1, inner.calls, "names differing only in case share an entry")
}

func TestCache_ErrorsNotCached(t *testing.T) {
	inner := &countingGeocoder{err: ErrNoResults}
	c := NewCache(inner, 10, 0, clockwork.NewFakeClock(), zerolog.Nop())

	_, err := c.Geocode(context.Background(), "Acme")
	require.ErrorIs(t, err, ErrNoResults)
	_, err = c.Geocode(context.Background(), "Acme")
	require.ErrorIs(t, err, ErrNoResults)

	assert.Equal(t, 2, inner.calls)
	size, _ := c.Stats()
	assert.Zero(t, size)
}

func TestCache_TTL(t *testing.T) {
	clock := clockwork.NewFakeClock()
	inner := &countingGeocoder{loc: Location{Lat: 1}}
	c := NewCache(inner, 10, time.Hour, clock, zerolog.Nop())

	_, _ = c.Geocode(context.Background(), "Acme")
	clock.Advance(59 * time.Minute)
	_, _ = c.Geocode(context.Background(), "Acme")
	assert.Equal(t, 1, inner.calls)

	clock.Advance(2 * time.Minute)
	_, _ = c.Geocode(context.Background(), "Acme")
	assert.Equal(t, 2, inner.calls, "expired entry is fetched again")
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	inner := &countingGeocoder{loc: Location{Lat: 1}}
	c := NewCache(inner, 2, 0, clockwork.NewFakeClock(), zerolog.Nop())
	ctx := context.Background()

	_, _ = c.Geocode(ctx, "a")
	_, _ = c.Geocode(ctx, "b")
	_, _ = c.Geocode(ctx, "a") // a is now most recent
	_, _ = c.Geocode(ctx, "c") // evicts b
	assert.Equal(t, 3, inner.calls)

	_, _ = c.Geocode(ctx, "a")
	assert.Equal(t, 3, inner.calls)
	_, _ = c.Geocode(ctx, "b")
	assert.Equal(t, 4, inner.calls)

	size, limit := c.Stats()
	assert.Equal(t, 2, size)
	assert.Equal(t, 2, limit)
}
