package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPSourceFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/feed_items", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"b","spec_description":"Second","responsible_contractor":"Acme","lead_time":7,"procurement_status":"On Site","submittal_number":"2"},
			{"id":"a","spec_description":"First","procurement_status":"Released"}
		]`))
	}))
	defer srv.Close()

	items, err := NewHTTPSource(srv.URL+"/", 5*time.Second).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "b", items[0].ID, "order is preserved")
	assert.Equal(t, 7, items[0].LeadTime)
	assert.Equal(t, StatusOnSite, items[0].State())
	assert.Equal(t, "", items[1].Contractor, "missing fields stay blank")
}

func TestHTTPSourceStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL, time.Second).Fetch(context.Background())
	assert.ErrorContains(t, err, "status 500")
}

func TestDecodeToleratesTypeMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"x","lead_time":"soon","procurement_status":"Released"}]`))
	}))
	defer srv.Close()

	items, err := NewHTTPSource(srv.URL, time.Second).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 0, items[0].LeadTime)
	assert.Equal(t, "Released", items[0].Status)
}

func TestFixtureSourceEmbedded(t *testing.T) {
	items, err := FixtureSource{}.Fetch(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, items)
	for _, it := range items {
		assert.NotEmpty(t, it.ID)
	}
}

func TestFixtureSourceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"only"}]`), 0o644))

	items, err := FixtureSource{Path: path}.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "only", items[0].ID)

	_, err = FixtureSource{Path: filepath.Join(t.TempDir(), "missing.json")}.Fetch(context.Background())
	assert.Error(t, err)
}
