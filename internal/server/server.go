// Package server is the HTTP feed service the dashboard reads from: the
// procurement feed, the geocoded contractor list, and the endpoint that
// builds that list from the feed.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"kayaglobe/internal/contractor"
	"kayaglobe/internal/feed"
	"kayaglobe/internal/geocode"
	"kayaglobe/internal/store"
)

// Defaults filled into feed items with empty columns.
const (
	DefaultDescription = "No description provided"
	DefaultUpdatedAt   = "2024-07-23T12:00:00Z"
	DefaultContractor  = "Unknown Contractor"
	DefaultLeadTime    = 10
	DefaultStatus      = "Unknown Status"
	DefaultSubmittal   = "N/A"
)

// Repository is the storage the handlers need.
type Repository interface {
	Ping(ctx context.Context) error
	ListFeedItems(ctx context.Context, since string, limit int) ([]store.FeedItem, error)
	DistinctContractors(ctx context.Context) ([]store.FeedItem, error)
	InsertContractors(ctx context.Context, cs []store.UniqueContractor) (int, error)
	ListContractors(ctx context.Context) ([]store.UniqueContractor, error)
}

type Options struct {
	Addr        string
	FeedLimit   int
	CORSOrigins []string
	// Geocoder resolves contractor names. Nil disables contractor creation.
	Geocoder geocode.Geocoder
	Metrics  *Metrics
	Logger   zerolog.Logger
}

type Server struct {
	httpServer *http.Server
	repo       Repository
	geocoder   geocode.Geocoder
	feedLimit  int
	origins    []string
	metrics    *Metrics
	logger     zerolog.Logger
}

func New(repo Repository, opts Options) *Server {
	if opts.FeedLimit <= 0 {
		opts.FeedLimit = 100
	}
	if opts.Metrics == nil {
		opts.Metrics = NewMetricsForTesting()
	}

	s := &Server{
		repo:      repo,
		geocoder:  opts.Geocoder,
		feedLimit: opts.FeedLimit,
		origins:   opts.CORSOrigins,
		metrics:   opts.Metrics,
		logger:    opts.Logger,
	}
	if s.geocoder != nil {
		s.metrics.GeocodeEnabled.Set(1)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /feed_items", s.handleFeedItems)
	mux.HandleFunc("POST /create-unique-contractors/{$}", s.handleCreateContractors)
	mux.HandleFunc("POST /create-unique-contractors", redirectSlash)
	mux.HandleFunc("GET /contractors", s.handleContractors)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	s.httpServer = &http.Server{
		Addr:         opts.Addr,
		Handler:      s.instrument(s.cors(mux)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.httpServer.Addr).Msg("HTTP server starting")
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// withDefaults converts a stored row to the API shape, filling empty
// columns. A zero lead time counts as empty.
func withDefaults(f store.FeedItem) feed.Item {
	it := f.Item()
	if it.Description == "" {
		it.Description = DefaultDescription
	}
	if it.UpdatedAt == "" {
		it.UpdatedAt = DefaultUpdatedAt
	}
	if it.Contractor == "" {
		it.Contractor = DefaultContractor
	}
	if it.LeadTime == 0 {
		it.LeadTime = DefaultLeadTime
	}
	if it.Status == "" {
		it.Status = DefaultStatus
	}
	if it.SubmittalNumber == "" {
		it.SubmittalNumber = DefaultSubmittal
	}
	return it
}

func (s *Server) handleFeedItems(w http.ResponseWriter, r *http.Request) {
	rows, err := s.repo.ListFeedItems(r.Context(), r.URL.Query().Get("last_updated"), s.feedLimit)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list feed items")
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	items := make([]feed.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, withDefaults(row))
	}
	s.metrics.FeedItemsServed.Add(float64(len(items)))
	writeJSON(w, http.StatusOK, items)
}

// handleCreateContractors geocodes every distinct contractor of the feed and
// stores the ones that resolve. Failures are logged and skipped.
// redirectSlash sends a 307 to the trailing-slash route, keeping the method.
func redirectSlash(w http.ResponseWriter, r *http.Request) {
	u := *r.URL
	u.Path += "/"
	http.Redirect(w, r, u.String(), http.StatusTemporaryRedirect)
}

func (s *Server) handleCreateContractors(w http.ResponseWriter, r *http.Request) {
	if s.geocoder == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"detail": "geocoding is not configured"})
		return
	}
	ctx := r.Context()

	rows, err := s.repo.DistinctContractors(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list contractors")
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	var resolved []store.UniqueContractor
	for _, row := range rows {
		name := row.ResponsibleContractor
		loc, err := s.geocoder.Geocode(ctx, name)
		if err != nil {
			outcome := "error"
			if errors.Is(err, geocode.ErrNoResults) {
				outcome = "empty"
			}
			s.metrics.GeocodeRequests.WithLabelValues(outcome).Inc()
			s.logger.Warn().Err(err).Str("contractor", name).Msg("Skipping contractor")
			continue
		}
		s.metrics.GeocodeRequests.WithLabelValues("success").Inc()

		resolved = append(resolved, store.UniqueContractor{
			ContractorName:  name,
			Latitude:        loc.Lat,
			Longitude:       loc.Lng,
			Item:            row.SpecDescription,
			SubmittalNumber: row.SubmittalNumber,
			LeadTime:        row.LeadTime,
		})
	}

	n, err := s.repo.InsertContractors(ctx, resolved)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to insert contractors")
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.metrics.ContractorsInserted.Add(float64(n))
	s.logger.Info().Int("inserted", n).Int("distinct", len(rows)).Msg("Created unique contractors")

	writeJSON(w, http.StatusOK, map[string]int{"inserted_count": n})
}

func (s *Server) handleContractors(w http.ResponseWriter, r *http.Request) {
	rows, err := s.repo.ListContractors(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list contractors")
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	out := make([]contractor.Contractor, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Contractor())
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.repo.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"detail": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // the status line is already written
}
