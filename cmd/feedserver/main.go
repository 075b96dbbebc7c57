// Command feedserver serves the procurement feed and the geocoded
// contractor list that kayaglobe displays.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"kayaglobe/internal/config"
	"kayaglobe/internal/feed"
	"kayaglobe/internal/geocode"
	"kayaglobe/internal/server"
	"kayaglobe/internal/store"
)

func newLogger(cfg *config.Service) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	var out io.Writer = os.Stderr
	if cfg.LogFormat == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// seedFeed fills an empty feed table from a fixture file, or from the
// bundled sample items when path is empty.
func seedFeed(ctx context.Context, st *store.Store, path string, logger zerolog.Logger) error {
	n, err := st.CountFeedItems(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		logger.Info().Int64("items", n).Msg("Feed table already populated, not seeding")
		return nil
	}

	items, err := feed.FixtureSource{Path: path}.Fetch(ctx)
	if err != nil {
		return err
	}
	rows := make([]store.FeedItem, 0, len(items))
	for _, it := range items {
		rows = append(rows, store.FeedItemFrom(it))
	}
	if err := st.UpsertFeedItems(ctx, rows); err != nil {
		return err
	}
	logger.Info().Int("items", len(rows)).Msg("Seeded feed items")
	return nil
}

func main() {
	var envFile = flag.String("env", "", "Path to a .env file (default ./.env)")
	var seed = flag.Bool("seed", false, "Seed an empty feed table with sample items")
	var seedFile = flag.String("seed-file", "", "JSON file of feed items to seed with")
	flag.Parse()

	var envFiles []string
	if *envFile != "" {
		envFiles = append(envFiles, *envFile)
	}
	cfg, err := config.LoadService(envFiles...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	metrics := server.NewMetrics()

	st, err := store.Open(store.Options{
		DatabaseURL: cfg.DatabaseURL,
		SQLitePath:  cfg.SQLitePath,
	}, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open store")
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *seed || *seedFile != "" {
		if err := seedFeed(ctx, st, *seedFile, logger); err != nil {
			logger.Fatal().Err(err).Msg("Failed to seed feed items")
		}
	}

	var geocoder geocode.Geocoder
	if cfg.GeocodingEnabled() {
		client := geocode.NewClient(cfg.GoogleAPIKey, cfg.GeocodeURL, cfg.GeocodeTimeout, logger)
		geocoder = geocode.NewCache(client, cfg.GeocodeCacheSize, cfg.GeocodeCacheTTL, clockwork.NewRealClock(), logger)
		logger.Info().
			Int("cache_size", cfg.GeocodeCacheSize).
			Dur("timeout", cfg.GeocodeTimeout).
			Msg("Google geocoding enabled")
	} else {
		logger.Info().Msg("Google geocoding disabled, GOOGLE_API_KEY not set")
	}

	srv := server.New(st, server.Options{
		Addr:        cfg.HTTPAddr,
		FeedLimit:   cfg.FeedLimit,
		CORSOrigins: cfg.CORSOrigins,
		Geocoder:    geocoder,
		Metrics:     metrics,
		Logger:      logger,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("HTTP server error")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown error")
	}
	logger.Info().Msg("Shutdown complete")
}
