package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Service holds the feed service settings.
type Service struct {
	HTTPAddr        string
	DatabaseURL     string
	SQLitePath      string
	LogLevel        string
	LogFormat       string
	FeedLimit       int
	CORSOrigins     []string
	ShutdownTimeout time.Duration

	// Google geocoding configuration. An empty key disables geocoding.
	GoogleAPIKey     string
	GeocodeURL       string
	GeocodeTimeout   time.Duration
	GeocodeCacheSize int
	GeocodeCacheTTL  time.Duration
}

func setServiceDefaults() {
	viper.SetDefault("http_addr", ":8000")
	viper.SetDefault("database_url", "")
	viper.SetDefault("sqlite_path", "kayaglobe.db")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_format", "json")
	viper.SetDefault("feed_limit", 100)
	viper.SetDefault("cors_origins", "http://localhost:3000")
	viper.SetDefault("shutdown_timeout", "10s")

	viper.SetDefault("google_api_key", "")
	viper.SetDefault("geocode_url", "https://maps.googleapis.com/maps/api/geocode/json")
	viper.SetDefault("geocode_timeout", "5s")
	viper.SetDefault("geocode_cache_size", 1000)
	viper.SetDefault("geocode_cache_ttl", "24h")
}

// LoadService reads the service settings from the environment. The given
// .env files (or ./.env when none are given) are loaded first when they
// exist; variables already set in the environment win.
func LoadService(envFiles ...string) (*Service, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	setServiceDefaults()
	viper.AutomaticEnv()

	cfg := &Service{
		HTTPAddr:         viper.GetString("http_addr"),
		DatabaseURL:      viper.GetString("database_url"),
		SQLitePath:       viper.GetString("sqlite_path"),
		LogLevel:         viper.GetString("log_level"),
		LogFormat:        viper.GetString("log_format"),
		FeedLimit:        viper.GetInt("feed_limit"),
		CORSOrigins:      splitList(viper.GetString("cors_origins")),
		ShutdownTimeout:  viper.GetDuration("shutdown_timeout"),
		GoogleAPIKey:     viper.GetString("google_api_key"),
		GeocodeURL:       viper.GetString("geocode_url"),
		GeocodeTimeout:   viper.GetDuration("geocode_timeout"),
		GeocodeCacheSize: viper.GetInt("geocode_cache_size"),
		GeocodeCacheTTL:  viper.GetDuration("geocode_cache_ttl"),
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("HTTP_ADDR is required")
	}
	if cfg.FeedLimit < 1 || cfg.FeedLimit > 1000 {
		return nil, errors.New("FEED_LIMIT must be between 1 and 1000")
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "console" {
		return nil, fmt.Errorf("LOG_FORMAT must be json or console, got %q", cfg.LogFormat)
	}
	if cfg.ShutdownTimeout <= 0 {
		return nil, errors.New("invalid SHUTDOWN_TIMEOUT")
	}
	if cfg.GeocodeTimeout <= 0 {
		return nil, errors.New("invalid GEOCODE_TIMEOUT")
	}
	if cfg.GeocodeCacheSize <= 0 {
		cfg.GeocodeCacheSize = 1000
	}

	return cfg, nil
}

// GeocodingEnabled reports whether contractors can be geocoded.
func (s *Service) GeocodingEnabled() bool {
	return s.GoogleAPIKey != ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
