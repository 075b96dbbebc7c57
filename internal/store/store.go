// Package store persists feed items and geocoded contractors. Postgres is
// used when configured; otherwise, or when Postgres cannot be reached, a
// local SQLite database takes its place.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// ErrUnavailable is returned when the database cannot be reached.
var ErrUnavailable = errors.New("store: database unavailable")

const memoryDSN = "file::memory:?cache=shared"

type Options struct {
	// DatabaseURL is a Postgres DSN or URL. Empty selects SQLite.
	DatabaseURL string
	// SQLitePath is the fallback database file. Empty keeps it in memory.
	SQLitePath string
}

type Store struct {
	db     *gorm.DB
	local  bool
	logger zerolog.Logger
}

// Open connects to Postgres, falling back to SQLite if that fails, and
// migrates the schema.
func Open(opts Options, log zerolog.Logger) (*Store, error) {
	if opts.DatabaseURL != "" {
		db, err := openPostgres(opts.DatabaseURL)
		if err == nil {
			err = ping(db)
		}
		if err == nil {
			log.Info().Msg("Connected to Postgres")
			return New(db, false, log)
		}
		log.Error().Err(err).Msg("Failed to connect to Postgres DB, trying SQLite")
	}
	return OpenSQLite(opts.SQLitePath, log)
}

// OpenSQLite opens (or creates) a SQLite database at path, in memory when
// path is empty.
func OpenSQLite(path string, log zerolog.Logger) (*Store, error) {
	dsn := path
	if dsn == "" {
		dsn = memoryDSN
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		CreateBatchSize:        500,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA busy_timeout = 5000;",
	}
	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			return nil, fmt.Errorf("error setting PRAGMA: %w", err)
		}
	}

	if path == "" {
		log.Info().Msg("Using local SQLite DB in memory")
	} else {
		log.Info().Str("path", path).Msg("Using local SQLite DB")
	}
	return New(db, true, log)
}

func openPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		CreateBatchSize:        500,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

func ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql interface: %w", err)
	}
	return sqlDB.Ping()
}

// New wraps an open connection and migrates the schema.
func New(db *gorm.DB, local bool, log zerolog.Logger) (*Store, error) {
	log.Info().Msg("Migrating schema")
	if err := db.AutoMigrate(models...); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return &Store{db: db, local: local, logger: log}, nil
}

// Local reports whether the store fell back to SQLite.
func (s *Store) Local() bool { return s.local }

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ListFeedItems returns at most limit items, newest first. A non-empty
// since keeps only items updated after it; timestamps compare as text.
func (s *Store) ListFeedItems(ctx context.Context, since string, limit int) ([]FeedItem, error) {
	q := s.db.WithContext(ctx).Order("date_last_updated desc")
	if since != "" {
		q = q.Where("date_last_updated > ?", since)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var items []FeedItem
	if err := q.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list feed items: %w", err)
	}
	return items, nil
}

// UpsertFeedItems inserts items, replacing rows that share an id.
func (s *Store) UpsertFeedItems(ctx context.Context, items []FeedItem) error {
	if len(items) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&items).Error
	if err != nil {
		return fmt.Errorf("upsert feed items: %w", err)
	}
	return nil
}

func (s *Store) CountFeedItems(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&FeedItem{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count feed items: %w", err)
	}
	return n, nil
}

// DistinctContractors returns one feed item per responsible contractor: the
// first by id. Items without a contractor are skipped.
func (s *Store) DistinctContractors(ctx context.Context) ([]FeedItem, error) {
	var items []FeedItem
	err := s.db.WithContext(ctx).
		Where("responsible_contractor <> ?", "").
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("distinct contractors: %w", err)
	}

	seen := make(map[string]bool, len(items))
	var out []FeedItem
	for _, it := range items {
		if seen[it.ResponsibleContractor] {
			continue
		}
		seen[it.ResponsibleContractor] = true
		out = append(out, it)
	}
	return out, nil
}

// InsertContractors appends cs and returns how many rows were written.
func (s *Store) InsertContractors(ctx context.Context, cs []UniqueContractor) (int, error) {
	if len(cs) == 0 {
		return 0, nil
	}
	if err := s.db.WithContext(ctx).Create(&cs).Error; err != nil {
		return 0, fmt.Errorf("insert contractors: %w", err)
	}
	s.logger.Debug().Int("count", len(cs)).Msg("Inserted contractors")
	return len(cs), nil
}

func (s *Store) ListContractors(ctx context.Context) ([]UniqueContractor, error) {
	var cs []UniqueContractor
	if err := s.db.WithContext(ctx).Order("id").Find(&cs).Error; err != nil {
		return nil, fmt.Errorf("list contractors: %w", err)
	}
	return cs, nil
}
