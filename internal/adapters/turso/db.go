package turso

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/tursodatabase/go-libsql"

	"github.com/emiliopalmerini/dustlog/internal/domain"
	"github.com/emiliopalmerini/dustlog/internal/infrastructure/config"
)

// DB wraps the libSQL connection to the log store.
type DB struct {
	*sql.DB
}

// NewDB opens the log store described by cfg and verifies it is reachable.
// Any failure wraps domain.ErrStoreUnavailable; there is no retry.
func NewDB(cfg config.Database) (*DB, error) {
	db, err := sql.Open("libsql", connString(cfg))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %v", domain.ErrStoreUnavailable, err)
	}

	if isRemote(cfg.URL) {
		// Turso closes idle Hrana streams aggressively, stale pooled
		// connections fail with "stream not found".
		db.SetMaxOpenConns(5)
		db.SetMaxIdleConns(0)
		db.SetConnMaxLifetime(5 * time.Minute)
		db.SetConnMaxIdleTime(0)
	} else {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: failed to ping database: %v", domain.ErrStoreUnavailable, err)
	}

	return &DB{DB: db}, nil
}

func connString(cfg config.Database) string {
	if cfg.AuthToken == "" {
		return cfg.URL
	}
	return cfg.URL + "?authToken=" + cfg.AuthToken
}

func isRemote(url string) bool {
	return strings.HasPrefix(url, "libsql://") ||
		strings.HasPrefix(url, "https://") ||
		strings.HasPrefix(url, "http://")
}

// IsStreamError checks if an error is a Turso "stream not found" error.
func IsStreamError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "stream not found")
}

// WithRetry retries fn up to maxRetries times on Turso stream errors.
// Other errors are returned immediately.
func WithRetry[T any](ctx context.Context, maxRetries int, fn func() (T, error)) (T, error) {
	var result T
	var err error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		result, err = fn()
		if err == nil {
			return result, nil
		}

		if !IsStreamError(err) || attempt == maxRetries {
			return result, err
		}

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-time.After(10 * time.Millisecond):
		}
	}

	return result, err
}
