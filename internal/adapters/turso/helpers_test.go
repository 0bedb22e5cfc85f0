package turso_test

import (
	"context"
	"database/sql"
	"io"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	_ "github.com/tursodatabase/go-libsql"

	"github.com/emiliopalmerini/dustlog/internal/migrate"
)

func quietLogger() log.FieldLogger {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return logger
}

// testDB opens a throwaway file database with all migrations applied.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("libsql", "file:"+filepath.Join(t.TempDir(), "logs.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}

	if err := migrate.RunAll(context.Background(), db, quietLogger()); err != nil {
		_ = db.Close()
		t.Fatalf("Failed to run migrations: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

type seedRow struct {
	timestamp string
	tool      string
	state     string
}

func seed(t *testing.T, db *sql.DB, rows ...seedRow) {
	t.Helper()
	for _, r := range rows {
		_, err := db.Exec(`INSERT INTO logs (timestamp, topic, tool, state) VALUES (?, ?, ?, ?)`,
			r.timestamp, "tools/dust_collection", r.tool, r.state)
		if err != nil {
			t.Fatalf("Failed to seed row: %v", err)
		}
	}
}
