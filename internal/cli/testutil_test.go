package cli

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"path/filepath"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	_ "github.com/tursodatabase/go-libsql"

	"github.com/emiliopalmerini/dustlog/internal/domain"
	"github.com/emiliopalmerini/dustlog/internal/migrate"
)

// testDB opens a throwaway file database with all migrations applied and
// installs it as the connection every command uses.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("libsql", "file:"+filepath.Join(t.TempDir(), "logs.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}

	logger := log.New()
	logger.SetOutput(io.Discard)
	if err := migrate.RunAll(context.Background(), db, logger); err != nil {
		_ = db.Close()
		t.Fatalf("Failed to run migrations: %v", err)
	}

	testDBOverride = db
	t.Cleanup(func() {
		testDBOverride = nil
		_ = db.Close()
	})
	return db
}

// seedAgo inserts a row for tool at now minus ago.
func seedAgo(t *testing.T, db *sql.DB, tool, state string, ago time.Duration) {
	t.Helper()
	ts := time.Now().Add(-ago).Format(domain.TimestampLayout)
	_, err := db.Exec(`INSERT INTO logs (timestamp, topic, tool, state) VALUES (?, ?, ?, ?)`,
		ts, "tools/dust_collection", tool, state)
	if err != nil {
		t.Fatalf("Failed to seed row: %v", err)
	}
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("DUSTLOG_LOG_LEVEL", "error")
	t.Setenv("DUSTLOG_OTEL_ENABLED", "false")

	resetFlags(rootCmd)
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// resetFlags restores every flag to its default so state does not leak
// between Execute calls.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
