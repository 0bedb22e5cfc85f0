package cli

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/dustlog/internal/adapters/chart"
	"github.com/emiliopalmerini/dustlog/internal/adapters/otel"
	"github.com/emiliopalmerini/dustlog/internal/adapters/turso"
	"github.com/emiliopalmerini/dustlog/internal/domain"
	"github.com/emiliopalmerini/dustlog/internal/infrastructure/config"
	"github.com/emiliopalmerini/dustlog/internal/infrastructure/logging"
	"github.com/emiliopalmerini/dustlog/internal/ports"
	"github.com/emiliopalmerini/dustlog/internal/usage"
)

// testDBOverride allows tests to inject a database connection.
// When set, NewAppContext uses it instead of opening the configured store.
var testDBOverride *sql.DB

// AppContext holds all shared dependencies for CLI commands.
type AppContext struct {
	Config   *config.Config
	Logger   *log.Logger
	DB       *turso.DB
	Conn     *sql.DB
	LogRepo  ports.LogRepository
	Exporter ports.MetricsExporter
	Usage    *usage.Service
}

// NewAppContext loads configuration and opens the log store.
func NewAppContext(ctx context.Context) (*AppContext, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger := logging.New(os.Stderr, cfg.LogLevel)

	a := &AppContext{Config: cfg, Logger: logger}

	sqlDB := testDBOverride
	if sqlDB == nil {
		db, err := turso.NewDB(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.DB = db
		sqlDB = db.DB
	}

	exporter, err := otel.NewFromEnv(ctx)
	if err != nil {
		logger.WithError(err).Warn("metrics export disabled")
		exporter = otel.NewNoOpExporter()
	}

	a.Conn = sqlDB
	a.LogRepo = turso.NewLogRepository(sqlDB)
	a.Exporter = exporter
	a.Usage = usage.NewService(a.LogRepo, chart.NewRenderer(), exporter, logger)
	return a, nil
}

// Window returns the trailing window, honouring the --days flag.
func (a *AppContext) Window(cmd *cobra.Command) domain.Window {
	if f := cmd.Flags().Lookup("days"); f != nil && f.Changed {
		return domain.Window{Days: windowDays}
	}
	return domain.Window{Days: a.Config.Usage.WindowDays}
}

// Tools returns the tools named on the command line or the configured list.
func (a *AppContext) Tools(args []string) []string {
	if len(args) > 0 {
		return args
	}
	return a.Config.Usage.Tools
}

// Close releases all resources held by the AppContext.
func (a *AppContext) Close() error {
	if noop, ok := a.Exporter.(*otel.NoOpExporter); ok && a.Logger != nil && noop.Skipped() > 0 {
		a.Logger.WithField("tools", noop.Skipped()).Debug("metrics export disabled, usage not sent")
	}
	if a.Exporter != nil {
		if err := a.Exporter.Close(context.Background()); err != nil && a.Logger != nil {
			a.Logger.WithError(err).Warn("failed to flush metrics")
		}
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
