package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const prefix = "DUSTLOG"

// Database holds the libSQL connection settings. Local files use a
// "file:" URL; the auth token is only needed for remote databases.
type Database struct {
	URL       string `envconfig:"DATABASE_URL" default:"file:./dust_collection_logs.db"`
	AuthToken string `envconfig:"AUTH_TOKEN"`
}

// Usage holds the reconstruction and rendering settings.
type Usage struct {
	WindowDays int      `envconfig:"WINDOW_DAYS" default:"30"`
	Tools      []string `envconfig:"TOOLS" default:"blue-bandsaw,Planer,Router Table,Miter Saw,Table Saw (lathes),Dust Collector,Edge Sander,Green Bandsaw"`
	PlotDir    string   `envconfig:"PLOT_DIR" default:"./plots"`
}

// Tail holds the log viewer settings.
type Tail struct {
	Count int `envconfig:"TAIL_COUNT" default:"350"`
}

// Server holds the HTTP viewer settings.
type Server struct {
	Port            int           `envconfig:"PORT" default:"8080"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Config is the full dustlog configuration.
type Config struct {
	Database Database `ignored:"true"`
	Usage    Usage    `ignored:"true"`
	Tail     Tail     `ignored:"true"`
	Server   Server   `ignored:"true"`
	LogLevel string   `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads configuration from DUSTLOG_* environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(prefix, &cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}
	if err := envconfig.Process(prefix, &cfg.Usage); err != nil {
		return nil, fmt.Errorf("failed to load usage config: %w", err)
	}
	if err := envconfig.Process(prefix, &cfg.Tail); err != nil {
		return nil, fmt.Errorf("failed to load tail config: %w", err)
	}
	if err := envconfig.Process(prefix, &cfg.Server); err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return nil, err
	}
	if cfg.Usage.WindowDays < 0 {
		return nil, fmt.Errorf("window days must not be negative, got %d", cfg.Usage.WindowDays)
	}
	return &cfg, nil
}
