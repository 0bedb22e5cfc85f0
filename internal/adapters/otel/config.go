package otel

import "github.com/kelseyhightower/envconfig"

// Config holds OTEL exporter configuration.
type Config struct {
	Endpoint string `envconfig:"OTEL_ENDPOINT"`
	Enabled  bool   `envconfig:"OTEL_ENABLED" default:"false"`
	Insecure bool   `envconfig:"OTEL_INSECURE" default:"false"`
}

// LoadConfig loads OTEL configuration from DUSTLOG_OTEL_* environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("DUSTLOG", &cfg)
	return cfg, err
}
