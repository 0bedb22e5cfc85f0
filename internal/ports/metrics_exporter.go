package ports

import (
	"context"

	"github.com/emiliopalmerini/dustlog/internal/domain"
)

// MetricsExporter exports tool usage to an external observability system.
type MetricsExporter interface {
	// ExportUsage records the runtime reconstructed for one tool.
	ExportUsage(ctx context.Context, u *domain.Usage) error
	// Close shuts down the exporter and flushes any pending metrics.
	Close(ctx context.Context) error
}
