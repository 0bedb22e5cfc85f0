package otel

import (
	"context"
	"sync/atomic"

	"github.com/emiliopalmerini/dustlog/internal/domain"
)

// NoOpExporter stands in when OTLP export is off. It drops every usage
// report and only counts how many tools it skipped.
type NoOpExporter struct {
	skipped atomic.Int64
}

func NewNoOpExporter() *NoOpExporter {
	return &NoOpExporter{}
}

func (e *NoOpExporter) ExportUsage(ctx context.Context, u *domain.Usage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.skipped.Add(1)
	return nil
}

// Skipped returns the number of tool reports dropped so far.
func (e *NoOpExporter) Skipped() int64 {
	return e.skipped.Load()
}

func (e *NoOpExporter) Close(ctx context.Context) error {
	return nil
}
