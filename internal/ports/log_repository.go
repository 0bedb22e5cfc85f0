package ports

import (
	"context"

	"github.com/emiliopalmerini/dustlog/internal/domain"
)

// LogRepository reads the append-only logs table.
type LogRepository interface {
	// ListByTool returns every row for tool ordered by timestamp, then id.
	ListByTool(ctx context.Context, tool string) ([]domain.LogRow, error)
	// ListTools returns the distinct tool names present in the table.
	ListTools(ctx context.Context) ([]string, error)
	// Tail returns the n most recent rows in ascending id order.
	Tail(ctx context.Context, n int) ([]domain.LogRow, error)
}
