package ports

import (
	"context"

	"github.com/emiliopalmerini/dustlog/internal/domain"
)

// MockLogRepository is a mock implementation of LogRepository for testing.
type MockLogRepository struct {
	ListByToolFunc func(ctx context.Context, tool string) ([]domain.LogRow, error)
	ListToolsFunc  func(ctx context.Context) ([]string, error)
	TailFunc       func(ctx context.Context, n int) ([]domain.LogRow, error)
}

func (m *MockLogRepository) ListByTool(ctx context.Context, tool string) ([]domain.LogRow, error) {
	if m.ListByToolFunc != nil {
		return m.ListByToolFunc(ctx, tool)
	}
	return []domain.LogRow{}, nil
}

func (m *MockLogRepository) ListTools(ctx context.Context) ([]string, error) {
	if m.ListToolsFunc != nil {
		return m.ListToolsFunc(ctx)
	}
	return []string{}, nil
}

func (m *MockLogRepository) Tail(ctx context.Context, n int) ([]domain.LogRow, error) {
	if m.TailFunc != nil {
		return m.TailFunc(ctx, n)
	}
	return []domain.LogRow{}, nil
}

// RowsByTool returns a ListByToolFunc serving fixed rows per tool.
func RowsByTool(rows map[string][]domain.LogRow) func(context.Context, string) ([]domain.LogRow, error) {
	return func(_ context.Context, tool string) ([]domain.LogRow, error) {
		return rows[tool], nil
	}
}
