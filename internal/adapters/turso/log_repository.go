package turso

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/emiliopalmerini/dustlog/internal/domain"
)

const maxStreamRetries = 2

const (
	listLogsByTool = `
		SELECT id, timestamp, topic, tool, state
		FROM logs
		WHERE tool = ?
		ORDER BY timestamp ASC, id ASC`

	listTools = `
		SELECT DISTINCT tool
		FROM logs
		ORDER BY tool`

	tailLogs = `
		SELECT id, timestamp, topic, tool, state
		FROM (
			SELECT id, timestamp, topic, tool, state
			FROM logs
			ORDER BY id DESC
			LIMIT ?
		)
		ORDER BY id ASC`
)

type LogRepository struct {
	db *sql.DB
}

func NewLogRepository(db *sql.DB) *LogRepository {
	return &LogRepository{db: db}
}

func (r *LogRepository) ListByTool(ctx context.Context, tool string) ([]domain.LogRow, error) {
	rows, err := WithRetry(ctx, maxStreamRetries, func() ([]domain.LogRow, error) {
		return r.queryRows(ctx, listLogsByTool, tool)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list logs for %q: %w", tool, err)
	}
	return rows, nil
}

func (r *LogRepository) ListTools(ctx context.Context) ([]string, error) {
	tools, err := WithRetry(ctx, maxStreamRetries, func() ([]string, error) {
		rows, err := r.db.QueryContext(ctx, listTools)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var tools []string
		for rows.Next() {
			var tool string
			if err := rows.Scan(&tool); err != nil {
				return nil, err
			}
			tools = append(tools, tool)
		}
		return tools, rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}
	return tools, nil
}

func (r *LogRepository) Tail(ctx context.Context, n int) ([]domain.LogRow, error) {
	if n <= 0 {
		return []domain.LogRow{}, nil
	}
	rows, err := WithRetry(ctx, maxStreamRetries, func() ([]domain.LogRow, error) {
		return r.queryRows(ctx, tailLogs, n)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to tail logs: %w", err)
	}
	return rows, nil
}

func (r *LogRepository) queryRows(ctx context.Context, query string, args ...any) ([]domain.LogRow, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.LogRow{}
	for rows.Next() {
		var (
			row   domain.LogRow
			topic sql.NullString
		)
		if err := rows.Scan(&row.ID, &row.Timestamp, &topic, &row.Tool, &row.State); err != nil {
			return nil, err
		}
		row.Topic = topic.String
		result = append(result, row)
	}
	return result, rows.Err()
}
