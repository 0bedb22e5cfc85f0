package usage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/emiliopalmerini/dustlog/internal/domain"
	"github.com/emiliopalmerini/dustlog/internal/ports"
)

// Result is the outcome of processing a single tool. Err is set when that
// tool failed; other tools in the same run are unaffected.
type Result struct {
	Tool  string
	Usage domain.Usage
	Chart string
	Err   error
}

// Failed counts the results carrying an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// Service reconstructs tool usage from the log store.
type Service struct {
	repo     ports.LogRepository
	renderer ports.ChartRenderer
	exporter ports.MetricsExporter
	logger   log.FieldLogger
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now as the reference for window filtering.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a usage service.
func NewService(repo ports.LogRepository, renderer ports.ChartRenderer, exporter ports.MetricsExporter, logger log.FieldLogger, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		renderer: renderer,
		exporter: exporter,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the service's reference time.
func (s *Service) Now() time.Time {
	return s.now()
}

// ToolUsage reconstructs the usage of one tool. An unknown tool yields an
// empty Usage, a malformed timestamp a *domain.ParseError.
func (s *Service) ToolUsage(ctx context.Context, tool string, window domain.Window) (domain.Usage, error) {
	rows, err := s.repo.ListByTool(ctx, tool)
	if err != nil {
		return domain.Usage{}, err
	}

	events, err := domain.EventsFromRows(rows)
	if err != nil {
		return domain.Usage{}, fmt.Errorf("failed to parse logs for %q: %w", tool, err)
	}

	return domain.Reconstruct(tool, events, window, s.now()), nil
}

// Report reconstructs usage for every tool independently.
func (s *Service) Report(ctx context.Context, tools []string, window domain.Window) []Result {
	logger := s.logger.WithFields(log.Fields{
		"run_id": uuid.NewString(),
		"days":   window.Days,
	})

	results := make([]Result, 0, len(tools))
	for _, tool := range tools {
		toolLog := logger.WithField("tool", tool)

		u, err := s.ToolUsage(ctx, tool, window)
		if err != nil {
			toolLog.WithError(err).Error("failed to reconstruct usage")
			results = append(results, Result{Tool: tool, Err: err})
			continue
		}

		if err := s.exporter.ExportUsage(ctx, &u); err != nil {
			toolLog.WithError(err).Warn("failed to export usage metrics")
		}

		toolLog.WithFields(log.Fields{
			"events": u.Events,
			"hours":  u.TotalHours,
		}).Debug("usage reconstructed")

		results = append(results, Result{Tool: tool, Usage: u})
	}
	return results
}

// Plot reports every tool and writes one chart per successful tool into dir.
func (s *Service) Plot(ctx context.Context, tools []string, window domain.Window, dir string) ([]Result, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create plot directory: %w", err)
	}

	results := s.Report(ctx, tools, window)
	day := s.now()
	for i := range results {
		r := &results[i]
		if r.Err != nil {
			continue
		}

		path := filepath.Join(dir, ChartFileName(r.Tool, day))
		if err := s.writeChart(path, &r.Usage); err != nil {
			s.logger.WithField("tool", r.Tool).WithError(err).Error("failed to write chart")
			r.Err = err
			continue
		}
		r.Chart = path
		s.logger.WithFields(log.Fields{"tool": r.Tool, "path": path}).Info("chart written")
	}
	return results, nil
}

// RenderChart draws the chart for u to w.
func (s *Service) RenderChart(w io.Writer, u *domain.Usage) error {
	return s.renderer.Render(w, u)
}

func (s *Service) writeChart(path string, u *domain.Usage) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	if err := s.renderer.Render(f, u); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return f.Close()
}

// ChartFileName names a tool's chart for the given day,
// e.g. "Planer_tool_use_2023-07-11.png".
func ChartFileName(tool string, day time.Time) string {
	name := strings.NewReplacer("/", "-", string(os.PathSeparator), "-").Replace(tool)
	return fmt.Sprintf("%s_tool_use_%s.png", name, day.Format("2006-01-02"))
}
