package ports

import (
	"io"

	"github.com/emiliopalmerini/dustlog/internal/domain"
)

// ChartRenderer draws a usage chart for one tool.
type ChartRenderer interface {
	Render(w io.Writer, u *domain.Usage) error
}
