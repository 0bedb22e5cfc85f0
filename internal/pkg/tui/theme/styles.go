package theme

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Styles contains all shared TUI styles
type Styles struct {
	// Text styles
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Body        lipgloss.Style
	Muted       lipgloss.Style
	Bold        lipgloss.Style
	Highlighted lipgloss.Style

	// Interactive elements
	Cursor   lipgloss.Style
	Active   lipgloss.Style
	Inactive lipgloss.Style
	NavKey   lipgloss.Style
	NavSep   lipgloss.Style

	// Help and hints
	Help    lipgloss.Style
	HelpKey lipgloss.Style

	// Layout
	Card lipgloss.Style

	// Usage indicators
	Sparkline lipgloss.Style
	On        lipgloss.Style
	Off       lipgloss.Style

	// Status indicators
	Error lipgloss.Style
}

var (
	defaultStyles *Styles
	once          sync.Once
)

// Default returns the singleton default Styles instance
func Default() *Styles {
	once.Do(func() {
		defaultStyles = newStyles()
	})
	return defaultStyles
}

func newStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(White).
			MarginBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(Amber).
			Bold(true),

		Body: lipgloss.NewStyle().
			Foreground(LightGray),

		Muted: lipgloss.NewStyle().
			Foreground(DimGray),

		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(White),

		Highlighted: lipgloss.NewStyle().
			Foreground(BrightAmber).
			Bold(true),

		Cursor: lipgloss.NewStyle().
			Foreground(BrightAmber).
			Bold(true),

		Active: lipgloss.NewStyle().
			Foreground(BrightAmber).
			Bold(true),

		Inactive: lipgloss.NewStyle().
			Foreground(DimGray),

		NavKey: lipgloss.NewStyle().
			Foreground(DarkGray),

		NavSep: lipgloss.NewStyle().
			Foreground(DarkGray).
			SetString("  /  "),

		Help: lipgloss.NewStyle().
			Foreground(DimGray).
			MarginTop(1),

		HelpKey: lipgloss.NewStyle().
			Foreground(LightGray).
			Bold(true),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DarkGray).
			Padding(0, 1),

		Sparkline: lipgloss.NewStyle().
			Foreground(Amber),

		On: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Off: lipgloss.NewStyle().
			Foreground(DimGray),

		Error: lipgloss.NewStyle().
			Foreground(Error),
	}
}
