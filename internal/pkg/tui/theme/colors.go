package theme

import "github.com/charmbracelet/lipgloss"

// Color palette for the shop dashboard
var (
	// Primary colors
	Amber       = lipgloss.Color("#F59E0B")
	BrightAmber = lipgloss.Color("#FBBF24")

	// Neutrals
	White     = lipgloss.Color("#FFFFFF")
	LightGray = lipgloss.Color("#9CA3AF")
	DimGray   = lipgloss.Color("#6B7280")
	DarkGray  = lipgloss.Color("#374151")

	// Semantic colors
	Success = lipgloss.Color("#22C55E")
	Error   = lipgloss.Color("#EF4444")
	Info    = lipgloss.Color("#3B82F6")
)
