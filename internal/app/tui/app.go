package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/emiliopalmerini/dustlog/internal/domain"
	"github.com/emiliopalmerini/dustlog/internal/pkg/tui/components"
	"github.com/emiliopalmerini/dustlog/internal/pkg/tui/theme"
	"github.com/emiliopalmerini/dustlog/internal/ports"
	"github.com/emiliopalmerini/dustlog/internal/usage"
)

// Screen identifies the current screen
type Screen int

const (
	ScreenTools Screen = iota
	ScreenLog
)

// App is the main dashboard TUI application
type App struct {
	currentScreen Screen
	tools         *Tools
	log           *LogView
	help          components.HelpBar
	styles        *theme.Styles
	width         int
}

// NewApp creates a new dashboard application
func NewApp(service *usage.Service, repo ports.LogRepository, tools []string, window domain.Window, tailCount int) *App {
	return &App{
		currentScreen: ScreenTools,
		tools:         NewTools(service, tools, window),
		log:           NewLogView(repo, tailCount),
		help: components.NewHelpBar(
			components.KeyBinding{Key: "j/k", Desc: "move"},
			components.KeyBinding{Key: "r", Desc: "reload"},
			components.KeyBinding{Key: "1/2", Desc: "screen"},
			components.KeyBinding{Key: "q", Desc: "quit"},
		),
		styles: theme.Default(),
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return a.tools.Init()
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "1":
			if a.currentScreen != ScreenTools {
				a.currentScreen = ScreenTools
				return a, nil
			}
		case "2":
			if a.currentScreen != ScreenLog {
				a.currentScreen = ScreenLog
				return a, a.log.Init()
			}
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		var cmd tea.Cmd
		a.tools, _ = a.tools.Update(msg)
		a.log, cmd = a.log.Update(msg)
		return a, cmd

	// Results are routed by type so a slow load still lands after a screen switch.
	case reportLoadedMsg:
		var cmd tea.Cmd
		a.tools, cmd = a.tools.Update(msg)
		return a, cmd

	case tailLoadedMsg, tailErrorMsg:
		var cmd tea.Cmd
		a.log, cmd = a.log.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	switch a.currentScreen {
	case ScreenTools:
		a.tools, cmd = a.tools.Update(msg)
	case ScreenLog:
		a.log, cmd = a.log.Update(msg)
	}

	return a, cmd
}

// View implements tea.Model
func (a *App) View() string {
	sep := lipgloss.NewStyle().
		Foreground(theme.DarkGray).
		Render("────────────────────────────────────────────────────────────────")

	var content string
	switch a.currentScreen {
	case ScreenTools:
		content = a.tools.View()
	case ScreenLog:
		content = a.log.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		a.renderHeader(), a.renderNav(), sep, "", content, a.styles.Help.Render(a.help.View()))
}

func (a *App) renderHeader() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.White).
		Render("DUSTLOG")

	tagline := lipgloss.NewStyle().
		Foreground(theme.DimGray).
		Render("Shop tool runtime")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", tagline)
}

func (a *App) renderNav() string {
	items := []NavItem{
		{Key: "1", Label: "Tools", Active: a.currentScreen == ScreenTools},
		{Key: "2", Label: "Log", Active: a.currentScreen == ScreenLog},
	}
	return NewNavBar(items).View()
}
