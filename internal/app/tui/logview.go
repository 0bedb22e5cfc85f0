package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/emiliopalmerini/dustlog/internal/domain"
	"github.com/emiliopalmerini/dustlog/internal/pkg/tui/theme"
	"github.com/emiliopalmerini/dustlog/internal/ports"
)

type tailLoadedMsg struct {
	rows []domain.LogRow
}

type tailErrorMsg struct {
	err error
}

// LogView shows the most recent log rows, newest at the bottom.
type LogView struct {
	repo    ports.LogRepository
	count   int
	rows    []domain.LogRow
	loading bool
	err     error
	styles  *theme.Styles
	height  int
}

// NewLogView creates the log tail screen
func NewLogView(repo ports.LogRepository, count int) *LogView {
	return &LogView{
		repo:    repo,
		count:   count,
		loading: true,
		styles:  theme.Default(),
	}
}

// Init implements tea.Model
func (l *LogView) Init() tea.Cmd {
	return l.load()
}

func (l *LogView) load() tea.Cmd {
	return func() tea.Msg {
		rows, err := l.repo.Tail(context.Background(), l.count)
		if err != nil {
			return tailErrorMsg{fmt.Errorf("load log: %w", err)}
		}
		return tailLoadedMsg{rows}
	}
}

// Update implements tea.Model
func (l *LogView) Update(msg tea.Msg) (*LogView, tea.Cmd) {
	switch msg := msg.(type) {
	case tailLoadedMsg:
		l.loading = false
		l.err = nil
		l.rows = msg.rows
		return l, nil

	case tailErrorMsg:
		l.loading = false
		l.err = msg.err
		return l, nil

	case tea.WindowSizeMsg:
		l.height = msg.Height
		return l, nil

	case tea.KeyMsg:
		if msg.String() == "r" {
			l.loading = true
			return l, l.load()
		}
	}

	return l, nil
}

// View implements tea.Model
func (l *LogView) View() string {
	if l.loading {
		return l.styles.Muted.Render("Loading log...")
	}
	if l.err != nil {
		return l.styles.Error.Render(fmt.Sprintf("Error: %v", l.err))
	}

	title := l.styles.Title.Render(fmt.Sprintf("Log tail (%d rows)", len(l.rows)))
	if len(l.rows) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, l.styles.Muted.Render("No rows"))
	}

	rows := l.rows
	// header, nav and help take roughly ten lines
	if visible := l.height - 10; l.height > 0 && visible > 0 && len(rows) > visible {
		rows = rows[len(rows)-visible:]
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, l.renderRow(r))
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(lines, "\n"))
}

func (l *LogView) renderRow(r domain.LogRow) string {
	state := l.styles.Muted.Render(r.State)
	switch s, _ := domain.ParseState(r.State); s {
	case domain.StateOn:
		state = l.styles.On.Render(string(s))
	case domain.StateOff:
		state = l.styles.Off.Render(string(s))
	}
	return fmt.Sprintf("%s  %s  %s  %s",
		l.styles.Muted.Render(fmt.Sprintf("%6d", r.ID)),
		l.styles.Body.Render(r.Timestamp),
		l.styles.Bold.Render(pad(r.Tool, 20)),
		state)
}
