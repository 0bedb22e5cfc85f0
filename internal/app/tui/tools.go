package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/emiliopalmerini/dustlog/internal/domain"
	"github.com/emiliopalmerini/dustlog/internal/pkg/tui/components"
	"github.com/emiliopalmerini/dustlog/internal/pkg/tui/theme"
	"github.com/emiliopalmerini/dustlog/internal/usage"
	"github.com/emiliopalmerini/dustlog/internal/util"
)

const maxSparkDays = 60

type reportLoadedMsg struct {
	results []usage.Result
}

// Tools lists every tool with its runtime over the window.
type Tools struct {
	service *usage.Service
	tools   []string
	window  domain.Window
	results []usage.Result
	cursor  int
	loading bool
	styles  *theme.Styles
	width   int
}

// NewTools creates the tool list screen
func NewTools(service *usage.Service, tools []string, window domain.Window) *Tools {
	return &Tools{
		service: service,
		tools:   tools,
		window:  window,
		loading: true,
		styles:  theme.Default(),
	}
}

// Init implements tea.Model
func (t *Tools) Init() tea.Cmd {
	return t.load()
}

func (t *Tools) load() tea.Cmd {
	return func() tea.Msg {
		return reportLoadedMsg{t.service.Report(context.Background(), t.tools, t.window)}
	}
}

// Update implements tea.Model
func (t *Tools) Update(msg tea.Msg) (*Tools, tea.Cmd) {
	switch msg := msg.(type) {
	case reportLoadedMsg:
		t.loading = false
		t.results = msg.results
		if t.cursor >= len(t.results) {
			t.cursor = max(len(t.results)-1, 0)
		}
		return t, nil

	case tea.WindowSizeMsg:
		t.width = msg.Width
		return t, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if t.cursor < len(t.results)-1 {
				t.cursor++
			}
		case "k", "up":
			if t.cursor > 0 {
				t.cursor--
			}
		case "r":
			t.loading = true
			return t, t.load()
		}
	}

	return t, nil
}

// Selected returns the result under the cursor.
func (t *Tools) Selected() (usage.Result, bool) {
	if t.loading || len(t.results) == 0 {
		return usage.Result{}, false
	}
	return t.results[t.cursor], true
}

// View implements tea.Model
func (t *Tools) View() string {
	if t.loading {
		return t.styles.Muted.Render("Loading usage...")
	}

	title := t.styles.Title.Render(fmt.Sprintf("Tool runtime (last %d days)", t.window.Days))
	if len(t.results) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, t.styles.Muted.Render("No tools configured"))
	}

	nameWidth := 0
	for _, r := range t.results {
		nameWidth = max(nameWidth, lipgloss.Width(r.Tool))
	}

	rows := make([]string, 0, len(t.results))
	for i, r := range t.results {
		rows = append(rows, t.renderRow(r, i == t.cursor, nameWidth))
	}

	parts := []string{title, strings.Join(rows, "\n")}
	if sel, ok := t.Selected(); ok {
		parts = append(parts, "", t.renderDetail(sel))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (t *Tools) renderRow(r usage.Result, selected bool, nameWidth int) string {
	marker := "  "
	name := t.styles.Body.Render(pad(r.Tool, nameWidth))
	if selected {
		marker = t.styles.Cursor.Render("> ")
		name = t.styles.Highlighted.Render(pad(r.Tool, nameWidth))
	}

	if r.Err != nil {
		return marker + name + "  " + t.styles.Error.Render(r.Err.Error())
	}

	hours := t.styles.Bold.Render(fmt.Sprintf("%7s h", util.FormatHours(r.Usage.TotalHours)))
	since := t.styles.Muted.Render("since " + util.FormatDateISO(r.Usage.Since))
	spark := t.styles.Sparkline.Render(components.RenderSparkline(r.Usage.DailyHours(sparkDays(t.window))))
	return marker + name + "  " + hours + "  " + since + "  " + spark
}

func (t *Tools) renderDetail(r usage.Result) string {
	if r.Err != nil {
		return t.styles.Card.Render(t.styles.Error.Render(r.Err.Error()))
	}

	u := r.Usage
	state := t.styles.Muted.Render("unknown")
	switch u.LastState {
	case domain.StateOn:
		state = t.styles.On.Render("ON")
	case domain.StateOff:
		state = t.styles.Off.Render("OFF")
	}

	lines := []string{
		t.styles.Subtitle.Render(u.Tool),
		fmt.Sprintf("Since        %s", util.FormatTimestamp(u.Since)),
		fmt.Sprintf("Runtime      %s hours", util.FormatHours(u.TotalHours)),
		fmt.Sprintf("Events       %d", u.Events),
		fmt.Sprintf("Transitions  %d", u.Transitions),
		fmt.Sprintf("Last state   %s", state),
	}
	return t.styles.Card.Render(strings.Join(lines, "\n"))
}

func sparkDays(w domain.Window) int {
	return min(w.Days+1, maxSparkDays)
}

func pad(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
