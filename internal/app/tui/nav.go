package tui

import (
	"strings"

	"github.com/emiliopalmerini/dustlog/internal/pkg/tui/theme"
)

// NavItem is one screen tab.
type NavItem struct {
	Key    string
	Label  string
	Active bool
}

// NavBar renders the screen tabs; inactive tabs show their switch key.
type NavBar struct {
	Items  []NavItem
	styles *theme.Styles
}

func NewNavBar(items []NavItem) *NavBar {
	return &NavBar{Items: items, styles: theme.Default()}
}

func (n NavBar) View() string {
	tabs := make([]string, 0, len(n.Items))
	for _, item := range n.Items {
		if item.Active {
			tabs = append(tabs, n.styles.Active.Render(item.Label))
			continue
		}
		tabs = append(tabs, n.styles.NavKey.Render("["+item.Key+"]")+" "+n.styles.Inactive.Render(item.Label))
	}
	return strings.Join(tabs, n.styles.NavSep.String())
}
