package components

import (
	"strings"

	"github.com/emiliopalmerini/dustlog/internal/pkg/tui/theme"
)

type KeyBinding struct {
	Key  string
	Desc string
}

// HelpBar is the footer line listing the active key bindings. Bindings
// without a key are left out so screens can blank one conditionally.
type HelpBar struct {
	Bindings []KeyBinding
	styles   *theme.Styles
}

func NewHelpBar(bindings ...KeyBinding) HelpBar {
	return HelpBar{Bindings: bindings, styles: theme.Default()}
}

func (h *HelpBar) SetBindings(bindings ...KeyBinding) {
	h.Bindings = bindings
}

func (h HelpBar) View() string {
	parts := make([]string, 0, len(h.Bindings))
	for _, kb := range h.Bindings {
		if kb.Key == "" {
			continue
		}
		parts = append(parts, h.styles.HelpKey.Render(kb.Key)+" "+h.styles.Muted.Render(kb.Desc))
	}
	return strings.Join(parts, h.styles.Muted.Render(" · "))
}
