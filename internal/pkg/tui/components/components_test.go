package components

import (
	"strings"
	"testing"
)

func TestRenderSparkline(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   string
	}{
		{"empty", nil, ""},
		{"flat", []float64{2, 2, 2}, "▁▁▁"},
		{"ramp", []float64{0, 7}, "▁█"},
		{"idle days", []float64{0, 3.5, 0, 7}, "▁▄▁█"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderSparkline(tt.values); got != tt.want {
				t.Errorf("RenderSparkline(%v) = %q, want %q", tt.values, got, tt.want)
			}
		})
	}
}

func TestHelpBar_View(t *testing.T) {
	h := NewHelpBar(KeyBinding{Key: "r", Desc: "refresh"}, KeyBinding{Key: "q", Desc: "quit"})
	view := h.View()
	for _, s := range []string{"r", "refresh", "q", "quit", "·"} {
		if !strings.Contains(view, s) {
			t.Errorf("help bar %q missing %q", view, s)
		}
	}

	h.SetBindings(KeyBinding{Key: "esc", Desc: "back"})
	if strings.Contains(h.View(), "refresh") {
		t.Error("SetBindings should replace existing bindings")
	}
}

func TestHelpBar_SkipsBindingsWithoutKey(t *testing.T) {
	h := NewHelpBar(KeyBinding{Key: "", Desc: "hidden"}, KeyBinding{Key: "q", Desc: "quit"})
	view := h.View()
	if strings.Contains(view, "hidden") {
		t.Errorf("help bar %q should skip bindings without a key", view)
	}
	if strings.Contains(view, "·") {
		t.Errorf("single binding should have no separator, got %q", view)
	}
}
