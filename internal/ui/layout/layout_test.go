package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestFitHints(t *testing.T) {
	hints := []KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Tab", Description: "Block"},
		{Key: "Space", Description: "Status"},
		{Key: "Ctrl+C", Description: "Quit"},
	}

	all := FitHints(hints, 200)
	if len(all) != 4 {
		t.Fatalf("wide footer kept %d hints, want 4", len(all))
	}

	narrow := FitHints(hints, 30)
	if len(narrow) != 2 {
		t.Fatalf("narrow footer kept %d hints, want 2: %+v", len(narrow), narrow)
	}
	if narrow[0].Key != "↑↓" || narrow[1].Key != "Ctrl+C" {
		t.Errorf("narrow footer = %+v", narrow)
	}

	if got := FitHints(hints, 0); len(got) != 1 || got[0].Key != "Ctrl+C" {
		t.Errorf("zero width should keep only the quit hint, got %+v", got)
	}
	if FitHints(nil, 80) != nil {
		t.Error("no hints should render nothing")
	}
}

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("Computer Science", "12/58 cr", 80)
	lines := strings.Split(h, "\n")
	if len(lines) != 2 {
		t.Fatalf("header has %d lines, want 2", len(lines))
	}
	for _, want := range []string{"currimap", "› Computer Science", "12/58 cr"} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("header missing %q: %q", want, lines[0])
		}
	}
	if w := lipgloss.Width(lines[0]); w != 80 {
		t.Errorf("header width = %d, want 80", w)
	}
}

func TestRenderFrameHeight(t *testing.T) {
	header := RenderHeader("Home", "", 80)
	footer := RenderFooter([]KeyHint{{Key: "Ctrl+C", Description: "Quit"}}, 80)
	frame := RenderFrame(header, "body", footer, 80, 24)
	if got := lipgloss.Height(frame); got != 24 {
		t.Errorf("frame height = %d, want 24", got)
	}
}

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(MinWidth-1, MinHeight) || !IsTooSmall(MinWidth, MinHeight-1) {
		t.Error("below minimum should be too small")
	}
	if IsTooSmall(MinWidth, MinHeight) {
		t.Error("minimum size should fit")
	}
}
