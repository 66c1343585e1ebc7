package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/currimap/internal/ui/theme"
)

const (
	MinWidth  = 72
	MinHeight = 20

	// Below this width the map drops its grade column.
	CompactWidthThreshold = 100
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsCompactWidth returns true if the terminal width is in compact range.
func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage renders the "terminal too small" message.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal too small for the curriculum map.\n\nResize to at least %d x %d (now %d x %d)",
			MinWidth, MinHeight, width, height,
		))
}

// RenderHeader renders a one-line breadcrumb ("currimap › title") with status
// right-aligned, underlined by a rule.
func RenderHeader(title, status string, width int) string {
	crumb := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(" currimap")
	if title != "" {
		crumb += lipgloss.NewStyle().Foreground(theme.TextDim).Render(" › ") +
			lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	}
	right := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(status + " ")

	gap := max(width-lipgloss.Width(crumb)-lipgloss.Width(right), 1)
	line := crumb + strings.Repeat(" ", gap) + right

	rule := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width, 0)))
	return line + "\n" + rule
}

// FitHints returns the leading hints whose rendering fits in width. The last
// hint is always kept since it carries the quit binding.
func FitHints(hints []KeyHint, width int) []KeyHint {
	if len(hints) == 0 {
		return nil
	}
	last := hints[len(hints)-1]
	used := 2 + hintWidth(last)
	var fitted []KeyHint
	for _, h := range hints[:len(hints)-1] {
		w := hintWidth(h) + 3
		if used+w > width {
			break
		}
		used += w
		fitted = append(fitted, h)
	}
	return append(fitted, last)
}

func hintWidth(h KeyHint) int {
	return lipgloss.Width(h.Key) + 1 + lipgloss.Width(h.Description)
}

// RenderFooter renders the key hints that fit on one line above a rule.
func RenderFooter(hints []KeyHint, width int) string {
	fitted := FitHints(hints, width)
	parts := make([]string, 0, len(fitted))
	for _, h := range fitted {
		parts = append(parts,
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key)+" "+
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description))
	}

	rule := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width, 0)))
	return rule + "\n  " + strings.Join(parts, "   ")
}

// RenderFrame composes the full frame: header + content + footer.
func RenderFrame(header, content, footer string, width, height int) string {
	contentHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	body := lipgloss.NewStyle().
		Width(width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	return header + "\n" + body + "\n" + footer
}
