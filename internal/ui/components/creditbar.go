package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/currimap/internal/ui/theme"
)

// CreditBar shows earned credits against a curriculum total, with credits
// currently being taken drawn as a second segment.
type CreditBar struct {
	Completed  int
	InProgress int
	Total      int
	Width      int
	// Label replaces the default "x/y credits" text when set.
	Label string
}

// NewCreditBar creates a credit bar of the given total width.
func NewCreditBar(completed, inProgress, total, width int) CreditBar {
	return CreditBar{Completed: completed, InProgress: inProgress, Total: total, Width: width}
}

// Percent returns completed credits as a fraction of the total in [0, 1].
func (b CreditBar) Percent() float64 {
	if b.Total <= 0 {
		return 0
	}
	return min(float64(b.Completed)/float64(b.Total), 1)
}

// segments splits n cells into completed and in-progress parts.
func (b CreditBar) segments(n int) (done, taking int) {
	if b.Total <= 0 || n <= 0 {
		return 0, 0
	}
	done = min(max(b.Completed*n/b.Total, 0), n)
	taking = min(max(b.InProgress*n/b.Total, 0), n-done)
	return done, taking
}

// View renders the bar.
func (b CreditBar) View() string {
	label := b.Label
	if label == "" {
		label = fmt.Sprintf("%d/%d credits", b.Completed, b.Total)
	}
	head := lipgloss.NewStyle().Foreground(theme.Text).Render(label) + "  "
	tail := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("  %3d%%", int(b.Percent()*100)))

	cells := max(b.Width-lipgloss.Width(head)-lipgloss.Width(tail), 4)
	done, taking := b.segments(cells)

	return head +
		theme.ProgressFilled.Render(strings.Repeat(" ", done)) +
		lipgloss.NewStyle().Background(theme.InProgress).Render(strings.Repeat(" ", taking)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", cells-done-taking)) +
		tail
}
