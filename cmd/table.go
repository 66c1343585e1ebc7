package cmd

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/abhisek/currimap/internal/eligibility"
	"github.com/abhisek/currimap/internal/ui/theme"
)

// newTable returns a borderless table with a bold header row.
func newTable(headers ...string) *table.Table {
	header := lipgloss.NewStyle().Bold(true).Foreground(theme.Primary).PaddingRight(2)
	cell := lipgloss.NewStyle().PaddingRight(2)
	return table.New().
		Headers(headers...).
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderHeader(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
}

// stateText renders a course state as icon and label.
func stateText(st eligibility.CourseState) string {
	return st.Icon() + " " + st.Label()
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
