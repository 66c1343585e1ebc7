package components

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/currimap/internal/ui/theme"
)

// GradeInput wraps bubbles/textinput for entering a numeric course grade.
// Only digits and a single decimal point are accepted.
type GradeInput struct {
	Model textinput.Model
	Max   float64
	err   string
}

// NewGradeInput creates a focused grade input accepting values in [0, limit].
func NewGradeInput(initial string, limit float64) GradeInput {
	ti := textinput.New()
	ti.Placeholder = fmt.Sprintf("0-%g", limit)
	ti.CharLimit = 6
	ti.SetValue(initial)
	ti.Focus()

	return GradeInput{Model: ti, Max: limit}
}

// Init returns the initial command.
func (g GradeInput) Init() tea.Cmd {
	return g.Model.Focus()
}

// Update handles messages.
func (g GradeInput) Update(msg tea.Msg) (GradeInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		key := kmsg.String()
		if len(key) == 1 {
			c := key[0]
			if c == '.' && strings.Contains(g.Model.Value(), ".") {
				return g, nil
			}
			if (c < '0' || c > '9') && c != '.' {
				return g, nil
			}
		}
	}

	g.err = ""
	var cmd tea.Cmd
	g.Model, cmd = g.Model.Update(msg)
	return g, cmd
}

// View renders the input and the last validation error, if any.
func (g GradeInput) View() string {
	view := g.Model.View()
	if g.err != "" {
		view += "  " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗ "+g.err)
	}
	return view
}

// Value returns the current input value.
func (g GradeInput) Value() string {
	return g.Model.Value()
}

// Grade parses the input. An empty input yields nil, which clears the grade.
// Invalid input is remembered and shown by View.
func (g *GradeInput) Grade() (*float64, error) {
	raw := strings.TrimSpace(g.Model.Value())
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		g.err = "not a number"
		return nil, fmt.Errorf("parse grade %q: %w", raw, err)
	}
	if math.IsNaN(v) || v < 0 || v > g.Max {
		g.err = fmt.Sprintf("must be between 0 and %g", g.Max)
		return nil, fmt.Errorf("grade %g out of range [0, %g]", v, g.Max)
	}
	return &v, nil
}
