package curriculummap

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/currimap/internal/curriculum"
	"github.com/abhisek/currimap/internal/eligibility"
	"github.com/abhisek/currimap/internal/progress"
	"github.com/abhisek/currimap/internal/router"
	"github.com/abhisek/currimap/internal/screen"
	"github.com/abhisek/currimap/internal/ui/components"
	"github.com/abhisek/currimap/internal/ui/layout"
	"github.com/abhisek/currimap/internal/ui/theme"
)

type gradeSavedMsg struct {
	err error
}

// GradeScreen edits the grade of a completed course.
type GradeScreen struct {
	svc    *eligibility.Service
	cur    *curriculum.Curriculum
	course curriculum.Course
	input  components.GradeInput
	errMsg string
}

var _ screen.Screen = (*GradeScreen)(nil)
var _ screen.KeyHintProvider = (*GradeScreen)(nil)

func newGradeScreen(svc *eligibility.Service, cur *curriculum.Curriculum, rec *progress.Record, c curriculum.Course) *GradeScreen {
	initial := ""
	if g, ok := rec.Grade(c.Code); ok {
		initial = strconv.FormatFloat(g, 'f', -1, 64)
	}
	return &GradeScreen{
		svc:    svc,
		cur:    cur,
		course: c,
		input:  components.NewGradeInput(initial, progress.MaxGrade),
	}
}

func (g *GradeScreen) Init() tea.Cmd { return g.input.Init() }
func (g *GradeScreen) Title() string { return "Grade · " + g.course.Code }

func (g *GradeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Save"},
		{Key: "Esc", Description: "Cancel"},
	}
}

func (g *GradeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case gradeSavedMsg:
		if msg.err != nil {
			g.errMsg = msg.err.Error()
			return g, nil
		}
		return g, func() tea.Msg { return router.PopScreenMsg{} }

	case tea.KeyMsg:
		if msg.String() == "enter" {
			grade, err := g.input.Grade()
			if err != nil {
				return g, nil
			}
			svc, cur, code := g.svc, g.cur, g.course.Code
			return g, func() tea.Msg {
				return gradeSavedMsg{err: svc.SetGrade(context.Background(), cur, code, grade)}
			}
		}
	}

	var cmd tea.Cmd
	g.input, cmd = g.input.Update(msg)
	return g, cmd
}

func (g *GradeScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
		Render(fmt.Sprintf("  %s  %s", g.course.Code, g.course.Name)))
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("  Grade (0-%d, empty clears)", progress.MaxGrade)))
	b.WriteString("\n\n  ")
	b.WriteString(g.input.View())
	b.WriteString("\n")
	if g.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.Warning.Render("  " + g.errMsg))
		b.WriteString("\n")
	}
	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, b.String())
}
