package curriculummap

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/currimap/internal/curriculum"
	"github.com/abhisek/currimap/internal/eligibility"
	"github.com/abhisek/currimap/internal/progress"
	"github.com/abhisek/currimap/internal/router"
	"github.com/abhisek/currimap/internal/screen"
	"github.com/abhisek/currimap/internal/ui/layout"
	"github.com/abhisek/currimap/internal/ui/theme"
)

// CourseDetailScreen shows details for a single course.
type CourseDetailScreen struct {
	svc    *eligibility.Service
	cur    *curriculum.Curriculum
	rec    *progress.Record
	course curriculum.Course
}

var _ screen.Screen = (*CourseDetailScreen)(nil)
var _ screen.KeyHintProvider = (*CourseDetailScreen)(nil)

func newCourseDetail(svc *eligibility.Service, cur *curriculum.Curriculum, rec *progress.Record, c curriculum.Course) *CourseDetailScreen {
	return &CourseDetailScreen{svc: svc, cur: cur, rec: rec.Clone(), course: c}
}

func (d *CourseDetailScreen) Init() tea.Cmd { return nil }
func (d *CourseDetailScreen) Title() string { return d.course.Code }

func (d *CourseDetailScreen) completed() bool {
	return d.rec.Status(d.course.Code) == progress.Completed
}

func (d *CourseDetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "g" && d.completed() {
		// The grade editor takes this screen's place so saving returns to the map.
		g := newGradeScreen(d.svc, d.cur, d.rec, d.course)
		return d, func() tea.Msg { return router.ReplaceScreenMsg{Screen: g} }
	}
	return d, nil
}

func (d *CourseDetailScreen) KeyHints() []layout.KeyHint {
	if d.completed() {
		return []layout.KeyHint{
			{Key: "g", Description: "Grade"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (d *CourseDetailScreen) View(width, height int) string {
	c := d.course
	state := eligibility.StateOf(d.cur, d.rec, c.Code)

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(fmt.Sprintf("  %s  %s  %s", state.Icon(), c.Code, c.Name)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(stateColor(state)).
		Render(fmt.Sprintf("  %s", state.Label())))
	b.WriteString("\n\n")

	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	valStyle := lipgloss.NewStyle().Foreground(theme.Text)

	if blk, ok := d.cur.BlockOf(c.Code); ok {
		b.WriteString(dimStyle.Render("  Block:      ") + valStyle.Render(blk.Name) + "\n")
	}
	b.WriteString(dimStyle.Render("  Credits:    ") + valStyle.Render(fmt.Sprintf("%d", c.Credits)) + "\n")
	if e, ok := d.rec.Entry(c.Code); ok {
		if e.EnrolledAt != nil {
			b.WriteString(dimStyle.Render("  Enrolled:   ") + valStyle.Render(e.EnrolledAt.Local().Format("Jan 02, 2006")) + "\n")
		}
		if e.CompletedAt != nil {
			b.WriteString(dimStyle.Render("  Completed:  ") + valStyle.Render(e.CompletedAt.Local().Format("Jan 02, 2006")) + "\n")
		}
		if e.Grade != nil {
			b.WriteString(dimStyle.Render("  Grade:      ") + valStyle.Render(fmt.Sprintf("%.1f", *e.Grade)) + "\n")
		}
	}
	b.WriteString("\n")

	d.writeCourses(&b, "Prerequisites", c.Prerequisites)
	d.writeCourses(&b, "Corequisites", c.Corequisites)

	if state == eligibility.StateLocked {
		v := eligibility.Check(d.cur, d.rec, c.Code)
		if len(v.Unmet) > 0 {
			b.WriteString(theme.Section.Render("  Missing"))
			b.WriteString("\n")
			for _, req := range v.Unmet {
				b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).
					Render(fmt.Sprintf("  ✗ %s %s", req.Kind, req.Code)))
				b.WriteString("\n")
			}
			b.WriteString("\n")
		}
	}

	// What this course unlocks.
	deps := d.cur.Dependents(c.Code)
	if len(deps) > 0 {
		b.WriteString(theme.Section.Render("  Unlocks"))
		b.WriteString("\n")
		for _, dep := range deps {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  → %s %s", dep.Code, dep.Name)))
			b.WriteString("\n")
		}
	}

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top,
		"\n"+b.String())
}

// writeCourses lists related courses with their state. Codes that are not
// in the curriculum are shown as unknown.
func (d *CourseDetailScreen) writeCourses(b *strings.Builder, heading string, codes []string) {
	if len(codes) == 0 {
		return
	}
	b.WriteString(theme.Section.Render("  " + heading))
	b.WriteString("\n")
	for _, code := range codes {
		rel, ok := d.cur.Course(code)
		if !ok {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).
				Render(fmt.Sprintf("  ? %s (unknown course)", code)))
			b.WriteString("\n")
			continue
		}
		st := eligibility.StateOf(d.cur, d.rec, code)
		b.WriteString(lipgloss.NewStyle().Foreground(stateColor(st)).
			Render(fmt.Sprintf("  %s %s %s", st.Icon(), rel.Code, rel.Name)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}
