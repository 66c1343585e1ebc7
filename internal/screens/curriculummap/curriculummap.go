package curriculummap

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/currimap/internal/curriculum"
	"github.com/abhisek/currimap/internal/eligibility"
	"github.com/abhisek/currimap/internal/progress"
	"github.com/abhisek/currimap/internal/router"
	"github.com/abhisek/currimap/internal/screen"
	"github.com/abhisek/currimap/internal/screens/history"
	"github.com/abhisek/currimap/internal/ui/components"
	"github.com/abhisek/currimap/internal/ui/layout"
	"github.com/abhisek/currimap/internal/ui/theme"
)

type rowKind int

const (
	rowBlockHeader rowKind = iota
	rowCourse
)

type row struct {
	kind   rowKind
	block  int // index into Curriculum.Blocks
	course curriculum.Course
}

type recordLoadedMsg struct {
	rec *progress.Record
	err error
}

type toggledMsg struct {
	code   string
	status progress.Status
	err    error
}

// MapScreen shows a curriculum block by block with the learner's progress.
type MapScreen struct {
	svc     *eligibility.Service
	cur     *curriculum.Curriculum
	history history.Lister

	rows         []row
	cursor       int
	scrollOffset int

	rec     *progress.Record
	summary eligibility.Summary
	loaded  bool
	flash   string
	errMsg  string
}

var _ screen.Screen = (*MapScreen)(nil)
var _ screen.KeyHintProvider = (*MapScreen)(nil)
var _ screen.StatusProvider = (*MapScreen)(nil)

// New creates a MapScreen for cur. hist may be nil, which disables the
// history view.
func New(svc *eligibility.Service, cur *curriculum.Curriculum, hist history.Lister) *MapScreen {
	var rows []row
	for bi, b := range cur.Blocks {
		rows = append(rows, row{kind: rowBlockHeader, block: bi})
		for _, c := range b.Courses {
			rows = append(rows, row{kind: rowCourse, block: bi, course: c})
		}
	}

	s := &MapScreen{
		svc:     svc,
		cur:     cur,
		history: hist,
		rows:    rows,
		rec:     progress.NewRecord(cur.ID),
	}

	// Set cursor to first course row
	for i, r := range s.rows {
		if r.kind == rowCourse {
			s.cursor = i
			break
		}
	}
	return s
}

func (s *MapScreen) Init() tea.Cmd {
	return s.load()
}

func (s *MapScreen) load() tea.Cmd {
	return func() tea.Msg {
		rec, err := s.svc.Record(context.Background(), s.cur)
		return recordLoadedMsg{rec: rec, err: err}
	}
}

func (s *MapScreen) Title() string {
	return s.cur.Name
}

// HeaderStatus shows the earned credits.
func (s *MapScreen) HeaderStatus() string {
	return fmt.Sprintf("%d/%d cr", s.summary.CompletedCredits, s.summary.TotalCredits)
}

// KeyHints returns the key binding hints for the footer.
func (s *MapScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Tab", Description: "Block"},
		{Key: "Space", Description: "Status"},
		{Key: "Enter", Description: "Details"},
		{Key: "g", Description: "Grade"},
	}
	if s.history != nil {
		hints = append(hints, layout.KeyHint{Key: "h", Description: "History"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *MapScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case recordLoadedMsg:
		s.loaded = true
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.setRecord(msg.rec)
		return s, nil

	case toggledMsg:
		if msg.err != nil {
			if errors.Is(msg.err, eligibility.ErrNotEligible) {
				s.flash = s.lockedReason(msg.code)
			} else {
				s.flash = msg.err.Error()
			}
			return s, nil
		}
		s.flash = fmt.Sprintf("%s → %s", msg.code, msg.status.Label())
		return s, s.load()

	case router.ScreenPoppedMsg:
		return s, s.load()

	case tea.KeyMsg:
		s.flash = ""
		switch msg.String() {
		case "up", "k":
			s.moveCursor(-1)
		case "down", "j":
			s.moveCursor(1)
		case "tab":
			s.nextBlock()
		case "shift+tab":
			s.prevBlock()
		case "space", "x":
			return s, s.toggle()
		case "enter", "d":
			return s, s.openDetail()
		case "g":
			return s, s.openGrade()
		case "h":
			return s, s.openHistory()
		case "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *MapScreen) setRecord(rec *progress.Record) {
	s.rec = rec
	s.summary = eligibility.Summarize(s.cur, rec)
}

// Selected returns the course under the cursor.
func (s *MapScreen) Selected() (curriculum.Course, bool) {
	if s.cursor < 0 || s.cursor >= len(s.rows) || s.rows[s.cursor].kind != rowCourse {
		return curriculum.Course{}, false
	}
	return s.rows[s.cursor].course, true
}

// State returns the display state of a course under the loaded record.
func (s *MapScreen) State(code string) eligibility.CourseState {
	return eligibility.StateOf(s.cur, s.rec, code)
}

// toggle cycles the selected course. Locked courses are refused before any
// write happens.
func (s *MapScreen) toggle() tea.Cmd {
	c, ok := s.Selected()
	if !ok {
		return nil
	}
	if !s.State(c.Code).Interactive() {
		s.flash = s.lockedReason(c.Code)
		return nil
	}
	svc, cur := s.svc, s.cur
	return func() tea.Msg {
		st, err := svc.Toggle(context.Background(), cur, c.Code)
		return toggledMsg{code: c.Code, status: st, err: err}
	}
}

func (s *MapScreen) lockedReason(code string) string {
	v := eligibility.Check(s.cur, s.rec, code)
	if len(v.Unmet) == 0 {
		return code + " is locked"
	}
	var parts []string
	for _, req := range v.Unmet {
		parts = append(parts, fmt.Sprintf("%s %s", req.Kind, req.Code))
	}
	return fmt.Sprintf("%s is locked: needs %s", code, strings.Join(parts, ", "))
}

func (s *MapScreen) openDetail() tea.Cmd {
	c, ok := s.Selected()
	if !ok {
		return nil
	}
	detail := newCourseDetail(s.svc, s.cur, s.rec, c)
	return func() tea.Msg { return router.PushScreenMsg{Screen: detail} }
}

func (s *MapScreen) openGrade() tea.Cmd {
	c, ok := s.Selected()
	if !ok {
		return nil
	}
	if s.rec.Status(c.Code) != progress.Completed {
		s.flash = "grades can only be recorded for completed courses"
		return nil
	}
	g := newGradeScreen(s.svc, s.cur, s.rec, c)
	return func() tea.Msg { return router.PushScreenMsg{Screen: g} }
}

func (s *MapScreen) openHistory() tea.Cmd {
	if s.history == nil {
		return nil
	}
	h := history.New(s.history, s.cur)
	return func() tea.Msg { return router.PushScreenMsg{Screen: h} }
}

// moveCursor moves the cursor by delta, skipping block headers.
func (s *MapScreen) moveCursor(delta int) {
	next := s.cursor + delta
	for next >= 0 && next < len(s.rows) {
		if s.rows[next].kind == rowCourse {
			s.cursor = next
			return
		}
		next += delta
	}
}

// nextBlock jumps the cursor to the first course in the next block.
func (s *MapScreen) nextBlock() {
	if _, ok := s.Selected(); !ok {
		return
	}
	current := s.rows[s.cursor].block
	for i := s.cursor + 1; i < len(s.rows); i++ {
		if s.rows[i].kind == rowCourse && s.rows[i].block != current {
			s.cursor = i
			return
		}
	}
}

// prevBlock jumps the cursor to the first course in the previous block.
func (s *MapScreen) prevBlock() {
	if _, ok := s.Selected(); !ok {
		return
	}
	current := s.rows[s.cursor].block
	if current == 0 {
		return
	}
	for i, r := range s.rows {
		if r.kind == rowCourse && r.block == current-1 {
			s.cursor = i
			return
		}
	}
}

// adjustScroll ensures the cursor is visible within the viewport.
func (s *MapScreen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	// Also show the block header above the cursor if possible
	headerRow := s.cursor
	for headerRow > 0 && s.rows[headerRow-1].kind == rowBlockHeader {
		headerRow--
	}

	if headerRow < s.scrollOffset {
		s.scrollOffset = headerRow
	}
	if s.cursor >= s.scrollOffset+height {
		s.scrollOffset = s.cursor - height + 1
	}
}

func (s *MapScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading progress...")
	}
	if len(s.rows) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  This curriculum has no courses.")
	}

	top := []string{"", s.renderSummary(width)}
	if s.flash != "" {
		top = append(top, theme.Warning.PaddingLeft(2).Render(s.flash))
	} else {
		top = append(top, "")
	}

	listHeight := height - len(top)
	s.adjustScroll(listHeight)

	lines := top
	visible := 0
	for i, r := range s.rows {
		if i < s.scrollOffset {
			continue
		}
		if visible >= listHeight {
			break
		}
		switch r.kind {
		case rowBlockHeader:
			lines = append(lines, s.renderBlockHeader(s.cur.Blocks[r.block], width))
		case rowCourse:
			lines = append(lines, s.renderCourseRow(r.course, i == s.cursor, width))
		}
		visible++
	}
	return strings.Join(lines, "\n")
}

func (s *MapScreen) renderSummary(width int) string {
	sum := s.summary
	bar := components.NewCreditBar(sum.CompletedCredits, sum.InProgressCredits, sum.TotalCredits, width-4).View()
	counts := lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf(
		"%d completed · %d in progress · %d available", sum.Completed, sum.InProgress, sum.Available))
	return "  " + bar + "\n  " + counts
}

func (s *MapScreen) renderBlockHeader(b curriculum.Block, width int) string {
	done := 0
	for _, c := range b.Courses {
		if s.rec.Status(c.Code) == progress.Completed {
			done += c.Credits
		}
	}
	name := fmt.Sprintf("%s  (%d/%d cr)", strings.ToUpper(b.Name), done, b.TotalCredits)
	return lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Width(width).
		PaddingLeft(2).
		Render(name)
}

func stateColor(st eligibility.CourseState) color.Color {
	switch st {
	case eligibility.StateCompleted:
		return theme.Completed
	case eligibility.StateInProgress:
		return theme.InProgress
	case eligibility.StateAvailable:
		return theme.Available
	default:
		return theme.Locked
	}
}

func (s *MapScreen) renderCourseRow(c curriculum.Course, selected bool, width int) string {
	st := s.State(c.Code)

	// Column widths
	codeWidth := 8
	creditsWidth := 5
	labelWidth := 11
	gradeWidth := 6
	nameWidth := width - 8 - codeWidth - creditsWidth - labelWidth - gradeWidth - 6
	if layout.IsCompactWidth(width) {
		gradeWidth = 0
		nameWidth += 6
	}
	if nameWidth < 10 {
		nameWidth = 10
	}

	name := c.Name
	if r := []rune(name); len(r) > nameWidth {
		name = string(r[:nameWidth-1]) + "…"
	}

	style := lipgloss.NewStyle().Foreground(stateColor(st))
	if selected {
		style = theme.Selected
	}
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	cursor := "  "
	if selected {
		cursor = "▸ "
	}

	grade := ""
	if g, ok := s.rec.Grade(c.Code); ok && gradeWidth > 0 {
		grade = fmt.Sprintf("%*.1f", gradeWidth, g)
	} else if gradeWidth > 0 {
		grade = strings.Repeat(" ", gradeWidth)
	}

	return fmt.Sprintf("  %s%s %s %s %s %s%s",
		cursor,
		st.Icon(),
		style.Render(fmt.Sprintf("%-*s", codeWidth, c.Code)),
		style.Render(padRight(name, nameWidth)),
		dim.Render(fmt.Sprintf("%2d cr", c.Credits)),
		lipgloss.NewStyle().Foreground(stateColor(st)).Render(fmt.Sprintf("%*s", labelWidth, st.Label())),
		dim.Render(grade),
	)
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
