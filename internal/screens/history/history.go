package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/currimap/internal/curriculum"
	"github.com/abhisek/currimap/internal/progress"
	"github.com/abhisek/currimap/internal/router"
	"github.com/abhisek/currimap/internal/screen"
	"github.com/abhisek/currimap/internal/store"
	"github.com/abhisek/currimap/internal/ui/layout"
	"github.com/abhisek/currimap/internal/ui/theme"
)

// PageSize is the number of changes loaded per view.
const PageSize = 200

// Lister reads the change history of a curriculum, newest first.
type Lister interface {
	List(ctx context.Context, curriculumID string, opts store.QueryOpts) ([]progress.Change, error)
}

type historyLoadedMsg struct {
	Changes []progress.Change
	Err     error
}

// HistoryScreen lists past status and grade changes of a curriculum.
type HistoryScreen struct {
	lister   Lister
	cur      *curriculum.Curriculum
	changes  []progress.Change
	selected int
	offset   int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(lister Lister, cur *curriculum.Curriculum) *HistoryScreen {
	return &HistoryScreen{lister: lister, cur: cur}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		changes, err := s.lister.List(context.Background(), s.cur.ID, store.QueryOpts{Limit: PageSize})
		return historyLoadedMsg{Changes: changes, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.changes = msg.Changes
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.changes)-1 {
				s.selected++
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.changes) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No changes recorded yet.")
	}

	rows := height - 1
	if rows < 1 {
		rows = 1
	}
	if s.selected < s.offset {
		s.offset = s.selected
	}
	if s.selected >= s.offset+rows {
		s.offset = s.selected - rows + 1
	}

	var b strings.Builder
	b.WriteString("\n")
	end := min(s.offset+rows, len(s.changes))
	for i := s.offset; i < end; i++ {
		style := lipgloss.NewStyle().Foreground(theme.Text)
		prefix := "  "
		if i == s.selected {
			style = theme.Selected
			prefix = "▸ "
		}
		b.WriteString(style.Render(prefix + s.describe(s.changes[i])))
		b.WriteString("\n")
	}
	return b.String()
}

// describe renders one change as a single line.
func (s *HistoryScreen) describe(c progress.Change) string {
	when := c.At.Local().Format("Jan 02, 2006 15:04")
	if c.Reset {
		return fmt.Sprintf("%s  progress reset", when)
	}
	name := c.Code
	if course, ok := s.cur.Course(c.Code); ok {
		name = course.Code + " " + course.Name
	}
	line := fmt.Sprintf("%s  %-40s  %s", when, name, c.Status.Label())
	if c.Grade != nil {
		line += fmt.Sprintf("  (%.1f)", *c.Grade)
	}
	return line
}
