package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/currimap/internal/curriculum"
	"github.com/abhisek/currimap/internal/eligibility"
	"github.com/abhisek/currimap/internal/router"
	"github.com/abhisek/currimap/internal/screen"
	"github.com/abhisek/currimap/internal/screens/curriculummap"
	"github.com/abhisek/currimap/internal/screens/history"
	"github.com/abhisek/currimap/internal/ui/components"
	"github.com/abhisek/currimap/internal/ui/theme"
)

type summariesLoadedMsg struct {
	summaries map[string]eligibility.Summary
}

// HomeScreen lists the available curricula with the learner's progress.
type HomeScreen struct {
	catalog   *curriculum.Catalog
	svc       *eligibility.Service
	history   history.Lister
	menu      components.Menu
	summaries map[string]eligibility.Summary
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(catalog *curriculum.Catalog, svc *eligibility.Service, hist history.Lister) *HomeScreen {
	h := &HomeScreen{
		catalog:   catalog,
		svc:       svc,
		history:   hist,
		summaries: make(map[string]eligibility.Summary),
	}
	h.menu = components.NewMenu(h.items())
	return h
}

func (h *HomeScreen) items() []components.MenuItem {
	var items []components.MenuItem
	for _, cur := range h.catalog.List() {
		items = append(items, components.MenuItem{
			Label:  cur.Name,
			Detail: h.detail(cur),
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: curriculummap.New(h.svc, cur, h.history)}
				}
			},
		})
	}
	items = append(items, components.MenuItem{
		Label:  "Quit",
		Action: func() tea.Cmd { return tea.Quit },
	})
	return items
}

func (h *HomeScreen) detail(cur *curriculum.Curriculum) string {
	parts := []string{cur.ID}
	if cur.University != "" {
		parts = append(parts, cur.University)
	}
	if sum, ok := h.summaries[cur.ID]; ok {
		parts = append(parts, fmt.Sprintf("%d/%d cr", sum.CompletedCredits, sum.TotalCredits))
	}
	return strings.Join(parts, " · ")
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadSummaries()
}

func (h *HomeScreen) loadSummaries() tea.Cmd {
	catalog, svc := h.catalog, h.svc
	return func() tea.Msg {
		out := make(map[string]eligibility.Summary)
		for _, cur := range catalog.List() {
			sum, err := svc.Summary(context.Background(), cur)
			if err != nil {
				continue
			}
			out[cur.ID] = sum
		}
		return summariesLoadedMsg{summaries: out}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case summariesLoadedMsg:
		h.summaries = msg.summaries
		selected := h.menu.Selected
		h.menu = components.NewMenu(h.items())
		h.menu.Selected = selected
		return h, nil
	case router.ScreenPoppedMsg:
		return h, h.loadSummaries()
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("Curricula"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("Pick a curriculum to track your progress"))
	b.WriteString("\n\n")
	b.WriteString(h.menu.View())

	if cur, ok := h.selected(); ok {
		if sum, ok := h.summaries[cur.ID]; ok {
			bar := components.NewCreditBar(sum.CompletedCredits, sum.InProgressCredits, sum.TotalCredits, min(width-4, 60))
			bar.Label = "Progress"
			b.WriteString("\n  ")
			b.WriteString(bar.View())
			b.WriteString("\n")
		}
	}

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, b.String())
}

func (h *HomeScreen) selected() (*curriculum.Curriculum, bool) {
	list := h.catalog.List()
	if h.menu.Selected < 0 || h.menu.Selected >= len(list) {
		return nil, false
	}
	return list[h.menu.Selected], true
}

func (h *HomeScreen) Title() string {
	return "Home"
}
