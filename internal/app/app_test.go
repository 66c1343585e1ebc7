package app

import (
	"io"
	"log/slog"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/currimap/internal/curriculum"
	"github.com/abhisek/currimap/internal/eligibility"
	"github.com/abhisek/currimap/internal/progress"
	"github.com/abhisek/currimap/internal/router"
	"github.com/abhisek/currimap/internal/screen"
)

func testOptions(t *testing.T) Options {
	t.Helper()
	catalog, err := curriculum.Builtin()
	if err != nil {
		t.Fatalf("builtin catalog: %v", err)
	}
	store := progress.NewStore(progress.NewMemoryMedium(),
		progress.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	return Options{Catalog: catalog, Service: eligibility.NewService(store)}
}

func TestNewAppModel_StartsOnHome(t *testing.T) {
	m := newAppModel(testOptions(t))
	if m.router.Depth() != 1 {
		t.Fatalf("depth = %d, want 1", m.router.Depth())
	}
	if m.router.Active().Title() != "Home" {
		t.Errorf("active = %q, want Home", m.router.Active().Title())
	}
	if m.Init() == nil {
		t.Error("expected init command loading summaries")
	}
}

func TestNewAppModel_OpensCurriculum(t *testing.T) {
	opts := testOptions(t)
	cur, err := opts.Catalog.Get(curriculum.DefaultID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	opts.Open = cur

	m := newAppModel(opts)
	if m.router.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", m.router.Depth())
	}
	if _, ok := m.router.Active().(screen.StatusProvider); !ok {
		t.Error("curriculum map should provide a header status")
	}

	// Esc returns to the curricula list.
	next, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	msg := cmd()
	if _, ok := msg.(router.PopScreenMsg); !ok {
		t.Fatalf("expected PopScreenMsg, got %T", msg)
	}
	next, _ = next.Update(msg)
	if d := next.(AppModel).router.Depth(); d != 1 {
		t.Errorf("depth after esc = %d, want 1", d)
	}
}

func TestAppModel_EscAtHomeIsNoop(t *testing.T) {
	m := newAppModel(testOptions(t))
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("esc on the home screen should do nothing")
	}
}
