package cmd

import (
	"fmt"
	"log/slog"

	"github.com/abhisek/currimap/internal/curriculum"
	"github.com/abhisek/currimap/internal/eligibility"
	"github.com/abhisek/currimap/internal/progress"
	"github.com/abhisek/currimap/internal/store"
)

// workspace bundles what most commands need: the open database, the catalog
// of curricula and the eligibility service over stored progress.
type workspace struct {
	store   *store.Store
	catalog *curriculum.Catalog
	svc     *eligibility.Service
}

// loadCatalog returns the curricula from the configured directory, or the
// built-in ones when no directory is configured.
func loadCatalog() (*curriculum.Catalog, error) {
	if cfg.CurriculaDir == "" {
		return curriculum.Builtin()
	}
	return curriculum.LoadDir(cfg.CurriculaDir)
}

// openWorkspace opens the store and catalog. Progress changes are journaled
// to the store's history. The caller must Close the workspace.
func openWorkspace() (*workspace, error) {
	logger := slog.Default()
	catalog, err := loadCatalog()
	if err != nil {
		return nil, fmt.Errorf("load curricula: %w", err)
	}

	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	logger.Debug("store opened", "path", dbPath, "curricula", catalog.Len())

	ps := progress.NewStore(st.Medium(),
		progress.WithLogger(logger),
		progress.WithJournal(st.History()))

	return &workspace{
		store:   st,
		catalog: catalog,
		svc:     eligibility.NewService(ps),
	}, nil
}

// curriculum returns the configured curriculum.
func (w *workspace) curriculum() (*curriculum.Curriculum, error) {
	cur, err := w.catalog.Get(cfg.Curriculum)
	if err != nil {
		return nil, fmt.Errorf("%w (available: %v)", err, w.catalog.IDs())
	}
	return cur, nil
}

// courseCode resolves a course code typed on the command line against cur.
func courseCode(cur *curriculum.Curriculum, input string) (string, error) {
	code, ok := cur.Resolve(input)
	if !ok {
		return "", fmt.Errorf("course %s is not part of %s", input, cur.ID)
	}
	return code, nil
}

func (w *workspace) Close() error {
	return w.store.Close()
}
