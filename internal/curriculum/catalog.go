package curriculum

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
)

// DocumentPattern matches curriculum documents below a catalog directory.
const DocumentPattern = "**/*.{json,yaml,yml}"

// DefaultID is the ID of the embedded sample curriculum.
const DefaultID = "comp-eng-tec"

//go:embed data/*.json
var builtinFS embed.FS

// Catalog is an ordered set of curricula keyed by ID.
type Catalog struct {
	order []string
	byID  map[string]*Curriculum
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{byID: make(map[string]*Curriculum)}
}

// Add registers a curriculum. IDs must be unique within a catalog.
func (c *Catalog) Add(cur *Curriculum) error {
	if cur.ID == "" {
		return fmt.Errorf("add curriculum: empty ID")
	}
	if _, exists := c.byID[cur.ID]; exists {
		return fmt.Errorf("add curriculum: duplicate ID %q", cur.ID)
	}
	c.order = append(c.order, cur.ID)
	c.byID[cur.ID] = cur
	return nil
}

// Get returns the curriculum with the given ID.
func (c *Catalog) Get(id string) (*Curriculum, error) {
	cur, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return cur, nil
}

// List returns the curricula in load order.
func (c *Catalog) List() []*Curriculum {
	result := make([]*Curriculum, 0, len(c.order))
	for _, id := range c.order {
		result = append(result, c.byID[id])
	}
	return result
}

// IDs returns the curriculum IDs in load order.
func (c *Catalog) IDs() []string {
	return slices.Clone(c.order)
}

// Len returns the number of curricula in the catalog.
func (c *Catalog) Len() int {
	return len(c.order)
}

// LoadDir loads every curriculum document found below dir.
// Files are visited in lexical order so the catalog order is stable.
func LoadDir(dir string) (*Catalog, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), DocumentPattern)
	if err != nil {
		return nil, fmt.Errorf("glob curricula in %s: %w", dir, err)
	}
	slices.Sort(matches)

	cat := NewCatalog()
	for _, m := range matches {
		cur, err := LoadFile(filepath.Join(dir, filepath.FromSlash(m)))
		if err != nil {
			return nil, err
		}
		if err := cat.Add(cur); err != nil {
			return nil, fmt.Errorf("load %s: %w", m, err)
		}
	}
	if cat.Len() == 0 {
		return nil, fmt.Errorf("no curriculum documents found in %s", dir)
	}
	return cat, nil
}

// Builtin returns the catalog of curricula embedded in the binary.
var Builtin = sync.OnceValues(func() (*Catalog, error) {
	entries, err := builtinFS.ReadDir("data")
	if err != nil {
		return nil, fmt.Errorf("read builtin curricula: %w", err)
	}
	cat := NewCatalog()
	for _, e := range entries {
		name := "data/" + e.Name()
		f, err := builtinFS.Open(name)
		if err != nil {
			return nil, fmt.Errorf("open builtin curriculum: %w", err)
		}
		cur, err := Load(f, FormatJSON, name)
		f.Close()
		if err != nil {
			return nil, err
		}
		if err := cat.Add(cur); err != nil {
			return nil, err
		}
	}
	return cat, nil
})
