package curriculum

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.json"), jsonDoc)
	writeFile(t, filepath.Join(dir, "nested", "b.yaml"), yamlDoc)
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	cat, err := LoadDir(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"demo", "demo-yaml"}, cat.IDs())
	assert.Equal(t, 2, cat.Len())

	c, err := cat.Get("demo-yaml")
	require.NoError(t, err)
	assert.Equal(t, "Demo Program (YAML)", c.Name)
}

func TestLoadDir_DuplicateIDs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.json"), jsonDoc)
	writeFile(t, filepath.Join(dir, "b.json"), jsonDoc)

	_, err := LoadDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestLoadDir_Empty(t *testing.T) {
	_, err := LoadDir(t.TempDir())
	assert.Error(t, err)
}

func TestLoadDir_InvalidDocument(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.json"), `{"id": 1}`)

	_, err := LoadDir(dir)
	var invalid *ErrInvalidDocument
	assert.True(t, errors.As(err, &invalid))
}

func TestCatalog_GetNotFound(t *testing.T) {
	cat := NewCatalog()
	_, err := cat.Get("nope")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCatalog_AddRejectsEmptyID(t *testing.T) {
	cat := NewCatalog()
	assert.Error(t, cat.Add(New("", "x")))
}

func TestBuiltin(t *testing.T) {
	cat, err := Builtin()
	require.NoError(t, err)

	c, err := cat.Get(DefaultID)
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, 58, c.TotalCredits())

	// Block totals match their courses in the sample data.
	for _, b := range c.Blocks {
		assert.Equal(t, b.TotalCredits, b.CourseCredits(), "block %d", b.ID)
	}

	ic2001, ok := c.Course("IC2001")
	require.True(t, ok)
	assert.Equal(t, []string{"IC2101"}, ic2001.Corequisites)
}
