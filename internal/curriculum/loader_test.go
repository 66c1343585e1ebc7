package curriculum

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonDoc = `{
  "id": "demo",
  "name": "Demo Program",
  "version": "1.2.0",
  "blocks": [
    {"id": 1, "name": "One", "totalCredits": 7, "courses": [
      {"code": "A", "name": "Alpha", "credits": 3},
      {"code": "B", "name": "Beta", "credits": 4, "prerequisites": ["A"], "corequisites": ["A"]}
    ]}
  ]
}`

const yamlDoc = `
id: demo-yaml
name: Demo Program (YAML)
blocks:
  - id: 1
    name: One
    totalCredits: 5
    courses:
      - code: A
        name: Alpha
        credits: 2
      - code: B
        name: Beta
        credits: 3
        prerequisites: [A]
`

func TestLoad_JSON(t *testing.T) {
	c, err := Load(strings.NewReader(jsonDoc), FormatJSON, "demo.json")
	require.NoError(t, err)

	assert.Equal(t, "demo", c.ID)
	assert.Equal(t, "v1.2.0", c.Version)
	assert.Equal(t, 7, c.TotalCredits())

	b, ok := c.Course("B")
	require.True(t, ok)
	assert.Equal(t, []string{"A"}, b.Prerequisites)
	assert.Equal(t, []string{"A"}, b.Corequisites)
}

func TestLoad_YAML(t *testing.T) {
	c, err := Load(strings.NewReader(yamlDoc), FormatYAML, "demo.yaml")
	require.NoError(t, err)

	assert.Equal(t, "demo-yaml", c.ID)
	assert.Empty(t, c.Version)
	assert.Len(t, c.Courses(), 2)
	assert.Equal(t, 5, c.TotalCredits())
}

func TestLoad_InvalidDocuments(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		doc    string
	}{
		{"malformed json", FormatJSON, `{"id": `},
		{"malformed yaml", FormatYAML, "id: [unterminated"},
		{"missing blocks", FormatJSON, `{"id": "x", "name": "X"}`},
		{"zero credits", FormatJSON, `{"id": "x", "name": "X", "blocks": [{"id": 1, "name": "b", "totalCredits": 0, "courses": [{"code": "A", "name": "a", "credits": 0}]}]}`},
		{"credits as string", FormatJSON, `{"id": "x", "name": "X", "blocks": [{"id": 1, "name": "b", "totalCredits": 3, "courses": [{"code": "A", "name": "a", "credits": "3"}]}]}`},
		{"bad version", FormatJSON, `{"id": "x", "name": "X", "version": "latest", "blocks": []}`},
		{"empty yaml", FormatYAML, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc), tt.format, "test")
			require.Error(t, err)

			var invalid *ErrInvalidDocument
			assert.True(t, errors.As(err, &invalid), "expected ErrInvalidDocument, got %T", err)
		})
	}
}

func TestLoad_DanglingReferencesStillLoad(t *testing.T) {
	doc := `{"id": "x", "name": "X", "blocks": [{"id": 1, "name": "b", "totalCredits": 3, "courses": [
		{"code": "A", "name": "a", "credits": 3, "prerequisites": ["GHOST"]}]}]}`
	c, err := Load(strings.NewReader(doc), FormatJSON, "test")
	require.NoError(t, err)
	assert.Error(t, c.Validate())
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"a.json", FormatJSON, false},
		{"dir/a.YAML", FormatYAML, false},
		{"a.yml", FormatYAML, false},
		{"a.toml", "", true},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if tt.wantErr {
			assert.Error(t, err, tt.path)
			continue
		}
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.json")
	require.NoError(t, os.WriteFile(path, []byte(jsonDoc), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", c.ID)

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
