package curriculum

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a curriculum document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the document format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported curriculum file extension: %q", filepath.Ext(path))
	}
}

//go:embed curriculum.schema.json
var schemaJSON []byte

const schemaURL = "schema://curriculum.json"

// compiledSchema compiles the embedded document schema once.
var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	// The jsonschema library expects a parsed JSON value (any), not raw bytes.
	def, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return compiled, nil
})

// LoadFile reads and decodes the curriculum document at path.
func LoadFile(path string) (*Curriculum, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open curriculum file: %w", err)
	}
	defer f.Close()
	return Load(f, format, path)
}

// Load decodes a curriculum document. The document is checked against the
// curriculum schema; structural problems found by Validate are logged but do
// not fail the load, since eligibility treats dangling references as unmet.
func Load(r io.Reader, format Format, source string) (*Curriculum, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read curriculum %s: %w", source, err)
	}

	data, err := toJSON(raw, format)
	if err != nil {
		return nil, &ErrInvalidDocument{Source: source, Err: err}
	}

	if err := validateDocument(data); err != nil {
		return nil, &ErrInvalidDocument{Source: source, Err: err}
	}

	var c Curriculum
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, &ErrInvalidDocument{Source: source, Err: fmt.Errorf("decode: %w", err)}
	}

	if c.Version != "" {
		v := c.Version
		if !strings.HasPrefix(v, "v") {
			v = "v" + v
		}
		if !semver.IsValid(v) {
			return nil, &ErrInvalidDocument{Source: source, Err: fmt.Errorf("version %q is not a semantic version", c.Version)}
		}
		c.Version = semver.Canonical(v)
	}

	for _, p := range c.problems() {
		slog.Warn("curriculum problem", "curriculum", c.ID, "source", source, "problem", p)
	}

	return &c, nil
}

// toJSON normalizes a document to JSON bytes.
func toJSON(raw []byte, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return raw, nil
	case FormatYAML:
		var doc any
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		b, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("convert yaml: %w", err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// validateDocument checks raw JSON against the curriculum schema.
func validateDocument(data []byte) error {
	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	compiled, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile curriculum schema: %w", err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
