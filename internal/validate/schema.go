package validate

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"

	"chartspec/internal/ir"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed spec.schema.json
var builtinSchema []byte

const builtinURL = "chartspec://spec.schema.json"

var (
	schemaCacheMu sync.Mutex
	schemaCache   = make(map[string]*jsonschema.Schema)
)

// Schema is a compiled JSON schema for emitted specs.
type Schema struct {
	compiled *jsonschema.Schema
}

// Builtin returns the schema shipped with the package.
func Builtin() (*Schema, error) {
	schemaCacheMu.Lock()
	defer schemaCacheMu.Unlock()
	if cached, ok := schemaCache[builtinURL]; ok {
		return &Schema{compiled: cached}, nil
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(builtinURL, bytes.NewReader(builtinSchema)); err != nil {
		return nil, fmt.Errorf("failed to load builtin schema: %w", err)
	}
	compiled, err := compiler.Compile(builtinURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile builtin schema: %w", err)
	}
	schemaCache[builtinURL] = compiled
	return &Schema{compiled: compiled}, nil
}

// LoadSchema compiles the schema file at path. Compiled schemas are cached
// by absolute path.
func LoadSchema(path string) (*Schema, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	schemaCacheMu.Lock()
	if cached, ok := schemaCache[abs]; ok {
		schemaCacheMu.Unlock()
		return &Schema{compiled: cached}, nil
	}
	schemaCacheMu.Unlock()

	compiler := jsonschema.NewCompiler()
	compiled, err := compiler.Compile("file://" + filepath.ToSlash(abs))
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", path, err)
	}

	schemaCacheMu.Lock()
	schemaCache[abs] = compiled
	schemaCacheMu.Unlock()
	return &Schema{compiled: compiled}, nil
}

// Validate checks a JSON document.
func (s *Schema) Validate(doc []byte) error {
	var v any
	if err := json.Unmarshal(doc, &v); err != nil {
		return fmt.Errorf("failed to parse document: %w", err)
	}
	if err := s.compiled.Validate(v); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// ValidateSpec marshals spec the way it is emitted and checks it.
func (s *Schema) ValidateSpec(spec ir.Spec) error {
	raw, err := ir.Marshal(spec, false)
	if err != nil {
		return fmt.Errorf("failed to marshal spec for schema validation: %w", err)
	}
	return s.Validate(raw)
}
