package manifest

import (
	_ "embed"
	"fmt"
	"sync"

	"go.yaml.in/yaml/v3"

	"github.com/kgscaffold/kgscaffold/internal/validate"
)

//go:embed schema/manifest.schema.json
var schemaBytes []byte

var (
	compiledSchema *validate.Schema
	compileOnce    sync.Once
	compileErr     error
)

func getSchema() (*validate.Schema, error) {
	compileOnce.Do(func() {
		compiledSchema, compileErr = validate.Compile("manifest.schema.json", schemaBytes)
	})
	return compiledSchema, compileErr
}

// Validate validates raw YAML bytes against the manifest schema.
// The error return is for YAML syntax or schema compilation failures.
// Schema violations are returned in the Result.
func Validate(data []byte) (*validate.Result, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if raw == nil {
		raw = map[string]interface{}{}
	}
	return schema.ValidateValue(raw)
}
