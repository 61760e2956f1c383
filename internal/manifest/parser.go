package manifest

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"go.yaml.in/yaml/v3"

	"github.com/kgscaffold/kgscaffold/internal/validate"
)

//go:embed default.yaml
var defaultManifest []byte

// Source tells where a loaded manifest came from.
type Source string

const (
	SourceEmbedded Source = "embedded"
	SourceProject  Source = "project"
)

// Loaded is the outcome of Load.
type Loaded struct {
	Manifest *Manifest
	Source   Source
	Path     string
	// Issues is non-empty when the project file was rejected and the
	// embedded default was used instead.
	Issues []validate.Issue
}

// Default returns a fresh copy of the embedded manifest.
func Default() *Manifest {
	m, err := Parse(defaultManifest)
	if err != nil {
		panic(fmt.Sprintf("embedded manifest: %v", err))
	}
	return m
}

// Parse decodes manifest YAML without schema validation.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &m, nil
}

// Load reads the project override at path from fs. A missing file yields the
// embedded default. A file that fails validation also yields the default,
// with the problems reported in Loaded.Issues. Only read errors other than
// "not found" are returned.
func Load(fs afero.Fs, path string) (*Loaded, error) {
	def := Default()

	data, err := afero.ReadFile(fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return &Loaded{Manifest: def, Source: SourceEmbedded}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	result, err := Validate(data)
	if err != nil {
		return &Loaded{
			Manifest: def,
			Source:   SourceEmbedded,
			Path:     path,
			Issues:   []validate.Issue{{Message: err.Error()}},
		}, nil
	}
	if !result.Valid {
		return &Loaded{Manifest: def, Source: SourceEmbedded, Path: path, Issues: result.Issues}, nil
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &Loaded{Manifest: m.withDefaults(def), Source: SourceProject, Path: path}, nil
}
