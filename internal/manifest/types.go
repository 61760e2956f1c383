package manifest

import (
	"strings"
)

// Manifest lists everything the finalizer rewrites or creates.
type Manifest struct {
	Tokens      Tokens     `yaml:"tokens" json:"tokens"`
	Targets     []string   `yaml:"targets" json:"targets"`
	Directories []string   `yaml:"directories" json:"directories"`
	Dependency  Dependency `yaml:"dependency" json:"dependency"`
}

// Tokens are the literal placeholders left in the rendered files.
type Tokens struct {
	ClassName  string `yaml:"class_name" json:"class_name"`
	PascalName string `yaml:"pascal_name" json:"pascal_name"`
}

// Dependency describes the version pin patched into the build manifest.
type Dependency struct {
	Name        string `yaml:"name" json:"name"`
	Manifest    string `yaml:"manifest" json:"manifest"`
	Placeholder string `yaml:"placeholder" json:"placeholder"`
	Constraint  string `yaml:"constraint" json:"constraint"`
	Fallback    string `yaml:"fallback" json:"fallback"`
}

// snakeVar is expanded in target paths to the adapter's snake form.
const snakeVar = "{snake}"

// versionVar is expanded in Dependency.Constraint to the resolved version.
const versionVar = "{version}"

// ResolveTargets returns the target paths with {snake} expanded.
func (m *Manifest) ResolveTargets(snake string) []string {
	out := make([]string, 0, len(m.Targets))
	for _, t := range m.Targets {
		out = append(out, strings.ReplaceAll(t, snakeVar, snake))
	}
	return out
}

// Pin renders the version constraint for version.
func (d Dependency) Pin(version string) string {
	return strings.ReplaceAll(d.Constraint, versionVar, version)
}

// withDefaults fills every empty field of m from def.
func (m *Manifest) withDefaults(def *Manifest) *Manifest {
	out := *m
	if out.Tokens.ClassName == "" {
		out.Tokens.ClassName = def.Tokens.ClassName
	}
	if out.Tokens.PascalName == "" {
		out.Tokens.PascalName = def.Tokens.PascalName
	}
	if out.Targets == nil {
		out.Targets = append([]string(nil), def.Targets...)
	}
	if out.Directories == nil {
		out.Directories = append([]string(nil), def.Directories...)
	}
	d := &out.Dependency
	if d.Name == "" {
		d.Name = def.Dependency.Name
	}
	if d.Manifest == "" {
		d.Manifest = def.Dependency.Manifest
	}
	if d.Placeholder == "" {
		d.Placeholder = def.Dependency.Placeholder
	}
	if d.Constraint == "" {
		d.Constraint = def.Dependency.Constraint
	}
	if d.Fallback == "" {
		d.Fallback = def.Dependency.Fallback
	}
	return &out
}
