// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed, so a fork can rename the tool without touching code.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName       string `yaml:"cli_name"`
	DisplayName   string `yaml:"display_name"`
	Description   string `yaml:"description"`
	HomeDir       string `yaml:"home_dir"`
	EnvPrefix     string `yaml:"env_prefix"`
	GoModule      string `yaml:"go_module"`
	ProjectConfig string `yaml:"project_config"`
	HandoffFile   string `yaml:"handoff_file"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:       "kgscaffold",
			DisplayName:   "KG Scaffold",
			Description:   "Pre/post generation hooks for knowledge-graph adapter templates",
			HomeDir:       ".kgscaffold",
			EnvPrefix:     "KGSCAFFOLD",
			GoModule:      "github.com/kgscaffold/kgscaffold",
			ProjectConfig: ".kgscaffold.yaml",
			HandoffFile:   "generated_names.txt",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "kgscaffold").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".kgscaffold").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "KGSCAFFOLD").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path. Not consumed at runtime.
func GoModule() string { load(); return defaults.GoModule }

// ProjectConfig returns the file name of the per-project manifest override.
func ProjectConfig() string { load(); return defaults.ProjectConfig }

// HandoffFile returns the default name of the pre/post hook hand-off file.
func HandoffFile() string { load(); return defaults.HandoffFile }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "KGSCAFFOLD_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
