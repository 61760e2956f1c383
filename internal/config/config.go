package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/kgscaffold/kgscaffold/internal/branding"
	"github.com/kgscaffold/kgscaffold/internal/pypi"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys.
const (
	KeyIndexURL        = "index_url"
	KeyLookupTimeout   = "lookup_timeout"
	KeyHandoffFile     = "handoff_file"
	KeyDependencyName  = "dependency_name"
	KeyFallbackVersion = "fallback_version"
)

// Keys lists every recognized setting.
var Keys = []string{KeyIndexURL, KeyLookupTimeout, KeyHandoffFile, KeyDependencyName, KeyFallbackVersion}

// Settings is the resolved configuration handed to the hooks.
type Settings struct {
	IndexURL      string
	LookupTimeout time.Duration
	HandoffFile   string
	// DependencyName and FallbackVersion override the template manifest
	// when set.
	DependencyName  string
	FallbackVersion string
}

// Dir returns the path to the config directory (~/.kgscaffold/).
func Dir() string {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyIndexURL, pypi.DefaultBaseURL)
	viper.SetDefault(KeyLookupTimeout, pypi.DefaultTimeout)
	viper.SetDefault(KeyHandoffFile, branding.HandoffFile())

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Resolve reads the current settings out of Viper. Call Load first.
func Resolve() Settings {
	return Settings{
		IndexURL:        viper.GetString(KeyIndexURL),
		LookupTimeout:   viper.GetDuration(KeyLookupTimeout),
		HandoffFile:     viper.GetString(KeyHandoffFile),
		DependencyName:  viper.GetString(KeyDependencyName),
		FallbackVersion: viper.GetString(KeyFallbackVersion),
	}
}

// Validate checks the values Resolve would otherwise coerce silently.
func Validate() error {
	if v := viper.GetString(KeyLookupTimeout); v != "" {
		if _, err := time.ParseDuration(v); err != nil {
			return fmt.Errorf("invalid %s %q: %w", KeyLookupTimeout, v, err)
		}
	}
	return nil
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// IsKnown reports whether key is a recognized setting.
func IsKnown(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !IsKnown(key) {
		return fmt.Errorf("unknown config key %q", key)
	}
	if key == KeyLookupTimeout {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid duration %q: %w", value, err)
		}
	}

	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
