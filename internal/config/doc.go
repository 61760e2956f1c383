// Package config manages user-level settings stored at ~/.kgscaffold/config.yaml.
// Values can also come from KGSCAFFOLD_* environment variables; flags bound by
// the CLI take precedence over both.
package config
