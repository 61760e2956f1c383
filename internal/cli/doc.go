// Package cli defines the Cobra command tree for the kgscaffold CLI. Each file
// registers one top-level command with the root command. Commands only parse
// flags and format output; the work happens in the internal packages.
package cli
