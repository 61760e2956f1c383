package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kgscaffold/kgscaffold/internal/config"
	"github.com/kgscaffold/kgscaffold/internal/manifest"
	"github.com/kgscaffold/kgscaffold/internal/output"
	"github.com/kgscaffold/kgscaffold/internal/pypi"
)

var (
	lookupFallback string
	lookupStrict   bool
)

func init() {
	lookupCmd.Flags().StringVar(&lookupFallback, "fallback", "", "Version to print when the lookup fails")
	lookupCmd.Flags().BoolVar(&lookupStrict, "strict", false, "Fail instead of printing the fallback version")
	rootCmd.AddCommand(lookupCmd)
}

var lookupCmd = &cobra.Command{
	Use:   "lookup [package]",
	Short: "Print the latest published version of a package",
	Long: `Query the package index for the latest version of a package. Without an
argument the template's graph library is looked up. On any failure the
fallback version is printed instead, unless --strict is set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := config.Resolve()
		dep := dependencyFor(manifest.Default(), settings)

		name := dep.Name
		if len(args) == 1 {
			name = args[0]
		}
		fallback := dep.Fallback
		if lookupFallback != "" {
			fallback = lookupFallback
		}

		return runLookup(cmd, newIndexClient(settings), name, fallback, lookupStrict)
	},
}

func runLookup(cmd *cobra.Command, client *pypi.Client, name, fallback string, strict bool) error {
	w := cmd.OutOrStdout()
	if strict {
		version, err := client.Latest(cmd.Context(), name)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, version)
		return nil
	}
	fmt.Fprintln(w, client.LatestOrFallback(cmd.Context(), name, fallback))
	return nil
}

// newIndexClient builds a package index client from the resolved settings.
func newIndexClient(settings config.Settings) *pypi.Client {
	return pypi.New(
		pypi.WithBaseURL(settings.IndexURL),
		pypi.WithTimeout(settings.LookupTimeout),
		pypi.WithLogger(output.Logger),
	)
}

// dependencyFor applies the user's config overrides to the manifest's
// dependency.
func dependencyFor(m *manifest.Manifest, settings config.Settings) manifest.Dependency {
	dep := m.Dependency
	if settings.DependencyName != "" {
		dep.Name = settings.DependencyName
	}
	if settings.FallbackVersion != "" {
		dep.Fallback = settings.FallbackVersion
	}
	return dep
}
