package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/kgscaffold/kgscaffold/internal/branding"
	"github.com/kgscaffold/kgscaffold/internal/config"
	"github.com/kgscaffold/kgscaffold/internal/manifest"
	"github.com/kgscaffold/kgscaffold/internal/pypi"
)

var (
	doctorDir      string
	doctorManifest string
)

func init() {
	doctorCmd.Flags().StringVarP(&doctorDir, "dir", "d", ".", "Project directory whose manifest is checked")
	doctorCmd.Flags().StringVar(&doctorManifest, "manifest", branding.ProjectConfig(), "Template manifest relative to --dir")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the environment the hooks run in",
	Long: `Run diagnostic checks: git availability, package index reachability,
the configured fallback version and the project manifest.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := config.Resolve()
		runDoctor(cmd.Context(), cmd.OutOrStdout(), settings, newIndexClient(settings), doctorDir, doctorManifest)
		return nil
	},
}

func runDoctor(ctx context.Context, w io.Writer, settings config.Settings, client *pypi.Client, dir, manifestPath string) {
	fmt.Fprintln(w, "Runtime check:")
	checkBinary(w, "git")

	manifestPath = manifestPathOrDefault(manifestPath)

	fmt.Fprintln(w, "Package index check:")
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	fs := afero.NewBasePathFs(afero.NewOsFs(), dir)
	m := loadManifest(fs, manifestPath)
	dep := dependencyFor(m, settings)
	checkIndex(ctx, w, client, dep)

	fmt.Fprintln(w, "Manifest check:")
	checkManifest(w, fs, dir, manifestPath)

	fmt.Fprintln(w, "Config check:")
	if _, err := os.Stat(config.FilePath()); err != nil {
		fmt.Fprintf(w, "  [INFO] no config file at %s, using defaults\n", config.FilePath())
	} else {
		fmt.Fprintf(w, "  [ OK ] %s\n", config.FilePath())
	}
}

func checkBinary(w io.Writer, name string) {
	path, err := exec.LookPath(name)
	if err != nil {
		fmt.Fprintf(w, "  [MISS] %s not found\n", name)
		return
	}
	fmt.Fprintf(w, "  [ OK ] %s found at %s\n", name, path)
}

func checkIndex(ctx context.Context, w io.Writer, client *pypi.Client, dep manifest.Dependency) {
	latest, err := client.Latest(ctx, dep.Name)
	if err != nil {
		fmt.Fprintf(w, "  [WARN] %s unreachable, %s will be pinned to %s: %v\n", client.BaseURL(), dep.Name, dep.Fallback, err)
		return
	}
	fmt.Fprintf(w, "  [ OK ] %s %s available from %s\n", dep.Name, latest, client.BaseURL())

	if _, err := pypi.ParseVersion(dep.Fallback); err != nil {
		fmt.Fprintf(w, "  [WARN] fallback version %q is not a valid version\n", dep.Fallback)
		return
	}
	cmp, err := pypi.CompareVersions(dep.Fallback, latest)
	switch {
	case err != nil:
		fmt.Fprintf(w, "  [INFO] %s is not a semantic version, fallback %s not compared\n", latest, dep.Fallback)
	case cmp < 0:
		fmt.Fprintf(w, "  [INFO] fallback version %s is older than %s\n", dep.Fallback, latest)
	}
}

func checkManifest(w io.Writer, fs afero.Fs, dir, path string) {
	loaded, err := manifest.Load(fs, path)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return
	}
	if len(loaded.Issues) > 0 {
		fmt.Fprintf(w, "  [FAIL] %d validation issue(s) in %s:\n", len(loaded.Issues), filepath.Join(dir, path))
		for _, issue := range loaded.Issues {
			fmt.Fprintf(w, "    - %s\n", issue.String())
		}
		return
	}
	if loaded.Source == manifest.SourceEmbedded {
		fmt.Fprintln(w, "  [ OK ] no project manifest, using the built-in one")
		return
	}
	fmt.Fprintf(w, "  [ OK ] %s is valid\n", filepath.Join(dir, path))
}
