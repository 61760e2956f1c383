package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/kgscaffold/kgscaffold/internal/branding"
	"github.com/kgscaffold/kgscaffold/internal/config"
	"github.com/kgscaffold/kgscaffold/internal/finalize"
	"github.com/kgscaffold/kgscaffold/internal/manifest"
	"github.com/kgscaffold/kgscaffold/internal/output"
	"github.com/kgscaffold/kgscaffold/internal/vcs"
)

var (
	finalizeDir      string
	finalizeProject  string
	finalizeVersion  string
	finalizeHandoff  string
	finalizeManifest string
	finalizeNoGit    bool
)

func init() {
	finalizeCmd.Flags().StringVarP(&finalizeDir, "dir", "d", ".", "Generated project directory")
	finalizeCmd.Flags().StringVar(&finalizeProject, "project", "", "Project name used in messages and the initial commit (default: directory name)")
	finalizeCmd.Flags().StringVar(&finalizeVersion, "dependency-version", finalize.LatestVersion, `Graph library version chosen in the template; "latest" looks it up`)
	finalizeCmd.Flags().StringVar(&finalizeHandoff, "handoff", "", "Hand-off file name relative to --dir (default from config)")
	finalizeCmd.Flags().StringVar(&finalizeManifest, "manifest", branding.ProjectConfig(), "Template manifest relative to --dir")
	finalizeCmd.Flags().BoolVar(&finalizeNoGit, "no-git", false, "Skip git repository initialization")
	rootCmd.AddCommand(finalizeCmd)
}

var finalizeCmd = &cobra.Command{
	Use:   "finalize",
	Short: "Fill in placeholders and initialize the generated project",
	Long: `Finish a generated adapter project: read the names written by "derive",
pin the graph library version, replace the name placeholders in the generated
files, create the working directories and make the initial git commit.

Every step is best-effort. Failures are reported and the remaining steps still
run; the command exits 0 unless the project directory itself is unusable.

Run this as the template's post-generation hook.`,
	Example: `  kgscaffold finalize
  kgscaffold finalize --dir ./weather-kg --project "Weather KG" --no-git`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := config.Resolve()
		params := finalizeParams{
			Dir:               finalizeDir,
			Project:           finalizeProject,
			DependencyVersion: finalizeVersion,
			Handoff:           finalizeHandoff,
			Manifest:          finalizeManifest,
			NoGit:             finalizeNoGit,
			Settings:          settings,
		}
		_, err := runFinalize(cmd.Context(), cmd.OutOrStdout(), params, newIndexClient(settings), vcs.ExecRunner{})
		return err
	},
}

type finalizeParams struct {
	Dir               string
	Project           string
	DependencyVersion string
	Handoff           string
	Manifest          string
	NoGit             bool
	Settings          config.Settings
}

func runFinalize(ctx context.Context, w io.Writer, p finalizeParams, lookup finalize.VersionLookup, git vcs.Runner) (*finalize.Report, error) {
	dir, err := filepath.Abs(p.Dir)
	if err != nil {
		return nil, fmt.Errorf("resolving project directory: %w", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("project directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project directory %s is not a directory", dir)
	}

	fs := afero.NewBasePathFs(afero.NewOsFs(), dir)
	m := loadManifest(fs, manifestPathOrDefault(p.Manifest))
	m.Dependency = dependencyFor(m, p.Settings)

	handoffFile := p.Handoff
	if handoffFile == "" {
		handoffFile = p.Settings.HandoffFile
	}
	if handoffFile == "" {
		handoffFile = branding.HandoffFile()
	}

	project := p.Project
	if project == "" {
		project = filepath.Base(dir)
	}

	fmt.Fprintf(w, "Setting up %s...\n", project)

	report := finalize.Run(ctx, finalize.Options{
		Fs:                fs,
		Dir:               dir,
		Manifest:          m,
		HandoffFile:       handoffFile,
		DependencyVersion: p.DependencyVersion,
		ProjectName:       project,
		Lookup:            lookup,
		Git:               git,
		SkipGit:           p.NoGit,
		Logger:            output.Logger,
		OnStep: func(s finalize.StepResult) {
			fmt.Fprintln(w, output.FormatStatus(string(s.Status), s.Name, s.Detail))
		},
	})

	printSummary(w, report)
	printNextSteps(w, project, filepath.Base(dir))
	return report, nil
}

// manifestPathOrDefault returns path, or the project manifest name when path
// is empty.
func manifestPathOrDefault(path string) string {
	if path == "" {
		return branding.ProjectConfig()
	}
	return path
}

// loadManifest returns the project's manifest override, or the embedded
// default when there is none or it cannot be used.
func loadManifest(fs afero.Fs, path string) *manifest.Manifest {
	loaded, err := manifest.Load(fs, path)
	if err != nil {
		output.Warn("using the built-in manifest", "error", err)
		return manifest.Default()
	}
	for _, issue := range loaded.Issues {
		output.Warn("invalid manifest, using the built-in one", "path", loaded.Path, "issue", issue.String())
	}
	if loaded.Source == manifest.SourceProject {
		output.Debug("manifest loaded", "path", loaded.Path)
	}
	return loaded.Manifest
}

func printSummary(w io.Writer, report *finalize.Report) {
	counts := report.Counts()
	summary := fmt.Sprintf("%d ok, %d skipped, %d failed",
		counts[finalize.StatusOK], counts[finalize.StatusSkipped], counts[finalize.StatusFailed])
	fmt.Fprintln(w)
	fmt.Fprintln(w, output.StyleSummary.Render(summary))
	for _, s := range report.Failed() {
		fmt.Fprintf(w, "  %s: %s\n", s.Name, s.Detail)
	}
}

func printNextSteps(w io.Writer, project, dir string) {
	fmt.Fprintf(w, "\n🎉 %s setup complete!\n", project)
	fmt.Fprintln(w, "\nNext steps:")
	fmt.Fprintf(w, "1. cd %s\n", dir)
	fmt.Fprintln(w, "2. pip install -e .  # or uv sync")
	fmt.Fprintln(w, "3. Configure your data source in create_knowledge_graph.py")
	fmt.Fprintln(w, "4. Update config/schema_config.yaml if needed")
	fmt.Fprintln(w, "5. python create_knowledge_graph.py")
}
