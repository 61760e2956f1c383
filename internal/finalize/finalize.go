package finalize

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/kgscaffold/kgscaffold/internal/handoff"
	"github.com/kgscaffold/kgscaffold/internal/manifest"
	"github.com/kgscaffold/kgscaffold/internal/naming"
	"github.com/kgscaffold/kgscaffold/internal/vcs"
)

// LatestVersion is the dependency version value that asks for an index lookup.
const LatestVersion = "latest"

// Names used when the hand-off file is missing.
var DefaultNames = naming.Names{
	Original: "My",
	Pascal:   "My",
	Snake:    "my",
	Class:    "MyAdapter",
}

// VersionLookup resolves the latest version of a package, falling back on failure.
type VersionLookup interface {
	LatestOrFallback(ctx context.Context, name, fallback string) string
}

// Options configures a finalizer run.
type Options struct {
	// Fs is rooted at the generated project. All paths below are relative to it.
	Fs afero.Fs
	// Dir is the project directory on disk, used as the git working tree.
	Dir string

	Manifest    *manifest.Manifest
	HandoffFile string
	// DependencyVersion is the version the template user asked for. Only
	// LatestVersion triggers a lookup.
	DependencyVersion string
	ProjectName       string

	Lookup VersionLookup
	Git    vcs.Runner
	// SkipGit disables repository initialization.
	SkipGit bool

	Logger *log.Logger
	// OnStep, if set, is called as soon as each step finishes.
	OnStep func(StepResult)
}

type run struct {
	ctx    context.Context
	opts   Options
	report *Report
	logger *log.Logger
}

// Run executes every setup step and returns the report. It does not stop on
// failures and does not return an error.
func Run(ctx context.Context, opts Options) *Report {
	if opts.Manifest == nil {
		opts.Manifest = manifest.Default()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	r := &run{ctx: ctx, opts: opts, report: &Report{}, logger: opts.Logger}

	r.readNames()
	r.pinDependency()
	r.substitute()
	r.makeDirectories()
	r.initRepository()

	return r.report
}

func (r *run) record(name string, status Status, detail string) {
	s := r.report.add(name, status, detail)
	if status == StatusFailed {
		r.logger.Warn("step failed", "step", name, "error", detail)
	} else {
		r.logger.Debug("step finished", "step", name, "status", status, "detail", detail)
	}
	if r.opts.OnStep != nil {
		r.opts.OnStep(s)
	}
}

// StepHandoff is the name of the hand-off step.
const StepHandoff = "read generated names"

func (r *run) readNames() {
	r.report.Names = DefaultNames
	if r.opts.HandoffFile == "" {
		r.record(StepHandoff, StatusSkipped, "no hand-off file configured, using defaults")
		return
	}

	rec, found, err := handoff.Consume(r.opts.Fs, r.opts.HandoffFile)
	switch {
	case err != nil && !found:
		r.record(StepHandoff, StatusFailed, err.Error())
		return
	case !found:
		r.record(StepHandoff, StatusSkipped, r.opts.HandoffFile+" not found, using defaults")
		return
	}

	names := rec.Names()
	r.report.Names = names

	detail := names.Class
	if len(rec.Skipped) > 0 {
		detail += fmt.Sprintf(" (%d unreadable lines ignored)", len(rec.Skipped))
	}
	if err != nil {
		// Read succeeded but the file could not be removed.
		r.record(StepHandoff, StatusFailed, err.Error())
		return
	}
	r.record(StepHandoff, StatusOK, detail)
}

func (r *run) pinDependency() {
	dep := r.opts.Manifest.Dependency
	name := "pin " + dep.Name + " in " + dep.Manifest

	if r.opts.DependencyVersion != LatestVersion {
		r.record(name, StatusSkipped, "version set to "+quoteEmpty(r.opts.DependencyVersion))
		return
	}

	exists, err := afero.Exists(r.opts.Fs, dep.Manifest)
	if err != nil {
		r.record(name, StatusFailed, err.Error())
		return
	}
	if !exists {
		r.record(name, StatusSkipped, dep.Manifest+" not found")
		return
	}

	version := dep.Fallback
	if r.opts.Lookup != nil {
		version = r.opts.Lookup.LatestOrFallback(r.ctx, dep.Name, dep.Fallback)
	}
	r.report.Version = version

	changed, err := replaceInFile(r.opts.Fs, dep.Manifest, strings.NewReplacer(dep.Placeholder, dep.Pin(version)))
	switch {
	case err != nil:
		r.record(name, StatusFailed, err.Error())
	case !changed:
		r.record(name, StatusSkipped, fmt.Sprintf("%q not found in %s", dep.Placeholder, dep.Manifest))
	default:
		r.record(name, StatusOK, dep.Pin(version))
	}
}

func (r *run) substitute() {
	tokens := r.opts.Manifest.Tokens
	names := r.report.Names
	replacer := strings.NewReplacer(
		tokens.ClassName, names.Class,
		tokens.PascalName, names.Pascal,
	)

	seen := make(map[string]bool)
	for _, target := range r.opts.Manifest.ResolveTargets(names.Snake) {
		paths := []string{target}
		if isPattern(target) {
			matches, err := afero.Glob(r.opts.Fs, target)
			if err != nil {
				r.record("update "+target, StatusFailed, err.Error())
				continue
			}
			if len(matches) == 0 {
				r.record("update "+target, StatusSkipped, "no matching files")
				continue
			}
			paths = matches
		}

		for _, path := range paths {
			path = filepath.ToSlash(path)
			if seen[path] {
				continue
			}
			seen[path] = true
			r.substituteFile(path, replacer)
		}
	}
}

func (r *run) substituteFile(path string, replacer *strings.Replacer) {
	name := "update " + path

	exists, err := afero.Exists(r.opts.Fs, path)
	if err != nil {
		r.record(name, StatusFailed, err.Error())
		return
	}
	if !exists {
		r.record(name, StatusSkipped, "not found")
		return
	}

	changed, err := replaceInFile(r.opts.Fs, path, replacer)
	switch {
	case err != nil:
		r.record(name, StatusFailed, err.Error())
	case !changed:
		r.record(name, StatusOK, "no placeholders")
	default:
		r.record(name, StatusOK, "")
	}
}

func (r *run) makeDirectories() {
	for _, dir := range r.opts.Manifest.Directories {
		name := "create " + dir + "/"
		if err := r.opts.Fs.MkdirAll(dir, 0755); err != nil {
			r.record(name, StatusFailed, err.Error())
			continue
		}
		r.record(name, StatusOK, "")
	}
}

func (r *run) initRepository() {
	if r.opts.SkipGit || r.opts.Git == nil {
		r.record("git init", StatusSkipped, "disabled")
		return
	}

	project := r.opts.ProjectName
	if project == "" {
		project = filepath.Base(r.opts.Dir)
	}

	for _, step := range vcs.InitRepository(r.ctx, r.opts.Git, r.opts.Dir, vcs.CommitMessage(project)) {
		switch step.Outcome {
		case vcs.OutcomeOK:
			r.record(step.Command, StatusOK, "")
		case vcs.OutcomeSkipped:
			r.record(step.Command, StatusSkipped, "previous git step failed")
		default:
			r.record(step.Command, StatusFailed, step.Err.Error())
		}
	}
}

// replaceInFile rewrites path whole with replacer applied. It reports whether
// the content changed; unchanged files are not rewritten.
func replaceInFile(fs afero.Fs, path string, replacer *strings.Replacer) (bool, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}

	updated := replacer.Replace(string(data))
	if updated == string(data) {
		return false, nil
	}

	info, err := fs.Stat(path)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	if err := afero.WriteFile(fs, path, []byte(updated), info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}

func isPattern(path string) bool {
	return strings.ContainsAny(path, "*?[")
}

func quoteEmpty(s string) string {
	if s == "" {
		return `""`
	}
	return s
}
