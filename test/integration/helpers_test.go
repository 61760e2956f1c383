//go:build integration

package integration_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // KGSCAFFOLD_HOME, holds config.yaml
	RenderDir  string // where the template engine renders, and the pre-generation hook runs
	ProjectDir string // the rendered project inside RenderDir
}

// setupTestEnv creates isolated temp directories and sets environment variables
// so config and git are sandboxed. The env vars are restored after the test.
func setupTestEnv(t *testing.T, slug string) *testEnv {
	t.Helper()

	render := t.TempDir()
	env := &testEnv{
		HomeDir:    t.TempDir(),
		RenderDir:  render,
		ProjectDir: filepath.Join(render, slug),
	}

	t.Setenv("KGSCAFFOLD_HOME", env.HomeDir)
	t.Setenv("GIT_CONFIG_GLOBAL", os.DevNull)
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_AUTHOR_NAME", "Test")
	t.Setenv("GIT_AUTHOR_EMAIL", "test@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "Test")
	t.Setenv("GIT_COMMITTER_EMAIL", "test@example.com")

	if err := os.MkdirAll(env.ProjectDir, 0755); err != nil {
		t.Fatalf("creating project dir: %v", err)
	}
	return env
}

// renderTemplate writes the files the template engine would produce for a
// project, with the name placeholders still in place.
func renderTemplate(t *testing.T, projectDir, pkg string) {
	t.Helper()

	writeFile(t, filepath.Join(projectDir, "pyproject.toml"), `[project]
name = "`+pkg+`"
dependencies = [
    "biocypher>=latest",
]
`)
	writeFile(t, filepath.Join(projectDir, "create_knowledge_graph.py"), `from biocypher import BioCypher
from `+pkg+`.adapters.adapter import PLACEHOLDER_ADAPTER_CLASS_NAME

bc = BioCypher()
adapter = PLACEHOLDER_ADAPTER_CLASS_NAME()
bc.write_nodes(adapter.get_nodes())
`)
	writeFile(t, filepath.Join(projectDir, "README.md"), "# PLACEHOLDER_PASCAL_CASE_NAME knowledge graph\n")
	writeFile(t, filepath.Join(projectDir, "src", pkg, "adapters", "adapter.py"), `class PLACEHOLDER_ADAPTER_CLASS_NAME:
    """Adapter for PLACEHOLDER_PASCAL_CASE_NAME data."""
`)
	writeFile(t, filepath.Join(projectDir, "tests", "test_adapter.py"), `from `+pkg+`.adapters.adapter import PLACEHOLDER_ADAPTER_CLASS_NAME
`)
	writeFile(t, filepath.Join(projectDir, "config", "schema_config.yaml"), "protein:\n  represented_as: node\n")
}

// requireGit skips the test when git is not installed.
func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

// gitOutput runs a git command in dir and returns its trimmed output.
func gitOutput(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return strings.TrimSpace(string(out))
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertDirExists fails the test if the directory does not exist.
func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory to exist: %s (error: %v)", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory, but it is a file", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}

// assertFileNotContains fails if the file contains substr.
func assertFileNotContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if strings.Contains(string(data), substr) {
		t.Errorf("file %s still contains %q.\nContents:\n%s", path, substr, string(data))
	}
}
