package vcs

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	failOn string
	calls  []string
}

func (f *fakeRunner) Run(_ context.Context, _ string, name string, args ...string) (string, error) {
	call := name + " " + strings.Join(args, " ")
	f.calls = append(f.calls, call)
	if f.failOn != "" && strings.HasPrefix(call, f.failOn) {
		return "fatal: something broke", errors.New("exit status 128")
	}
	return "", nil
}

func TestInitRepositorySuccess(t *testing.T) {
	r := &fakeRunner{}
	steps := InitRepository(context.Background(), r, "/tmp/p", CommitMessage("weather-kg"))

	require.Len(t, steps, 3)
	for _, s := range steps {
		assert.Equal(t, OutcomeOK, s.Outcome, s.Command)
		assert.NoError(t, s.Err)
	}
	assert.Equal(t, []string{
		"git init",
		"git add .",
		"git commit -m Initial commit: weather-kg",
	}, r.calls)
	assert.Equal(t, `git commit -m "Initial commit: weather-kg"`, steps[2].Command)
}

func TestInitRepositoryStopsAfterFailure(t *testing.T) {
	tests := []struct {
		failOn   string
		outcomes []Outcome
		calls    int
	}{
		{"git init", []Outcome{OutcomeFailed, OutcomeSkipped, OutcomeSkipped}, 1},
		{"git add", []Outcome{OutcomeOK, OutcomeFailed, OutcomeSkipped}, 2},
		{"git commit", []Outcome{OutcomeOK, OutcomeOK, OutcomeFailed}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.failOn, func(t *testing.T) {
			r := &fakeRunner{failOn: tt.failOn}
			steps := InitRepository(context.Background(), r, ".", "msg")

			require.Len(t, steps, 3)
			for i, s := range steps {
				assert.Equal(t, tt.outcomes[i], s.Outcome, s.Command)
			}
			assert.Len(t, r.calls, tt.calls)

			for _, s := range steps {
				if s.Outcome == OutcomeFailed {
					require.Error(t, s.Err)
					assert.Contains(t, s.Err.Error(), "fatal: something broke")
				}
			}
		})
	}
}

func TestExecRunnerRealGit(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# demo\n"), 0644))
	t.Setenv("GIT_CONFIG_GLOBAL", os.DevNull)
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_AUTHOR_NAME", "test")
	t.Setenv("GIT_AUTHOR_EMAIL", "test@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "test")
	t.Setenv("GIT_COMMITTER_EMAIL", "test@example.com")

	steps := InitRepository(context.Background(), ExecRunner{}, dir, CommitMessage("demo"))
	for _, s := range steps {
		assert.Equal(t, OutcomeOK, s.Outcome, "%s: %v", s.Command, s.Err)
	}
	assert.DirExists(t, filepath.Join(dir, ".git"))
}

func TestExecRunnerMissingBinary(t *testing.T) {
	_, err := ExecRunner{}.Run(context.Background(), ".", "definitely-not-a-real-binary-kgscaffold")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found in PATH")
}
