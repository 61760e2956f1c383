package vcs

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes a command in dir and returns its combined output.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (string, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	if _, err := exec.LookPath(name); err != nil {
		return "", fmt.Errorf("%s is required but not found in PATH", name)
	}
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	return strings.TrimSpace(string(out)), err
}

// Outcome of a single git step.
type Outcome string

const (
	OutcomeOK      Outcome = "ok"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
)

// Step records one command of the init chain.
type Step struct {
	Command string
	Outcome Outcome
	Output  string
	Err     error
}

// CommitMessage returns the message of the initial commit for project.
func CommitMessage(project string) string {
	return "Initial commit: " + project
}

// InitRepository runs git init, git add and git commit in dir. Each command
// runs only if the previous one succeeded; the rest are reported as skipped.
// It always returns one Step per command.
func InitRepository(ctx context.Context, r Runner, dir, message string) []Step {
	chain := [][]string{
		{"init"},
		{"add", "."},
		{"commit", "-m", message},
	}

	steps := make([]Step, 0, len(chain))
	failed := false
	for _, args := range chain {
		step := Step{Command: describe(args)}
		if failed {
			step.Outcome = OutcomeSkipped
			steps = append(steps, step)
			continue
		}

		out, err := r.Run(ctx, dir, "git", args...)
		step.Output = out
		if err != nil {
			step.Outcome = OutcomeFailed
			step.Err = fmt.Errorf("%s: %w", step.Command, withOutput(err, out))
			failed = true
		} else {
			step.Outcome = OutcomeOK
		}
		steps = append(steps, step)
	}
	return steps
}

// describe renders a git command for display.
func describe(args []string) string {
	parts := []string{"git"}
	for _, a := range args {
		if strings.ContainsAny(a, " \t\"") {
			a = fmt.Sprintf("%q", a)
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}

func withOutput(err error, out string) error {
	if out == "" {
		return err
	}
	return fmt.Errorf("%w\n%s", err, out)
}
