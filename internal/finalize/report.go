package finalize

import (
	"github.com/kgscaffold/kgscaffold/internal/naming"
)

// Status is the outcome of one step.
type Status string

const (
	StatusOK      Status = "ok"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// StepResult describes one finished step.
type StepResult struct {
	Name   string
	Status Status
	Detail string
}

// Report collects step results in execution order.
type Report struct {
	Names   naming.Names
	Version string
	Steps   []StepResult
}

func (r *Report) add(name string, status Status, detail string) StepResult {
	s := StepResult{Name: name, Status: status, Detail: detail}
	r.Steps = append(r.Steps, s)
	return s
}

// Failed returns the failed steps.
func (r *Report) Failed() []StepResult {
	var out []StepResult
	for _, s := range r.Steps {
		if s.Status == StatusFailed {
			out = append(out, s)
		}
	}
	return out
}

// Counts returns the number of steps per status.
func (r *Report) Counts() map[Status]int {
	counts := map[Status]int{}
	for _, s := range r.Steps {
		counts[s.Status]++
	}
	return counts
}

// Step returns the first step with the given name.
func (r *Report) Step(name string) (StepResult, bool) {
	for _, s := range r.Steps {
		if s.Name == name {
			return s, true
		}
	}
	return StepResult{}, false
}
