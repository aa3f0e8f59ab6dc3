package gate

import "time"

// Result pairs a check name with its outcome.
type Result struct {
	Name     string
	Outcome  Outcome
	Duration time.Duration
}

// RunReport is the ordered collection of results for one invocation.
// It is built by the Runner and must be treated as read-only afterwards.
type RunReport struct {
	// Root is the repository root every check was evaluated against.
	Root string
	// Results holds one entry per executed check, in registration order.
	Results []Result
	// Partial is set when the run was canceled before every check executed.
	Partial bool
	// Skipped names the checks that were never launched because of cancellation.
	Skipped []string
	// StartedAt is when the first check was launched.
	StartedAt time.Time
	// Duration is the wall time of the whole run.
	Duration time.Duration
}

// FailureCount returns the number of results with StatusFail.
func (r *RunReport) FailureCount() int {
	n := 0
	for _, res := range r.Results {
		if !res.Outcome.Passed() {
			n++
		}
	}
	return n
}

// Failures returns the failing results in registration order.
func (r *RunReport) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.Outcome.Passed() {
			out = append(out, res)
		}
	}
	return out
}

// Total is the number of checks the run was asked to evaluate, including
// the ones skipped by cancellation.
func (r *RunReport) Total() int {
	return len(r.Results) + len(r.Skipped)
}

// Passed reports whether the gate is open: every check ran and none failed.
func (r *RunReport) Passed() bool {
	return !r.Partial && r.FailureCount() == 0
}
