// Package reporting renders gate progress and results: live text output,
// the final summary and exit code, and JSON, markdown and JUnit documents.
package reporting

import (
	"fmt"

	"github.com/spboyer/mergegate/internal/gate"
)

// ExitMode selects how a failing report maps to a process exit code.
type ExitMode string

const (
	// ExitModeCount exits with the number of failing checks, clamped to
	// MaxFailureExitCode.
	ExitModeCount ExitMode = "count"
	// ExitModeBinary exits 1 for any failure.
	ExitModeBinary ExitMode = "binary"
)

// Exit codes.
const (
	ExitSuccess = 0
	ExitFailed  = 1 // binary mode, or an interrupted run without failures
	// MaxFailureExitCode is the largest failure count count mode reports;
	// 255 is reserved for gate errors.
	MaxFailureExitCode = 254
	exitErrorCount     = 255
	exitErrorBinary    = 2
)

// ParseExitMode validates an exit mode name.
func ParseExitMode(s string) (ExitMode, error) {
	switch m := ExitMode(s); m {
	case ExitModeCount, ExitModeBinary:
		return m, nil
	default:
		return "", fmt.Errorf("invalid exit mode %q: expected count or binary", s)
	}
}

// ErrorCode is the exit code for a gate that could not be evaluated at all,
// e.g. because of an invalid configuration.
func (m ExitMode) ErrorCode() int {
	if m == ExitModeBinary {
		return exitErrorBinary
	}
	return exitErrorCount
}

// Summarize produces the one-line verdict for report and the exit code
// derived from it.
func Summarize(report *gate.RunReport, mode ExitMode) (string, int) {
	failures := report.FailureCount()
	total := report.Total()

	switch {
	case failures == 0 && !report.Partial:
		if total == 0 {
			return "No checks to run", ExitSuccess
		}
		return fmt.Sprintf("All %s passed", plural(total, "check")), ExitSuccess
	case failures == 0:
		return fmt.Sprintf("Run interrupted: %d of %s passed, %d not run",
			len(report.Results), plural(total, "check"), len(report.Skipped)), ExitFailed
	}

	text := fmt.Sprintf("%d of %s failed", failures, plural(total, "check"))
	if report.Partial {
		text += fmt.Sprintf(" (run interrupted, %d not run)", len(report.Skipped))
	}
	return text, failureExitCode(failures, mode)
}

func failureExitCode(failures int, mode ExitMode) int {
	if mode == ExitModeBinary {
		return ExitFailed
	}
	return min(failures, MaxFailureExitCode)
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
