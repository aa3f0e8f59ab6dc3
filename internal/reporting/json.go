package reporting

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spboyer/mergegate/internal/gate"
)

type jsonReport struct {
	Root       string      `json:"root"`
	Profile    string      `json:"profile,omitempty"`
	StartedAt  string      `json:"startedAt,omitempty"`
	DurationMs int64       `json:"durationMs"`
	Passed     bool        `json:"passed"`
	Partial    bool        `json:"partial"`
	Total      int         `json:"total"`
	Failures   int         `json:"failures"`
	Summary    string      `json:"summary"`
	ExitCode   int         `json:"exitCode"`
	Checks     []jsonCheck `json:"checks"`
	Skipped    []string    `json:"skipped,omitempty"`
}

type jsonCheck struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	Kind       string `json:"kind,omitempty"`
	Detail     string `json:"detail,omitempty"`
	DurationMs int64  `json:"durationMs"`
}

// WriteJSON writes report as an indented JSON document, including the
// summary and exit code derived for mode.
func WriteJSON(w io.Writer, report *gate.RunReport, profile string, mode ExitMode) error {
	summary, code := Summarize(report, mode)

	doc := jsonReport{
		Root:       report.Root,
		Profile:    profile,
		DurationMs: report.Duration.Milliseconds(),
		Passed:     report.Passed(),
		Partial:    report.Partial,
		Total:      report.Total(),
		Failures:   report.FailureCount(),
		Summary:    summary,
		ExitCode:   code,
		Checks:     make([]jsonCheck, 0, len(report.Results)),
		Skipped:    report.Skipped,
	}
	if !report.StartedAt.IsZero() {
		doc.StartedAt = report.StartedAt.UTC().Format(time.RFC3339)
	}
	for _, res := range report.Results {
		doc.Checks = append(doc.Checks, jsonCheck{
			Name:       res.Name,
			Status:     string(res.Outcome.Status),
			Kind:       string(res.Outcome.Kind),
			Detail:     res.Outcome.Detail,
			DurationMs: res.Duration.Milliseconds(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding JSON report: %w", err)
	}
	return nil
}
