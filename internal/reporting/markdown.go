package reporting

import (
	"fmt"
	"strings"
	"time"

	"github.com/spboyer/mergegate/internal/gate"
)

// formatDuration formats a duration in a consistent, human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Round(100 * time.Millisecond).String()
}

// FormatMarkdown formats a report as a markdown comment for pull requests.
func FormatMarkdown(report *gate.RunReport, profile string, mode ExitMode) string {
	var b strings.Builder

	summary, _ := Summarize(report, mode)

	b.WriteString("## Merge Gate\n\n")

	statusIcon := "✅ Passed"
	if !report.Passed() {
		statusIcon = "❌ Failed"
	}
	fmt.Fprintf(&b, "**Status:** %s | **Profile:** %s | **Duration:** %s\n\n",
		statusIcon, profileLabel(profile), formatDuration(report.Duration))
	fmt.Fprintf(&b, "%s\n\n", summary)

	b.WriteString("| Check | Status | Detail | Duration |\n")
	b.WriteString("|-------|--------|--------|----------|\n")
	for _, res := range report.Results {
		icon := "✅"
		if !res.Outcome.Passed() {
			icon = "❌"
		}
		detail := res.Outcome.Detail
		if detail == "" {
			detail = "-"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			escapeCell(res.Name), icon, escapeCell(detail), formatDuration(res.Duration))
	}
	for _, name := range report.Skipped {
		fmt.Fprintf(&b, "| %s | ⏭️ | not run | - |\n", escapeCell(name))
	}

	if report.Partial {
		b.WriteString("\n> ⚠️ The run was interrupted before every check executed.\n")
	}

	return b.String()
}

func profileLabel(profile string) string {
	if profile == "" {
		return "-"
	}
	return profile
}

// escapeCell keeps a detail from breaking the table layout.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
