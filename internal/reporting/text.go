package reporting

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spboyer/mergegate/internal/gate"
	"github.com/spboyer/mergegate/internal/spinner"
	"golang.org/x/term"
)

const (
	passGlyph = "✓"
	failGlyph = "✗"
)

// TextOptions configures a TextReporter.
type TextOptions struct {
	// Color enables ANSI colors on glyphs.
	Color bool
	// Spinner animates the running check. Only useful on a terminal.
	Spinner bool
	// NameWidth pads check names so details line up. Zero disables padding.
	NameWidth int
}

// TextReporter prints one line per check as it resolves.
type TextReporter struct {
	w       io.Writer
	opts    TextOptions
	pass    *color.Color
	fail    *color.Color
	dim     *color.Color
	running *spinner.Spinner
}

var _ gate.Reporter = (*TextReporter)(nil)

// NewTextReporter creates a TextReporter writing to w.
func NewTextReporter(w io.Writer, opts TextOptions) *TextReporter {
	r := &TextReporter{
		w:    w,
		opts: opts,
		pass: color.New(color.FgGreen),
		fail: color.New(color.FgRed, color.Bold),
		dim:  color.New(color.Faint),
	}
	for _, c := range []*color.Color{r.pass, r.fail, r.dim} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

func (r *TextReporter) OnCheckStart(name string) {
	if r.opts.Spinner {
		r.running = spinner.Start(r.w, name)
	}
}

func (r *TextReporter) OnCheckResult(name string, outcome gate.Outcome) {
	if r.running != nil {
		r.running.Stop()
		r.running = nil
	}
	fmt.Fprintln(r.w, FormatResultLine(name, outcome, r.opts.NameWidth, r.pass, r.fail)) //nolint:errcheck
}

// PrintSkipped lists checks that never ran because the run was interrupted.
func (r *TextReporter) PrintSkipped(names []string) {
	for _, name := range names {
		fmt.Fprintln(r.w, r.dim.Sprintf("  - %s (not run)", name)) //nolint:errcheck
	}
}

// PrintSummary writes the final verdict line.
func (r *TextReporter) PrintSummary(report *gate.RunReport, text string) {
	c := r.pass
	if !report.Passed() {
		c = r.fail
	}
	fmt.Fprintf(r.w, "\n%s\n", c.Sprint(text)) //nolint:errcheck
}

// FormatResultLine renders one check line: glyph, padded name and, for
// failures, the detail.
func FormatResultLine(name string, outcome gate.Outcome, nameWidth int, pass, fail *color.Color) string {
	if outcome.Passed() {
		return fmt.Sprintf("  %s %s", pass.Sprint(passGlyph), name)
	}
	return fmt.Sprintf("  %s %s  %s", fail.Sprint(failGlyph), padRight(name, nameWidth), outcome.Detail)
}

// NameWidth returns the display width of the widest name, capped at limit.
func NameWidth(names []string, limit int) int {
	width := 0
	for _, n := range names {
		width = max(width, runewidth.StringWidth(n))
	}
	if limit > 0 && width > limit {
		width = limit
	}
	return width
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
