package gate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultTimeout bounds a single check when neither the check nor the
// runner sets a timeout.
const DefaultTimeout = 120 * time.Second

// Runner executes every check of a registry sequentially, in registration
// order, converting faults, panics and timeouts into failing outcomes so a
// single unstable check never stops the rest of the gate.
type Runner struct {
	// Root is the repository root passed to every check action.
	Root string
	// Timeout applies to checks without their own override. Zero means DefaultTimeout.
	Timeout time.Duration
	// Reporter is notified as checks start and resolve. Nil means no output.
	Reporter Reporter
	// Clock measures durations. Nil means the real clock.
	Clock clockwork.Clock
	// Logger receives diagnostic records. Nil means slog.Default().
	Logger *slog.Logger
}

// Run evaluates the checks in reg and returns the finalized report.
//
// When ctx is canceled the runner stops launching checks, marks the report
// partial and lists the checks that never ran. Nothing escapes Run as an
// error or panic.
func (r *Runner) Run(ctx context.Context, reg *Registry) *RunReport {
	clock := r.clock()
	reporter := r.reporter()
	logger := r.logger()

	checks := reg.All()
	report := &RunReport{
		Root:      r.Root,
		Results:   make([]Result, 0, len(checks)),
		StartedAt: clock.Now(),
	}

	for i, c := range checks {
		if err := ctx.Err(); err != nil {
			report.Partial = true
			for _, rest := range checks[i:] {
				report.Skipped = append(report.Skipped, rest.name)
			}
			logger.Warn("gate run canceled", "skipped", len(report.Skipped), "error", err)
			break
		}

		reporter.OnCheckStart(c.name)
		start := clock.Now()
		outcome := r.evaluate(ctx, c, logger)
		report.Results = append(report.Results, Result{
			Name:     c.name,
			Outcome:  outcome,
			Duration: clock.Now().Sub(start),
		})
		reporter.OnCheckResult(c.name, outcome)

		if outcome.Kind == KindCanceled {
			report.Partial = true
		}
	}

	report.Duration = clock.Now().Sub(report.StartedAt)
	return report
}

func (r *Runner) evaluate(ctx context.Context, c Check, logger *slog.Logger) Outcome {
	timeout := c.timeout
	if timeout <= 0 {
		timeout = r.timeout()
	}

	checkCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	logger.Debug("running check", "name", c.name, "timeout", timeout)

	// Buffered so an abandoned action can still deliver and exit.
	done := make(chan Outcome, 1)
	go func() {
		done <- invoke(checkCtx, c, r.Root)
	}()

	var outcome Outcome
	select {
	case outcome = <-done:
		if !outcome.Passed() && checkCtx.Err() != nil {
			outcome = interrupted(ctx, timeout)
		}
	case <-checkCtx.Done():
		outcome = interrupted(ctx, timeout)
	}

	switch outcome.Kind {
	case KindNone:
		logger.Debug("check passed", "name", c.name)
	case KindCheck:
		logger.Debug("check failed", "name", c.name, "detail", outcome.Detail)
	default:
		logger.Warn("check did not complete", "name", c.name, "kind", outcome.Kind, "detail", outcome.Detail)
	}
	return outcome
}

// invoke calls the action, turning returned errors and panics into faults.
func invoke(ctx context.Context, c Check, root string) (outcome Outcome) {
	defer func() {
		if p := recover(); p != nil {
			outcome = faultOutcome(fmt.Errorf("panic: %v", p))
		}
	}()

	o, err := c.action(ctx, root)
	if err != nil {
		return faultOutcome(err)
	}
	return o.normalize()
}

func faultOutcome(err error) Outcome {
	return Outcome{
		Status: StatusFail,
		Detail: "fault: " + err.Error(),
		Kind:   KindFault,
	}
}

// interrupted classifies a check whose context ended before it finished.
// Any end of the parent context, including its own deadline, is a cancellation.
func interrupted(parent context.Context, timeout time.Duration) Outcome {
	if parent.Err() != nil {
		return Outcome{Status: StatusFail, Detail: "canceled", Kind: KindCanceled}
	}
	return Outcome{
		Status: StatusFail,
		Detail: fmt.Sprintf("timed out after %s", timeout),
		Kind:   KindTimeout,
	}
}

func (r *Runner) timeout() time.Duration {
	if r.Timeout > 0 {
		return r.Timeout
	}
	return DefaultTimeout
}

func (r *Runner) clock() clockwork.Clock {
	if r.Clock != nil {
		return r.Clock
	}
	return clockwork.NewRealClock()
}

func (r *Runner) reporter() Reporter {
	if r.Reporter != nil {
		return r.Reporter
	}
	return NopReporter{}
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}
