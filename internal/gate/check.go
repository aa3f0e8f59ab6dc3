// Package gate implements the pre-merge validation gate: an ordered registry
// of independent checks, a sequential runner that isolates every check's
// failure, and the report the runner produces.
package gate

import (
	"context"
	"time"
)

// Action performs one validation against the repository rooted at root.
//
// A returned error is an unexpected fault (for example, the external tool
// could not be launched). A deliberate failure is reported by returning an
// Outcome with StatusFail and a nil error.
type Action func(ctx context.Context, root string) (Outcome, error)

// Check is a named, self-contained predicate over repository state.
// Checks are immutable once constructed.
type Check struct {
	name    string
	action  Action
	timeout time.Duration
	kind    string
}

// CheckOption configures optional Check properties.
type CheckOption func(*Check)

// WithTimeout overrides the runner's per-check timeout for this check.
func WithTimeout(d time.Duration) CheckOption {
	return func(c *Check) {
		c.timeout = d
	}
}

// WithKind records a descriptive kind label (e.g. "command") for listings.
func WithKind(kind string) CheckOption {
	return func(c *Check) {
		c.kind = kind
	}
}

// NewCheck creates a Check with the given name and action.
func NewCheck(name string, action Action, opts ...CheckOption) Check {
	c := Check{name: name, action: action}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c Check) Name() string { return c.name }

// Timeout returns the per-check override, or zero when the runner default applies.
func (c Check) Timeout() time.Duration { return c.timeout }

func (c Check) Kind() string { return c.kind }
