// Package probe holds the primitives checks use to inspect a repository:
// running an external command, testing file existence and testing whether
// a file contains a substring. Probes never interpret tool output.
package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"slices"
	"strings"
	"time"
)

// waitDelay bounds how long Run waits for output pipes after ctx ends.
const waitDelay = 2 * time.Second

// Command describes one external tool invocation.
type Command struct {
	// Name is the executable, resolved through PATH.
	Name string
	Args []string
	// Dir is the working directory. Empty means the current process directory.
	Dir string
	// Env is appended to the inherited environment as KEY=VALUE pairs.
	Env []string
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Result is the outcome of a command that ran to completion.
type Result struct {
	ExitCode int
	// Output holds combined stdout and stderr.
	Output []byte
}

// Accepted reports whether the exit code is in allowed.
// An empty allowed list accepts only exit code 0.
func (r *Result) Accepted(allowed []int) bool {
	if len(allowed) == 0 {
		return r.ExitCode == 0
	}
	return slices.Contains(allowed, r.ExitCode)
}

// InvocationError means the command could not be launched at all, for
// example because the executable is missing or not permitted to run.
type InvocationError struct {
	Command string
	Err     error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("could not run %s: %v", e.Command, e.Err)
}

func (e *InvocationError) Unwrap() error { return e.Err }

// Run executes c and waits for it to exit. A nonzero exit status is not an
// error; it is reported in Result.ExitCode. Run returns an *InvocationError
// when the process cannot be started and the context error when ctx ends
// before the process exits. On ctx end the whole process group is killed.
func Run(ctx context.Context, c Command) (*Result, error) {
	if strings.TrimSpace(c.Name) == "" {
		return nil, &InvocationError{Command: c.String(), Err: errors.New("empty command")}
	}

	//nolint:gosec // commands come from the repository's own gate configuration
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	setupProcessGroup(cmd)
	cmd.Cancel = func() error { return killProcessGroup(cmd) }
	// Stop waiting on pipes held open by descendants that survived the kill.
	cmd.WaitDelay = waitDelay
	if len(c.Env) > 0 {
		cmd.Env = append(cmd.Environ(), c.Env...)
	}

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("%s: %w", c.String(), ctxErr)
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &Result{ExitCode: exitErr.ExitCode(), Output: out.Bytes()}, nil
		}
		return nil, &InvocationError{Command: c.String(), Err: err}
	}
	return &Result{ExitCode: 0, Output: out.Bytes()}, nil
}

// SplitCommand splits a whitespace-separated command line into the
// executable and its arguments. Quoting is not interpreted.
func SplitCommand(line string) (name string, args []string, err error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return "", nil, errors.New("empty command")
	}
	return parts[0], parts[1:], nil
}
