package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spboyer/mergegate/internal/projectconfig"
	"github.com/spboyer/mergegate/internal/reporting"
)

// GateFailureError indicates that the gate ran, but one or more checks
// failed or the run was interrupted. Code is the exit code derived from
// the report.
type GateFailureError struct {
	Message string
	Code    int
}

func (e *GateFailureError) Error() string {
	return e.Message
}

// GateError indicates that the gate could not be evaluated at all, e.g.
// because the configuration is invalid.
type GateError struct {
	Err  error
	Mode reporting.ExitMode
}

func (e *GateError) Error() string {
	return e.Err.Error()
}

func (e *GateError) Unwrap() error {
	return e.Err
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error returned by the root command to a process exit code.
func exitCode(err error) int {
	if err == nil {
		return reporting.ExitSuccess
	}

	var failure *GateFailureError
	if errors.As(err, &failure) {
		return failure.Code
	}

	var gateErr *GateError
	if errors.As(err, &gateErr) {
		return gateErr.Mode.ErrorCode()
	}

	// Flag parsing and other cobra errors
	return reporting.ExitModeCount.ErrorCode()
}

// exitModeOf returns the configured exit mode, or count when cfg is
// missing or holds an invalid mode.
func exitModeOf(cfg *projectconfig.ProjectConfig) reporting.ExitMode {
	if cfg == nil {
		return reporting.ExitModeCount
	}
	mode, err := reporting.ParseExitMode(cfg.Defaults.ExitMode)
	if err != nil {
		return reporting.ExitModeCount
	}
	return mode
}
