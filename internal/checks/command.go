package checks

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/spboyer/mergegate/internal/gate"
	"github.com/spboyer/mergegate/internal/probe"
)

// maxLoggedOutputLines caps how much tool output a failing command logs.
const maxLoggedOutputLines = 20

// CommandArgs holds the arguments for a command check.
type CommandArgs struct {
	// Command is the executable followed by whitespace-separated arguments.
	Command string `mapstructure:"command"`
	// Args are appended after the arguments parsed from Command.
	Args []string `mapstructure:"args"`
	// Dir is the working directory relative to the repository root.
	Dir string            `mapstructure:"dir"`
	Env map[string]string `mapstructure:"env"`
	// ExitCodes lists acceptable exit codes. Empty means only 0.
	ExitCodes []int `mapstructure:"exit_codes"`
	// FailDetail replaces the default "exited with code N" detail.
	FailDetail string `mapstructure:"fail_detail"`
}

// NewCommandCheck creates a check that passes when the command exits with
// an acceptable code. A command that cannot be launched is a fault.
func NewCommandCheck(name string, args CommandArgs, opts ...gate.CheckOption) (gate.Check, error) {
	exe, cmdArgs, err := probe.SplitCommand(args.Command)
	if err != nil {
		return gate.Check{}, fmt.Errorf("command check %q: %w", name, err)
	}
	cmdArgs = append(cmdArgs, args.Args...)

	env := make([]string, 0, len(args.Env))
	for k, v := range args.Env {
		env = append(env, k+"="+v)
	}
	slices.Sort(env)

	exitCodes := args.ExitCodes
	failDetail := args.FailDetail
	dir := args.Dir

	action := func(ctx context.Context, root string) (gate.Outcome, error) {
		res, err := probe.Run(ctx, probe.Command{
			Name: exe,
			Args: cmdArgs,
			Dir:  probe.Resolve(root, dir),
			Env:  env,
		})
		if err != nil {
			return gate.Outcome{}, err
		}
		if res.Accepted(exitCodes) {
			return gate.Pass(), nil
		}

		slog.Debug("command check failed", "check", name, "exit", res.ExitCode, "output", tail(res.Output, maxLoggedOutputLines))
		if failDetail != "" {
			return gate.Fail(failDetail), nil
		}
		return gate.Fail(fmt.Sprintf("exited with code %d", res.ExitCode)), nil
	}

	return gate.NewCheck(name, action, opts...), nil
}

// tail returns the last n lines of output.
func tail(output []byte, n int) string {
	lines := strings.Split(strings.TrimRight(string(output), "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
