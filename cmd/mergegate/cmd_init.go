package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spboyer/mergegate/internal/projectconfig"
	"github.com/spboyer/mergegate/internal/reporting"
	"github.com/spboyer/mergegate/internal/wizard"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newInitCommand(global *globalOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a .mergegate.yaml for this repository",
		Long: `Write a .mergegate.yaml into --dir.

When stdin is a terminal, a wizard asks which reference checks to keep,
the exit mode and the per-check timeout. Otherwise every reference check
is written with the built-in defaults.

An existing file is never overwritten unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initCommandE(cmd, global.dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing .mergegate.yaml")

	return cmd
}

func initCommandE(cmd *cobra.Command, dir string, force bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &GateError{Err: fmt.Errorf("failed to create directory %s: %w", dir, err), Mode: reporting.ExitModeCount}
	}

	path := filepath.Join(dir, projectconfig.FileName)
	if _, err := os.Stat(path); err == nil && !force {
		return &GateError{Err: fmt.Errorf("%s already exists (use --force to overwrite)", path), Mode: reporting.ExitModeCount}
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return &GateError{Err: fmt.Errorf("checking %s: %w", path, err), Mode: reporting.ExitModeCount}
	}

	answers := wizard.DefaultAnswers()
	if isTerminalInput(cmd) {
		collected, err := wizard.RunInitWizard(cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return &GateError{Err: err, Mode: reporting.ExitModeCount}
		}
		answers = *collected
	}

	data, err := wizard.Render(answers)
	if err != nil {
		return &GateError{Err: fmt.Errorf("failed to render %s: %w", projectconfig.FileName, err), Mode: reporting.ExitModeCount}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &GateError{Err: fmt.Errorf("failed to write %s: %w", path, err), Mode: reporting.ExitModeCount}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s with %d checks\n", path, len(answers.Checks)) //nolint:errcheck
	return nil
}

func isTerminalInput(cmd *cobra.Command) bool {
	f, ok := cmd.InOrStdin().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
