package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/spboyer/mergegate/internal/checks"
	"github.com/spboyer/mergegate/internal/gate"
	"github.com/spboyer/mergegate/internal/projectconfig"
	"github.com/spboyer/mergegate/internal/reporting"
	"github.com/spf13/cobra"
)

var version = "dev"

// maxNameWidth caps the padding of check names in text output.
const maxNameWidth = 32

// Output formats.
const (
	formatText     = "text"
	formatJSON     = "json"
	formatMarkdown = "markdown"
)

type globalOptions struct {
	dir     string
	profile string
}

type runOptions struct {
	timeout  time.Duration
	format   string
	junit    string
	exitMode string
	skip     []string
	noColor  bool
}

func newRootCommand() *cobra.Command {
	var (
		global globalOptions
		opts   runOptions
	)

	cmd := &cobra.Command{
		Use:   "mergegate",
		Short: "Mergegate - pre-merge validation gate",
		Long: `Mergegate runs an ordered list of pre-merge checks against a repository,
prints one line per check and a summary, and exits with a code derived
from the number of failing checks.

Checks are defined in .mergegate.yaml, found by walking up from --dir.
Without a config file the built-in "full" and "quick" profiles are used.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGate(cmd, global, opts)
		},
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	cmd.PersistentFlags().StringVar(&global.dir, "dir", ".", "Repository directory to check")
	cmd.PersistentFlags().StringVarP(&global.profile, "profile", "p", "", "Profile to run (default from config, else full)")

	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Per-check timeout (default from config, else 2m)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format: text, json or markdown")
	cmd.Flags().StringVar(&opts.junit, "junit", "", "Also write a JUnit XML report to this path")
	cmd.Flags().StringVar(&opts.exitMode, "exit-mode", "", "Exit code mode: count or binary")
	cmd.Flags().StringArrayVar(&opts.skip, "skip", nil, "Skip the named check (repeatable)")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	cmd.AddCommand(newListCommand(&global))
	cmd.AddCommand(newInitCommand(&global))

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}

func runGate(cmd *cobra.Command, global globalOptions, opts runOptions) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Until the config is loaded, only the flag can choose the error code.
	mode, err := reporting.ParseExitMode(orDefault(opts.exitMode, projectconfig.DefaultExitMode))
	if err != nil {
		return &GateError{Err: err, Mode: reporting.ExitModeCount}
	}

	cfg, err := projectconfig.Load(global.dir)
	if err != nil {
		return &GateError{Err: err, Mode: mode}
	}

	if opts.exitMode == "" {
		if mode, err = reporting.ParseExitMode(cfg.Defaults.ExitMode); err != nil {
			return &GateError{Err: err, Mode: reporting.ExitModeCount}
		}
	}

	plan, err := planRun(cfg, global.profile, opts)
	if err != nil {
		return &GateError{Err: err, Mode: mode}
	}

	out := cmd.OutOrStdout()
	var text *reporting.TextReporter
	runner := &gate.Runner{
		Root:    cfg.Root,
		Timeout: plan.timeout,
		Logger:  slog.Default(),
	}
	if plan.format == formatText {
		tty := reporting.IsTerminal(out)
		text = reporting.NewTextReporter(out, reporting.TextOptions{
			Color:     tty && !opts.noColor,
			Spinner:   tty,
			NameWidth: reporting.NameWidth(plan.registry.Names(), maxNameWidth),
		})
		runner.Reporter = text
	}

	slog.Debug("running gate", "root", cfg.Root, "config", cfg.Path, "profile", plan.profile, "checks", plan.registry.Len())
	report := runner.Run(ctx, plan.registry)
	summary, code := reporting.Summarize(report, mode)

	if err := writeReport(out, text, report, plan, summary, mode); err != nil {
		return &GateError{Err: err, Mode: mode}
	}
	if opts.junit != "" {
		if err := reporting.WriteJUnitXML(report, plan.profile, opts.junit); err != nil {
			return &GateError{Err: fmt.Errorf("writing JUnit report: %w", err), Mode: mode}
		}
	}

	if code != reporting.ExitSuccess {
		return &GateFailureError{Message: summary, Code: code}
	}
	return nil
}

// runPlan is everything resolved from config and flags before a run.
type runPlan struct {
	profile  string
	format   string
	timeout  time.Duration
	registry *gate.Registry
}

func planRun(cfg *projectconfig.ProjectConfig, profile string, opts runOptions) (*runPlan, error) {
	plan := &runPlan{
		profile: orDefault(profile, cfg.Defaults.Profile),
		format:  orDefault(opts.format, cfg.Defaults.Format),
		timeout: opts.timeout,
	}
	if plan.timeout <= 0 {
		plan.timeout = cfg.TimeoutDuration()
	}

	switch plan.format {
	case formatText, formatJSON, formatMarkdown:
	default:
		return nil, fmt.Errorf("invalid format %q: expected text, json or markdown", plan.format)
	}

	defs, err := cfg.Profile(plan.profile)
	if err != nil {
		return nil, err
	}
	defs, err = skipChecks(defs, opts.skip)
	if err != nil {
		return nil, err
	}

	plan.registry, err = checks.BuildRegistry(defs)
	if err != nil {
		return nil, fmt.Errorf("profile %q: %w", plan.profile, err)
	}
	return plan, nil
}

// skipChecks removes the named checks, rejecting names the profile lacks.
func skipChecks(defs []projectconfig.CheckConfig, skip []string) ([]projectconfig.CheckConfig, error) {
	if len(skip) == 0 {
		return defs, nil
	}

	names := make([]string, 0, len(defs))
	for _, d := range defs {
		names = append(names, d.Name)
	}
	for _, s := range skip {
		if !slices.Contains(names, s) {
			return nil, fmt.Errorf("cannot skip unknown check %q (available: %s)", s, strings.Join(names, ", "))
		}
	}

	kept := make([]projectconfig.CheckConfig, 0, len(defs))
	for _, d := range defs {
		if !slices.Contains(skip, d.Name) {
			kept = append(kept, d)
		}
	}
	return kept, nil
}

func writeReport(out io.Writer, text *reporting.TextReporter, report *gate.RunReport, plan *runPlan, summary string, mode reporting.ExitMode) error {
	switch plan.format {
	case formatJSON:
		return reporting.WriteJSON(out, report, plan.profile, mode)
	case formatMarkdown:
		_, err := fmt.Fprint(out, reporting.FormatMarkdown(report, plan.profile, mode))
		return err
	default:
		text.PrintSkipped(report.Skipped)
		text.PrintSummary(report, summary)
		return nil
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
