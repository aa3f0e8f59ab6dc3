package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spboyer/mergegate/internal/projectconfig"
	"github.com/spf13/cobra"
)

func newListCommand(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the checks of a profile",
		Long: `List the checks of a profile in execution order, with their kind,
target and timeout. Use --profile to choose a profile.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := projectconfig.Load(global.dir)
			if err != nil {
				return &GateError{Err: err, Mode: exitModeOf(cfg)}
			}
			profile := orDefault(global.profile, cfg.Defaults.Profile)
			defs, err := cfg.Profile(profile)
			if err != nil {
				return &GateError{Err: err, Mode: exitModeOf(cfg)}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Profile %s (%d checks)\n", profile, len(defs)) //nolint:errcheck
			renderChecks(out, defs, cfg.Defaults.Timeout)
			return nil
		},
	}
}

func renderChecks(w io.Writer, defs []projectconfig.CheckConfig, defaultTimeout int) {
	table := tablewriter.NewWriter(w)
	table.SetBorder(false)
	table.SetColumnSeparator("|")
	table.SetHeaderLine(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Name", "Kind", "Target", "Timeout"})

	for _, d := range defs {
		timeout := fmt.Sprintf("%ds (default)", defaultTimeout)
		if d.Timeout > 0 {
			timeout = fmt.Sprintf("%ds", d.Timeout)
		}
		table.Append([]string{d.Name, d.Kind, checkTarget(d), timeout})
	}
	table.Render()
}

// checkTarget summarizes what a check looks at.
func checkTarget(d projectconfig.CheckConfig) string {
	switch d.Kind {
	case "command":
		target := stringParam(d.With, "command")
		if dir := stringParam(d.With, "dir"); dir != "" {
			target += " (in " + dir + ")"
		}
		return target
	case "files_exist":
		var paths []string
		if raw, ok := d.With["paths"].([]any); ok {
			for _, p := range raw {
				paths = append(paths, fmt.Sprint(p))
			}
		} else if raw, ok := d.With["paths"].([]string); ok {
			paths = raw
		}
		return strings.Join(paths, ", ")
	case "file_contains":
		return fmt.Sprintf("%s contains %q", stringParam(d.With, "path"), stringParam(d.With, "substring"))
	default:
		return ""
	}
}

func stringParam(params map[string]any, key string) string {
	s, _ := params[key].(string)
	return s
}
