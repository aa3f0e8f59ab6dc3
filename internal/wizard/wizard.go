// Package wizard collects the answers for `mergegate init` and turns them
// into a .mergegate.yaml document.
package wizard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spboyer/mergegate/internal/projectconfig"
	"golang.org/x/term"
)

// QuickProfile is the profile holding the selected checks that launch no subprocess.
const QuickProfile = "quick"

// Answers holds all fields collected during the interactive wizard.
type Answers struct {
	Checks   []string
	ExitMode string
	Timeout  int
}

// DefaultAnswers selects every reference check with the built-in defaults.
func DefaultAnswers() Answers {
	var names []string
	for _, c := range projectconfig.ReferenceChecks() {
		names = append(names, c.Name)
	}
	return Answers{
		Checks:   names,
		ExitMode: projectconfig.DefaultExitMode,
		Timeout:  projectconfig.DefaultTimeout,
	}
}

// RunInitWizard runs an interactive huh form to choose the reference
// checks, the exit mode and the per-check timeout.
func RunInitWizard(in io.Reader, out io.Writer) (*Answers, error) {
	defaults := DefaultAnswers()
	var (
		selected   = defaults.Checks
		exitMode   = defaults.ExitMode
		timeoutRaw = strconv.Itoa(defaults.Timeout)
	)

	var options []huh.Option[string]
	for _, c := range projectconfig.ReferenceChecks() {
		options = append(options, huh.NewOption(fmt.Sprintf("%s (%s)", c.Name, c.Kind), c.Name).Selected(true))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Checks").
				Description("Checks to run before merging").
				Options(options...).
				Value(&selected).
				Validate(func(s []string) error {
					if len(s) == 0 {
						return errors.New("select at least one check")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Exit mode").
				Description("count exits with the number of failures, binary exits 1").
				Options(
					huh.NewOption("count", "count"),
					huh.NewOption("binary", "binary"),
				).
				Value(&exitMode),
			huh.NewInput().
				Title("Timeout").
				Description("Seconds a single check may run").
				Value(&timeoutRaw).
				Validate(func(s string) error {
					_, err := parseTimeout(s)
					return err
				}),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	timeout, err := parseTimeout(timeoutRaw)
	if err != nil {
		return nil, err
	}
	return &Answers{Checks: selected, ExitMode: exitMode, Timeout: timeout}, nil
}

// BuildConfig turns answers into a configuration with a default profile
// holding the selected checks in reference order, plus a quick profile
// when any selected check launches no subprocess.
func BuildConfig(a Answers) (*projectconfig.ProjectConfig, error) {
	if len(a.Checks) == 0 {
		return nil, errors.New("no checks selected")
	}

	reference := projectconfig.ReferenceChecks()
	known := make([]string, 0, len(reference))
	for _, c := range reference {
		known = append(known, c.Name)
	}
	for _, name := range a.Checks {
		if !slices.Contains(known, name) {
			return nil, fmt.Errorf("unknown check %q (available: %s)", name, strings.Join(known, ", "))
		}
	}

	var full, quick []projectconfig.CheckConfig
	for _, c := range reference {
		if !slices.Contains(a.Checks, c.Name) {
			continue
		}
		full = append(full, c)
		if c.Kind != "command" {
			quick = append(quick, c)
		}
	}

	cfg := projectconfig.New()
	if a.ExitMode != "" {
		cfg.Defaults.ExitMode = a.ExitMode
	}
	if a.Timeout > 0 {
		cfg.Defaults.Timeout = a.Timeout
	}
	cfg.Profiles = map[string][]projectconfig.CheckConfig{projectconfig.DefaultProfile: full}
	if len(quick) > 0 {
		cfg.Profiles[QuickProfile] = quick
	}
	return cfg, nil
}

// Render builds the configuration for a and encodes it as YAML.
func Render(a Answers) ([]byte, error) {
	cfg, err := BuildConfig(a)
	if err != nil {
		return nil, err
	}
	return cfg.Marshal()
}

func parseTimeout(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("timeout must be a positive number of seconds, got %q", s)
	}
	return n, nil
}
