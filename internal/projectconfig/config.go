// Package projectconfig provides the ProjectConfig struct and loader for
// .mergegate.yaml gate configuration files.
package projectconfig

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spboyer/mergegate/internal/validation"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up from the working directory upwards.
const FileName = ".mergegate.yaml"

// Default values for gate configuration. New() references them and no
// other code should duplicate them.
const (
	DefaultProfile  = "full"
	DefaultTimeout  = 120
	DefaultExitMode = "count"
	DefaultFormat   = "text"
)

// maxSearchDepth bounds how many parent directories Load inspects.
const maxSearchDepth = 10

// DefaultsConfig holds the settings used when no CLI flag overrides them.
type DefaultsConfig struct {
	Profile  string `yaml:"profile,omitempty"`
	Timeout  int    `yaml:"timeout,omitempty"`
	ExitMode string `yaml:"exit_mode,omitempty"`
	Format   string `yaml:"format,omitempty"`
}

// CheckConfig defines one check of a profile.
type CheckConfig struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
	// Timeout in seconds; zero means the gate default.
	Timeout int            `yaml:"timeout,omitempty"`
	With    map[string]any `yaml:"with,omitempty"`
}

// TimeoutDuration returns the per-check override, or zero.
func (c CheckConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// ProjectConfig is the top-level configuration loaded from .mergegate.yaml.
type ProjectConfig struct {
	Defaults DefaultsConfig           `yaml:"defaults,omitempty"`
	Profiles map[string][]CheckConfig `yaml:"profiles,omitempty"`

	// Root is the repository root: the directory holding the config file,
	// or the start directory when no file was found.
	Root string `yaml:"-"`
	// Path is the config file that was loaded. Empty when defaults are in use.
	Path string `yaml:"-"`
}

// New returns a ProjectConfig with all hard-coded defaults populated,
// including the reference profiles.
func New() *ProjectConfig {
	return &ProjectConfig{
		Defaults: DefaultsConfig{
			Profile:  DefaultProfile,
			Timeout:  DefaultTimeout,
			ExitMode: DefaultExitMode,
			Format:   DefaultFormat,
		},
		Profiles: ReferenceProfiles(),
	}
}

// Load finds .mergegate.yaml by walking up from startDir (max 10 levels),
// validates it, unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults rooted at startDir with a
// nil error. Real I/O errors (e.g. permission denied) are returned.
func Load(startDir string) (*ProjectConfig, error) {
	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", startDir, err)
	}

	cfg := New()
	cfg.Root = absStart

	data, path, err := findConfigFile(absStart)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil // no file found → return defaults
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}

	fileCfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	mergeConfig(cfg, fileCfg)
	cfg.Root = filepath.Dir(path)
	cfg.Path = path
	return cfg, nil
}

// Parse validates data against the config schema and decodes it. The
// result holds only what the document sets; use Load for merged defaults.
func Parse(data []byte) (*ProjectConfig, error) {
	if errs := validation.ValidateConfigBytes(data); len(errs) > 0 {
		return nil, &SchemaError{Problems: errs}
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}
	return &fileCfg, nil
}

// SchemaError lists every schema violation found in a config document.
type SchemaError struct {
	Problems []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid configuration:\n  - %s", strings.Join(e.Problems, "\n  - "))
}

// findConfigFile walks up from dir looking for .mergegate.yaml.
// Returns os.ErrNotExist if no config file is found.
func findConfigFile(dir string) ([]byte, string, error) {
	for i := 0; i < maxSearchDepth; i++ {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, p, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, "", fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, "", os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst. Profiles from the
// file replace the built-in set as a whole.
func mergeConfig(dst, src *ProjectConfig) {
	if src.Defaults.Profile != "" {
		dst.Defaults.Profile = src.Defaults.Profile
	}
	if src.Defaults.Timeout != 0 {
		dst.Defaults.Timeout = src.Defaults.Timeout
	}
	if src.Defaults.ExitMode != "" {
		dst.Defaults.ExitMode = src.Defaults.ExitMode
	}
	if src.Defaults.Format != "" {
		dst.Defaults.Format = src.Defaults.Format
	}

	if len(src.Profiles) > 0 {
		dst.Profiles = src.Profiles
	}
}

// Profile returns the check definitions of the named profile.
func (c *ProjectConfig) Profile(name string) ([]CheckConfig, error) {
	defs, ok := c.Profiles[name]
	if !ok {
		return nil, fmt.Errorf("unknown profile %q (available: %s)", name, strings.Join(c.ProfileNames(), ", "))
	}
	return defs, nil
}

// ProfileNames returns the configured profile names, sorted.
func (c *ProjectConfig) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// TimeoutDuration returns the default per-check timeout.
func (c *ProjectConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Defaults.Timeout) * time.Second
}

// Marshal renders the configuration as YAML, the form `init` writes.
func (c *ProjectConfig) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", FileName, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", FileName, err)
	}
	return buf.Bytes(), nil
}
