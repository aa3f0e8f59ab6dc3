package projectconfig

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestNew_ReturnsAllDefaults(t *testing.T) {
	cfg := New()

	assertEqual(t, "Defaults.Profile", "full", cfg.Defaults.Profile)
	assertEqualInt(t, "Defaults.Timeout", 120, cfg.Defaults.Timeout)
	assertEqual(t, "Defaults.ExitMode", "count", cfg.Defaults.ExitMode)
	assertEqual(t, "Defaults.Format", "text", cfg.Defaults.Format)

	if got := cfg.TimeoutDuration(); got != 2*time.Minute {
		t.Errorf("TimeoutDuration() = %v, want 2m0s", got)
	}

	full, err := cfg.Profile("full")
	if err != nil {
		t.Fatalf("Profile(full) error: %v", err)
	}
	wantFull := []string{"lockfile-sync", "lint", "type-check", "memory-config", "lockfiles-exist"}
	if got := names(full); strings.Join(got, ",") != strings.Join(wantFull, ",") {
		t.Errorf("full profile = %v, want %v", got, wantFull)
	}

	quick, err := cfg.Profile("quick")
	if err != nil {
		t.Fatalf("Profile(quick) error: %v", err)
	}
	for _, c := range quick {
		if c.Kind == "command" {
			t.Errorf("quick profile must not launch commands, got %s", c.Name)
		}
	}
}

func TestReferenceProfiles_FreshCopies(t *testing.T) {
	a := ReferenceProfiles()
	a["full"][0].Name = "mutated"

	b := ReferenceProfiles()
	assertEqual(t, "full[0].Name", "lockfile-sync", b["full"][0].Name)
}

func TestLoad_FullConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, `
defaults:
  profile: ci
  timeout: 300
  exit_mode: binary
  format: json
profiles:
  ci:
    - name: lint
      kind: command
      timeout: 45
      with:
        command: golangci-lint run
        exit_codes: [0]
    - name: go-sum
      kind: files_exist
      with:
        paths: [go.sum]
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	assertEqual(t, "Defaults.Profile", "ci", cfg.Defaults.Profile)
	assertEqualInt(t, "Defaults.Timeout", 300, cfg.Defaults.Timeout)
	assertEqual(t, "Defaults.ExitMode", "binary", cfg.Defaults.ExitMode)
	assertEqual(t, "Defaults.Format", "json", cfg.Defaults.Format)
	assertEqual(t, "Root", dir, cfg.Root)
	assertEqual(t, "Path", filepath.Join(dir, FileName), cfg.Path)

	// file profiles replace the built-in set
	if got := cfg.ProfileNames(); strings.Join(got, ",") != "ci" {
		t.Errorf("ProfileNames() = %v, want [ci]", got)
	}

	ci, err := cfg.Profile("ci")
	if err != nil {
		t.Fatalf("Profile(ci) error: %v", err)
	}
	if len(ci) != 2 {
		t.Fatalf("len(ci) = %d, want 2", len(ci))
	}
	assertEqual(t, "ci[0].Kind", "command", ci[0].Kind)
	if got := ci[0].TimeoutDuration(); got != 45*time.Second {
		t.Errorf("ci[0].TimeoutDuration() = %v, want 45s", got)
	}
	assertEqual(t, "ci[0].With.command", "golangci-lint run", ci[0].With["command"].(string))
	if got := ci[1].TimeoutDuration(); got != 0 {
		t.Errorf("ci[1].TimeoutDuration() = %v, want 0", got)
	}
}

func TestLoad_PartialConfig_KeepsReferenceProfiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, `
defaults:
  timeout: 30
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	assertEqualInt(t, "Defaults.Timeout", 30, cfg.Defaults.Timeout)
	assertEqual(t, "Defaults.Profile", "full", cfg.Defaults.Profile)
	assertEqual(t, "Defaults.ExitMode", "count", cfg.Defaults.ExitMode)
	if _, err := cfg.Profile("full"); err != nil {
		t.Errorf("reference profile should survive a partial config: %v", err)
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, "")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	assertEqual(t, "Defaults.Profile", "full", cfg.Defaults.Profile)
	assertEqual(t, "Path", filepath.Join(dir, FileName), cfg.Path)
}

func TestLoad_MissingFile_ReturnsDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	assertEqual(t, "Root", dir, cfg.Root)
	assertEqual(t, "Path", "", cfg.Path)
	assertEqual(t, "Defaults.Profile", "full", cfg.Defaults.Profile)
}

func TestLoad_InvalidYAML_ReturnsError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, "defaults: [unclosed")

	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestLoad_SchemaViolation_ReturnsSchemaError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, `
defaults:
  exit_mode: sometimes
profiles:
  full:
    - name: docker
      kind: docker-build
`)

	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected schema error")
	}
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("error = %T, want *SchemaError", err)
	}
	if len(schemaErr.Problems) < 2 {
		t.Errorf("Problems = %v, want at least 2", schemaErr.Problems)
	}
	if !strings.Contains(err.Error(), FileName) {
		t.Errorf("error %q should name the config file", err)
	}
}

func TestLoad_WalksUpDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, FileName, "defaults:\n  profile: quick\n")

	nested := filepath.Join(root, "frontend", "src", "app")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(nested)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	assertEqual(t, "Defaults.Profile", "quick", cfg.Defaults.Profile)
	assertEqual(t, "Root", root, cfg.Root)
}

func TestLoad_UnreadableFile_ReturnsError(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}
	dir := t.TempDir()
	writeFile(t, dir, FileName, "defaults:\n  timeout: 10\n")
	if err := os.Chmod(filepath.Join(dir, FileName), 0o000); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(dir); err == nil {
		t.Fatal("expected permission error")
	}
}

func TestProfile_Unknown(t *testing.T) {
	_, err := New().Profile("nightly")
	if err == nil {
		t.Fatal("expected error for unknown profile")
	}
	if !strings.Contains(err.Error(), "full, quick") {
		t.Errorf("error %q should list available profiles", err)
	}
}

func TestMarshal_RoundTrips(t *testing.T) {
	data, err := New().Marshal()
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	parsed, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error: %v\n%s", err, data)
	}
	assertEqual(t, "Defaults.Profile", "full", parsed.Defaults.Profile)
	if len(parsed.Profiles["full"]) != 5 {
		t.Errorf("len(full) = %d, want 5", len(parsed.Profiles["full"]))
	}
	if strings.Contains(string(data), "root:") {
		t.Errorf("Root must not be serialized:\n%s", data)
	}
}

// --- test helpers ---

func names(defs []CheckConfig) []string {
	out := make([]string, 0, len(defs))
	for _, d := range defs {
		out = append(out, d.Name)
	}
	return out
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func assertEqual(t *testing.T, field, want, got string) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %q, want %q", field, got, want)
	}
}

func assertEqualInt(t *testing.T, field string, want, got int) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %d, want %d", field, got, want)
	}
}
