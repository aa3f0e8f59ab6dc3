package main

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spboyer/mergegate/internal/projectconfig"
	"github.com/spboyer/mergegate/internal/reporting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fileChecksConfig = `profiles:
  full:
    - name: lockfiles-exist
      kind: files_exist
      with:
        paths: [frontend/pnpm-lock.yaml, api/uv.lock]
        fail_detail: Missing
    - name: memory-config
      kind: file_contains
      with:
        path: frontend/package.json
        substring: "--max-old-space-size"
        fail_detail: Missing memory limit
`

// writeRepo creates a temporary repository holding files.
func writeRepo(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func healthyRepo(t *testing.T) string {
	return writeRepo(t, map[string]string{
		projectconfig.FileName:    fileChecksConfig,
		"frontend/pnpm-lock.yaml": "lockfileVersion: '9.0'\n",
		"api/uv.lock":             "version = 1\n",
		"frontend/package.json":   `{"scripts": {"build": "NODE_OPTIONS=--max-old-space-size=4096 vite build"}}`,
	})
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRoot_AllPass(t *testing.T) {
	dir := healthyRepo(t)

	out, err := runCLI(t, "--dir", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "  ✓ lockfiles-exist\n")
	assert.Contains(t, out, "  ✓ memory-config\n")
	assert.Contains(t, out, "All 2 checks passed")
	assert.NotContains(t, out, "\x1b[")
}

func TestRoot_FailuresSetExitCode(t *testing.T) {
	dir := writeRepo(t, map[string]string{
		projectconfig.FileName:  fileChecksConfig,
		"frontend/package.json": `{"scripts": {"build": "vite build"}}`,
	})

	out, err := runCLI(t, "--dir", dir)
	require.Error(t, err)

	var failure *GateFailureError
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, 2, failure.Code)
	assert.Equal(t, 2, exitCode(err))

	assert.Contains(t, out, "✗ lockfiles-exist  Missing: frontend/pnpm-lock.yaml, api/uv.lock")
	assert.Contains(t, out, "✗ memory-config    Missing memory limit")
	assert.Contains(t, out, "2 of 2 checks failed")

	// lines appear in registration order
	assert.Less(t, strings.Index(out, "lockfiles-exist"), strings.Index(out, "memory-config"))
}

func TestRoot_BinaryExitMode(t *testing.T) {
	dir := writeRepo(t, map[string]string{projectconfig.FileName: fileChecksConfig})

	_, err := runCLI(t, "--dir", dir, "--exit-mode", "binary")
	assert.Equal(t, 1, exitCode(err))
}

func TestRoot_ExitModeFromConfig(t *testing.T) {
	dir := writeRepo(t, map[string]string{
		projectconfig.FileName: "defaults:\n  exit_mode: binary\n" + fileChecksConfig,
	})

	_, err := runCLI(t, "--dir", dir)
	assert.Equal(t, 1, exitCode(err))
}

func TestRoot_QuickProfileWithoutConfig(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, "--dir", dir, "--profile", "quick")
	assert.Equal(t, 2, exitCode(err))
	assert.Contains(t, out, "memory-config")
	assert.Contains(t, out, "Missing: frontend/package.json")
	assert.Contains(t, out, "lockfiles-exist")
	assert.NotContains(t, out, "lockfile-sync")
}

func TestRoot_Skip(t *testing.T) {
	dir := healthyRepo(t)

	out, err := runCLI(t, "--dir", dir, "--skip", "memory-config")
	require.NoError(t, err)
	assert.NotContains(t, out, "memory-config")
	assert.Contains(t, out, "All 1 check passed")
}

func TestRoot_SkipUnknownCheck(t *testing.T) {
	dir := healthyRepo(t)

	_, err := runCLI(t, "--dir", dir, "--skip", "docker-build")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `cannot skip unknown check "docker-build"`)
	assert.Equal(t, 255, exitCode(err))
}

func TestRoot_UnknownProfile(t *testing.T) {
	dir := healthyRepo(t)

	_, err := runCLI(t, "--dir", dir, "--profile", "nightly")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown profile "nightly"`)
	assert.Equal(t, 255, exitCode(err))

	_, err = runCLI(t, "--dir", dir, "--profile", "nightly", "--exit-mode", "binary")
	assert.Equal(t, 2, exitCode(err))
}

func TestRoot_InvalidConfig(t *testing.T) {
	dir := writeRepo(t, map[string]string{
		projectconfig.FileName: "defaults:\n  timeout: -5\n",
	})

	_, err := runCLI(t, "--dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
	assert.Equal(t, 255, exitCode(err))
}

func TestRoot_DuplicateCheckNames(t *testing.T) {
	dir := writeRepo(t, map[string]string{
		projectconfig.FileName: `profiles:
  full:
    - name: lock
      kind: files_exist
      with: {paths: [a]}
    - name: lock
      kind: files_exist
      with: {paths: [b]}
`,
	})

	out, err := runCLI(t, "--dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"lock"`)
	assert.Equal(t, 255, exitCode(err))
	assert.NotContains(t, out, "✗")
}

func TestRoot_InvalidFlags(t *testing.T) {
	dir := healthyRepo(t)

	_, err := runCLI(t, "--dir", dir, "--format", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")

	_, err = runCLI(t, "--dir", dir, "--exit-mode", "sometimes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid exit mode")
	assert.Equal(t, 255, exitCode(err))
}

func TestRoot_ToolInvocationFault(t *testing.T) {
	dir := writeRepo(t, map[string]string{
		projectconfig.FileName: `profiles:
  full:
    - name: missing-tool
      kind: command
      with:
        command: mergegate-no-such-tool --check
        fail_detail: Tool reported problems
`,
	})

	out, err := runCLI(t, "--dir", dir)
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, out, "fault: could not run mergegate-no-such-tool --check")
	assert.NotContains(t, out, "Tool reported problems")
}

func TestRoot_JSONFormat(t *testing.T) {
	dir := writeRepo(t, map[string]string{projectconfig.FileName: fileChecksConfig})

	out, err := runCLI(t, "--dir", dir, "--format", "json")
	assert.Equal(t, 2, exitCode(err))

	var doc struct {
		Root     string `json:"root"`
		Profile  string `json:"profile"`
		Passed   bool   `json:"passed"`
		Failures int    `json:"failures"`
		ExitCode int    `json:"exitCode"`
		Checks   []struct {
			Name   string `json:"name"`
			Status string `json:"status"`
			Kind   string `json:"kind"`
		} `json:"checks"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc), out)
	assert.Equal(t, dir, doc.Root)
	assert.Equal(t, "full", doc.Profile)
	assert.False(t, doc.Passed)
	assert.Equal(t, 2, doc.Failures)
	assert.Equal(t, 2, doc.ExitCode)
	require.Len(t, doc.Checks, 2)
	assert.Equal(t, "check", doc.Checks[0].Kind)
}

func TestRoot_MarkdownFormat(t *testing.T) {
	dir := healthyRepo(t)

	out, err := runCLI(t, "--dir", dir, "--format", "markdown")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "## Merge Gate"))
	assert.Contains(t, out, "| lockfiles-exist | ✅ |")
}

func TestRoot_JUnitReport(t *testing.T) {
	dir := writeRepo(t, map[string]string{projectconfig.FileName: fileChecksConfig})
	junitPath := filepath.Join(t.TempDir(), "gate.xml")

	_, err := runCLI(t, "--dir", dir, "--junit", junitPath)
	assert.Equal(t, 2, exitCode(err))

	data, err := os.ReadFile(junitPath)
	require.NoError(t, err)

	var suites reporting.JUnitTestSuites
	require.NoError(t, xml.Unmarshal(data, &suites))
	assert.Equal(t, 2, suites.Tests)
	assert.Equal(t, 2, suites.Failures)
	assert.Equal(t, "full", suites.TestSuites[0].Name)
}

func TestRoot_FindsConfigInParent(t *testing.T) {
	dir := healthyRepo(t)
	nested := filepath.Join(dir, "frontend", "src")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	out, err := runCLI(t, "--dir", nested, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"root": "`+dir+`"`)
}

func TestSkipChecks(t *testing.T) {
	defs := projectconfig.ReferenceChecks()

	kept, err := skipChecks(defs, []string{"lint", "type-check"})
	require.NoError(t, err)
	require.Len(t, kept, 3)
	assert.Equal(t, "lockfile-sync", kept[0].Name)
	assert.Equal(t, "memory-config", kept[1].Name)

	same, err := skipChecks(defs, nil)
	require.NoError(t, err)
	assert.Len(t, same, 5)
}
