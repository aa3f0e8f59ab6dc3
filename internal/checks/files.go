package checks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spboyer/mergegate/internal/gate"
	"github.com/spboyer/mergegate/internal/probe"
)

// FilesExistArgs holds the arguments for a files_exist check.
type FilesExistArgs struct {
	// Paths are relative to the repository root.
	Paths      []string `mapstructure:"paths"`
	FailDetail string   `mapstructure:"fail_detail"`
}

// NewFilesExistCheck creates a check that fails when any path is missing.
// The detail names the missing paths.
func NewFilesExistCheck(name string, args FilesExistArgs, opts ...gate.CheckOption) (gate.Check, error) {
	if len(args.Paths) == 0 {
		return gate.Check{}, fmt.Errorf("files_exist check %q must have at least one path", name)
	}
	paths := append([]string(nil), args.Paths...)
	failDetail := args.FailDetail
	if failDetail == "" {
		failDetail = "Missing"
	}

	action := func(_ context.Context, root string) (gate.Outcome, error) {
		missing, err := probe.MissingFiles(root, paths)
		if err != nil {
			return gate.Outcome{}, err
		}
		if len(missing) == 0 {
			return gate.Pass(), nil
		}
		return gate.Fail(fmt.Sprintf("%s: %s", failDetail, strings.Join(missing, ", "))), nil
	}

	return gate.NewCheck(name, action, opts...), nil
}

// FileContainsArgs holds the arguments for a file_contains check.
type FileContainsArgs struct {
	Path       string `mapstructure:"path"`
	Substring  string `mapstructure:"substring"`
	FailDetail string `mapstructure:"fail_detail"`
}

// NewFileContainsCheck creates a check that fails when the file is missing
// or does not contain the substring.
func NewFileContainsCheck(name string, args FileContainsArgs, opts ...gate.CheckOption) (gate.Check, error) {
	if args.Path == "" {
		return gate.Check{}, fmt.Errorf("file_contains check %q must have a 'path'", name)
	}
	if args.Substring == "" {
		return gate.Check{}, fmt.Errorf("file_contains check %q must have a 'substring'", name)
	}
	path, substr, failDetail := args.Path, args.Substring, args.FailDetail

	action := func(_ context.Context, root string) (gate.Outcome, error) {
		ok, err := probe.FileContains(root, path, substr)
		if errors.Is(err, os.ErrNotExist) {
			return gate.Fail("Missing: " + path), nil
		}
		if err != nil {
			return gate.Outcome{}, err
		}
		if ok {
			return gate.Pass(), nil
		}
		if failDetail != "" {
			return gate.Fail(failDetail), nil
		}
		return gate.Fail(fmt.Sprintf("%q not found in %s", substr, path)), nil
	}

	return gate.NewCheck(name, action, opts...), nil
}
