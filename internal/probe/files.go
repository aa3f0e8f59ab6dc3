package probe

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Resolve returns path unchanged when it is absolute and joined to root otherwise.
func Resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// FileExists reports whether path (relative to root) exists. Errors other
// than "does not exist" are returned.
func FileExists(root, path string) (bool, error) {
	_, err := os.Stat(Resolve(root, path))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("checking %s: %w", path, err)
}

// MissingFiles returns the subset of paths that do not exist under root,
// preserving their order.
func MissingFiles(root string, paths []string) ([]string, error) {
	var missing []string
	for _, p := range paths {
		ok, err := FileExists(root, p)
		if err != nil {
			return nil, err
		}
		if !ok {
			missing = append(missing, p)
		}
	}
	return missing, nil
}

// FileContains reports whether the file at path (relative to root) contains
// substr. A missing file yields an error wrapping os.ErrNotExist.
func FileContains(root, path, substr string) (bool, error) {
	data, err := os.ReadFile(Resolve(root, path))
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}
	return bytes.Contains(data, []byte(substr)), nil
}
