package internal

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Directories never descended into, matching common Python project
// conventions. Initialized once and read-only afterwards.
var excludedDirs = map[string]bool{
	"venv":          true,
	".venv":         true,
	"env":           true,
	".env":          true,
	"virtualenv":    true,
	".git":          true,
	".hg":           true,
	".svn":          true,
	".bzr":          true,
	"__pycache__":   true,
	".pytest_cache": true,
	".mypy_cache":   true,
	".ruff_cache":   true,
	"build":         true,
	"dist":          true,
	".eggs":         true,
	"node_modules":  true,
	".vscode":       true,
	".idea":         true,
}

// FindPythonFiles discovers .py files under target. A file target
// yields itself when it is a Python file and nothing otherwise; a
// directory is walked recursively with standard exclusions, skipping
// hidden directories and symlinks. Results are sorted for
// deterministic output.
func FindPythonFiles(target string) ([]string, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, fmt.Errorf("path does not exist: %s", target)
	}

	if !info.IsDir() {
		if filepath.Ext(target) == ".py" {
			return []string{target}, nil
		}
		return nil, nil
	}

	var files []string
	err = filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped, not fatal.
			return nil
		}
		name := d.Name()
		if d.IsDir() {
			if path != target && (excludedDirs[name] || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		if filepath.Ext(name) == ".py" && !strings.HasPrefix(name, ".") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to traverse %s: %w", target, err)
	}

	sort.Strings(files)
	return files, nil
}
