package engine

// discovery.go - locating the schema files a run operates on

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Discover walks root and collects every file whose base name matches the
// configured pattern. Hidden directories and excluded directories are not
// descended into. Paths come back sorted.
func (e *Engine) Discover(root string) ([]string, error) {
	var files []string

	err := filepath.Walk(root, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if info.IsDir() {
			name := info.Name()
			if path != root && (e.exclude[name] || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if info.Name() == e.pattern {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	e.logger.Debug("discovered schema files", "root", root, "count", len(files))
	return files, nil
}

// ResolvePaths turns command arguments into the list of files to process.
// Explicit arguments bypass discovery and keep their given order; anything
// that is not a regular file is dropped. With no arguments, discovery runs
// from the current directory.
func (e *Engine) ResolvePaths(args []string) ([]string, error) {
	if len(args) == 0 {
		return e.Discover(".")
	}

	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.Mode().IsRegular() {
			e.logger.Debug("skipping non-file argument", "path", arg)
			continue
		}
		files = append(files, arg)
	}
	return files, nil
}
