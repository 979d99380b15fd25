// Package engine orchestrates rule runs across schema files.
// It owns file discovery, the per-file validate and fix operations, and the
// batch drivers the CLI calls. Files are independent: the only shared state
// in a run is the append-only result list.
package engine

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/BEEQUIP/dbt-yaml-description-validator/pkg/lint"
	"github.com/BEEQUIP/dbt-yaml-description-validator/pkg/patch"
	"github.com/BEEQUIP/dbt-yaml-description-validator/pkg/schema"
)

// DefaultPattern is the schema file name discovery looks for.
const DefaultPattern = "schema.yml"

// DefaultExcludes are directory names skipped during discovery. dbt writes
// compiled copies of schema files under both.
var DefaultExcludes = []string{"target", "dbt_packages"}

// Engine runs a rule over schema files.
type Engine struct {
	pattern string
	exclude map[string]bool
	jobs    int
	logger  *slog.Logger
}

// Config holds engine configuration.
type Config struct {
	// Pattern is the schema file name matched during discovery.
	// Defaults to DefaultPattern.
	Pattern string
	// Exclude lists directory names skipped during discovery.
	// Defaults to DefaultExcludes when nil.
	Exclude []string
	// Jobs caps how many files are processed concurrently. Values below 1
	// mean sequential processing.
	Jobs int
	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger
}

// New creates an engine.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	pattern := cfg.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}

	excludes := cfg.Exclude
	if excludes == nil {
		excludes = DefaultExcludes
	}
	exclude := make(map[string]bool, len(excludes))
	for _, name := range excludes {
		exclude[name] = true
	}

	jobs := cfg.Jobs
	if jobs < 1 {
		jobs = 1
	}

	return &Engine{
		pattern: pattern,
		exclude: exclude,
		jobs:    jobs,
		logger:  logger,
	}
}

// FileError reports a schema file that could not be read or parsed.
// The file is skipped; the run continues.
type FileError struct {
	Path   string
	Detail string
}

// String renders the canonical report line.
func (e FileError) String() string {
	return fmt.Sprintf("%s: Could not parse (%s)", e.Path, e.Detail)
}

// ValidateFile checks every description in one schema file against a rule.
// A file that cannot be read or parsed yields a FileError instead of
// validation errors.
func (e *Engine) ValidateFile(path string, rule lint.Rule) ([]schema.ValidationError, *FileError) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: paths come from discovery or CLI arguments
	if err != nil {
		return nil, &FileError{Path: path, Detail: err.Error()}
	}

	doc, err := schema.Parse(data)
	if err != nil {
		e.logger.Debug("parse failure", "path", path, "error", err.Error())
		return nil, &FileError{Path: path, Detail: err.Error()}
	}

	return schema.Validate(path, doc, rule), nil
}

// FixFile applies a rule's fix to every description in one schema file and
// reports whether the file changed. The rewrite happens on the raw text, so
// everything outside the patched descriptions keeps its exact bytes. A
// changed file is replaced with a single atomic write; an unchanged file is
// not written at all.
func (e *Engine) FixFile(path string, rule lint.Rule) (bool, error) {
	if !rule.Fixable() {
		return false, fmt.Errorf("rule %q has no fix", rule.Name)
	}

	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304: paths come from discovery or CLI arguments
	if err != nil {
		return false, err
	}

	patched, changed := patch.Apply(string(data), rule.Fix)
	if !changed {
		return false, nil
	}

	if err := writeFileAtomic(path, []byte(patched), info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}

	e.logger.Debug("file rewritten", "path", path, "rule", rule.Name)
	return true, nil
}

// previewFix reports whether FixFile would change the file, without writing.
func (e *Engine) previewFix(path string, rule lint.Rule) (bool, error) {
	if !rule.Fixable() {
		return false, fmt.Errorf("rule %q has no fix", rule.Name)
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: paths come from discovery or CLI arguments
	if err != nil {
		return false, err
	}

	_, changed := patch.Apply(string(data), rule.Fix)
	return changed, nil
}
