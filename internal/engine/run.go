package engine

// run.go - batch drivers for running one rule over many files

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/BEEQUIP/dbt-yaml-description-validator/pkg/lint"
	"github.com/BEEQUIP/dbt-yaml-description-validator/pkg/schema"
)

// CheckResult aggregates a validation run.
type CheckResult struct {
	RunID        string
	FilesScanned int

	// Violations holds every failed description, sorted by file path with
	// document order preserved within a file.
	Violations []schema.ValidationError

	// ParseFailures holds the files that could not be read or parsed,
	// sorted by path.
	ParseFailures []FileError

	Duration time.Duration
}

// Clean reports whether the run found nothing wrong.
func (r *CheckResult) Clean() bool {
	return len(r.Violations) == 0 && len(r.ParseFailures) == 0
}

// FixResult aggregates a fix run.
type FixResult struct {
	RunID        string
	FilesScanned int

	// Modified lists the files the run rewrote, or would rewrite under
	// dry-run, sorted by path.
	Modified []string

	// Failures holds the files that could not be read or written back,
	// sorted by path. A failed file is left as it was.
	Failures []FileError

	Duration time.Duration
}

// Check validates every path against the rule. Files fan out over at most
// Jobs goroutines; the result is re-sorted by path afterwards so output is
// deterministic regardless of completion order. Cancellation takes effect at
// file boundaries and surfaces as the returned error alongside the partial
// result.
func (e *Engine) Check(ctx context.Context, paths []string, rule lint.Rule) (*CheckResult, error) {
	start := time.Now()
	result := &CheckResult{RunID: newRunID()}

	e.logger.Info("starting check", "run_id", result.RunID, "rule", rule.Name, "files", len(paths))

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.jobs)

	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			violations, fileErr := e.ValidateFile(path, rule)

			mu.Lock()
			defer mu.Unlock()
			result.FilesScanned++
			if fileErr != nil {
				result.ParseFailures = append(result.ParseFailures, *fileErr)
				return nil
			}
			result.Violations = append(result.Violations, violations...)
			return nil
		})
	}

	err := g.Wait()

	sort.SliceStable(result.Violations, func(i, j int) bool {
		return result.Violations[i].Path < result.Violations[j].Path
	})
	sort.Slice(result.ParseFailures, func(i, j int) bool {
		return result.ParseFailures[i].Path < result.ParseFailures[j].Path
	})
	result.Duration = time.Since(start)

	e.logger.Info("check completed",
		"run_id", result.RunID,
		"files_scanned", result.FilesScanned,
		"violations", len(result.Violations),
		"parse_failures", len(result.ParseFailures),
		"duration_ms", result.Duration.Milliseconds())

	return result, err
}

// Fix applies the rule's fix to every path. Dry-run computes each rewrite
// but skips the write. A file that fails to read or write is recorded and
// the run continues; no file is ever left partially written.
func (e *Engine) Fix(ctx context.Context, paths []string, rule lint.Rule, dryRun bool) (*FixResult, error) {
	start := time.Now()
	result := &FixResult{RunID: newRunID()}

	e.logger.Info("starting fix",
		"run_id", result.RunID, "rule", rule.Name, "files", len(paths), "dry_run", dryRun)

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.jobs)

	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			var changed bool
			var err error
			if dryRun {
				changed, err = e.previewFix(path, rule)
			} else {
				changed, err = e.FixFile(path, rule)
			}

			mu.Lock()
			defer mu.Unlock()
			result.FilesScanned++
			if err != nil {
				result.Failures = append(result.Failures, FileError{Path: path, Detail: err.Error()})
				return nil
			}
			if changed {
				result.Modified = append(result.Modified, path)
			}
			return nil
		})
	}

	err := g.Wait()

	sort.Strings(result.Modified)
	sort.Slice(result.Failures, func(i, j int) bool {
		return result.Failures[i].Path < result.Failures[j].Path
	})
	result.Duration = time.Since(start)

	e.logger.Info("fix completed",
		"run_id", result.RunID,
		"files_scanned", result.FilesScanned,
		"files_modified", len(result.Modified),
		"failures", len(result.Failures),
		"duration_ms", result.Duration.Milliseconds())

	return result, err
}

// newRunID creates a new UUID.
func newRunID() string {
	return uuid.New().String()
}
