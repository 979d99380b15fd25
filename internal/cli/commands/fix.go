package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/BEEQUIP/dbt-yaml-description-validator/internal/cli/output"
	"github.com/BEEQUIP/dbt-yaml-description-validator/internal/engine"
	"github.com/BEEQUIP/dbt-yaml-description-validator/pkg/lint"
	_ "github.com/BEEQUIP/dbt-yaml-description-validator/pkg/lint/rules" // register description rules
)

// FixOptions holds options for the fix command.
type FixOptions struct {
	Rule   string   // Rule name whose fix to apply
	Format string   // Output format: text, markdown, json
	DryRun bool     // Report what would change without writing
	Files  []string // Explicit schema files; empty means discover
}

// NewFixCommand creates the fix command.
func NewFixCommand() *cobra.Command {
	opts := &FixOptions{}
	cmd := &cobra.Command{
		Use:   "fix [files...]",
		Short: "Rewrite descriptions that fail a rule",
		Long: `Rewrite dbt schema descriptions in place using a rule's automatic fix.

Only the description values are patched: every other byte of the file,
including comments, quoting, key order and indentation, is preserved.
Files are replaced atomically so a crash never leaves a half-written
schema behind.

Not every rule can fix what it checks; 'dbtdesc rules' shows which ones
can. Files that cannot be read or written are reported and skipped.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Append missing trailing periods across the project
  dbtdesc fix --rule period

  # Preview without writing
  dbtdesc fix --rule period --dry-run

  # Fix specific files
  dbtdesc fix --rule capital models/staging/schema.yml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Files = args
			return runFix(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Rule, "rule", "r", "", "Rule whose fix to apply (see 'dbtdesc rules')")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Report what would change without writing")

	return cmd
}

func runFix(cmd *cobra.Command, opts *FixOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	// Override renderer if format flag is set
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	rule, err := resolveRule(opts.Rule, cmdCtx.Cfg)
	if err != nil {
		return err
	}
	if !rule.Fixable() {
		return NewUsageError("rule %q has no automatic fix (fixable rules: %s)", rule.Name, strings.Join(fixableRuleNames(), ", "))
	}

	paths, err := cmdCtx.Engine.ResolvePaths(opts.Files)
	if err != nil {
		return fmt.Errorf("failed to discover schema files: %w", err)
	}

	result, err := cmdCtx.Engine.Fix(cmd.Context(), paths, rule, opts.DryRun)
	if err != nil {
		return err
	}

	return renderFixResult(r, rule, result, opts.DryRun)
}

// fixableRuleNames returns the names of all rules that define a fix.
func fixableRuleNames() []string {
	var names []string
	for _, rule := range lint.AllRules() {
		if rule.Fixable() {
			names = append(names, rule.Name)
		}
	}
	return names
}

// renderFixResult prints a fix run and returns ErrViolationsFound when any
// file could not be processed.
func renderFixResult(r *output.Renderer, rule lint.Rule, result *engine.FixResult, dryRun bool) error {
	if r.EffectiveMode() == output.ModeJSON {
		if err := r.JSON(buildFixOutput(rule, result, dryRun)); err != nil {
			return err
		}
		if len(result.Failures) > 0 {
			return ErrViolationsFound
		}
		return nil
	}

	verb := "Fixed"
	if dryRun {
		verb = "Would fix"
	}
	for _, path := range result.Modified {
		r.Printf("%s %s\n", verb, path)
	}
	for _, f := range result.Failures {
		r.Warning(fmt.Sprintf("%s: %s", f.Path, f.Detail))
	}

	if len(result.Failures) > 0 {
		r.Println("")
		r.Printf("Summary: %d files changed, %d failed of %d scanned (rule '%s')\n",
			len(result.Modified), len(result.Failures), result.FilesScanned, rule.Name)
		return ErrViolationsFound
	}

	switch {
	case len(result.Modified) == 0:
		r.Success(fmt.Sprintf("Nothing to fix: all descriptions pass rule '%s' (%d files checked)", rule.Name, result.FilesScanned))
	case dryRun:
		r.Success(fmt.Sprintf("Would fix %d of %d files (rule '%s')", len(result.Modified), result.FilesScanned, rule.Name))
	default:
		r.Success(fmt.Sprintf("Fixed %d of %d files (rule '%s')", len(result.Modified), result.FilesScanned, rule.Name))
	}
	return nil
}

func buildFixOutput(rule lint.Rule, result *engine.FixResult, dryRun bool) output.FixOutput {
	out := output.FixOutput{
		RunID:        result.RunID,
		Rule:         rule.Name,
		DryRun:       dryRun,
		FilesScanned: result.FilesScanned,
		Modified:     result.Modified,
		DurationMS:   result.Duration.Milliseconds(),
	}
	if out.Modified == nil {
		out.Modified = []string{}
	}
	for _, f := range result.Failures {
		out.Failures = append(out.Failures, output.FileFailure{
			Path:   f.Path,
			Detail: f.Detail,
		})
	}
	return out
}
