package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/BEEQUIP/dbt-yaml-description-validator/internal/cli/config"
	"github.com/BEEQUIP/dbt-yaml-description-validator/internal/cli/output"
	"github.com/BEEQUIP/dbt-yaml-description-validator/internal/engine"
	"github.com/BEEQUIP/dbt-yaml-description-validator/pkg/lint"
	_ "github.com/BEEQUIP/dbt-yaml-description-validator/pkg/lint/rules" // register description rules
)

// ErrViolationsFound reports that a run found failing descriptions or
// unprocessable files. The CLI maps it to exit code 1.
var ErrViolationsFound = errors.New("validation failures found")

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Rule   string   // Rule name to validate against
	Format string   // Output format: text, markdown, json
	Files  []string // Explicit schema files; empty means discover
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Validate schema descriptions against a rule",
		Long: `Validate dbt schema descriptions against a rule.

Walks the project for schema files (or checks the files passed as
arguments), reads every model and column description, and reports one
line per entity that fails the selected rule:

  models/schema.yml: Model 'orders' failed rule 'period'

Files that cannot be parsed are reported as '<path>: Could not parse (...)'
and count as failures.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Check every schema file with the period rule
  dbtdesc check --rule period

  # Check specific files
  dbtdesc check --rule capital models/staging/schema.yml

  # Machine-readable output
  dbtdesc check --rule period --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Files = args
			return runCheck(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Rule, "rule", "r", "", "Rule to validate against (see 'dbtdesc rules')")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")

	return cmd
}

func runCheck(cmd *cobra.Command, opts *CheckOptions) error {
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

	paths, err := cmdCtx.Engine.ResolvePaths(opts.Files)
	if err != nil {
		return fmt.Errorf("failed to discover schema files: %w", err)
	}

	result, err := cmdCtx.Engine.Check(cmd.Context(), paths, rule)
	if err != nil {
		return err
	}

	return renderCheckResult(r, rule, result)
}

// resolveRule picks the rule named by the flag, falling back to the
// configuration. A selection is required.
func resolveRule(flagRule string, cfg *config.Config) (lint.Rule, error) {
	name := flagRule
	if name == "" {
		name = cfg.Rule
	}
	if name == "" {
		return lint.Rule{}, NewUsageError("no rule selected: pass --rule or set 'rule' in dbtdesc.yaml (known rules: %s)", strings.Join(lint.RuleNames(), ", "))
	}

	rule, ok := lint.GetRuleByName(name)
	if !ok {
		return lint.Rule{}, NewUsageError("unknown rule %q (known rules: %s)", name, strings.Join(lint.RuleNames(), ", "))
	}
	return rule, nil
}

// renderCheckResult prints a check run and returns ErrViolationsFound when
// the run was not clean.
func renderCheckResult(r *output.Renderer, rule lint.Rule, result *engine.CheckResult) error {
	if r.EffectiveMode() == output.ModeJSON {
		if err := r.JSON(buildCheckOutput(rule, result)); err != nil {
			return err
		}
		if !result.Clean() {
			return ErrViolationsFound
		}
		return nil
	}

	for _, line := range reportLines(result) {
		r.Println(line)
	}

	if result.Clean() {
		r.Success(fmt.Sprintf("All descriptions pass rule '%s' (%d files checked)", rule.Name, result.FilesScanned))
		return nil
	}

	// Print summary
	summaryParts := []string{fmt.Sprintf("%d violations", len(result.Violations))}
	if len(result.ParseFailures) > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d files not parseable", len(result.ParseFailures)))
	}
	r.Println("")
	r.Printf("Summary: %s in %d files (rule '%s')\n", strings.Join(summaryParts, ", "), result.FilesScanned, rule.Name)

	return ErrViolationsFound
}

// reportLines merges violations and parse failures into one path-ordered
// stream of canonical report lines. Both slices arrive sorted by path and a
// file contributes to at most one of them.
func reportLines(result *engine.CheckResult) []string {
	lines := make([]string, 0, len(result.Violations)+len(result.ParseFailures))
	i, j := 0, 0
	for i < len(result.Violations) || j < len(result.ParseFailures) {
		if j == len(result.ParseFailures) ||
			(i < len(result.Violations) && result.Violations[i].Path <= result.ParseFailures[j].Path) {
			lines = append(lines, result.Violations[i].String())
			i++
		} else {
			lines = append(lines, result.ParseFailures[j].String())
			j++
		}
	}
	return lines
}

func buildCheckOutput(rule lint.Rule, result *engine.CheckResult) output.CheckOutput {
	out := output.CheckOutput{
		RunID:        result.RunID,
		Rule:         rule.Name,
		FilesScanned: result.FilesScanned,
		Violations:   make([]output.RuleViolation, 0, len(result.Violations)),
		Summary: output.CheckSummary{
			Violations:    len(result.Violations),
			ParseFailures: len(result.ParseFailures),
			Clean:         result.Clean(),
		},
		DurationMS: result.Duration.Milliseconds(),
	}

	for _, v := range result.Violations {
		out.Violations = append(out.Violations, output.RuleViolation{
			Path:   v.Path,
			Kind:   string(v.Kind),
			Entity: v.Entity,
			Rule:   v.Rule,
		})
	}
	for _, f := range result.ParseFailures {
		out.ParseFailures = append(out.ParseFailures, output.FileFailure{
			Path:   f.Path,
			Detail: f.Detail,
		})
	}
	return out
}
