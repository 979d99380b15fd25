package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/BEEQUIP/dbt-yaml-description-validator/internal/cli/output"
	"github.com/BEEQUIP/dbt-yaml-description-validator/pkg/lint"
	_ "github.com/BEEQUIP/dbt-yaml-description-validator/pkg/lint/rules" // register description rules
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Format string // Output format
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-name]",
		Short: "List available description rules",
		Long: `List all available description rules with their documentation.

Every rule can be used with 'check'; only rules marked fixable can be
used with 'fix'. Pass a rule name to see its full documentation with
examples.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # List all rules
  dbtdesc rules

  # Show details for a specific rule
  dbtdesc rules period

  # Output as JSON
  dbtdesc rules --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0], opts)
			}
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")

	return cmd
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	// Override renderer if format flag is set
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	rules := lint.AllRules()

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return listRulesJSON(r, rules)
	case output.ModeMarkdown:
		return listRulesMarkdown(r, rules)
	default:
		return listRulesText(r, rules)
	}
}

func showRule(cmd *cobra.Command, name string, opts *RulesOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	// Override renderer if format flag is set
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	rule, ok := lint.GetRuleByName(name)
	if !ok {
		return NewUsageError("unknown rule %q (known rules: %s)", name, strings.Join(lint.RuleNames(), ", "))
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(ruleEntry(rule))
	case output.ModeMarkdown:
		return showRuleMarkdown(r, rule)
	default:
		return showRuleText(r, rule)
	}
}

// ruleTable builds the rule listing table shared by text and markdown modes.
func ruleTable(w *output.Renderer, rules []lint.Rule) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w.Writer())
	t.AppendHeader(table.Row{"Rule", "Fixable", "Summary"})
	for _, rule := range rules {
		t.AppendRow(table.Row{rule.Name, yesNo(rule.Fixable()), rule.Summary})
	}
	return t
}

// listRulesText outputs rules as a styled table.
func listRulesText(r *output.Renderer, rules []lint.Rule) error {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("Description Rules (%d)", len(rules))))
	r.Println("")

	t := ruleTable(r, rules)
	t.SetStyle(table.StyleLight)
	t.Render()

	r.Println("")
	r.Println(styles.Muted.Render("Use 'dbtdesc rules <name>' for detailed documentation"))
	r.Println("")

	return nil
}

// listRulesMarkdown outputs rules as a markdown table.
func listRulesMarkdown(r *output.Renderer, rules []lint.Rule) error {
	r.Println(output.FormatHeader(1, "Description Rules"))
	r.Println("")

	ruleTable(r, rules).RenderMarkdown()

	r.Println("")
	return nil
}

// RuleEntry is the JSON shape of one rule.
type RuleEntry struct {
	Name        string `json:"name"`
	Summary     string `json:"summary"`
	Fixable     bool   `json:"fixable"`
	Rationale   string `json:"rationale,omitempty"`
	BadExample  string `json:"bad_example,omitempty"`
	GoodExample string `json:"good_example,omitempty"`
}

// RulesJSONOutput is the JSON output structure for the rules listing.
type RulesJSONOutput struct {
	Rules []RuleEntry `json:"rules"`
	Count struct {
		Fixable int `json:"fixable"`
		Total   int `json:"total"`
	} `json:"count"`
}

func ruleEntry(rule lint.Rule) RuleEntry {
	return RuleEntry{
		Name:        rule.Name,
		Summary:     rule.Summary,
		Fixable:     rule.Fixable(),
		Rationale:   rule.Rationale,
		BadExample:  rule.BadExample,
		GoodExample: rule.GoodExample,
	}
}

// listRulesJSON outputs rules in JSON format.
func listRulesJSON(r *output.Renderer, rules []lint.Rule) error {
	jsonOutput := RulesJSONOutput{
		Rules: make([]RuleEntry, 0, len(rules)),
	}

	for _, rule := range rules {
		jsonOutput.Rules = append(jsonOutput.Rules, ruleEntry(rule))
		if rule.Fixable() {
			jsonOutput.Count.Fixable++
		}
	}
	jsonOutput.Count.Total = len(rules)

	return r.JSON(jsonOutput)
}

// showRuleText displays detailed rule info in text format.
func showRuleText(r *output.Renderer, rule lint.Rule) error {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render(rule.Name))
	r.Println("")

	r.Printf("  %s: %s\n", styles.Bold.Render("Summary"), rule.Summary)
	r.Printf("  %s: %s\n", styles.Bold.Render("Fixable"), yesNo(rule.Fixable()))
	r.Println("")

	if rule.Rationale != "" {
		r.Println(styles.Bold.Render("Why This Matters"))
		for _, line := range strings.Split(rule.Rationale, "\n") {
			r.Println("  " + line)
		}
		r.Println("")
	}

	if rule.BadExample != "" {
		r.Println(styles.Bold.Render("Bad Example"))
		for _, line := range strings.Split(rule.BadExample, "\n") {
			r.Println(styles.Muted.Render("  " + line))
		}
		r.Println("")
	}

	if rule.GoodExample != "" {
		r.Println(styles.Bold.Render("Good Example"))
		for _, line := range strings.Split(rule.GoodExample, "\n") {
			r.Println(styles.Success.Render("  " + line))
		}
		r.Println("")
	}

	return nil
}

// showRuleMarkdown displays detailed rule info in markdown format.
func showRuleMarkdown(r *output.Renderer, rule lint.Rule) error {
	r.Println(output.FormatHeader(1, rule.Name))
	r.Println("")
	r.Println(rule.Summary)
	r.Println("")
	r.Println(output.FormatKeyValue("Fixable", yesNo(rule.Fixable())))
	r.Println("")

	if rule.Rationale != "" {
		r.Println(output.FormatHeader(2, "Why This Matters"))
		r.Println("")
		r.Println(rule.Rationale)
		r.Println("")
	}

	if rule.BadExample != "" {
		r.Println(output.FormatHeader(2, "Bad Example"))
		r.Println("")
		r.Println(output.FormatCodeBlock("text", rule.BadExample))
		r.Println("")
	}

	if rule.GoodExample != "" {
		r.Println(output.FormatHeader(2, "Good Example"))
		r.Println("")
		r.Println(output.FormatCodeBlock("text", rule.GoodExample))
		r.Println("")
	}

	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
