// Package lint defines the description rule contract and the process-wide
// rule registry.
//
// A Rule pairs a mandatory Check with an optional Fix. Rules register
// themselves via init() functions when their package is imported:
//
//	import _ "github.com/BEEQUIP/dbt-yaml-description-validator/pkg/lint/rules"
//
// The registry is populated once at process start and never mutated at
// runtime; consumers resolve rules by name:
//
//	rule, ok := lint.GetRuleByName("period")
//	all := lint.AllRules()
package lint

// CheckFunc reports whether a description satisfies a rule.
type CheckFunc func(text string) bool

// FixFunc rewrites a description so that it satisfies a rule.
// Implementations must be idempotent and must return the input unchanged
// when nothing needs fixing, so callers can use string equality as the
// modified signal.
type FixFunc func(text string) string

// Rule is a named description check with an optional automatic fix.
type Rule struct {
	// Name is the rule's registry identity, e.g. "period".
	Name string

	// Summary is a one-line description of what the rule enforces.
	Summary string

	// Rationale explains why the rule exists.
	Rationale string

	// BadExample shows a description that violates the rule.
	BadExample string

	// GoodExample shows a description that satisfies the rule.
	GoodExample string

	// Check reports whether text satisfies the rule. Mandatory.
	Check CheckFunc

	// Fix rewrites text to satisfy the rule. Nil for check-only rules.
	Fix FixFunc
}

// Fixable reports whether the rule defines an automatic fix.
func (r Rule) Fixable() bool {
	return r.Fix != nil
}
