package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BEEQUIP/dbt-yaml-description-validator/pkg/lint"
	_ "github.com/BEEQUIP/dbt-yaml-description-validator/pkg/lint/rules" // register rules
)

func TestCanonicalRulesRegistered(t *testing.T) {
	assert.Equal(t, []string{"article", "capital", "period", "spaces", "symbols"}, lint.RuleNames())
}

func TestFixability(t *testing.T) {
	fixable := map[string]bool{
		"article": false,
		"capital": true,
		"period":  true,
		"spaces":  true,
		"symbols": false,
	}

	for name, want := range fixable {
		t.Run(name, func(t *testing.T) {
			rule, ok := lint.GetRuleByName(name)
			require.True(t, ok)
			assert.Equal(t, want, rule.Fixable())
			assert.NotNil(t, rule.Check)
			assert.NotEmpty(t, rule.Summary)
		})
	}
}

// Every fixable rule must be idempotent and produce text its own check
// accepts.
func TestFixInvariants(t *testing.T) {
	samples := []string{
		"the total revenue in euros",
		"Multi line\ndescription text",
		"  indented  start",
		"Already fine.",
		"ends with newline\n",
	}

	for _, rule := range lint.AllRules() {
		if !rule.Fixable() {
			continue
		}
		t.Run(rule.Name, func(t *testing.T) {
			for _, sample := range samples {
				fixed := rule.Fix(sample)
				assert.Equal(t, fixed, rule.Fix(fixed), "fix(fix(x)) != fix(x) for %q", sample)
				assert.True(t, rule.Check(fixed), "check(fix(x)) failed for %q", sample)
			}
		})
	}
}
