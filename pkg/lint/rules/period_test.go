package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BEEQUIP/dbt-yaml-description-validator/pkg/lint/rules"
)

func TestPeriodCheck(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{name: "ends with period", text: "Total revenue.", want: true},
		{name: "missing period", text: "Total revenue", want: false},
		{name: "last line decides", text: "Line1.\nLine2.", want: true},
		{name: "last line missing period", text: "Line1.\nLine2", want: false},
		{name: "trailing whitespace ignored", text: "Total revenue.   ", want: true},
		{name: "trailing blank lines ignored", text: "Total revenue.\n\n", want: true},
		{name: "list items are exempt", text: "- item one\n- item two", want: true},
		{name: "indented list items are exempt", text: "Options:\n  - item one\n  - item two", want: true},
		{name: "empty is vacuously valid", text: "", want: true},
		{name: "blank lines only is vacuously valid", text: "\n  \n", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rules.Period.Check(tt.text))
		})
	}
}

func TestPeriodFix(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "appends period", text: "Revenue total", want: "Revenue total."},
		{name: "already periodized unchanged", text: "Revenue total.", want: "Revenue total."},
		{name: "appends on last non-blank line", text: "Total\n   ", want: "Total.\n   "},
		{name: "keeps trailing newline", text: "Total\n", want: "Total.\n"},
		{name: "multiline appends at end", text: "Line1.\nLine2", want: "Line1.\nLine2."},
		{name: "list text loses trailing period", text: "- item one\n- item two.", want: "- item one\n- item two"},
		{name: "list text without period unchanged", text: "- item one\n- item two", want: "- item one\n- item two"},
		{name: "empty unchanged", text: "", want: ""},
		{name: "whitespace only unchanged", text: "  \n ", want: "  \n "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rules.Period.Fix(tt.text)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, rules.Period.Fix(got), "fix must be idempotent")
			assert.True(t, rules.Period.Check(got), "fixed text must pass the check")
		})
	}
}

// Quoted empty strings reach the fix only through the raw patcher, where the
// quotes are part of the value. They must never be turned into '.' noise.
func TestPeriodFixKeepsQuotedEmpty(t *testing.T) {
	assert.Equal(t, "''", rules.Period.Fix("''"))
	assert.Equal(t, `""`, rules.Period.Fix(`""`))
	assert.Equal(t, "  '' ", rules.Period.Fix("  '' "))
}
