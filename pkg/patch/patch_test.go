package patch_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BEEQUIP/dbt-yaml-description-validator/pkg/lint"
	"github.com/BEEQUIP/dbt-yaml-description-validator/pkg/lint/rules"
	"github.com/BEEQUIP/dbt-yaml-description-validator/pkg/patch"
)

// capturing returns a no-op fix that records every text it receives.
func capturing(got *[]string) lint.FixFunc {
	return func(text string) string {
		*got = append(*got, text)
		return text
	}
}

func TestApplyInlineScalar(t *testing.T) {
	src := "models:\n" +
		"  - name: orders\n" +
		"    description: orders placed by customers\n"

	got, modified := patch.Apply(src, rules.Period.Fix)
	assert.True(t, modified)
	assert.Equal(t, "models:\n"+
		"  - name: orders\n"+
		"    description: orders placed by customers.\n", got)
}

func TestApplyLeavesCleanFileIdentical(t *testing.T) {
	src := "models:\n" +
		"  - name: orders\n" +
		"    description: Orders placed by customers.\n"

	got, modified := patch.Apply(src, rules.Period.Fix)
	assert.False(t, modified)
	assert.Equal(t, src, got)
}

// Everything outside description values must survive byte-for-byte:
// comments, key order, quoting, flow mappings, blank lines.
func TestApplyPreservesSurroundingBytes(t *testing.T) {
	src := "version: 2  # schema version\n" +
		"\n" +
		"models:\n" +
		"  - name: orders   # main fact table\n" +
		"    description: orders placed by customers\n" +
		"    meta: {owner: \"data-team\"}\n" +
		"    columns:\n" +
		"      - name: order_id\n" +
		"        description: \"the unique order identifier\"\n" +
		"        tests:\n" +
		"          - unique\n" +
		"      - name: amount\n" +
		"        description: |\n" +
		"          the order amount in euros\n" +
		"\n" +
		"          includes VAT\n" +
		"      - name: status\n" +
		"        description: >-\n" +
		"          the current order status\n" +
		"  - name: customers\n" +
		"    description:\n"

	want := "version: 2  # schema version\n" +
		"\n" +
		"models:\n" +
		"  - name: orders   # main fact table\n" +
		"    description: Orders placed by customers\n" +
		"    meta: {owner: \"data-team\"}\n" +
		"    columns:\n" +
		"      - name: order_id\n" +
		"        description: \"the unique order identifier\"\n" +
		"        tests:\n" +
		"          - unique\n" +
		"      - name: amount\n" +
		"        description: |\n" +
		"          The order amount in euros\n" +
		"\n" +
		"          includes VAT\n" +
		"      - name: status\n" +
		"        description: >-\n" +
		"          The current order status\n" +
		"  - name: customers\n" +
		"    description:\n"

	got, modified := patch.Apply(src, rules.Capital.Fix)
	assert.True(t, modified)
	// The quoted value starts with '"', which capital cannot upper-case, so
	// that line stays as-is: quotes are part of the value by design.
	assert.Equal(t, want, got)

	again, modified := patch.Apply(got, rules.Capital.Fix)
	assert.False(t, modified, "second pass must be a fixed point")
	assert.Equal(t, got, again)
}

func TestApplyBlockScalarHandsDeindentedText(t *testing.T) {
	src := "models:\n" +
		"  - name: orders\n" +
		"    description: |\n" +
		"      The amount in euros\n" +
		"\n" +
		"      including VAT:\n" +
		"        - shipping\n" +
		"        - handling\n" +
		"    columns: []\n"

	var texts []string
	got, modified := patch.Apply(src, capturing(&texts))
	assert.False(t, modified)
	assert.Equal(t, src, got)

	require.Len(t, texts, 1)
	assert.Equal(t, "The amount in euros\n\nincluding VAT:\n  - shipping\n  - handling", texts[0])
}

func TestApplyBlockScalarRewrite(t *testing.T) {
	src := "models:\n" +
		"  - name: orders\n" +
		"    description: |-\n" +
		"      the amount in euros\n" +
		"      including VAT\n" +
		"    owner: finance\n"

	want := "models:\n" +
		"  - name: orders\n" +
		"    description: |-\n" +
		"      the amount in euros\n" +
		"      including VAT.\n" +
		"    owner: finance\n"

	got, modified := patch.Apply(src, rules.Period.Fix)
	assert.True(t, modified)
	assert.Equal(t, want, got)
}

// A blank line can separate a block scalar from the next key. It is not
// description text and must survive a rewrite untouched.
func TestApplyBlockScalarKeepsTrailingBlankLines(t *testing.T) {
	src := "models:\n" +
		"  - name: orders\n" +
		"    description: |\n" +
		"      the amount in euros\n" +
		"\n" +
		"    owner: finance\n"

	want := "models:\n" +
		"  - name: orders\n" +
		"    description: |\n" +
		"      The amount in euros\n" +
		"\n" +
		"    owner: finance\n"

	got, modified := patch.Apply(src, rules.Capital.Fix)
	assert.True(t, modified)
	assert.Equal(t, want, got)
}

func TestApplyImplicitMultilinePlainScalar(t *testing.T) {
	src := "models:\n" +
		"  - name: orders\n" +
		"    description:\n" +
		"      the orders placed\n" +
		"      by customers\n" +
		"    owner: finance\n"

	var texts []string
	_, modified := patch.Apply(src, capturing(&texts))
	assert.False(t, modified)
	require.Len(t, texts, 1)
	assert.Equal(t, "the orders placed\nby customers", texts[0])
}

func TestApplyUnsupportedBlocksStayUntouched(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{
			name: "under-indented block line",
			src: "models:\n" +
				"  - name: orders\n" +
				"    description: |\n" +
				"     only five spaces\n" +
				"    owner: finance\n",
		},
		{
			name: "tab-indented block line",
			src: "models:\n" +
				"  - name: orders\n" +
				"    description: |\n" +
				"\t\ttab indented\n" +
				"    owner: finance\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, modified := patch.Apply(tt.src, rules.Period.Fix)
			assert.False(t, modified)
			assert.Equal(t, tt.src, got)
		})
	}
}

// The line ending a block must still be scanned: here it carries the next
// column's inline description.
func TestApplyScansBlockBoundaryLine(t *testing.T) {
	src := "columns:\n" +
		"  - name: amount\n" +
		"    description: |\n" +
		"      the amount\n" +
		"    note: keep\n" +
		"  - name: status\n" +
		"    description: the status\n"

	want := "columns:\n" +
		"  - name: amount\n" +
		"    description: |\n" +
		"      the amount.\n" +
		"    note: keep\n" +
		"  - name: status\n" +
		"    description: the status.\n"

	got, modified := patch.Apply(src, rules.Period.Fix)
	assert.True(t, modified)
	assert.Equal(t, want, got)
}

func TestApplyEmptyValuesNeverReachFix(t *testing.T) {
	src := "models:\n" +
		"  - name: orders\n" +
		"    description:\n" +
		"    owner: finance\n" +
		"  - name: customers\n" +
		"    description: ''\n" +
		"  - name: lines\n" +
		"    description: |\n" +
		"\n" +
		"    owner: sales\n"

	var texts []string
	got, modified := patch.Apply(src, capturing(&texts))
	assert.False(t, modified)
	assert.Equal(t, src, got)
	// Only the quoted empty survives to the fix; true empties are skipped.
	assert.Equal(t, []string{"''"}, texts)
}

func TestApplyIndicatorWithTrailingSpacesOpensBlock(t *testing.T) {
	src := "models:\n" +
		"  - name: orders\n" +
		"    description: |  \n" +
		"      the amount\n" +
		"    owner: finance\n"

	want := "models:\n" +
		"  - name: orders\n" +
		"    description: |  \n" +
		"      the amount.\n" +
		"    owner: finance\n"

	got, modified := patch.Apply(src, rules.Period.Fix)
	assert.True(t, modified)
	assert.Equal(t, want, got)
}

// A description that is the first key of a list item carries a "- " prefix
// and is outside the supported shape; it passes through untouched.
func TestApplyListItemDescriptionKeyIsSkipped(t *testing.T) {
	src := "columns:\n" +
		"  - description: the amount\n" +
		"    name: amount\n"

	got, modified := patch.Apply(src, rules.Period.Fix)
	assert.False(t, modified)
	assert.Equal(t, src, got)
}

func TestApplyNoTrailingNewline(t *testing.T) {
	src := "models:\n" +
		"  - name: orders\n" +
		"    description: the orders"

	got, modified := patch.Apply(src, rules.Period.Fix)
	assert.True(t, modified)
	assert.Equal(t, "models:\n  - name: orders\n    description: the orders.", got)
	assert.False(t, strings.HasSuffix(got, "\n"))
}

func TestApplyDescriptionKeyAtEOF(t *testing.T) {
	src := "models:\n" +
		"  - name: orders\n" +
		"    description:"

	got, modified := patch.Apply(src, rules.Period.Fix)
	assert.False(t, modified)
	assert.Equal(t, src, got)
}

func TestApplyQuotedInlineValuesSeeQuotes(t *testing.T) {
	var texts []string
	src := "models:\n" +
		"  - name: orders\n" +
		"    description: \"the orders  table\"\n"

	_, modified := patch.Apply(src, capturing(&texts))
	assert.False(t, modified)
	require.Len(t, texts, 1)
	assert.Equal(t, `"the orders  table"`, texts[0])

	// A fix that touches text inside the quotes keeps the quotes intact.
	got, modified := patch.Apply(src, rules.Spaces.Fix)
	assert.True(t, modified)
	assert.Equal(t, "models:\n"+
		"  - name: orders\n"+
		"    description: \"the orders table\"\n", got)
}

func TestApplyEveryDescriptionInOnePass(t *testing.T) {
	src := "models:\n" +
		"  - name: orders\n" +
		"    description: the orders\n" +
		"    columns:\n" +
		"      - name: order_id\n" +
		"        description: |\n" +
		"          the identifier\n" +
		"      - name: amount\n" +
		"        description: the amount\n"

	got, modified := patch.Apply(src, rules.Period.Fix)
	assert.True(t, modified)
	assert.Equal(t, "models:\n"+
		"  - name: orders\n"+
		"    description: the orders.\n"+
		"    columns:\n"+
		"      - name: order_id\n"+
		"        description: |\n"+
		"          the identifier.\n"+
		"      - name: amount\n"+
		"        description: the amount.\n", got)

	again, modified := patch.Apply(got, rules.Period.Fix)
	assert.False(t, modified)
	assert.Equal(t, got, again)
}
