package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BEEQUIP/dbt-yaml-description-validator/pkg/lint"
	"github.com/BEEQUIP/dbt-yaml-description-validator/pkg/lint/rules"
	"github.com/BEEQUIP/dbt-yaml-description-validator/pkg/schema"
)

func TestValidateReportsViolationsInDocumentOrder(t *testing.T) {
	src := `models:
  - name: orders
    description: orders placed by customers
    columns:
      - name: order_id
        description: The unique order identifier.
      - name: amount
        description: the amount in euros
  - name: customers
    description: The customers model.
`
	doc, err := schema.Parse([]byte(src))
	require.NoError(t, err)

	errs := schema.Validate("models/schema.yml", doc, rules.Capital)
	require.Len(t, errs, 2)

	assert.Equal(t, schema.ValidationError{
		Path:   "models/schema.yml",
		Kind:   schema.KindModel,
		Entity: "orders",
		Rule:   "capital",
	}, errs[0])
	assert.Equal(t, schema.KindColumn, errs[1].Kind)
	assert.Equal(t, "amount", errs[1].Entity)
}

func TestValidateMissingArticle(t *testing.T) {
	src := `models:
  - name: orders
    description: orders table
`
	doc, err := schema.Parse([]byte(src))
	require.NoError(t, err)

	errs := schema.Validate("schema.yml", doc, rules.Article)
	require.Len(t, errs, 1)
	assert.Equal(t, schema.KindModel, errs[0].Kind)
	assert.Equal(t, "orders", errs[0].Entity)
	assert.Equal(t, "article", errs[0].Rule)
}

func TestValidateSkipsEmptyDescriptions(t *testing.T) {
	src := `models:
  - name: orders
    columns:
      - name: order_id
      - name: amount
        description: ""
`
	doc, err := schema.Parse([]byte(src))
	require.NoError(t, err)

	// article would reject empty text, but empty descriptions are skipped.
	errs := schema.Validate("schema.yml", doc, rules.Article)
	assert.Empty(t, errs)
}

func TestValidateCleanDocument(t *testing.T) {
	doc, err := schema.Parse([]byte(ordersSchema))
	require.NoError(t, err)

	for _, rule := range lint.AllRules() {
		errs := schema.Validate("schema.yml", doc, rule)
		assert.Empty(t, errs, "rule %s", rule.Name)
	}
}

func TestValidationErrorString(t *testing.T) {
	err := schema.ValidationError{
		Path:   "models/schema.yml",
		Kind:   schema.KindModel,
		Entity: "orders",
		Rule:   "period",
	}
	assert.Equal(t, "models/schema.yml: Model 'orders' failed rule 'period'", err.String())

	err.Kind = schema.KindColumn
	err.Entity = ""
	assert.Equal(t, "models/schema.yml: Column '(unnamed)' failed rule 'period'", err.String())
}
