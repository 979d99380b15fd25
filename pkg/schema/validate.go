package schema

import (
	"fmt"

	"github.com/BEEQUIP/dbt-yaml-description-validator/pkg/lint"
)

// ValidationError is one rule violation by one described entity.
type ValidationError struct {
	Path   string
	Kind   EntityKind
	Entity string
	Rule   string
}

// String renders the canonical report line:
//
//	<path>: <entity-kind> '<entity-name>' failed rule '<rule-name>'
func (e ValidationError) String() string {
	name := e.Entity
	if name == "" {
		name = "(unnamed)"
	}
	return fmt.Sprintf("%s: %s '%s' failed rule '%s'", e.Path, e.Kind, name, e.Rule)
}

// Validate checks every non-empty description in doc against rule and
// returns one error per violation, in document order. An absent or empty
// description is always valid.
func Validate(path string, doc *Document, rule lint.Rule) []ValidationError {
	var errs []ValidationError
	for _, desc := range doc.Descriptions() {
		if desc.Text == "" {
			continue
		}
		if !rule.Check(desc.Text) {
			errs = append(errs, ValidationError{
				Path:   path,
				Kind:   desc.Kind,
				Entity: desc.Name,
				Rule:   rule.Name,
			})
		}
	}
	return errs
}
