// Package rules contains the canonical description rules.
//
// Import this package for its side effects to register all rules:
//
//	import _ "github.com/BEEQUIP/dbt-yaml-description-validator/pkg/lint/rules"
//
// Registered rules:
//   - article: description starts with "the", "a" or "an" (check-only)
//   - capital: description starts with a capital letter (fixable)
//   - period:  description ends with a period, list items exempt (fixable)
//   - spaces:  no double spaces outside line indentation (fixable)
//   - symbols: no special symbols such as currency signs (check-only)
package rules
