package rules

import (
	"strings"

	"github.com/BEEQUIP/dbt-yaml-description-validator/pkg/lint"
)

func init() {
	lint.Register(Symbols)
}

// Symbols forbids a fixed set of special characters in descriptions.
// Check-only: there is no safe automatic replacement for a stray symbol.
var Symbols = lint.Rule{
	Name:        "symbols",
	Summary:     "No special symbols (€, $, £, %, #, @, &, *, ^, +, ~).",
	Rationale:   `Symbols read ambiguously in documentation; "euros" is clearer than "€".`,
	BadExample:  "Total revenue in €.",
	GoodExample: "Total revenue in euros.",
	Check:       checkSymbols,
}

// forbiddenSymbols is the canonical blocked set.
const forbiddenSymbols = "€$£%#@&*^+~"

func checkSymbols(text string) bool {
	return !strings.ContainsAny(text, forbiddenSymbols)
}
