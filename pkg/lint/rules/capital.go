package rules

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/BEEQUIP/dbt-yaml-description-validator/pkg/lint"
)

func init() {
	lint.Register(Capital)
}

// Capital requires descriptions to start with an upper-case letter.
// Empty text is vacuously valid.
var Capital = lint.Rule{
	Name:        "capital",
	Summary:     "Description starts with a capital letter.",
	Rationale:   `Descriptions are sentences; sentences start with a capital.`,
	BadExample:  "the order identifier.",
	GoodExample: "The order identifier.",
	Check:       checkCapital,
	Fix:         fixCapital,
}

// upperCaser performs full Unicode case mapping, including one-to-many
// mappings such as ß to SS.
var upperCaser = cases.Upper(language.Und)

func checkCapital(text string) bool {
	head := strings.TrimLeftFunc(text, unicode.IsSpace)
	if head == "" {
		return true
	}
	first, _ := utf8.DecodeRuneInString(head)
	return unicode.IsUpper(first)
}

// fixCapital upper-cases the first character after any leading whitespace.
// The whitespace itself is kept: inside block scalars it is indentation
// the patcher relies on.
func fixCapital(text string) string {
	head := strings.TrimLeftFunc(text, unicode.IsSpace)
	if head == "" {
		return text
	}
	first, size := utf8.DecodeRuneInString(head)
	if unicode.IsUpper(first) {
		return text
	}
	lead := text[:len(text)-len(head)]
	return lead + upperCaser.String(string(first)) + head[size:]
}
