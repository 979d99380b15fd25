package rules

import (
	"regexp"
	"strings"

	"github.com/BEEQUIP/dbt-yaml-description-validator/pkg/lint"
)

func init() {
	lint.Register(Spaces)
}

// Spaces forbids runs of two or more horizontal whitespace characters.
// Line-leading whitespace is indentation and stays untouched.
var Spaces = lint.Rule{
	Name:        "spaces",
	Summary:     "No double spaces outside line indentation.",
	Rationale:   `Double spaces are almost always typos and show up verbatim in rendered docs.`,
	BadExample:  "The order  identifier.",
	GoodExample: "The order identifier.",
	Check:       checkSpaces,
	Fix:         fixSpaces,
}

var doubleSpaces = regexp.MustCompile(`[ \t]{2,}`)

func checkSpaces(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		if doubleSpaces.MatchString(afterIndent(line)) {
			return false
		}
	}
	return true
}

func fixSpaces(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		rest := afterIndent(line)
		indent := line[:len(line)-len(rest)]
		lines[i] = indent + doubleSpaces.ReplaceAllString(rest, " ")
	}
	return strings.Join(lines, "\n")
}

// afterIndent returns the line with its leading horizontal whitespace
// removed.
func afterIndent(line string) string {
	return strings.TrimLeft(line, " \t")
}
