package rules

import (
	"strings"
	"unicode"

	"github.com/BEEQUIP/dbt-yaml-description-validator/pkg/lint"
)

func init() {
	lint.Register(Period)
}

// Period requires descriptions to end with a period. Descriptions containing
// list items are exempt from the check, and the fix strips a trailing period
// there instead, so list entries stay uniform.
var Period = lint.Rule{
	Name:    "period",
	Summary: "Description ends with a period; list items stay unperiodized.",
	Rationale: `A description is a sentence and ends with a period. Bullet lists
are the exception: periodizing the last bullet only makes it inconsistent
with its siblings.`,
	BadExample:  "Total revenue in euros",
	GoodExample: "Total revenue in euros.",
	Check:       checkPeriod,
	Fix:         fixPeriod,
}

func checkPeriod(text string) bool {
	if containsListItems(text) {
		return true
	}
	lines := strings.Split(text, "\n")
	i := lastNonBlankIndex(lines)
	if i < 0 {
		return true
	}
	last := strings.TrimRightFunc(lines[i], unicode.IsSpace)
	return strings.HasSuffix(last, ".")
}

func fixPeriod(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || trimmed == "''" || trimmed == `""` {
		return text
	}

	hadTrailingNewline := strings.HasSuffix(text, "\n")
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")

	if containsListItems(text) {
		last := strings.TrimRightFunc(lines[len(lines)-1], unicode.IsSpace)
		if strings.HasSuffix(last, ".") {
			lines[len(lines)-1] = strings.TrimSuffix(last, ".")
		}
	} else if i := lastNonBlankIndex(lines); i >= 0 {
		last := strings.TrimRightFunc(lines[i], unicode.IsSpace)
		if !strings.HasSuffix(last, ".") {
			lines[i] = last + "."
		}
	}

	out := strings.Join(lines, "\n")
	if hadTrailingNewline {
		out += "\n"
	}
	return out
}

// containsListItems reports whether any line starts with a list marker
// after its indentation.
func containsListItems(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimLeftFunc(line, unicode.IsSpace), "- ") {
			return true
		}
	}
	return false
}

// lastNonBlankIndex returns the index of the last line with visible content,
// or -1 when every line is blank.
func lastNonBlankIndex(lines []string) int {
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) != "" {
			return i
		}
	}
	return -1
}
