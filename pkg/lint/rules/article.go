package rules

import (
	"strings"
	"unicode"

	"github.com/BEEQUIP/dbt-yaml-description-validator/pkg/lint"
)

func init() {
	lint.Register(Article)
}

// Article requires descriptions to open with a grammatical article.
var Article = lint.Rule{
	Name:    "article",
	Summary: `Description starts with "the", "a" or "an".`,
	Rationale: `Descriptions that read as full noun phrases ("The unique identifier
of the order") render better in generated documentation than bare fragments.`,
	BadExample:  "Unique identifier of the order.",
	GoodExample: "The unique identifier of the order.",
	Check:       checkArticle,
}

var articles = []string{"the ", "a ", "an "}

func checkArticle(text string) bool {
	head := strings.ToLower(strings.TrimLeftFunc(text, unicode.IsSpace))
	for _, article := range articles {
		if strings.HasPrefix(head, article) {
			return true
		}
	}
	return false
}
