// Package schema models dbt-style schema documents just deeply enough to
// reach every description: the entries under "models" or "sources", and
// their columns. All other keys are ignored. Only the validation path parses
// documents; the fix path patches raw text instead (see pkg/patch).
package schema

import (
	"gopkg.in/yaml.v3"
)

// EntityKind labels where a description lives in a document.
type EntityKind string

const (
	// KindModel is a top-level entry, i.e. one element of the models or
	// sources list.
	KindModel EntityKind = "Model"
	// KindColumn is a column beneath an entry.
	KindColumn EntityKind = "Column"
)

// Column is a described column of an entry.
type Column struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Entry is a top-level described entity.
type Entry struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Columns     []Column `yaml:"columns"`
}

// Document is the two-level slice of a schema file this tool cares about.
type Document struct {
	Models  []Entry `yaml:"models"`
	Sources []Entry `yaml:"sources"`
}

// Parse decodes a schema document. Unknown keys are fine (real schema files
// carry version, tests, meta and more); a structural mismatch such as a
// scalar models key or a non-string description is a parse failure. Empty
// input yields an empty document. The error is the decoder's own, suitable
// for embedding in a report line.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Entries returns the document's top-level entries: the models list when the
// key is present, else the sources list. A null models key counts as absent,
// an empty models list does not.
func (d *Document) Entries() []Entry {
	if d.Models != nil {
		return d.Models
	}
	return d.Sources
}
