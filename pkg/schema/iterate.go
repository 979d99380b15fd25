package schema

// Described is one description-bearing entity of a document.
type Described struct {
	Kind EntityKind
	Name string
	Text string
}

// Descriptions yields every description-bearing entity in document order:
// each entry first, then that entry's columns. Entities with empty
// descriptions are included; filtering is the validator's job.
func (d *Document) Descriptions() []Described {
	var out []Described
	for _, entry := range d.Entries() {
		out = append(out, Described{Kind: KindModel, Name: entry.Name, Text: entry.Description})
		for _, col := range entry.Columns {
			out = append(out, Described{Kind: KindColumn, Name: col.Name, Text: col.Description})
		}
	}
	return out
}
