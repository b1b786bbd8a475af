package sparql

import "github.com/tnishi/rdf-config/internal/config"

// PrefixBuilder renders PREFIX lines for the prefixed names a query
// uses, in prefix.yaml declaration order.
type PrefixBuilder struct {
	table *config.PrefixTable
	used  map[string]bool
}

// NewPrefixBuilder collects the declared prefixes referenced by terms.
// Terms that are variables, bracketed IRIs or carry an undeclared prefix
// contribute nothing.
func NewPrefixBuilder(table *config.PrefixTable, terms []string) *PrefixBuilder {
	used := make(map[string]bool)
	for _, term := range terms {
		if name, ok := table.PrefixOf(term); ok {
			used[name] = true
		}
	}
	return &PrefixBuilder{table: table, used: used}
}

// Prefixes returns the referenced prefix names in declaration order.
func (b *PrefixBuilder) Prefixes() []string {
	var out []string
	for _, name := range b.table.Names() {
		if b.used[name] {
			out = append(out, name)
		}
	}
	return out
}

// Build implements LineBuilder.
func (b *PrefixBuilder) Build() []string {
	var lines []string
	for _, name := range b.Prefixes() {
		iri, _ := b.table.Lookup(name)
		lines = append(lines, "PREFIX "+name+": "+iri)
	}
	return append(lines, "")
}
