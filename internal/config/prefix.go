package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Prefix is a single prefix.yaml entry.
type Prefix struct {
	Name string
	IRI  string // as written, normally "<http://...>"
}

// PrefixTable maps short names to namespace IRIs in declaration order.
// It is immutable after construction.
type PrefixTable struct {
	names []string
	iris  map[string]string
}

// NewPrefixTable builds a table from entries. A repeated name keeps its
// first position and its last IRI, matching YAML mapping semantics.
func NewPrefixTable(entries ...Prefix) *PrefixTable {
	t := &PrefixTable{iris: make(map[string]string, len(entries))}
	for _, e := range entries {
		if _, ok := t.iris[e.Name]; !ok {
			t.names = append(t.names, e.Name)
		}
		t.iris[e.Name] = e.IRI
	}
	return t
}

// ParsePrefixes decodes a prefix.yaml document node.
func ParsePrefixes(node *yaml.Node) (*PrefixTable, error) {
	if node == nil {
		return NewPrefixTable(), nil
	}
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return NewPrefixTable(), nil
		}
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("prefix document: line %d: expected mapping", node.Line)
	}

	entries := make([]Prefix, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("prefix document: line %d: prefix %q must map to an IRI", v.Line, k.Value)
		}
		entries = append(entries, Prefix{Name: k.Value, IRI: v.Value})
	}
	return NewPrefixTable(entries...), nil
}

// Names returns the prefix names in declaration order.
func (t *PrefixTable) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Lookup returns the IRI text declared for name.
func (t *PrefixTable) Lookup(name string) (string, bool) {
	iri, ok := t.iris[name]
	return iri, ok
}

// Has reports whether name is a declared prefix.
func (t *PrefixTable) Has(name string) bool {
	_, ok := t.iris[name]
	return ok
}

// Len returns the number of declared prefixes.
func (t *PrefixTable) Len() int { return len(t.names) }

// PrefixOf returns the declared prefix used by a prefixed name such as
// "foaf:name". Bracketed IRIs and unknown prefixes report false.
func (t *PrefixTable) PrefixOf(term string) (string, bool) {
	if IsBracketedIRI(term) {
		return "", false
	}
	name, _, ok := strings.Cut(term, ":")
	if !ok || !t.Has(name) {
		return "", false
	}
	return name, true
}

// Expand turns a prefixed name or a bracketed IRI into a bare IRI.
// Terms that are neither are returned unchanged with false.
func (t *PrefixTable) Expand(term string) (string, bool) {
	if IsBracketedIRI(term) {
		return term[1 : len(term)-1], true
	}
	name, local, ok := strings.Cut(term, ":")
	if !ok {
		return term, false
	}
	ns, ok := t.iris[name]
	if !ok {
		return term, false
	}
	return strings.TrimSuffix(strings.TrimPrefix(ns, "<"), ">") + local, true
}

// IsBracketedIRI reports whether term is written as <...>.
func IsBracketedIRI(term string) bool {
	return len(term) > 2 && strings.HasPrefix(term, "<") && strings.HasSuffix(term, ">")
}
