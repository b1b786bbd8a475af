package model

import "github.com/tnishi/rdf-config/internal/config"

// Model is the immutable result of Build.
type Model struct {
	prefixes *config.PrefixTable
	subjects []*Subject
	byName   map[string]*Subject
	triples  []*Triple
}

// Prefixes returns the table the model was built with.
func (m *Model) Prefixes() *config.PrefixTable { return m.prefixes }

// Subjects returns the top-level subjects in declaration order.
func (m *Model) Subjects() []*Subject {
	out := make([]*Subject, len(m.subjects))
	copy(out, m.subjects)
	return out
}

// Triples returns every triple, first-seen depth-first.
func (m *Model) Triples() []*Triple {
	out := make([]*Triple, len(m.triples))
	copy(out, m.triples)
	return out
}

// TriplesOf returns the triples that start at s, in model order.
func (m *Model) TriplesOf(s *Subject) []*Triple {
	var out []*Triple
	for _, t := range m.triples {
		if t.subject == s {
			out = append(out, t)
		}
	}
	return out
}

// Subject returns the top-level subject called name, or nil.
func (m *Model) Subject(name string) *Subject { return m.byName[name] }

// IsSubject reports whether name is a top-level subject.
func (m *Model) IsSubject(name string) bool {
	_, ok := m.byName[name]
	return ok
}

// FindByObjectName returns the first triple whose object binds the
// variable name, or nil.
func (m *Model) FindByObjectName(name string) *Triple {
	if name == "" {
		return nil
	}
	for _, t := range m.triples {
		if t.object.Name() == name {
			return t
		}
	}
	return nil
}

// FindObject returns the object bound to the variable name, or nil.
func (m *Model) FindObject(name string) Object {
	if t := m.FindByObjectName(name); t != nil {
		return t.object
	}
	return nil
}

// BoundaryTypes lists, for each blank-node boundary of t, the types any
// triple of the same subject asserts at that boundary. Entry i belongs to
// the node between predicate i and predicate i+1. The result is nil when
// t is single-hop or no boundary is typed.
func (m *Model) BoundaryTypes(t *Triple) [][]string {
	if !t.IsMultiHop() {
		return nil
	}

	out := make([][]string, len(t.predicates)-1)
	typed := false
	for i := range out {
		prefix := t.pathURIs(i + 1)
		seen := make(map[string]bool)
		for _, other := range m.triples {
			if other.subject != t.subject || len(other.predicates) != len(prefix)+1 {
				continue
			}
			if !other.Predicate().IsRDFType() || !other.hasPrefix(prefix) {
				continue
			}
			v := other.object.Value()
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			out[i] = append(out[i], v)
			typed = true
		}
	}
	if !typed {
		return nil
	}
	return out
}
