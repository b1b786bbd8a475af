package model

import "strings"

// Subject is a named or anonymous node in the model graph.
type Subject struct {
	name       string
	value      string
	blank      bool
	path       []string
	predicates []*Predicate
	referenced []*Triple
}

// Name returns the subject name, or "" for a blank node.
func (s *Subject) Name() string { return s.name }

// Value returns the example value written after the name, if any.
func (s *Subject) Value() string { return s.value }

// IsBlankNode reports whether the subject was written with a [] key.
func (s *Subject) IsBlankNode() bool { return s.blank }

// Path returns, for a blank node, the predicate URIs leading to it from
// its named ancestor. It is empty for named subjects.
func (s *Subject) Path() []string {
	out := make([]string, len(s.path))
	copy(out, s.path)
	return out
}

// Predicates returns the predicates in declaration order.
func (s *Subject) Predicates() []*Predicate {
	out := make([]*Predicate, len(s.predicates))
	copy(out, s.predicates)
	return out
}

// ReferencedBy returns the triples whose object names this subject.
func (s *Subject) ReferencedBy() []*Triple {
	out := make([]*Triple, len(s.referenced))
	copy(out, s.referenced)
	return out
}

// Types returns the objects of every type predicate, in order.
// A named subject without any fails with *MissingTypeError; a blank
// node simply has none.
func (s *Subject) Types() ([]string, error) {
	var types []string
	for _, p := range s.predicates {
		if !p.IsRDFType() {
			continue
		}
		for _, o := range p.objects {
			types = append(types, o.Value())
		}
	}
	if len(types) == 0 && !s.blank {
		return nil, &MissingTypeError{Subject: s.name}
	}
	return types, nil
}

// Type returns Types joined with ", ".
func (s *Subject) Type() (string, error) {
	types, err := s.Types()
	if err != nil {
		return "", err
	}
	return strings.Join(types, ", "), nil
}

// String returns the name, or a bracketed path for blank nodes.
func (s *Subject) String() string {
	if s.blank {
		return "[" + strings.Join(s.path, " ") + "]"
	}
	return s.name
}

// Predicate is a labeled edge from a Subject.
type Predicate struct {
	uri         string
	cardinality *Cardinality
	objects     []Object
}

// URI returns the label with its cardinality suffix stripped.
func (p *Predicate) URI() string { return p.uri }

// Cardinality returns the parsed suffix, or nil when there was none.
func (p *Predicate) Cardinality() *Cardinality { return p.cardinality }

// Objects returns the objects in declaration order.
func (p *Predicate) Objects() []Object {
	out := make([]Object, len(p.objects))
	copy(out, p.objects)
	return out
}

// IsRDFType reports whether the predicate is `a` or rdf:type.
func (p *Predicate) IsRDFType() bool {
	return p.uri == "a" || p.uri == "rdf:type"
}

// IsOptional reports whether the predicate may be absent.
func (p *Predicate) IsOptional() bool {
	return p.cardinality.IsOptional()
}
