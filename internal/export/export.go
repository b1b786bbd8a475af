// Package export serializes the Subject graph of a model as RDF.
//
// Subjects become IRIs when their example value expands through the
// prefix table and blank nodes otherwise. Nested anonymous subjects are
// numbered in traversal order, so the output is stable for a given model.
// Unknown objects carry no value and are left out.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/nquads"
	"github.com/cayleygraph/quad/voc/rdf"

	"github.com/tnishi/rdf-config/internal/config"
	"github.com/tnishi/rdf-config/internal/model"
)

const xsdNS = "http://www.w3.org/2001/XMLSchema#"

var rdfType = quad.IRI(rdf.Type)

// Quads returns the statements of m in model order.
func Quads(m *model.Model) []quad.Quad {
	e := &exporter{model: m, prefixes: m.Prefixes(), nodes: make(map[*model.Subject]quad.Value)}
	for _, s := range m.Subjects() {
		e.nodes[s] = e.subjectNode(s)
	}
	for _, s := range m.Subjects() {
		e.emit(e.nodes[s], s)
	}
	return e.quads
}

// WriteNQuads writes m as N-Quads.
func WriteNQuads(w io.Writer, m *model.Model) error {
	qw := nquads.NewWriter(w)
	for _, q := range Quads(m) {
		if err := qw.WriteQuad(q); err != nil {
			return fmt.Errorf("write quad: %w", err)
		}
	}
	return qw.Close()
}

type exporter struct {
	model    *model.Model
	prefixes *config.PrefixTable
	nodes    map[*model.Subject]quad.Value
	blanks   int
	quads    []quad.Quad
}

func (e *exporter) subjectNode(s *model.Subject) quad.Value {
	if iri, ok := e.prefixes.Expand(s.Value()); ok {
		return quad.IRI(iri)
	}
	return quad.BNode(s.Name())
}

func (e *exporter) emit(node quad.Value, s *model.Subject) {
	for _, p := range s.Predicates() {
		pred := e.predicate(p)
		for _, o := range p.Objects() {
			var obj quad.Value
			switch v := o.(type) {
			case *model.BlankNode:
				e.blanks++
				bn := quad.BNode(fmt.Sprintf("b%d", e.blanks))
				e.quads = append(e.quads, quad.Quad{Subject: node, Predicate: pred, Object: bn})
				e.emit(bn, v.Subject())
				continue
			case *model.URI:
				obj = e.uri(v)
			case *model.Literal:
				obj = e.literal(v)
			case *model.Unknown:
				continue
			}
			e.quads = append(e.quads, quad.Quad{Subject: node, Predicate: pred, Object: obj})
		}
	}
}

func (e *exporter) predicate(p *model.Predicate) quad.Value {
	if p.IsRDFType() {
		return rdfType
	}
	return e.iri(p.URI())
}

func (e *exporter) uri(u *model.URI) quad.Value {
	if s := e.model.Subject(u.Value()); s != nil {
		return e.nodes[s]
	}
	return e.iri(u.Value())
}

// iri expands a prefixed name or bracketed IRI; anything else is kept
// as written.
func (e *exporter) iri(term string) quad.IRI {
	if iri, ok := e.prefixes.Expand(term); ok {
		return quad.IRI(iri)
	}
	return quad.IRI(term)
}

func (e *exporter) literal(l *model.Literal) quad.Value {
	value := l.Value()
	if v, typ, ok := strings.Cut(value, "^^"); ok {
		if iri, expanded := e.prefixes.Expand(typ); expanded {
			return quad.TypedString{Value: quad.String(v), Type: quad.IRI(iri)}
		}
	}

	switch l.DataType() {
	case model.DataTypeInt:
		return quad.TypedString{Value: quad.String(value), Type: quad.IRI(xsdNS + "integer")}
	case model.DataTypeFloat:
		return quad.TypedString{Value: quad.String(value), Type: quad.IRI(xsdNS + "double")}
	case model.DataTypeBoolean:
		return quad.TypedString{Value: quad.String(value), Type: quad.IRI(xsdNS + "boolean")}
	default:
		return quad.String(value)
	}
}
