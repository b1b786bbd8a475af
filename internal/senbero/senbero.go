// Package senbero renders a model as an indented text tree.
//
// Each subject is followed by its non-type triples: the predicate (or
// property path) on a branch line and the object on a leaf line.
//
//	Person (foaf:Person)
//	    |-- foaf:name
//	    |       `-- name ("Alice")
//	    `-- foaf:age
//	            `-- age (30)
package senbero

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gookit/color"

	"github.com/tnishi/rdf-config/internal/model"
)

// Renderer writes senbero trees.
type Renderer struct {
	color bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithColor enables ANSI colours: magenta subjects, yellow predicates,
// cyan objects.
func WithColor(enabled bool) Option {
	return func(r *Renderer) { r.color = enabled }
}

// New returns a Renderer. Colour is off unless requested.
func New(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render writes the tree of m to w. A named subject without a type fails
// with *model.MissingTypeError.
func (r *Renderer) Render(w io.Writer, m *model.Model) error {
	bw := bufio.NewWriter(w)
	triples := m.Triples()

	seen := make(map[*model.Subject]bool)
	for i, t := range triples {
		s := t.Subject()
		if !seen[s] {
			seen[s] = true
			typ, err := s.Type()
			if err != nil {
				return err
			}
			fmt.Fprintf(bw, "%s (%s)\n", r.subject(s.Name()), typ)
		}

		if t.Predicate().IsRDFType() {
			continue
		}

		var next *model.Triple
		if i+1 < len(triples) {
			next = triples[i+1]
		}
		lastPredicate := next == nil || next.Subject() != s
		lastObject := next == nil || next.PropertyPath() != t.PropertyPath()

		branch, stem := "    |-- ", "    |       "
		if lastPredicate {
			branch, stem = "    `-- ", "            "
		}
		leaf := "|-- "
		if lastObject {
			leaf = "`-- "
		}

		fmt.Fprintf(bw, "%s%s\n", branch, r.predicate(t.PropertyPath()))
		fmt.Fprintf(bw, "%s%s%s (%s)\n", stem, leaf, r.object(t.Object().Name()), r.label(t))
	}
	return bw.Flush()
}

// label describes the example value of a triple's object.
func (r *Renderer) label(t *model.Triple) string {
	switch o := t.Object().(type) {
	case *model.URI:
		if t.Ref() != nil {
			return r.subject(o.Value())
		}
		return o.Value()
	case *model.Literal:
		switch o.DataType() {
		case model.DataTypeInt, model.DataTypeFloat, model.DataTypeBoolean:
			if !strings.Contains(o.Value(), "^^") {
				return o.Value()
			}
		}
		return strconv.Quote(o.Value())
	default:
		return "N/A"
	}
}

func (r *Renderer) subject(s string) string   { return r.paint(color.FgMagenta, s) }
func (r *Renderer) predicate(s string) string { return r.paint(color.FgYellow, s) }
func (r *Renderer) object(s string) string    { return r.paint(color.FgCyan, s) }

func (r *Renderer) paint(c color.Color, s string) string {
	if !r.color {
		return s
	}
	return c.Sprint(s)
}
