package sparql

import (
	"fmt"
	"strings"

	"github.com/tnishi/rdf-config/internal/model"
)

const indent = "    "

// pattern is one triple pattern of the WHERE block.
type pattern struct {
	subject   string
	predicate string
	object    string
}

func (p pattern) String() string {
	return p.subject + " " + p.predicate + " " + p.object + " ."
}

// optionalUnit is one OPTIONAL group. Its filters only constrain
// variables bound inside the group, so they stay inside it.
type optionalUnit struct {
	patterns []pattern
	filters  []string
}

func (u optionalUnit) String() string {
	parts := make([]string, 0, len(u.patterns)+len(u.filters))
	for _, p := range u.patterns {
		parts = append(parts, p.String())
	}
	parts = append(parts, u.filters...)
	return "OPTIONAL { " + strings.Join(parts, " ") + " }"
}

// literalEscaper applies the ECHAR escapes of a double-quoted SPARQL
// string literal.
var literalEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
	"\b", `\b`,
	"\f", `\f`,
)

func quoteLiteral(s string) string {
	return `"` + literalEscaper.Replace(s) + `"`
}

// WhereBuilder compiles requested variables into a WHERE block.
//
// Variables naming a top-level subject, and variables no triple binds,
// are skipped without error. Required patterns are grouped per pattern
// subject; an optional triple, or an optional blank-node chain, becomes
// one OPTIONAL unit.
type WhereBuilder struct {
	model    *model.Model
	template bool

	values   []string
	required []pattern
	optional []optionalUnit
	filters  []string
	terms    []string

	seen      map[string]bool
	typed     map[string]bool
	blanks    map[string]string
	nextBlank int
}

// NewWhereBuilder compiles the patterns for q against m. It fails only
// when a subject on a pattern has no type.
func NewWhereBuilder(m *model.Model, q Query, opts ...Option) (*WhereBuilder, error) {
	o := newOptions(opts)
	b := &WhereBuilder{
		model:     m,
		template:  o.template,
		seen:      make(map[string]bool),
		typed:     make(map[string]bool),
		blanks:    make(map[string]string),
		nextBlank: 1,
	}

	for _, p := range q.Parameters {
		b.addValues(p)
	}

	names := make([]string, 0, len(q.Variables)+len(q.Parameters))
	names = append(names, q.Variables...)
	for _, p := range q.Parameters {
		names = append(names, p.Name)
	}
	for _, name := range names {
		if err := b.addVariable(name); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Terms returns every IRI term the block references, in first-use
// order: subject and blank-node types, predicates, and IRI-valued
// parameters.
func (b *WhereBuilder) Terms() []string {
	out := make([]string, len(b.terms))
	copy(out, b.terms)
	return out
}

// Build implements LineBuilder.
func (b *WhereBuilder) Build() []string {
	lines := []string{"WHERE {"}
	lines = append(lines, b.values...)
	lines = append(lines, b.requiredLines()...)
	for _, unit := range b.optional {
		lines = append(lines, indent+unit.String())
	}
	lines = append(lines, b.filters...)
	return append(lines, "}")
}

// requiredLines groups required patterns by subject in first-seen order:
//
//	?s p1 o1 ;
//	    p2 o2 .
func (b *WhereBuilder) requiredLines() []string {
	var order []string
	groups := make(map[string][]pattern)
	for _, p := range b.required {
		if _, ok := groups[p.subject]; !ok {
			order = append(order, p.subject)
		}
		groups[p.subject] = append(groups[p.subject], p)
	}

	var lines []string
	for _, subject := range order {
		group := groups[subject]
		for i, p := range group {
			end := " ;"
			if i == len(group)-1 {
				end = " ."
			}
			if i == 0 {
				lines = append(lines, indent+p.subject+" "+p.predicate+" "+p.object+end)
			} else {
				lines = append(lines, indent+indent+p.predicate+" "+p.object+end)
			}
		}
	}
	return lines
}

func (b *WhereBuilder) addValues(p Parameter) {
	obj := b.model.FindObject(p.Name)

	value := p.Value
	if b.template {
		value = "{{" + p.Name + "}}"
	}
	if obj != nil && obj.IsLiteral() {
		value = quoteLiteral(value)
	}
	if obj != nil && obj.IsURI() {
		b.addTerm(p.Value)
	}
	b.values = append(b.values, fmt.Sprintf("%sVALUES ?%s { %s }", indent, p.Name, value))
}

func (b *WhereBuilder) addVariable(name string) error {
	if b.model.IsSubject(name) {
		return nil
	}
	t := b.model.FindByObjectName(name)
	if t == nil {
		return nil
	}

	origin := "?" + t.Subject().Name()
	if err := b.addSubjectType(origin, t.Subject()); err != nil {
		return err
	}

	if !t.IsMultiHop() {
		b.addTerm(t.Predicate().URI())
		b.addChain(t.IsOptional(), nil, pattern{origin, t.Predicate().URI(), "?" + name})
		return nil
	}

	types := b.model.BoundaryTypes(t)
	if types == nil {
		for _, p := range t.Predicates() {
			b.addTerm(p.URI())
		}
		b.addChain(t.IsOptional(), nil, pattern{origin, t.PropertyPath(), "?" + name})
		return nil
	}

	chain, filters := b.hops(t, origin, types)
	b.addChain(t.IsOptional(), filters, chain...)
	return nil
}

// hops expands a multi-hop triple into one pattern per predicate, with a
// pattern variable and type line for every blank node. Boundaries with
// several types yield a FILTER line each.
func (b *WhereBuilder) hops(t *model.Triple, origin string, types [][]string) ([]pattern, []string) {
	preds := t.Predicates()
	uris := make([]string, len(preds))
	for i, p := range preds {
		uris[i] = p.URI()
		b.addTerm(uris[i])
	}

	var (
		chain   []pattern
		filters []string
	)
	prev := origin
	for i, uri := range uris {
		if i == len(uris)-1 {
			chain = append(chain, pattern{prev, uri, "?" + t.Object().Name()})
			break
		}

		bn := b.blankVar(t.Subject().Name(), uris[:i+1])
		chain = append(chain, pattern{prev, uri, bn})

		switch len(types[i]) {
		case 0:
		case 1:
			b.addTerm(types[i][0])
			chain = append(chain, pattern{bn, "a", types[i][0]})
		default:
			class := bn + "_class"
			for _, typ := range types[i] {
				b.addTerm(typ)
			}
			chain = append(chain, pattern{bn, "a", class})
			filters = append(filters, fmt.Sprintf("FILTER(%s IN (%s))", class, strings.Join(types[i], ", ")))
		}
		prev = bn
	}
	return chain, filters
}

// blankVar returns the pattern variable of the blank node reached from
// subject through path, numbering new ones in first-seen order.
func (b *WhereBuilder) blankVar(subject string, path []string) string {
	key := subject + "\x00" + strings.Join(path, "\x00")
	if v, ok := b.blanks[key]; ok {
		return v
	}
	v := fmt.Sprintf("?_b%d", b.nextBlank)
	b.nextBlank++
	b.blanks[key] = v
	return v
}

// addSubjectType emits "?S a types" once per subject.
func (b *WhereBuilder) addSubjectType(variable string, s *model.Subject) error {
	if b.typed[variable] {
		return nil
	}
	types, err := s.Types()
	if err != nil {
		return err
	}
	b.typed[variable] = true
	for _, typ := range types {
		b.addTerm(typ)
	}
	b.addChain(false, nil, pattern{variable, "a", strings.Join(types, ", ")})
	return nil
}

// addChain records patterns as required, with filters at the end of the
// block, or as one OPTIONAL unit carrying its own filters. Repeated
// patterns, filters and units are dropped.
func (b *WhereBuilder) addChain(optional bool, filters []string, chain ...pattern) {
	if !optional {
		for _, p := range chain {
			key := "R" + p.String()
			if !b.seen[key] {
				b.seen[key] = true
				b.required = append(b.required, p)
			}
		}
		for _, f := range filters {
			b.addFilter(indent + f)
		}
		return
	}

	unit := optionalUnit{patterns: chain, filters: filters}
	key := "O" + unit.String()
	if !b.seen[key] {
		b.seen[key] = true
		b.optional = append(b.optional, unit)
	}
}

func (b *WhereBuilder) addFilter(line string) {
	key := "F" + line
	if !b.seen[key] {
		b.seen[key] = true
		b.filters = append(b.filters, line)
	}
}

func (b *WhereBuilder) addTerm(term string) {
	key := "T" + term
	if !b.seen[key] {
		b.seen[key] = true
		b.terms = append(b.terms, term)
	}
}
