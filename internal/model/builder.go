package model

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/tnishi/rdf-config/internal/config"
)

// Build reads a model document into a Model.
//
// doc is the parsed model.yaml (document node or its root sequence);
// prefixes decides which prefixed names are URIs. Build runs two passes:
// the first collects every top-level subject name so that objects can
// refer to subjects declared later, the second builds the graph.
//
// Only structural problems fail the build (a top level that is not a
// list, a definition that is not a mapping). Missing types are reported
// lazily by Subject.Types.
func Build(doc *yaml.Node, prefixes *config.PrefixTable) (*Model, error) {
	if prefixes == nil {
		prefixes = config.NewPrefixTable()
	}
	m := &Model{
		prefixes: prefixes,
		byName:   make(map[string]*Subject),
	}

	root := resolve(doc)
	if root != nil && root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return m, nil
		}
		root = resolve(root.Content[0])
	}
	if root == nil || isNull(root) {
		return m, nil
	}
	if root.Kind != yaml.SequenceNode {
		return nil, buildErrorf(root, "top level must be a list of subject definitions")
	}

	b := &builder{prefixes: prefixes, model: m}

	// Pass 1: subject names.
	bodies := make([]*yaml.Node, 0, len(root.Content))
	for _, item := range root.Content {
		key, body, err := singleEntry(resolve(item))
		if err != nil {
			return nil, err
		}
		if key.Kind != yaml.ScalarNode {
			return nil, buildErrorf(key, "top-level subject must be named")
		}
		name, value := splitSubjectKey(normalize(key.Value))
		if name == "" {
			return nil, buildErrorf(key, "empty subject name")
		}
		s := &Subject{name: name, value: value}
		m.subjects = append(m.subjects, s)
		if _, dup := m.byName[name]; !dup {
			m.byName[name] = s
		}
		bodies = append(bodies, body)
	}

	// Pass 2: predicates, objects and triples.
	for i, s := range m.subjects {
		if err := b.predicates(s, s, bodies[i], nil, nil); err != nil {
			return nil, err
		}
	}
	return m, nil
}

type builder struct {
	prefixes *config.PrefixTable
	model    *Model
}

// predicates reads the predicate list of subj. path and blanks describe
// how subj is reached from origin; both are copied before extension.
func (b *builder) predicates(origin, subj *Subject, body *yaml.Node, path []*Predicate, blanks []*Subject) error {
	body = resolve(body)
	if body == nil || isNull(body) {
		return nil
	}
	if body.Kind != yaml.SequenceNode {
		return buildErrorf(body, "predicates of %s must be a list", subj)
	}

	for _, entry := range body.Content {
		entry = resolve(entry)
		if entry.Kind != yaml.MappingNode {
			return buildErrorf(entry, "predicate of %s must be a mapping", subj)
		}
		for i := 0; i+1 < len(entry.Content); i += 2 {
			k := resolve(entry.Content[i])
			if k.Kind != yaml.ScalarNode {
				return buildErrorf(k, "predicate label must be a string")
			}
			uri, card := parseCardinality(normalize(k.Value))
			p := &Predicate{uri: uri, cardinality: card}
			subj.predicates = append(subj.predicates, p)

			if err := b.objects(origin, p, entry.Content[i+1], extend(path, p), blanks); err != nil {
				return err
			}
		}
	}
	return nil
}

// objects reads the object data of p, fanning out over sequences.
func (b *builder) objects(origin *Subject, p *Predicate, node *yaml.Node, path []*Predicate, blanks []*Subject) error {
	node = resolve(node)
	if node == nil {
		return nil
	}

	switch node.Kind {
	case yaml.SequenceNode:
		for _, item := range node.Content {
			if err := b.objects(origin, p, item, path, blanks); err != nil {
				return err
			}
		}

	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			k, v := resolve(node.Content[i]), node.Content[i+1]
			switch k.Kind {
			case yaml.SequenceNode:
				bs := &Subject{blank: true, path: uris(path)}
				p.objects = append(p.objects, &BlankNode{subject: bs})
				if err := b.predicates(origin, bs, v, path, extend(blanks, bs)); err != nil {
					return err
				}
			case yaml.ScalarNode:
				b.add(origin, p, b.named(normalize(k.Value), resolve(v), p), path, blanks)
			default:
				return buildErrorf(k, "object key must be a variable name or []")
			}
		}

	case yaml.ScalarNode:
		if isNull(node) {
			return nil
		}
		b.add(origin, p, b.scalar("", node, p), path, blanks)
	}
	return nil
}

// named builds the object for a {name: example} entry. Without a scalar
// example the variable is Unknown.
func (b *builder) named(name string, v *yaml.Node, p *Predicate) Object {
	if v == nil || isNull(v) || v.Kind != yaml.ScalarNode {
		return &Unknown{objectBase{name: name}}
	}
	return b.scalar(name, v, p)
}

func (b *builder) scalar(name string, node *yaml.Node, p *Predicate) Object {
	value := normalize(node.Value)
	base := objectBase{name: name, value: value}

	switch node.ShortTag() {
	case "!!int":
		return &Literal{objectBase: base, dataType: DataTypeInt}
	case "!!float":
		return &Literal{objectBase: base, dataType: DataTypeFloat}
	case "!!bool":
		return &Literal{objectBase: base, dataType: DataTypeBoolean}
	case "!!str":
	default:
		return &Literal{objectBase: base, dataType: DataTypeString}
	}

	switch {
	case config.IsBracketedIRI(value):
		return &URI{base}
	case !p.IsRDFType() && b.model.IsSubject(value):
		return &URI{base}
	}
	if _, ok := b.prefixes.PrefixOf(value); ok {
		return &URI{base}
	}
	return &Literal{objectBase: base, dataType: dataTypeOfString(value)}
}

// add records obj on p and emits its Triple.
func (b *builder) add(origin *Subject, p *Predicate, obj Object, path []*Predicate, blanks []*Subject) {
	p.objects = append(p.objects, obj)

	t := &Triple{subject: origin, predicates: path, blanks: blanks, object: obj}
	if obj.IsURI() && !p.IsRDFType() {
		if ref, ok := b.model.byName[obj.Value()]; ok {
			t.ref = ref
			ref.referenced = append(ref.referenced, t)
		}
	}
	b.model.triples = append(b.model.triples, t)
}

func extend[T any](s []T, v T) []T {
	out := make([]T, len(s), len(s)+1)
	copy(out, s)
	return append(out, v)
}

func uris(path []*Predicate) []string {
	out := make([]string, len(path))
	for i, p := range path {
		out[i] = p.uri
	}
	return out
}

// singleEntry unpacks a {key: value} definition.
func singleEntry(n *yaml.Node) (*yaml.Node, *yaml.Node, error) {
	if n == nil || n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		return nil, nil, buildErrorf(n, "subject definition must be a single-key mapping")
	}
	return resolve(n.Content[0]), n.Content[1], nil
}

// splitSubjectKey splits "Name value" on the first run of whitespace.
func splitSubjectKey(key string) (string, string) {
	key = strings.TrimSpace(key)
	i := strings.IndexFunc(key, unicode.IsSpace)
	if i < 0 {
		return key, ""
	}
	return key[:i], strings.TrimSpace(key[i:])
}

func normalize(s string) string { return norm.NFC.String(s) }

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

func buildErrorf(n *yaml.Node, format string, args ...any) *BuildError {
	e := &BuildError{Message: fmt.Sprintf(format, args...)}
	if n != nil {
		e.Line, e.Column = n.Line, n.Column
	}
	return e
}
