package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// OrderedMap is a string-keyed YAML mapping that remembers key order.
type OrderedMap[V any] struct {
	keys   []string
	values map[string]V
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *OrderedMap[V]) UnmarshalYAML(node *yaml.Node) error {
	m.keys = nil
	m.values = make(map[string]V)

	// An empty "parameters:" decodes as null.
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected mapping", node.Line)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		var v V
		if err := node.Content[i+1].Decode(&v); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if _, seen := m.values[key]; !seen {
			m.keys = append(m.keys, key)
		}
		m.values[key] = v
	}
	return nil
}

// Set adds or replaces key. New keys are appended to the order.
func (m *OrderedMap[V]) Set(key string, v V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if _, seen := m.values[key]; !seen {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Keys returns the keys in declaration order.
func (m *OrderedMap[V]) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Get returns the value for key.
func (m *OrderedMap[V]) Get(key string) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *OrderedMap[V]) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Len returns the number of keys.
func (m *OrderedMap[V]) Len() int { return len(m.keys) }

// QueryDef is one sparql.yaml entry.
type QueryDef struct {
	Description string             `yaml:"description"`
	Variables   []string           `yaml:"variables"`
	Parameters  OrderedMap[string] `yaml:"parameters"`
}

// StanzaParameter describes a stanza input parameter.
type StanzaParameter struct {
	Example     string `yaml:"example" json:"example"`
	Description string `yaml:"description" json:"description"`
	Required    bool   `yaml:"required" json:"required"`
}

// StanzaDef is one stanza.yaml entry.
type StanzaDef struct {
	OutputDir  string                      `yaml:"output_dir"`
	Label      string                      `yaml:"label"`
	Definition string                      `yaml:"definition"`
	Sparql     string                      `yaml:"sparql"`
	Parameters OrderedMap[StanzaParameter] `yaml:"parameters"`
}

// EndpointDoc is the endpoint.yaml document.
type EndpointDoc struct {
	Endpoints StringList `yaml:"endpoint"`
}

// Primary returns the first configured endpoint.
func (d EndpointDoc) Primary() string {
	if len(d.Endpoints) == 0 {
		return ""
	}
	return d.Endpoints[0]
}

// Metadata is the optional metadata.yaml document.
type Metadata struct {
	Provider string     `yaml:"provider"`
	Licenses StringList `yaml:"licenses"`
	Creators StringList `yaml:"creators"`
}

// StringList accepts a scalar, a list of scalars, or a list of mappings
// carrying a "name" key.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *StringList) UnmarshalYAML(node *yaml.Node) error {
	*l = nil
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag != "!!null" {
			*l = StringList{node.Value}
		}
		return nil
	case yaml.SequenceNode:
		for _, item := range node.Content {
			switch item.Kind {
			case yaml.ScalarNode:
				*l = append(*l, item.Value)
			case yaml.MappingNode:
				var named struct {
					Name string `yaml:"name"`
				}
				if err := item.Decode(&named); err != nil {
					return err
				}
				*l = append(*l, named.Name)
			default:
				return fmt.Errorf("line %d: unsupported list item", item.Line)
			}
		}
		return nil
	default:
		return fmt.Errorf("line %d: expected string or list", node.Line)
	}
}
