package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Document file names inside a configuration directory.
const (
	ModelFile    = "model.yaml"
	PrefixFile   = "prefix.yaml"
	SparqlFile   = "sparql.yaml"
	EndpointFile = "endpoint.yaml"
	StanzaFile   = "stanza.yaml"
	MetadataFile = "metadata.yaml"
)

// lazy caches the result of a one-time load.
type lazy[T any] struct {
	once sync.Once
	val  T
	err  error
}

func (l *lazy[T]) get(load func() (T, error)) (T, error) {
	l.once.Do(func() { l.val, l.err = load() })
	return l.val, l.err
}

// Config gives read access to the documents of one configuration directory.
type Config struct {
	dir string

	model    lazy[*yaml.Node]
	prefixes lazy[*PrefixTable]
	queries  lazy[*OrderedMap[QueryDef]]
	endpoint lazy[EndpointDoc]
	stanzas  lazy[*OrderedMap[StanzaDef]]
	metadata lazy[Metadata]
}

// New returns a Config rooted at dir. Nothing is read until a document is
// requested.
func New(dir string) *Config {
	return &Config{dir: dir}
}

// Dir returns the configuration directory.
func (c *Config) Dir() string { return c.dir }

// Path returns the full path of a document file.
func (c *Config) Path(name string) string { return filepath.Join(c.dir, name) }

// Model returns the root sequence node of model.yaml.
func (c *Config) Model() (*yaml.Node, error) {
	return c.model.get(func() (*yaml.Node, error) {
		var doc yaml.Node
		if err := c.decode(ModelFile, &doc); err != nil {
			return nil, err
		}
		if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
			return doc.Content[0], nil
		}
		return &doc, nil
	})
}

// Prefixes returns the prefix table declared in prefix.yaml.
func (c *Config) Prefixes() (*PrefixTable, error) {
	return c.prefixes.get(func() (*PrefixTable, error) {
		var doc yaml.Node
		if err := c.decode(PrefixFile, &doc); err != nil {
			return nil, err
		}
		t, err := ParsePrefixes(&doc)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", PrefixFile, err)
		}
		return t, nil
	})
}

// Queries returns every query definition in sparql.yaml.
func (c *Config) Queries() (*OrderedMap[QueryDef], error) {
	return c.queries.get(func() (*OrderedMap[QueryDef], error) {
		m := &OrderedMap[QueryDef]{}
		if err := c.decode(SparqlFile, m); err != nil {
			return nil, err
		}
		return m, nil
	})
}

// Query returns the named query definition.
func (c *Config) Query(name string) (QueryDef, error) {
	queries, err := c.Queries()
	if err != nil {
		return QueryDef{}, err
	}
	q, ok := queries.Get(name)
	if !ok {
		return QueryDef{}, &NotFoundError{Kind: "sparql", Name: name}
	}
	return q, nil
}

// Endpoint returns the endpoint.yaml document.
func (c *Config) Endpoint() (EndpointDoc, error) {
	return c.endpoint.get(func() (EndpointDoc, error) {
		var doc EndpointDoc
		err := c.decode(EndpointFile, &doc)
		return doc, err
	})
}

// Stanzas returns every stanza definition in stanza.yaml.
func (c *Config) Stanzas() (*OrderedMap[StanzaDef], error) {
	return c.stanzas.get(func() (*OrderedMap[StanzaDef], error) {
		m := &OrderedMap[StanzaDef]{}
		if err := c.decode(StanzaFile, m); err != nil {
			return nil, err
		}
		return m, nil
	})
}

// Stanza returns the named stanza definition.
func (c *Config) Stanza(name string) (StanzaDef, error) {
	stanzas, err := c.Stanzas()
	if err != nil {
		return StanzaDef{}, err
	}
	s, ok := stanzas.Get(name)
	if !ok {
		return StanzaDef{}, &NotFoundError{Kind: "stanza", Name: name}
	}
	return s, nil
}

// HasMetadata reports whether metadata.yaml exists.
func (c *Config) HasMetadata() bool {
	_, err := os.Stat(c.Path(MetadataFile))
	return err == nil
}

// Metadata returns metadata.yaml, or a zero Metadata when the file is absent.
func (c *Config) Metadata() (Metadata, error) {
	return c.metadata.get(func() (Metadata, error) {
		var md Metadata
		err := c.decode(MetadataFile, &md)
		if errors.Is(err, fs.ErrNotExist) {
			return Metadata{}, nil
		}
		return md, err
	})
}

func (c *Config) decode(name string, out any) error {
	data, err := os.ReadFile(c.Path(name))
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}
