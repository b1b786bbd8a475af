// Package stanza generates UI scaffolding for a query: a metadata.json
// describing the stanza, a stanza.html result template and the query
// itself with its parameters left as {{name}} placeholders.
package stanza

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tnishi/rdf-config/internal/config"
	"github.com/tnishi/rdf-config/internal/sparql"
)

// DefaultName is generated when no stanza name is given.
const DefaultName = "stanza"

// DefaultKeyPrefix prefixes every metadata.json key.
const DefaultKeyPrefix = "stanza:"

// Output file names inside a stanza directory.
const (
	MetadataFile = "metadata.json"
	TemplateFile = "stanza.html"
	QueryFile    = "query.rq"
)

// Generator writes stanza directories.
type Generator struct {
	cfg         *config.Config
	compiler    *sparql.Compiler
	keyPrefix   string
	valueSuffix string
	logger      *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithKeyPrefix replaces DefaultKeyPrefix; "" writes bare keys.
func WithKeyPrefix(prefix string) Option {
	return func(g *Generator) { g.keyPrefix = prefix }
}

// WithValueSuffix appends suffix to every variable reference of the
// result template, e.g. ".value" for raw SPARQL JSON bindings.
func WithValueSuffix(suffix string) Option {
	return func(g *Generator) { g.valueSuffix = suffix }
}

// WithLogger sets the progress logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// NewGenerator returns a Generator over cfg, compiling queries with c.
func NewGenerator(cfg *config.Config, c *sparql.Compiler, opts ...Option) *Generator {
	g := &Generator{
		cfg:       cfg,
		compiler:  c,
		keyPrefix: DefaultKeyPrefix,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Result lists what Generate wrote.
type Result struct {
	Name  string   `json:"name"`
	Dir   string   `json:"dir"`
	Files []string `json:"files"`
}

// Generate writes the stanza called name ("" selects DefaultName) to
// <output_dir>/<name>. A relative output_dir is taken from the
// configuration directory.
func (g *Generator) Generate(name string) (*Result, error) {
	if name == "" {
		name = DefaultName
	}
	def, err := g.cfg.Stanza(name)
	if err != nil {
		return nil, err
	}

	q, err := g.compiler.Query(def.Sparql)
	if err != nil {
		return nil, fmt.Errorf("stanza %s: %w", name, err)
	}
	query, err := g.compiler.CompileQuery(q, sparql.WithTemplate(), sparql.WithoutComment())
	if err != nil {
		return nil, fmt.Errorf("stanza %s: %w", name, err)
	}
	meta, err := g.Metadata(name, def)
	if err != nil {
		return nil, err
	}
	metaJSON, err := meta.MarshalIndent()
	if err != nil {
		return nil, fmt.Errorf("stanza %s: encode metadata: %w", name, err)
	}

	dir := def.OutputDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(g.cfg.Dir(), dir)
	}
	dir = filepath.Join(dir, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create stanza dir: %w", err)
	}

	g.logger.Info("generating stanza", "name", name, "dir", dir)

	files := []struct {
		name string
		data string
	}{
		{MetadataFile, string(metaJSON)},
		{TemplateFile, g.ResultTemplate(name, q.Variables)},
		{QueryFile, query},
	}
	res := &Result{Name: name, Dir: dir}
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := os.WriteFile(path, []byte(f.data+"\n"), 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", f.name, err)
		}
		res.Files = append(res.Files, path)
	}
	return res, nil
}

// Metadata builds the metadata.json document of a stanza. Provider,
// license and author are included only when metadata.yaml exists.
func (g *Generator) Metadata(name string, def config.StanzaDef) (Object, error) {
	key := func(k string) string { return g.keyPrefix + k }

	params := make([]Object, 0, def.Parameters.Len())
	for _, k := range def.Parameters.Keys() {
		p, _ := def.Parameters.Get(k)
		params = append(params, Object{
			{key("key"), k},
			{key("example"), p.Example},
			{key("description"), p.Description},
			{key("required"), p.Required},
		})
	}

	label := def.Label
	if label == "" {
		label = cases.Title(language.English).String(strings.ReplaceAll(name, "_", " "))
	}

	meta := Object{
		{key("parameter"), params},
		{key("label"), label},
		{key("definition"), def.Definition},
	}

	if g.cfg.HasMetadata() {
		md, err := g.cfg.Metadata()
		if err != nil {
			return nil, err
		}
		meta = append(meta,
			Field{key("provider"), md.Provider},
			Field{key("license"), strings.Join(md.Licenses, "\n")},
			Field{key("author"), strings.Join(md.Creators, ", ")},
		)
	}
	return meta, nil
}

// ResultTemplate renders the Handlebars template listing every query
// variable of one result row.
func (g *Generator) ResultTemplate(name string, variables []string) string {
	const ind = "  "
	lines := []string{
		"{{#each " + name + "}}",
		ind + `<dl class="dl-horizontal">`,
	}
	for _, v := range variables {
		lines = append(lines, fmt.Sprintf("%s<dt>%s</dt><dd>{{%s%s}}</dd>", ind+ind, v, v, g.valueSuffix))
	}
	lines = append(lines, ind+"</dl>", "{{/each}}")
	return strings.Join(lines, "\n")
}
