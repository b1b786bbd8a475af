package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/piprate/json-gold/ld"

	"github.com/tnishi/rdf-config/internal/model"
)

// Context returns a JSON-LD context mapping every declared prefix to its
// namespace.
func Context(m *model.Model) map[string]any {
	terms := make(map[string]any)
	table := m.Prefixes()
	for _, name := range table.Names() {
		iri, _ := table.Lookup(name)
		terms[name] = strings.TrimSuffix(strings.TrimPrefix(iri, "<"), ">")
	}
	return map[string]any{"@context": terms}
}

// JSONLD converts the N-Quads of m into a JSON-LD document compacted
// against Context.
func JSONLD(m *model.Model) (map[string]any, error) {
	var buf bytes.Buffer
	if err := WriteNQuads(&buf, m); err != nil {
		return nil, err
	}

	proc := ld.NewJsonLdProcessor()
	fromOpts := ld.NewJsonLdOptions("")
	fromOpts.Format = "application/n-quads"
	doc, err := proc.FromRDF(buf.String(), fromOpts)
	if err != nil {
		return nil, fmt.Errorf("jsonld: from rdf: %w", err)
	}

	compacted, err := proc.Compact(doc, Context(m), ld.NewJsonLdOptions(""))
	if err != nil {
		return nil, fmt.Errorf("jsonld: compact: %w", err)
	}
	return compacted, nil
}

// WriteJSONLD writes the compacted JSON-LD document of m, indented.
func WriteJSONLD(w io.Writer, m *model.Model) error {
	doc, err := JSONLD(m)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
