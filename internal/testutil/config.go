package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// PrefixYAML declares the prefixes used by ModelYAML.
const PrefixYAML = `rdf: <http://www.w3.org/1999/02/22-rdf-syntax-ns#>
xsd: <http://www.w3.org/2001/XMLSchema#>
foaf: <http://xmlns.com/foaf/0.1/>
dc: <http://purl.org/dc/elements/1.1/>
schema: <http://schema.org/>
ex: <http://example.org/>
`

// ModelYAML is a small library model exercising every object shape:
// optional and repeated predicates, a back-reference, a typed literal,
// an untyped blank-node chain, typed and multi-typed blank nodes, and a
// variable without an example.
const ModelYAML = `- Person ex:alice:
  - a: foaf:Person
  - foaf:name:
    - name: "Alice"
  - foaf:age?:
    - age: 30
  - foaf:mbox*:
    - mbox: <mailto:alice@example.org>
  - foaf:homepage?:
    - homepage: ex:alice-home
- Book ex:book1:
  - a: [ex:Book, schema:Book]
  - dc:title:
    - title: "RDF Primer"
  - dc:creator:
    - creator: Person
  - ex:published?:
    - published: "2004-02-10^^xsd:date"
  - ex:publisher?:
    - []:
      - ex:address:
        - []:
          - ex:city:
            - city: "Cambridge"
  - ex:edition+:
    - []:
      - a: ex:Edition
      - ex:isbn:
        - isbn: "978-0-00-000000-0"
  - ex:format{0,2}:
    - []:
      - a: [ex:Print, ex:Ebook]
      - ex:pages:
        - pages: 300
  - ex:review*:
    - []:
      - a: ex:Review
      - ex:rating?:
        - rating: 5
  - ex:note:
    - note:
`

// SparqlYAML defines queries over ModelYAML.
const SparqlYAML = `sparql:
  description: Names of people
  variables: [Person, name, nickname]
  parameters:
    name: Alice
person:
  description: People and contact details
  variables: [name, age, mbox]
book:
  description: Books with creators and editions
  variables: [title, creator, published, city, isbn]
  parameters:
    title: RDF Primer
formats:
  description: Physical formats and reviews
  variables: [pages, rating]
homepage:
  description: People by homepage
  variables: [name]
  parameters:
    homepage: ex:alice-home
`

// EndpointYAML lists a primary endpoint and a mirror.
const EndpointYAML = `endpoint:
  - https://example.org/sparql
  - https://mirror.example.org/sparql
`

// StanzaYAML defines one stanza over the person query.
const StanzaYAML = `person_card:
  output_dir: stanza
  label: Person card
  definition: Shows a person and contact details
  sparql: person
  parameters:
    name:
      example: Alice
      description: person name
      required: true
`

// MetadataYAML carries provider and license information.
const MetadataYAML = `provider: Example Library
licenses: CC-BY-4.0
creators:
  - name: Alice Example
  - Bob Example
`

// SampleFiles returns the full sample configuration.
func SampleFiles() map[string]string {
	return map[string]string{
		"model.yaml":    ModelYAML,
		"prefix.yaml":   PrefixYAML,
		"sparql.yaml":   SparqlYAML,
		"endpoint.yaml": EndpointYAML,
		"stanza.yaml":   StanzaYAML,
		"metadata.yaml": MetadataYAML,
	}
}

// WriteConfigDir writes files into a fresh temp directory and returns it.
// Cleanup is automatic via t.TempDir().
func WriteConfigDir(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

// WriteSampleConfig writes the sample configuration into a temp directory.
func WriteSampleConfig(t *testing.T) string {
	t.Helper()
	return WriteConfigDir(t, SampleFiles())
}

// ParseYAML parses src into a document node.
func ParseYAML(t *testing.T, src string) *yaml.Node {
	t.Helper()

	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &doc))
	return &doc
}
