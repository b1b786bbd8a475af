package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tnishi/rdf-config/internal/config"
	"github.com/tnishi/rdf-config/internal/model"
	"github.com/tnishi/rdf-config/internal/testutil"
)

const smallModel = `
- Person ex:alice:
  - a: foaf:Person
  - foaf:name:
    - name: Alice
  - foaf:age:
    - age: 30
  - foaf:knows:
    - friend: Other
  - ex:address:
    - []:
      - ex:city:
        - city: Cambridge
  - ex:since:
    - since: "2004-02-10^^xsd:date"
  - ex:note:
    - note:
- Other:
  - a: foaf:Person
`

func buildModel(t *testing.T, src string) *model.Model {
	t.Helper()
	table, err := config.ParsePrefixes(testutil.ParseYAML(t, testutil.PrefixYAML))
	require.NoError(t, err)
	m, err := model.Build(testutil.ParseYAML(t, src), table)
	require.NoError(t, err)
	return m
}

func TestQuads(t *testing.T) {
	const (
		ex   = "http://example.org/"
		foaf = "http://xmlns.com/foaf/0.1/"
		xsd  = "http://www.w3.org/2001/XMLSchema#"
	)
	alice := quad.IRI(ex + "alice")
	other := quad.BNode("Other")
	b1 := quad.BNode("b1")

	want := []quad.Quad{
		{Subject: alice, Predicate: rdfType, Object: quad.IRI(foaf + "Person")},
		{Subject: alice, Predicate: quad.IRI(foaf + "name"), Object: quad.String("Alice")},
		{Subject: alice, Predicate: quad.IRI(foaf + "age"), Object: quad.TypedString{Value: "30", Type: quad.IRI(xsd + "integer")}},
		{Subject: alice, Predicate: quad.IRI(foaf + "knows"), Object: other},
		{Subject: alice, Predicate: quad.IRI(ex + "address"), Object: b1},
		{Subject: b1, Predicate: quad.IRI(ex + "city"), Object: quad.String("Cambridge")},
		{Subject: alice, Predicate: quad.IRI(ex + "since"), Object: quad.TypedString{Value: "2004-02-10", Type: quad.IRI(xsd + "date")}},
		{Subject: other, Predicate: rdfType, Object: quad.IRI(foaf + "Person")},
	}

	assert.Equal(t, want, Quads(buildModel(t, smallModel)))
}

func TestWriteNQuads(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteNQuads(&buf, buildModel(t, smallModel)))

	out := buf.String()
	assert.Equal(t, 8, strings.Count(out, "\n"))
	assert.Contains(t, out, `<http://example.org/alice> <http://xmlns.com/foaf/0.1/name> "Alice" .`)
	assert.Contains(t, out, `<http://example.org/alice> <http://example.org/address> _:b1 .`)
	assert.Contains(t, out, `"30"^^<http://www.w3.org/2001/XMLSchema#integer>`)
	assert.NotContains(t, out, "note")
}

func TestWriteNQuadsIsStable(t *testing.T) {
	m := buildModel(t, testutil.ModelYAML)

	var first, second bytes.Buffer
	require.NoError(t, WriteNQuads(&first, m))
	require.NoError(t, WriteNQuads(&second, m))
	assert.Equal(t, first.String(), second.String())
	assert.Contains(t, first.String(), "_:b5")
}

func TestJSONLD(t *testing.T) {
	m := buildModel(t, smallModel)

	doc, err := JSONLD(m)
	require.NoError(t, err)

	ctx, ok := doc["@context"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "http://example.org/", ctx["ex"])
	assert.Equal(t, "http://xmlns.com/foaf/0.1/", ctx["foaf"])

	var buf bytes.Buffer
	require.NoError(t, WriteJSONLD(&buf, m))
	assert.Contains(t, buf.String(), `"ex:alice"`)
	assert.Contains(t, buf.String(), `"foaf:name"`)
}
