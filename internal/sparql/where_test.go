package sparql

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tnishi/rdf-config/internal/config"
	"github.com/tnishi/rdf-config/internal/model"
	"github.com/tnishi/rdf-config/internal/testutil"
)

func buildModel(t *testing.T, src string) *model.Model {
	t.Helper()
	table, err := config.ParsePrefixes(testutil.ParseYAML(t, testutil.PrefixYAML))
	require.NoError(t, err)
	m, err := model.Build(testutil.ParseYAML(t, src), table)
	require.NoError(t, err)
	return m
}

func whereLines(t *testing.T, m *model.Model, q Query, opts ...Option) []string {
	t.Helper()
	b, err := NewWhereBuilder(m, q, opts...)
	require.NoError(t, err)
	return b.Build()
}

func TestWhereScenarioRequiredOnly(t *testing.T) {
	m := buildModel(t, `
- Person ex:alice:
  - a: foaf:Person
  - foaf:name:
    - name: Alice
`)

	got := whereLines(t, m, Query{Variables: []string{"name"}})
	assert.Equal(t, []string{
		"WHERE {",
		"    ?Person a foaf:Person ;",
		"        foaf:name ?name .",
		"}",
	}, got)
	assert.NotContains(t, strings.Join(got, "\n"), "OPTIONAL")
}

func TestWhereScenarioStarIsOptionalAnywhere(t *testing.T) {
	m := buildModel(t, `
- Person:
  - a: foaf:Person
  - foaf:knows*:
    - friend: ex:bob
  - foaf:name:
    - name: Alice
`)

	got := whereLines(t, m, Query{Variables: []string{"friend", "name"}})
	assert.Equal(t, []string{
		"WHERE {",
		"    ?Person a foaf:Person ;",
		"        foaf:name ?name .",
		"    OPTIONAL { ?Person foaf:knows ?friend . }",
		"}",
	}, got)
}

func TestWhereScenarioDivergingBlankNodes(t *testing.T) {
	m := buildModel(t, `
- Book:
  - a: ex:Book
  - ex:publisher:
    - []:
      - a: ex:Publisher
      - ex:name:
        - book_publisher: W3C
- Journal:
  - a: ex:Journal
  - ex:publisher:
    - []:
      - a: ex:Society
      - ex:name:
        - journal_publisher: ACM
`)

	got := whereLines(t, m, Query{Variables: []string{"book_publisher", "journal_publisher"}})
	assert.Equal(t, []string{
		"WHERE {",
		"    ?Book a ex:Book ;",
		"        ex:publisher ?_b1 .",
		"    ?_b1 a ex:Publisher ;",
		"        ex:name ?book_publisher .",
		"    ?Journal a ex:Journal ;",
		"        ex:publisher ?_b2 .",
		"    ?_b2 a ex:Society ;",
		"        ex:name ?journal_publisher .",
		"}",
	}, got)
}

func TestWhereScenarioUnknownVariable(t *testing.T) {
	m := buildModel(t, `
- Person:
  - a: foaf:Person
  - foaf:name:
    - name: Alice
`)

	b, err := NewWhereBuilder(m, Query{Variables: []string{"nickname"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"WHERE {", "}"}, b.Build())
	assert.Empty(t, b.Terms())
}

func TestWhereSingleHopOptionality(t *testing.T) {
	m := buildModel(t, `
- Thing:
  - a: ex:Thing
  - ex:plain:
    - plain: x
  - ex:maybe?:
    - maybe: x
  - ex:many*:
    - many: x
  - ex:some+:
    - some: x
  - ex:range{0,3}:
    - zero_range: x
  - ex:upper{,3}:
    - upper_only: x
  - ex:exact{2}:
    - exact: x
`)

	tests := []struct {
		variable string
		optional bool
	}{
		{"plain", false},
		{"maybe", true},
		{"many", true},
		{"some", false},
		{"zero_range", true},
		{"upper_only", true},
		{"exact", false},
	}

	for _, tt := range tests {
		t.Run(tt.variable, func(t *testing.T) {
			text := strings.Join(whereLines(t, m, Query{Variables: []string{tt.variable}}), "\n")
			assert.Equal(t, tt.optional, strings.Contains(text, "OPTIONAL {"), text)
			assert.Contains(t, text, "?"+tt.variable+" ")
		})
	}
}

func TestWhereUntypedChainIsPropertyPath(t *testing.T) {
	m := buildModel(t, `
- Book:
  - a: ex:Book
  - ex:publisher:
    - []:
      - ex:address:
        - []:
          - ex:city:
            - city: Cambridge
`)

	b, err := NewWhereBuilder(m, Query{Variables: []string{"city"}})
	require.NoError(t, err)
	got := b.Build()

	assert.Equal(t, []string{
		"WHERE {",
		"    ?Book a ex:Book ;",
		"        ex:publisher/ex:address/ex:city ?city .",
		"}",
	}, got)
	assert.NotContains(t, strings.Join(got, "\n"), "?_b")
	assert.Equal(t, []string{"ex:Book", "ex:publisher", "ex:address", "ex:city"}, b.Terms())
}

func TestWhereOptionalPropertyPath(t *testing.T) {
	m := buildModel(t, `
- Book:
  - a: ex:Book
  - ex:publisher:
    - []:
      - ex:city?:
        - city: Cambridge
`)

	got := whereLines(t, m, Query{Variables: []string{"city"}})
	assert.Contains(t, got, "    OPTIONAL { ?Book ex:publisher/ex:city ?city . }")
}

func TestWherePartiallyTypedChain(t *testing.T) {
	m := buildModel(t, `
- Book:
  - a: ex:Book
  - ex:publisher:
    - []:
      - ex:address:
        - []:
          - a: ex:Address
          - ex:city:
            - city: Cambridge
`)

	got := whereLines(t, m, Query{Variables: []string{"city"}})
	assert.Equal(t, []string{
		"WHERE {",
		"    ?Book a ex:Book ;",
		"        ex:publisher ?_b1 .",
		"    ?_b1 ex:address ?_b2 .",
		"    ?_b2 a ex:Address ;",
		"        ex:city ?city .",
		"}",
	}, got)
}

func TestWhereMultiTypedBoundaryFilter(t *testing.T) {
	m := buildModel(t, `
- Book:
  - a: ex:Book
  - ex:format:
    - []:
      - a: [ex:Print, ex:Ebook]
      - ex:pages:
        - pages: 300
      - ex:weight?:
        - weight: 1.2
`)

	got := whereLines(t, m, Query{Variables: []string{"pages", "weight"}})
	assert.Equal(t, []string{
		"WHERE {",
		"    ?Book a ex:Book ;",
		"        ex:format ?_b1 .",
		"    ?_b1 a ?_b1_class ;",
		"        ex:pages ?pages .",
		"    OPTIONAL { ?Book ex:format ?_b1 . ?_b1 a ?_b1_class . ?_b1 ex:weight ?weight . FILTER(?_b1_class IN (ex:Print, ex:Ebook)) }",
		"    FILTER(?_b1_class IN (ex:Print, ex:Ebook))",
		"}",
	}, got)
}

func TestWhereOptionalChainKeepsFilterInside(t *testing.T) {
	m := buildModel(t, `
- Book:
  - a: ex:Book
  - ex:format:
    - []:
      - a: [ex:Print, ex:Ebook]
      - ex:pages:
        - pages: 300
      - ex:weight?:
        - weight: 1.2
`)

	// A book without a format must still match, so the class test cannot
	// sit outside the OPTIONAL that binds ?_b1_class.
	got := whereLines(t, m, Query{Variables: []string{"weight"}})
	assert.Equal(t, []string{
		"WHERE {",
		"    ?Book a ex:Book .",
		"    OPTIONAL { ?Book ex:format ?_b1 . ?_b1 a ?_b1_class . ?_b1 ex:weight ?weight . FILTER(?_b1_class IN (ex:Print, ex:Ebook)) }",
		"}",
	}, got)
}

func TestWhereBlankNumberingSharedPrefix(t *testing.T) {
	m := buildModel(t, `
- Book:
  - a: ex:Book
  - ex:edition:
    - []:
      - a: ex:Edition
      - ex:isbn:
        - isbn: x
      - ex:year:
        - year: 2004
  - ex:review:
    - []:
      - a: ex:Review
      - ex:rating:
        - rating: 5
`)

	// The review blank node is seen first, so it gets ?_b1 whatever the
	// declaration order.
	got := whereLines(t, m, Query{Variables: []string{"rating", "isbn", "year"}})
	text := strings.Join(got, "\n")
	assert.Contains(t, text, "ex:review ?_b1 ;")
	assert.Contains(t, text, "ex:edition ?_b2 .")
	assert.Contains(t, text, "?_b2 a ex:Edition ;\n        ex:isbn ?isbn ;\n        ex:year ?year .")
	assert.NotContains(t, text, "?_b3")
}

func TestWhereValues(t *testing.T) {
	m := buildModel(t, testutil.ModelYAML)

	q := Query{
		Variables: []string{"name"},
		Parameters: []Parameter{
			{Name: "name", Value: "Alice"},
			{Name: "age", Value: "30"},
			{Name: "homepage", Value: "ex:alice-home"},
			{Name: "mbox", Value: "<mailto:a@example.org>"},
			{Name: "missing", Value: "x"},
		},
	}

	got := whereLines(t, m, q)
	assert.Equal(t, []string{
		"WHERE {",
		`    VALUES ?name { "Alice" }`,
		`    VALUES ?age { "30" }`,
		"    VALUES ?homepage { ex:alice-home }",
		"    VALUES ?mbox { <mailto:a@example.org> }",
		"    VALUES ?missing { x }",
		"    ?Person a foaf:Person ;",
		"        foaf:name ?name .",
		"    OPTIONAL { ?Person foaf:age ?age . }",
		"    OPTIONAL { ?Person foaf:homepage ?homepage . }",
		"    OPTIONAL { ?Person foaf:mbox ?mbox . }",
		"}",
	}, got)

	tmpl := whereLines(t, m, q, WithTemplate())
	assert.Equal(t, `    VALUES ?name { "{{name}}" }`, tmpl[1])
	assert.Equal(t, "    VALUES ?homepage { {{homepage}} }", tmpl[3])
}

func TestWhereTermsIncludeIRIParameters(t *testing.T) {
	m := buildModel(t, testutil.ModelYAML)

	b, err := NewWhereBuilder(m, Query{
		Parameters: []Parameter{{Name: "homepage", Value: "schema:alice"}},
	}, WithTemplate())
	require.NoError(t, err)
	assert.Equal(t, []string{"schema:alice", "foaf:Person", "foaf:homepage"}, b.Terms())
}

func TestWhereSubjectVariableSkipped(t *testing.T) {
	m := buildModel(t, testutil.ModelYAML)

	assert.Equal(t, []string{"WHERE {", "}"}, whereLines(t, m, Query{Variables: []string{"Person", "Book"}}))
}

func TestWhereDeduplicatesRepeatedVariables(t *testing.T) {
	m := buildModel(t, testutil.ModelYAML)

	once := whereLines(t, m, Query{Variables: []string{"rating", "pages"}})
	twice := whereLines(t, m, Query{Variables: []string{"rating", "pages", "rating", "pages"}})
	assert.Equal(t, once, twice)
}

func TestWhereValuesEscapesLiterals(t *testing.T) {
	m := buildModel(t, testutil.ModelYAML)

	got := whereLines(t, m, Query{Parameters: []Parameter{
		{Name: "name", Value: "Al \"the\" \\ice\nline"},
	}})
	assert.Equal(t, `    VALUES ?name { "Al \"the\" \\ice\nline" }`, got[1])
}
