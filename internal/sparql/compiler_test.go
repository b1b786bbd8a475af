package sparql

import (
	"context"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tnishi/rdf-config/internal/config"
	"github.com/tnishi/rdf-config/internal/testutil"
)

func newTestCompiler(t *testing.T) *Compiler {
	t.Helper()
	c, err := NewCompiler(config.New(testutil.WriteSampleConfig(t)))
	require.NoError(t, err)
	return c
}

func assertGolden(t *testing.T, name, query string) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(query+"\n"))
}

func TestCompileGolden(t *testing.T) {
	c := newTestCompiler(t)

	for _, name := range []string{"sparql", "person", "book", "formats", "homepage"} {
		t.Run(name, func(t *testing.T) {
			query, err := c.Compile(name)
			require.NoError(t, err)
			assertGolden(t, name, query)
		})
	}
}

func TestCompileTemplateWithPaging(t *testing.T) {
	c := newTestCompiler(t)

	query, err := c.Compile("book", WithTemplate(), WithOffset(20), WithLimit(10))
	require.NoError(t, err)
	assertGolden(t, "book_template_paged", query)
}

func TestCompileDefaultName(t *testing.T) {
	c := newTestCompiler(t)

	byDefault, err := c.Compile("")
	require.NoError(t, err)
	explicit, err := c.Compile(DefaultQueryName)
	require.NoError(t, err)
	assert.Equal(t, explicit, byDefault)
}

func TestCompileIsDeterministic(t *testing.T) {
	c := newTestCompiler(t)

	first, err := c.Compile("formats")
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := c.Compile("formats")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	// A fresh compiler over the same directory agrees as well.
	other := newTestCompiler(t)
	fromOther, err := other.Compile("formats")
	require.NoError(t, err)
	assert.Equal(t, first, fromOther)
}

func TestCompileWithoutLimit(t *testing.T) {
	c := newTestCompiler(t)

	query, err := c.Compile("person", WithoutLimit())
	require.NoError(t, err)
	assert.NotContains(t, query, "LIMIT")
	assert.NotContains(t, query, "OFFSET")
	assert.True(t, len(query) > 0 && query[len(query)-1] == '}')
}

func TestCompileUnknownQuery(t *testing.T) {
	c := newTestCompiler(t)

	_, err := c.Compile("nope")
	require.Error(t, err)
	assert.True(t, config.IsNotFound(err))
	assert.Contains(t, err.Error(), "nope")
}

func TestGenerate(t *testing.T) {
	cfg := config.New(testutil.WriteSampleConfig(t))

	query, err := Generate(cfg, "person")
	require.NoError(t, err)
	assert.Contains(t, query, "SELECT ?name ?age ?mbox")
}

func TestGenerateAll(t *testing.T) {
	cfg := config.New(testutil.WriteSampleConfig(t))

	results, err := GenerateAll(context.Background(), cfg)
	require.NoError(t, err)

	var names []string
	for _, r := range results {
		names = append(names, r.Name)
		single, err := Generate(cfg, r.Name)
		require.NoError(t, err)
		assert.Equal(t, single, r.Query, r.Name)
	}
	assert.Equal(t, []string{"book", "formats", "homepage", "person", "sparql"}, names)
}

func TestGenerateAllCanceled(t *testing.T) {
	cfg := config.New(testutil.WriteSampleConfig(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := GenerateAll(ctx, cfg)
	require.ErrorIs(t, err, context.Canceled)
}

func TestCompilerWithoutEndpointFile(t *testing.T) {
	files := testutil.SampleFiles()
	delete(files, config.EndpointFile)
	c, err := NewCompiler(config.New(testutil.WriteConfigDir(t, files)))
	require.NoError(t, err)

	query, err := c.Compile("person")
	require.NoError(t, err)
	assert.NotContains(t, query, "# Endpoint:")
	assert.Contains(t, query, "# Description: People and contact details")
}

func TestCompilerModelErrors(t *testing.T) {
	files := testutil.SampleFiles()
	files[config.ModelFile] = "Person:\n  - a: foaf:Person\n"

	_, err := NewCompiler(config.New(testutil.WriteConfigDir(t, files)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "build model")
}

func TestCompileMissingType(t *testing.T) {
	files := testutil.SampleFiles()
	files[config.ModelFile] = "- Person:\n  - foaf:name:\n    - name: Alice\n"
	files[config.SparqlFile] = "sparql:\n  variables: [name]\n"

	c, err := NewCompiler(config.New(testutil.WriteConfigDir(t, files)))
	require.NoError(t, err)

	_, err = c.Compile("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Person")
}

func TestCompileWithoutComment(t *testing.T) {
	c := newTestCompiler(t)

	query, err := c.Compile("person", WithoutComment())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(query, "PREFIX foaf: <http://xmlns.com/foaf/0.1/>\n\nSELECT ?name ?age ?mbox\nWHERE {"), query)
}
