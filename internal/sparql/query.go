package sparql

import "github.com/tnishi/rdf-config/internal/config"

// DefaultQueryName is compiled when no name is given.
const DefaultQueryName = "sparql"

// Parameter is a pre-bound query variable with its example value.
type Parameter struct {
	Name  string
	Value string
}

// Query is a resolved query definition.
type Query struct {
	Name        string
	Description string
	Variables   []string
	Parameters  []Parameter
	Endpoints   []string
}

// QueryFromDef converts a sparql.yaml entry, keeping parameter order.
func QueryFromDef(name string, def config.QueryDef, endpoints []string) Query {
	q := Query{
		Name:        name,
		Description: def.Description,
		Variables:   append([]string(nil), def.Variables...),
		Endpoints:   append([]string(nil), endpoints...),
	}
	for _, key := range def.Parameters.Keys() {
		v, _ := def.Parameters.Get(key)
		q.Parameters = append(q.Parameters, Parameter{Name: key, Value: v})
	}
	return q
}

// LineBuilder produces one section of a query.
type LineBuilder interface {
	Build() []string
}
