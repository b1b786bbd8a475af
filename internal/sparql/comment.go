package sparql

import "fmt"

// CommentBuilder renders the header comment of a query.
type CommentBuilder struct {
	endpoints   []string
	description string
	parameters  []Parameter
}

// NewCommentBuilder returns a CommentBuilder for q.
func NewCommentBuilder(q Query) *CommentBuilder {
	return &CommentBuilder{
		endpoints:   q.Endpoints,
		description: q.Description,
		parameters:  q.Parameters,
	}
}

// Build implements LineBuilder.
func (b *CommentBuilder) Build() []string {
	var lines []string
	for i, ep := range b.endpoints {
		if i == 0 {
			lines = append(lines, "# Endpoint: "+ep)
		} else {
			lines = append(lines, "#           "+ep)
		}
	}

	lines = append(lines, "# Description: "+b.description)

	for i, p := range b.parameters {
		lead := "#            "
		if i == 0 {
			lead = "# Parameter: "
		}
		lines = append(lines, fmt.Sprintf("%s%s: (example: %s)", lead, p.Name, p.Value))
	}
	return append(lines, "")
}
