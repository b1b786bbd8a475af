package sparql

import "strings"

// SelectBuilder renders the SELECT line. Variables keep caller order and
// are not deduplicated.
type SelectBuilder struct {
	variables []string
}

// NewSelectBuilder returns a SelectBuilder for variables.
func NewSelectBuilder(variables []string) *SelectBuilder {
	return &SelectBuilder{variables: variables}
}

// Build implements LineBuilder.
func (b *SelectBuilder) Build() []string {
	var sb strings.Builder
	sb.WriteString("SELECT")
	for _, v := range b.variables {
		sb.WriteString(" ?")
		sb.WriteString(v)
	}
	return []string{sb.String()}
}
