package sparql

import (
	"strconv"
	"strings"
)

// Assembler joins line builders into query text.
type Assembler struct {
	builders []LineBuilder
	offset   *int
	limit    *int
}

// NewAssembler returns an Assembler. LIMIT defaults to DefaultLimit and
// OFFSET is unset.
func NewAssembler(opts ...Option) *Assembler {
	o := newOptions(opts)
	return &Assembler{offset: o.offset, limit: o.limit}
}

// Add appends a builder; builders render in the order added.
func (a *Assembler) Add(b LineBuilder) *Assembler {
	a.builders = append(a.builders, b)
	return a
}

// Lines returns every line, trailer included.
func (a *Assembler) Lines() []string {
	var lines []string
	for _, b := range a.builders {
		lines = append(lines, b.Build()...)
	}
	if trailer := a.trailer(); trailer != "" {
		lines = append(lines, trailer)
	}
	return lines
}

// String returns the query text, lines joined with "\n".
func (a *Assembler) String() string {
	return strings.Join(a.Lines(), "\n")
}

func (a *Assembler) trailer() string {
	var parts []string
	if a.offset != nil {
		parts = append(parts, "OFFSET", strconv.Itoa(*a.offset))
	}
	if a.limit != nil {
		parts = append(parts, "LIMIT", strconv.Itoa(*a.limit))
	}
	return strings.Join(parts, " ")
}
