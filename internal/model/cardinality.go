package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Cardinality bounds the number of objects a predicate may have.
// A nil bound is absent (unbounded).
type Cardinality struct {
	Min *int
	Max *int
}

// IsOptional reports whether zero occurrences are allowed.
// A nil Cardinality means the predicate carried no suffix and is required.
func (c *Cardinality) IsOptional() bool {
	return c != nil && (c.Min == nil || *c.Min == 0)
}

// String renders the cardinality in {min,max} form.
func (c *Cardinality) String() string {
	if c == nil {
		return ""
	}
	bound := func(p *int) string {
		if p == nil {
			return ""
		}
		return strconv.Itoa(*p)
	}
	if c.Min != nil && c.Max != nil && *c.Min == *c.Max {
		return fmt.Sprintf("{%d}", *c.Min)
	}
	return fmt.Sprintf("{%s,%s}", bound(c.Min), bound(c.Max))
}

func intPtr(v int) *int { return &v }

// parseCardinality strips a trailing ?, *, + or {m,n} marker from a
// predicate label. Labels without a well-formed marker are returned as is.
func parseCardinality(label string) (string, *Cardinality) {
	if len(label) < 2 {
		return label, nil
	}

	switch label[len(label)-1] {
	case '?':
		return label[:len(label)-1], &Cardinality{Min: intPtr(0), Max: intPtr(1)}
	case '*':
		return label[:len(label)-1], &Cardinality{Min: intPtr(0)}
	case '+':
		return label[:len(label)-1], &Cardinality{Min: intPtr(1)}
	case '}':
		return parseRange(label)
	}
	return label, nil
}

func parseRange(label string) (string, *Cardinality) {
	open := strings.LastIndexByte(label, '{')
	if open <= 0 {
		return label, nil
	}
	body := label[open+1 : len(label)-1]

	lo, hi, isRange := strings.Cut(body, ",")
	lower, ok := parseBound(lo)
	if !ok {
		return label, nil
	}
	if !isRange {
		if lower == nil {
			return label, nil
		}
		return label[:open], &Cardinality{Min: lower, Max: intPtr(*lower)}
	}
	upper, ok := parseBound(hi)
	if !ok {
		return label, nil
	}
	return label[:open], &Cardinality{Min: lower, Max: upper}
}

// parseBound parses one side of a range; blank means absent.
func parseBound(s string) (*int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return nil, false
	}
	return &n, true
}
