package model

import "strings"

// Triple links a named Subject, through a path of one or more
// Predicates, to a terminal Object.
type Triple struct {
	subject    *Subject
	predicates []*Predicate
	blanks     []*Subject
	object     Object
	ref        *Subject
}

// Subject returns the named ancestor the path starts from.
func (t *Triple) Subject() *Subject { return t.subject }

// Predicates returns the path from Subject to Object.
func (t *Triple) Predicates() []*Predicate {
	out := make([]*Predicate, len(t.predicates))
	copy(out, t.predicates)
	return out
}

// Predicate returns the last predicate of the path.
func (t *Triple) Predicate() *Predicate { return t.predicates[len(t.predicates)-1] }

// BlankNodes returns the anonymous subjects crossed by the path; entry i
// sits between predicate i and predicate i+1.
func (t *Triple) BlankNodes() []*Subject {
	out := make([]*Subject, len(t.blanks))
	copy(out, t.blanks)
	return out
}

// Object returns the terminal object.
func (t *Triple) Object() Object { return t.object }

// Ref returns the top-level Subject named by the object value, or nil.
func (t *Triple) Ref() *Subject { return t.ref }

// IsMultiHop reports whether the path crosses at least one blank node.
func (t *Triple) IsMultiHop() bool { return len(t.predicates) > 1 }

// PropertyPath joins the predicate URIs with "/".
func (t *Triple) PropertyPath() string {
	return strings.Join(t.pathURIs(len(t.predicates)), "/")
}

// IsOptional reports whether the last predicate may be absent, which
// governs the whole path.
func (t *Triple) IsOptional() bool { return t.Predicate().IsOptional() }

func (t *Triple) pathURIs(n int) []string {
	uris := make([]string, n)
	for i := 0; i < n; i++ {
		uris[i] = t.predicates[i].uri
	}
	return uris
}

// hasPrefix reports whether the first len(prefix) predicate URIs of t
// match prefix.
func (t *Triple) hasPrefix(prefix []string) bool {
	if len(t.predicates) < len(prefix) {
		return false
	}
	for i, uri := range prefix {
		if t.predicates[i].uri != uri {
			return false
		}
	}
	return true
}
