package config

import (
	"errors"
	"fmt"
)

// ErrConfigNotFound is matched by every NotFoundError.
var ErrConfigNotFound = errors.New("config not found")

// NotFoundError reports a query or stanza name that is absent from its
// definitions document.
type NotFoundError struct {
	Kind string // "sparql" or "stanza"
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s config found: %s name '%s'", e.Kind, e.Kind, e.Name)
}

// Is makes errors.Is(err, ErrConfigNotFound) succeed.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrConfigNotFound
}

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrConfigNotFound)
}
