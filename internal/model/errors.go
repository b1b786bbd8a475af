package model

import (
	"errors"
	"fmt"
)

// MissingTypeError reports a named Subject without an `a` or rdf:type
// predicate. It is only returned when the subject's type is requested.
type MissingTypeError struct {
	Subject string
}

// Error implements the error interface.
func (e *MissingTypeError) Error() string {
	return fmt.Sprintf("subject %s has no type: add an 'a' or 'rdf:type' predicate", e.Subject)
}

// IsMissingType returns true if err is a MissingTypeError.
// Uses errors.As to handle wrapped errors.
func IsMissingType(err error) bool {
	var mt *MissingTypeError
	return errors.As(err, &mt)
}

// BuildError represents a model document that cannot be read as a list of
// subject definitions.
type BuildError struct {
	Line    int
	Column  int
	Message string
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("model.yaml:%d:%d: %s", e.Line, e.Column, e.Message)
	}
	return "model.yaml: " + e.Message
}
