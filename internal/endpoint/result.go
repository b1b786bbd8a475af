package endpoint

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Term is one bound value of a result row.
type Term struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Datatype string `json:"datatype,omitempty"`
	Lang     string `json:"xml:lang,omitempty"`
}

// Result is a decoded application/sparql-results+json document.
type Result struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results struct {
		Bindings []map[string]Term `json:"bindings"`
	} `json:"results"`

	// Raw is the response body as received.
	Raw json.RawMessage `json:"-"`
}

// Vars returns the projected variable names.
func (r *Result) Vars() []string { return r.Head.Vars }

// Bindings returns the result rows.
func (r *Result) Bindings() []map[string]Term { return r.Results.Bindings }

// Len returns the number of rows.
func (r *Result) Len() int { return len(r.Results.Bindings) }

// Rows flattens the bindings into value rows ordered like Vars. Unbound
// variables are empty strings.
func (r *Result) Rows() [][]string {
	rows := make([][]string, 0, r.Len())
	for _, b := range r.Results.Bindings {
		row := make([]string, len(r.Head.Vars))
		for i, v := range r.Head.Vars {
			row[i] = b[v].Value
		}
		rows = append(rows, row)
	}
	return rows
}

// StatusError reports a non-200 response from the endpoint.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("endpoint returned %s", e.Status)
	}
	return fmt.Sprintf("endpoint returned %s: %s", e.Status, e.Body)
}

// IsStatusError returns true if err is a StatusError.
// Uses errors.As to handle wrapped errors.
func IsStatusError(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}
