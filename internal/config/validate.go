package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cueyaml "cuelang.org/go/encoding/yaml"
)

//go:embed schema.cue
var schemaCUE string

// ValidationError is one schema violation found by Validate.
type ValidationError struct {
	File    string `json:"file"`
	Path    string `json:"path,omitempty"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	loc := e.File
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d:%d", e.File, e.Line, e.Column)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", loc, e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s", loc, e.Message)
}

// schemaTarget pairs a document with the CUE definition it must satisfy.
type schemaTarget struct {
	file     string
	def      string
	optional bool
}

var schemaTargets = []schemaTarget{
	{file: PrefixFile, def: "#Prefixes"},
	{file: SparqlFile, def: "#Sparql"},
	{file: EndpointFile, def: "#Endpoint"},
	{file: StanzaFile, def: "#Stanzas", optional: true},
	{file: MetadataFile, def: "#Metadata", optional: true},
}

// Validate checks the structured documents of the directory against the
// embedded CUE schema. It returns every violation found; the error result
// is reserved for failures of the validator itself.
func (c *Config) Validate() ([]ValidationError, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	var problems []ValidationError
	for _, target := range schemaTargets {
		path := c.Path(target.file)
		src, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			if !target.optional {
				problems = append(problems, ValidationError{File: target.file, Message: "file not found"})
			}
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", target.file, err)
		}
		if strings.TrimSpace(string(src)) == "" {
			if !target.optional {
				problems = append(problems, ValidationError{File: target.file, Message: "document is empty"})
			}
			continue
		}

		file, err := cueyaml.Extract(path, src)
		if err != nil {
			problems = append(problems, toValidationErrors(target.file, err)...)
			continue
		}

		doc := ctx.BuildFile(file)
		if err := doc.Err(); err != nil {
			problems = append(problems, toValidationErrors(target.file, err)...)
			continue
		}

		unified := schema.LookupPath(cue.ParsePath(target.def)).Unify(doc)
		if err := unified.Validate(cue.Concrete(true)); err != nil {
			problems = append(problems, toValidationErrors(target.file, err)...)
		}
	}
	return problems, nil
}

// toValidationErrors flattens a CUE error list, keeping the first
// position that points into the validated document.
func toValidationErrors(file string, err error) []ValidationError {
	var out []ValidationError
	for _, e := range cueerrors.Errors(err) {
		ve := ValidationError{
			File:    file,
			Path:    strings.Join(e.Path(), "."),
			Message: cueErrorMessage(e),
		}
		for _, pos := range cueerrors.Positions(e) {
			if strings.HasSuffix(pos.Filename(), file) {
				ve.Line = pos.Line()
				ve.Column = pos.Column()
				break
			}
		}
		out = append(out, ve)
	}
	if len(out) == 0 {
		out = append(out, ValidationError{File: file, Message: err.Error()})
	}
	return out
}

func cueErrorMessage(e cueerrors.Error) string {
	format, args := e.Msg()
	return fmt.Sprintf(format, args...)
}
