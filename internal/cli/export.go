package cli

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/tnishi/rdf-config/internal/export"
	"github.com/tnishi/rdf-config/internal/model"
)

// ExportSyntaxes lists the supported --syntax values.
var ExportSyntaxes = []string{"nquads", "jsonld"}

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Output string
	Syntax string
}

// ExportSummary describes a written export file.
type ExportSummary struct {
	Path   string `json:"path"`
	Syntax string `json:"syntax"`
	Quads  int    `json:"quads"`
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the model's example data as RDF",
		Long: `Serialize the example values of model.yaml as RDF, either N-Quads
or compacted JSON-LD using the prefixes of prefix.yaml.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path (default: stdout)")
	cmd.Flags().StringVar(&opts.Syntax, "syntax", "nquads", "RDF syntax (nquads|jsonld)")

	return cmd
}

func runExport(opts *ExportOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	if !slices.Contains(ExportSyntaxes, opts.Syntax) {
		return formatter.Fail(&CommandError{Code: ErrCodeGeneric, Message: fmt.Sprintf("invalid syntax %q: must be one of %v", opts.Syntax, ExportSyntaxes)})
	}

	m, err := opts.buildModel()
	if err != nil {
		return formatter.Fail(err)
	}

	if opts.Output == "" {
		if err := writeExport(formatter.Writer, opts.Syntax, m); err != nil {
			return formatter.Fail(err)
		}
		return nil
	}

	f, err := os.Create(opts.Output)
	if err != nil {
		return formatter.Fail(&CommandError{Code: ErrCodeWriteFailed, Message: fmt.Sprintf("writing output file: %v", err)})
	}
	if err := writeExport(f, opts.Syntax, m); err != nil {
		f.Close()
		return formatter.Fail(err)
	}
	if err := f.Close(); err != nil {
		return formatter.Fail(&CommandError{Code: ErrCodeWriteFailed, Message: fmt.Sprintf("writing output file: %v", err)})
	}

	summary := ExportSummary{Path: opts.Output, Syntax: opts.Syntax, Quads: len(export.Quads(m))}
	if formatter.Format == "json" {
		return formatter.Success(summary)
	}
	fmt.Fprintf(formatter.Writer, "✓ Wrote %d quad(s) to %s\n", summary.Quads, summary.Path)
	return nil
}

func writeExport(w io.Writer, syntax string, m *model.Model) error {
	if syntax == "jsonld" {
		return export.WriteJSONLD(w, m)
	}
	return export.WriteNQuads(w, m)
}
