package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tnishi/rdf-config/internal/sparql"
)

// SparqlOptions holds flags for the sparql command.
type SparqlOptions struct {
	*RootOptions
	All       bool
	Offset    int
	Limit     int
	NoLimit   bool
	Template  bool
	NoComment bool
}

// NewSparqlCommand creates the sparql command.
func NewSparqlCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SparqlOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sparql [name]",
		Short: "Generate a SPARQL query from sparql.yaml",
		Long: `Generate the SPARQL query defined under [name] in sparql.yaml.

Without a name the query called "sparql" is generated; --all generates
every defined query.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return runSparql(opts, name, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.All, "all", false, "generate every query")
	cmd.Flags().IntVar(&opts.Offset, "offset", 0, "OFFSET of the generated query")
	cmd.Flags().IntVar(&opts.Limit, "limit", sparql.DefaultLimit, "LIMIT of the generated query")
	cmd.Flags().BoolVar(&opts.NoLimit, "no-limit", false, "omit the LIMIT clause")
	cmd.Flags().BoolVar(&opts.Template, "template", false, "render parameters as {{name}} placeholders")
	cmd.Flags().BoolVar(&opts.NoComment, "no-comment", false, "omit the header comment")

	return cmd
}

// compileOptions translates flags into compiler options.
func (o *SparqlOptions) compileOptions() []sparql.Option {
	opts := []sparql.Option{sparql.WithLimit(o.Limit)}
	if o.Offset > 0 {
		opts = append(opts, sparql.WithOffset(o.Offset))
	}
	if o.NoLimit {
		opts = append(opts, sparql.WithoutLimit())
	}
	if o.Template {
		opts = append(opts, sparql.WithTemplate())
	}
	if o.NoComment {
		opts = append(opts, sparql.WithoutComment())
	}
	return opts
}

func runSparql(opts *SparqlOptions, name string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	if opts.All && name != "" {
		return formatter.Fail(&CommandError{Code: ErrCodeGeneric, Message: "--all cannot be combined with a query name"})
	}

	cfg, err := opts.loadConfig()
	if err != nil {
		return formatter.Fail(err)
	}
	c, err := sparql.NewCompiler(cfg)
	if err != nil {
		return formatter.Fail(err)
	}

	if opts.All {
		results, err := c.CompileAll(cmd.Context(), opts.compileOptions()...)
		if err != nil {
			return formatter.Fail(err)
		}
		formatter.VerboseLog("Generated %d queries from %s", len(results), cfg.Dir())
		if formatter.Format == "json" {
			return formatter.Success(results)
		}
		for i, r := range results {
			if i > 0 {
				fmt.Fprintln(formatter.Writer)
			}
			fmt.Fprintln(formatter.Writer, r.Query)
		}
		return nil
	}

	q, err := c.Query(name)
	if err != nil {
		return formatter.Fail(err)
	}
	text, err := c.CompileQuery(q, opts.compileOptions()...)
	if err != nil {
		return formatter.Fail(err)
	}
	if formatter.Format == "json" {
		return formatter.Success(sparql.Result{Name: q.Name, Query: text})
	}
	fmt.Fprintln(formatter.Writer, text)
	return nil
}
