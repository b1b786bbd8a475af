package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/tnishi/rdf-config/internal/endpoint"
	"github.com/tnishi/rdf-config/internal/sparql"
	"github.com/tnishi/rdf-config/internal/store"
)

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	*RootOptions
	Endpoint string
	DBPath   string
	Timeout  time.Duration
	Offset   int
	Limit    int
}

// QueryOutput is the result of one endpoint run.
type QueryOutput struct {
	Name     string     `json:"name"`
	Endpoint string     `json:"endpoint"`
	RunID    string     `json:"run_id,omitempty"`
	Vars     []string   `json:"vars"`
	Rows     [][]string `json:"rows"`
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query [name]",
		Short: "Run a generated query against the SPARQL endpoint",
		Long: `Generate the query [name] and send it to the first endpoint of
endpoint.yaml (or --endpoint). With --db the run is appended to the
history database.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return runQuery(opts, name, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Endpoint, "endpoint", "", "endpoint URL (default: first entry of endpoint.yaml)")
	cmd.Flags().StringVar(&opts.DBPath, "db", "", "history database path")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 60*time.Second, "request timeout")
	cmd.Flags().IntVar(&opts.Offset, "offset", 0, "OFFSET of the generated query")
	cmd.Flags().IntVar(&opts.Limit, "limit", sparql.DefaultLimit, "LIMIT of the generated query")

	return cmd
}

func runQuery(opts *QueryOptions, name string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	logger := opts.logger(cmd)

	cfg, err := opts.loadConfig()
	if err != nil {
		return formatter.Fail(err)
	}
	c, err := sparql.NewCompiler(cfg)
	if err != nil {
		return formatter.Fail(err)
	}
	q, err := c.Query(name)
	if err != nil {
		return formatter.Fail(err)
	}

	compileOpts := []sparql.Option{sparql.WithLimit(opts.Limit)}
	if opts.Offset > 0 {
		compileOpts = append(compileOpts, sparql.WithOffset(opts.Offset))
	}
	text, err := c.CompileQuery(q, compileOpts...)
	if err != nil {
		return formatter.Fail(err)
	}

	url := opts.Endpoint
	if url == "" && len(q.Endpoints) > 0 {
		url = q.Endpoints[0]
	}
	if url == "" {
		return formatter.Fail(&CommandError{Code: ErrCodeEndpoint, Message: "no endpoint configured: add endpoint.yaml or pass --endpoint"})
	}

	var history *store.Store
	if opts.DBPath != "" {
		history, err = store.Open(opts.DBPath)
		if err != nil {
			return formatter.Fail(&CommandError{Code: ErrCodeStore, Message: err.Error()})
		}
		defer history.Close()
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.Timeout)
	defer cancel()

	client := endpoint.NewClient(endpoint.WithLogger(logger))
	res, runErr := client.Run(ctx, url, text)

	out := QueryOutput{Name: q.Name, Endpoint: url, Vars: []string{}, Rows: [][]string{}}
	if runErr == nil {
		out.Vars = res.Vars()
		out.Rows = res.Rows()
	}

	if history != nil {
		run := store.Run{QueryName: q.Name, Query: text, Endpoint: url, Status: store.StatusOK}
		if runErr != nil {
			run.Status = store.StatusError
			run.Error = runErr.Error()
		} else {
			run.RowCount = res.Len()
			run.Result = res.Raw
		}
		// Use a fresh context so a timed-out request is still recorded.
		recorded, err := history.RecordRun(context.WithoutCancel(cmd.Context()), run)
		if err != nil {
			return formatter.Fail(&CommandError{Code: ErrCodeStore, Message: err.Error()})
		}
		out.RunID = recorded.ID
		logger.Info("recorded run", "id", recorded.ID, "seq", recorded.Seq, "query", q.Name)
	}

	if runErr != nil {
		_ = formatter.Error(ErrCodeEndpoint, runErr.Error(), nil)
		return WrapExitError(ExitFailure, ErrCodeEndpoint, runErr)
	}

	formatter.VerboseLog("%d row(s) from %s", len(out.Rows), url)
	if formatter.Format == "json" {
		return formatter.Success(out)
	}
	writeTable(formatter, out.Vars, out.Rows)
	return nil
}

// writeTable prints a header row and tab-aligned result rows.
func writeTable(f *OutputFormatter, header []string, rows [][]string) {
	tw := tabwriter.NewWriter(f.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}
