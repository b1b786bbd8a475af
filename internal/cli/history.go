package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tnishi/rdf-config/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	DBPath string
	Query  string
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "history",
		Short:         "List recorded query runs",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "", "history database path (required)")
	cmd.Flags().StringVar(&opts.Query, "query", "", "only list runs of this query")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	history, err := store.Open(opts.DBPath)
	if err != nil {
		return formatter.Fail(&CommandError{Code: ErrCodeStore, Message: err.Error()})
	}
	defer history.Close()

	runs, err := history.ListRuns(cmd.Context(), opts.Query)
	if err != nil {
		return formatter.Fail(&CommandError{Code: ErrCodeStore, Message: err.Error()})
	}

	if formatter.Format == "json" {
		return formatter.Success(runs)
	}
	if len(runs) == 0 {
		fmt.Fprintln(formatter.Writer, "No runs recorded")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			strconv.FormatInt(r.Seq, 10),
			r.ID,
			r.QueryName,
			string(r.Status),
			strconv.Itoa(r.RowCount),
			r.Endpoint,
		})
	}
	writeTable(formatter, []string{"SEQ", "ID", "QUERY", "STATUS", "ROWS", "ENDPOINT"}, rows)
	return nil
}
