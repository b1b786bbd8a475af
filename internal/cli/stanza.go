package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tnishi/rdf-config/internal/sparql"
	"github.com/tnishi/rdf-config/internal/stanza"
)

// StanzaOptions holds flags for the stanza command.
type StanzaOptions struct {
	*RootOptions
	KeyPrefix   string
	ValueSuffix string
}

// NewStanzaCommand creates the stanza command.
func NewStanzaCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StanzaOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "stanza [name]",
		Short: "Generate stanza scaffolding from stanza.yaml",
		Long: `Write metadata.json, stanza.html and query.rq for the stanza [name]
(default "stanza") into <output_dir>/<name>.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return runStanza(opts, name, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.KeyPrefix, "key-prefix", stanza.DefaultKeyPrefix, "prefix of metadata.json keys")
	cmd.Flags().StringVar(&opts.ValueSuffix, "value-suffix", "", "suffix of template variable references")

	return cmd
}

func runStanza(opts *StanzaOptions, name string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	cfg, err := opts.loadConfig()
	if err != nil {
		return formatter.Fail(err)
	}
	c, err := sparql.NewCompiler(cfg)
	if err != nil {
		return formatter.Fail(err)
	}

	g := stanza.NewGenerator(cfg, c,
		stanza.WithKeyPrefix(opts.KeyPrefix),
		stanza.WithValueSuffix(opts.ValueSuffix),
		stanza.WithLogger(opts.logger(cmd)),
	)
	res, err := g.Generate(name)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Format == "json" {
		return formatter.Success(res)
	}
	fmt.Fprintf(formatter.Writer, "✓ Generated stanza %s in %s\n", res.Name, res.Dir)
	for _, f := range res.Files {
		fmt.Fprintf(formatter.Writer, "  %s\n", f)
	}
	return nil
}
