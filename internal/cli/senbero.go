package cli

import (
	"bytes"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/tnishi/rdf-config/internal/model"
	"github.com/tnishi/rdf-config/internal/senbero"
)

// SenberoOptions holds flags for the senbero command.
type SenberoOptions struct {
	*RootOptions
	NoColor bool
}

// NewSenberoCommand creates the senbero command.
func NewSenberoCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SenberoOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "senbero",
		Short: "Print the model as an indented subject/predicate/object tree",
		Long: `Print the data model as a tree of subjects, predicates and objects.

Output is colored when writing to a terminal unless --no-color is set.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSenbero(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.NoColor, "no-color", false, "disable colored output")

	return cmd
}

func runSenbero(opts *SenberoOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	m, err := opts.buildModel()
	if err != nil {
		return formatter.Fail(err)
	}

	useColor := !opts.NoColor && formatter.Format == "text" && isTerminal(formatter.Writer)
	r := senbero.New(senbero.WithColor(useColor))

	if formatter.Format == "json" {
		var buf bytes.Buffer
		if err := r.Render(&buf, m); err != nil {
			return formatter.Fail(err)
		}
		return formatter.Success(map[string]string{"tree": buf.String()})
	}
	if err := r.Render(formatter.Writer, m); err != nil {
		return formatter.Fail(err)
	}
	return nil
}

// buildModel loads the configuration and builds its model.
func (o *RootOptions) buildModel() (*model.Model, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	prefixes, err := cfg.Prefixes()
	if err != nil {
		return nil, err
	}
	doc, err := cfg.Model()
	if err != nil {
		return nil, err
	}
	return model.Build(doc, prefixes)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
