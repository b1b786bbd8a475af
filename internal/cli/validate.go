package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tnishi/rdf-config/internal/config"
	"github.com/tnishi/rdf-config/internal/sparql"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool                     `json:"valid"`
	Errors []config.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration documents",
		Long: `Check every document of the configuration directory against its
schema, then build the model and generate every query.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	cfg, err := opts.loadConfig()
	if err != nil {
		return formatter.Fail(err)
	}

	problems, err := cfg.Validate()
	if err != nil {
		return formatter.Fail(err)
	}
	if len(problems) == 0 {
		problems = compileProblems(cmd.Context(), cfg)
	}

	if len(problems) == 0 {
		if formatter.Format == "json" {
			return formatter.Success(ValidationResult{Valid: true})
		}
		fmt.Fprintln(formatter.Writer, "✓ Configuration valid")
		return nil
	}
	return outputValidationErrors(formatter, problems)
}

// compileProblems builds the model and every query, reporting failures
// as validation errors against the document they come from.
func compileProblems(ctx context.Context, cfg *config.Config) []config.ValidationError {
	c, err := sparql.NewCompiler(cfg)
	if err != nil {
		return []config.ValidationError{{File: config.ModelFile, Message: err.Error()}}
	}
	if _, err := c.CompileAll(ctx); err != nil {
		return []config.ValidationError{{File: config.SparqlFile, Message: err.Error()}}
	}
	return nil
}

func outputValidationErrors(formatter *OutputFormatter, errs []config.ValidationError) error {
	msg := fmt.Sprintf("validation failed with %d error(s)", len(errs))

	if formatter.Format == "json" {
		if err := formatter.encode(CLIResponse{
			Status: "error",
			Data:   ValidationResult{Valid: false, Errors: errs},
			Error:  &CLIError{Code: ErrCodeInvalid, Message: errs[0].Error()},
		}); err != nil {
			return err
		}
		return NewExitError(ExitFailure, msg)
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, e := range errs {
		fmt.Fprintf(formatter.Writer, "  %s\n", e.Error())
	}
	return NewExitError(ExitFailure, msg)
}
