package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/locvowork/employee_directory/internal/database"
	"github.com/locvowork/employee_directory/internal/validation"
)

// CheckIssue describes one rejected seed record.
type CheckIssue struct {
	Index   int               `json:"index"`
	ID      int               `json:"id"`
	Fields  map[string]string `json:"fields,omitempty"`
	Message string            `json:"message"`
}

// CheckResult is the JSON payload of the check command.
type CheckResult struct {
	Total    int          `json:"total"`
	Valid    int          `json:"valid"`
	Rejected []CheckIssue `json:"rejected"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	var workers int
	cmd := &cobra.Command{
		Use:   "check <seed-file>",
		Short: "Validate every record of a YAML seed file",
		Long: `Validate every record of a YAML seed file with the same rules the form uses.

Ids must be positive and unique. Exits 1 when any record is rejected.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args[0], workers, cmd)
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel validators (0 means one per CPU)")
	return cmd
}

func runCheck(opts *RootOptions, path string, workers int, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	ctx := cmd.Context()

	records, err := database.FileSource{Path: path}.Load(ctx)
	if err != nil {
		formatter.Error(ErrCodeNotFound, err.Error(), nil)
		return WrapExitError(ExitCommandError, "read seed file", err)
	}
	formatter.VerboseLog("Checking %d records from %s", len(records), path)

	rep, err := database.NewImporter(workers).Import(ctx, records)
	if err != nil {
		formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "check seed file", err)
	}

	res := CheckResult{Total: len(records), Valid: len(rep.Valid), Rejected: []CheckIssue{}}
	for _, rej := range rep.Rejected {
		issue := CheckIssue{Index: rej.Index, ID: rej.Employee.ID, Message: rej.Err.Error()}
		var verrs validation.Errors
		if errors.As(rej.Err, &verrs) {
			issue.Fields = verrs
		}
		res.Rejected = append(res.Rejected, issue)
	}

	if err := formatter.Success(res, func(w io.Writer) {
		for _, issue := range res.Rejected {
			fmt.Fprintf(w, "✗ record %d (id %d): %s\n", issue.Index, issue.ID, issue.Message)
		}
		if len(res.Rejected) == 0 {
			fmt.Fprintf(w, "✓ All %d records valid\n", res.Total)
			return
		}
		fmt.Fprintf(w, "%d of %d records valid\n", res.Valid, res.Total)
	}); err != nil {
		return err
	}

	if len(res.Rejected) > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d records rejected", len(res.Rejected)))
	}
	return nil
}
