package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/locvowork/employee_directory/internal/controller"
)

// ExportResult is the JSON payload of the export command.
type ExportResult struct {
	Path     string `json:"path"`
	Exported int    `json:"exported"`
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	q := &queryFlags{}
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every matching employee to an xlsx workbook",
		Long: `Write every employee matching the query to an xlsx workbook.

Pagination does not apply; the layout comes from EXPORT_CONFIG_PATH when set.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(rootOpts, q, out, cmd)
		},
	}
	q.bind(cmd, false)
	cmd.Flags().StringVarP(&out, "out", "o", "employees.xlsx", "output file")
	return cmd
}

func runExport(opts *RootOptions, q *queryFlags, out string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	ctx := cmd.Context()

	svc, _, err := openDirectory(ctx, opts, formatter)
	if err != nil {
		formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return err
	}

	c := controller.New(svc)
	if err := q.apply(c); err != nil {
		formatter.Error(ErrCodeInvalid, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid query", err)
	}
	p := c.Params()

	exporter, n, err := svc.PrepareExport(ctx, p)
	if err != nil {
		formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "export", err)
	}

	f, err := os.Create(out)
	if err != nil {
		formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "create output", err)
	}
	if err := exporter.ToWriter(f); err != nil {
		f.Close()
		formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "export", err)
	}
	if err := f.Close(); err != nil {
		return WrapExitError(ExitCommandError, "close output", err)
	}

	res := ExportResult{Path: out, Exported: n}
	return formatter.Success(res, func(w io.Writer) {
		fmt.Fprintf(w, "Exported %d employees to %s\n", res.Exported, res.Path)
	})
}
