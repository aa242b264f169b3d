package cli

import (
	"github.com/spf13/cobra"

	"github.com/locvowork/employee_directory/internal/tui"
)

// NewTUICommand creates the interactive tui command.
func NewTUICommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse and edit the directory interactively",
		Long: `Browse and edit the directory in a full-screen terminal UI.

Changes live in memory only and are gone when the program exits.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{
				Format:    rootOpts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   rootOpts.Verbose,
			}
			ctx := cmd.Context()

			svc, cfg, err := openDirectory(ctx, rootOpts, formatter)
			if err != nil {
				formatter.Error(ErrCodeGeneric, err.Error(), nil)
				return err
			}

			err = tui.Run(ctx, svc,
				tui.WithSaveDelay(cfg.SAVE_DELAY),
				tui.WithPageSize(cfg.DEFAULT_PAGE_SIZE),
			)
			if err != nil {
				return WrapExitError(ExitFailure, "run tui", err)
			}
			return nil
		},
	}
}
