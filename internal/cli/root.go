package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/locvowork/employee_directory/internal/bootstrap"
	"github.com/locvowork/employee_directory/internal/config"
	"github.com/locvowork/employee_directory/internal/logger"
	"github.com/locvowork/employee_directory/internal/service"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	SeedFile string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the directory CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "directory",
		Short: "Employee directory",
		Long:  "Browse, search and export an in-memory employee directory.",

		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.SeedFile, "seed-file", "", "YAML seed file (overrides SEED_SOURCE)")

	// Add subcommands
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewTUICommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// loadConfig reads the environment and applies the global flags on top.
func loadConfig(opts *RootOptions) (*config.EnvConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if opts.SeedFile != "" {
		cfg.SEED_SOURCE = config.SeedFile
		cfg.SEED_FILE = opts.SeedFile
	}
	// Command output owns stdout; logs only go to the configured file.
	logger.InitLogging(logger.Options{FilePath: cfg.LOG_FILE_PATH, Level: cfg.LOG_LEVEL})
	return cfg, nil
}

// openDirectory loads the seed into a fresh directory.
func openDirectory(ctx context.Context, opts *RootOptions, f *OutputFormatter) (*service.EmployeeService, *config.EnvConfig, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "load config", err)
	}
	f.VerboseLog("Loading %s seed", seedLabel(cfg))

	svc, err := bootstrap.NewDirectory(ctx, cfg, nil)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "load directory", err)
	}
	f.VerboseLog("Loaded %d employees", svc.Count(ctx))
	return svc, cfg, nil
}

func seedLabel(cfg *config.EnvConfig) string {
	if cfg.SEED_SOURCE == config.SeedFile {
		return cfg.SEED_FILE
	}
	if cfg.SEED_SOURCE == "" {
		return config.SeedEmbedded
	}
	return cfg.SEED_SOURCE
}
