package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/careworks/cincensus/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	Year       int
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the cincensus CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "cincensus",
		Short: "CIN census return validation and export",
		Long:  "Shreds a CIN census XML return into a normalized snapshot, runs the validation battery against it, and rebuilds schema-faithful output.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			configureLogging(opts.Verbose)
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "run configuration file (YAML)")
	cmd.PersistentFlags().IntVar(&opts.Year, "year", 2022, "census year when no config file is given")

	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewRoundtripCommand(opts))
	cmd.AddCommand(NewRulesCommand(opts))

	return cmd
}

// configureLogging routes slog to stderr so command output stays clean.
func configureLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// loadConfig resolves the run configuration from the flags.
func loadConfig(opts *RootOptions) (*config.Config, error) {
	if opts.ConfigPath == "" {
		return config.Default(opts.Year), nil
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, &ExitError{Code: ExitCommandError, Message: "loading configuration", Err: err}
	}
	return cfg, nil
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
