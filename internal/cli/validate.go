package cli

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/careworks/cincensus/internal/report"
	"github.com/careworks/cincensus/internal/rules"
	"github.com/careworks/cincensus/internal/shred"
	"github.com/careworks/cincensus/internal/xmldoc"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "validate <return.xml>",
		Short: "Run the validation battery against a return",
		Long: `Shred a CIN census return into its snapshot and run the full rule
battery against it.

Exit code 1 means the return carries at least one error-severity finding;
query-severity findings alone exit 0.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], dbPath, cmd)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "also write findings to a SQLite database")
	return cmd
}

func runValidate(opts *RootOptions, path, dbPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		formatter.Error(ErrCodeBadConfig, err.Error(), nil)
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		formatter.Error(ErrCodeNotFound, err.Error(), nil)
		return &ExitError{Code: ExitCommandError, Message: "reading return", Err: err}
	}

	snap, err := shred.Shred(data)
	if err != nil {
		var parseErr *xmldoc.ParseError
		if errors.As(err, &parseErr) {
			formatter.Error(ErrCodeParseFailed, parseErr.Error(), nil)
			return &ExitError{Code: ExitCommandError, Message: "return does not parse", Err: err}
		}
		formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return err
	}
	slog.Debug("snapshot built",
		"children", len(snap.Children),
		"episodes", len(snap.Episodes),
		"assessments", len(snap.Assessments))

	violations := rules.Evaluate(snap, cfg.Window(), cfg.RuleThresholds())
	rep := report.Build(violations)
	slog.Info("validation complete", "errors", rep.Errors, "queries", rep.Queries)

	if dbPath != "" {
		if err := rep.WriteSQLite(dbPath); err != nil {
			formatter.Error(ErrCodeWriteFailed, err.Error(), nil)
			return &ExitError{Code: ExitCommandError, Message: "writing findings database", Err: err}
		}
		formatter.VerboseLog("findings written to %s", dbPath)
	}

	if wrote, err := formatter.JSON(rep); wrote || err != nil {
		if err != nil {
			return err
		}
	} else if err := rep.WriteText(formatter.Writer); err != nil {
		return err
	}

	if rep.Errors > 0 {
		return &ExitError{Code: ExitFailure, Message: "return has validation errors"}
	}
	return nil
}
