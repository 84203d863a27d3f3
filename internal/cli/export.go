package cli

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/careworks/cincensus/internal/rebuild"
	"github.com/careworks/cincensus/internal/shred"
	"github.com/careworks/cincensus/internal/xmldoc"
)

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export <return.xml>",
		Short: "Shred a return and rebuild it from the snapshot",
		Long: `Shred a return into its snapshot and render the snapshot back out
with the schema's ordering and presence conventions. For an unmodified
snapshot the output re-shreds to an identical snapshot.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(rootOpts, args[0], outPath, cmd)
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (defaults to stdout)")
	return cmd
}

func runExport(opts *RootOptions, path, outPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
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

	tree, err := rebuild.Render(snap)
	if err != nil {
		var ambig *rebuild.AmbiguityError
		if errors.As(err, &ambig) {
			formatter.Error(ErrCodeRenderAmbig, ambig.Error(), nil)
			return &ExitError{Code: ExitCommandError, Message: "snapshot is ambiguous", Err: err}
		}
		formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return err
	}
	out := tree.Marshal()

	if outPath == "" {
		_, err := formatter.Writer.Write(out)
		return err
	}
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		formatter.Error(ErrCodeWriteFailed, err.Error(), nil)
		return &ExitError{Code: ExitCommandError, Message: "writing export", Err: err}
	}
	slog.Info("export written", "path", outPath, "bytes", len(out))
	return nil
}
