package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/careworks/cincensus/internal/model"
	"github.com/careworks/cincensus/internal/rebuild"
	"github.com/careworks/cincensus/internal/shred"
)

// NewRoundtripCommand creates the roundtrip command.
func NewRoundtripCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roundtrip <return.xml>",
		Short: "Verify that shred, render, re-shred reproduces the snapshot",
		Long: `Shred a return, render the snapshot back to XML, shred that output
again and compare the two snapshots structurally. Any divergence is listed;
a clean return exits 0.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoundtrip(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runRoundtrip(opts *RootOptions, path string, cmd *cobra.Command) error {
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

	first, err := shred.Shred(data)
	if err != nil {
		formatter.Error(ErrCodeParseFailed, err.Error(), nil)
		return &ExitError{Code: ExitCommandError, Message: "return does not parse", Err: err}
	}
	tree, err := rebuild.Render(first)
	if err != nil {
		formatter.Error(ErrCodeRenderAmbig, err.Error(), nil)
		return &ExitError{Code: ExitCommandError, Message: "snapshot is ambiguous", Err: err}
	}
	second, err := shred.Shred(tree.Marshal())
	if err != nil {
		formatter.Error(ErrCodeParseFailed, "rendered output does not parse", err.Error())
		return &ExitError{Code: ExitFailure, Message: "rendered output does not parse", Err: err}
	}

	divergences := model.Diff(first, second)
	if wrote, err := formatter.JSON(map[string]any{
		"clean":       len(divergences) == 0,
		"divergences": divergences,
	}); wrote || err != nil {
		if err != nil {
			return err
		}
	} else if len(divergences) == 0 {
		fmt.Fprintln(formatter.Writer, "round trip clean")
	} else {
		fmt.Fprintf(formatter.Writer, "round trip diverged (%d):\n", len(divergences))
		for _, d := range divergences {
			fmt.Fprintf(formatter.Writer, "  %s\n", d)
		}
	}

	if len(divergences) > 0 {
		return &ExitError{Code: ExitFailure, Message: "round trip diverged"}
	}
	return nil
}
