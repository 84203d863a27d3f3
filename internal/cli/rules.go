package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/careworks/cincensus/internal/rules"
)

// NewRulesCommand creates the rules command.
func NewRulesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "rules",
		Short:         "List the validation battery",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRules(rootOpts, cmd)
		},
	}
	return cmd
}

// ruleInfo is the JSON shape of one battery entry.
type ruleInfo struct {
	Code     string         `json:"code"`
	Level    rules.Level    `json:"level"`
	Severity rules.Severity `json:"severity"`
	Message  string         `json:"message"`
}

func runRules(opts *RootOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	battery := rules.Registry()
	infos := make([]ruleInfo, len(battery))
	for i, r := range battery {
		infos[i] = ruleInfo{Code: r.Code, Level: r.Level, Severity: r.Severity, Message: r.Message}
	}

	if wrote, err := formatter.JSON(infos); wrote || err != nil {
		return err
	}

	w := tabwriter.NewWriter(formatter.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tLEVEL\tSEVERITY\tMESSAGE")
	for _, info := range infos {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", info.Code, info.Level, info.Severity, info.Message)
	}
	return w.Flush()
}
