package pdfscrub

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/redactyl/pdfscrub/internal/report"
)

func init() {
	cmd := &cobra.Command{
		Use:   "summarize <report.csv> [summary.txt]",
		Short: "Recompute the summary of an existing report",
		Long:  "Reads a processing report CSV and prints its summary. When a second path is given the summary is also written there.",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runSummarize,
	}
	rootCmd.AddCommand(cmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	var (
		d   report.Digest
		err error
	)
	if len(args) == 2 {
		d, err = report.WriteSummary(args[0], args[1])
	} else {
		d, err = report.Summarize(args[0])
	}
	if err != nil && !errors.Is(err, report.ErrNoData) {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), d.String())
	if len(args) == 2 {
		fmt.Fprintf(cmd.ErrOrStderr(), "Summary log saved at %s\n", args[1])
	}
	return nil
}
