package pdfscrub

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/redactyl/pdfscrub/internal/audit"
	"github.com/redactyl/pdfscrub/internal/config"
	"github.com/redactyl/pdfscrub/internal/report"
)

var flagHistoryLimit int

func init() {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previous runs from the audit log",
		Args:  cobra.NoArgs,
		RunE:  runHistory,
	}
	cmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20, "show at most N runs (0 = all)")
	rootCmd.AddCommand(cmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	logsDir := s.LogsDir
	if logsDir == "" {
		if logsDir, err = config.DefaultLogsDir(); err != nil {
			return err
		}
	}
	run := config.Run{LogsDir: logsDir}
	runs, err := audit.NewAuditLog(run.AuditPath()).LoadHistory()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if flagHistoryLimit > 0 && len(runs) > flagHistoryLimit {
		runs = runs[:flagHistoryLimit]
	}
	return report.PrintHistory(cmd.OutOrStdout(), runs)
}
