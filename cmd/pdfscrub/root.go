package pdfscrub

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/redactyl/pdfscrub/internal/pdf"
)

var (
	flagConfig        string
	flagLogsDir       string
	flagInclude       string
	flagExclude       string
	flagSort          bool
	flagAtomicReplace bool
	flagNoProgress    bool
	flagNoColor       bool
	flagTable         bool
	flagJSON          bool
	flagLogLevel      string

	version = "0.1.0"
)

// newOpener builds the PDF backend for a run. Tests swap it for a fake.
var newOpener = func() pdf.Opener { return pdf.NewPDFCPU() }

// rootCmd is the base Cobra command for the pdfscrub CLI.
var rootCmd = &cobra.Command{
	Use:   "pdfscrub <dirty_directory> <clean_directory>",
	Short: "Redact the header band of every PDF in a directory",
	Long: "pdfscrub walks a directory for PDFs, paints over the top 50 points of every page,\n" +
		"drops pages that cannot be redacted, and moves the results into a clean directory.\n" +
		"A CSV report and a summary are written to the logs directory.",
	Args:          cobra.ExactArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runClean,
}

// Execute runs the pdfscrub CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: ./.pdfscrub.yml or $XDG_CONFIG_HOME/pdfscrub/config.yml)")
	rootCmd.PersistentFlags().StringVar(&flagLogsDir, "logs-dir", "", "directory for reports and the audit log (default: ~/h2ogpt_rg/logs)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "log level: debug|info|warn|error")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")

	rootCmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated globs of PDFs to include (relative to the source)")
	rootCmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated globs of PDFs to skip")
	rootCmd.Flags().BoolVar(&flagSort, "sort", false, "process files in sorted path order")
	rootCmd.Flags().BoolVar(&flagAtomicReplace, "atomic-replace", false, "rename the cleaned file over the original instead of delete-then-rename")
	rootCmd.Flags().BoolVar(&flagNoProgress, "no-progress", false, "disable the progress display")
	rootCmd.Flags().BoolVar(&flagTable, "table", false, "print a per-file result table")
	rootCmd.Flags().BoolVar(&flagJSON, "json", false, "emit per-file records as JSON on stdout")
}
