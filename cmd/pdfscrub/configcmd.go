package pdfscrub

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/redactyl/pdfscrub/internal/config"
)

var (
	cfgOutput        string
	cfgInclude       string
	cfgExclude       string
	cfgLogsDir       string
	cfgSortPaths     bool
	cfgAtomicReplace bool
	cfgForce         bool
)

func init() {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}
	rootCmd.AddCommand(cfgCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a .pdfscrub.yml with the given options",
		Args:  cobra.NoArgs,
		RunE:  runConfigInit,
	}
	cfgCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&cfgOutput, "output", ".pdfscrub.yml", "output file path")
	initCmd.Flags().StringVar(&cfgInclude, "include", "", "comma-separated include globs")
	initCmd.Flags().StringVar(&cfgExclude, "exclude", "", "comma-separated exclude globs")
	initCmd.Flags().StringVar(&cfgLogsDir, "logs", "", "logs directory")
	initCmd.Flags().BoolVar(&cfgSortPaths, "sort", true, "process files in sorted order")
	initCmd.Flags().BoolVar(&cfgAtomicReplace, "atomic-replace", false, "rename over the original instead of delete-then-rename")
	initCmd.Flags().BoolVar(&cfgForce, "force", false, "overwrite an existing file")
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	if _, err := os.Stat(cfgOutput); err == nil && !cfgForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", cfgOutput)
	}
	level := "warn"
	fc := config.FileConfig{
		Include:       optStrPtr(cfgInclude),
		Exclude:       optStrPtr(cfgExclude),
		LogsDir:       optStrPtr(cfgLogsDir),
		SortPaths:     boolPtr(cfgSortPaths),
		AtomicReplace: boolPtr(cfgAtomicReplace),
		LogLevel:      &level,
	}

	b, err := yaml.Marshal(&fc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfgOutput, b, 0644); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Wrote", cfgOutput)
	return nil
}

func optStrPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
func boolPtr(v bool) *bool { return &v }
