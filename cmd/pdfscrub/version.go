package pdfscrub

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/redactyl/pdfscrub/internal/update"
)

var flagVersionCheck bool

func init() {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the pdfscrub version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			current := buildVersion()
			fmt.Fprintf(cmd.OutOrStdout(), "pdfscrub %s\n", current)
			if !flagVersionCheck {
				return nil
			}
			latest, newer, err := update.Check(current)
			if err != nil {
				return fmt.Errorf("version check: %w", err)
			}
			if newer {
				fmt.Fprintf(cmd.OutOrStdout(), "A newer release is available: %s\n", latest)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&flagVersionCheck, "check", false, "look up the latest release online")
	rootCmd.AddCommand(cmd)
}

// buildVersion prefers the module version stamped by `go install`.
func buildVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return version
}
