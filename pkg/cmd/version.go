package cmd

import (
	"fmt"

	"github.com/sbom-observer/xtask/pkg/types"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "xtask %s (commit %s, built %s)\n", types.Version, types.Commit, types.Date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
