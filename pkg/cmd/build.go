package cmd

import (
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the Tauri application",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		target, _ := cmd.Flags().GetString("target")
		return newProject().Build(cmd.Context(), target)
	},
}

var devCmd = &cobra.Command{
	Use:   "dev",
	Short: "Run Tauri in development mode",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return newProject().Dev(cmd.Context())
	},
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Build the application installers and bundles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return newProject().Install(cmd.Context())
	},
}

var installSystemCmd = &cobra.Command{
	Use:   "install-system",
	Short: "Install the release binary and man page system-wide (uses sudo)",
	Long: `Builds the release binary and installs it to <prefix>/bin and its man page to
<prefix>/share/man/man1 with install(1). The prefix defaults to /usr/local and
can be changed with "prefix" in xtask.yaml.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return newProject().InstallSystem(cmd.Context())
	},
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Full build pipeline (check, fmt, lint, build)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		target, _ := cmd.Flags().GetString("target")
		return newProject().All(cmd.Context(), target)
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(devCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(installSystemCmd)
	rootCmd.AddCommand(allCmd)

	buildCmd.Flags().String("target", "", "Build target triple (e.g. x86_64-unknown-linux-gnu, aarch64-apple-darwin)")
	allCmd.Flags().String("target", "", "Build target triple")
}
