package cmd

import (
	"os"

	"github.com/sbom-observer/xtask/pkg/execx"
	"github.com/sbom-observer/xtask/pkg/log"
	"github.com/sbom-observer/xtask/pkg/setup"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Install the native libraries needed to build the application",
	Long: `Detects the operating system (and on Linux the distribution family) and
installs the WebKitGTK, OpenSSL and related development packages with the
system package manager (apt-get, dnf, pacman or brew). On Linux the
appimagetool packaging helper is also installed into ~/.local/bin.

On Windows and unrecognised Linux distributions manual instructions are
printed instead.`,
	Example: `xtask setup --dry-run`,
	Args:    cobra.NoArgs,
	RunE:    RunSetupCommand,
}

func init() {
	rootCmd.AddCommand(setupCmd)

	setupCmd.Flags().Bool("dry-run", false, "Print the commands that would run without running them")
	setupCmd.Flags().Bool("skip-tool", false, "Do not install the AppImage packaging helper")
}

func newResolver() (*setup.Resolver, error) {
	tool, err := setup.ToolFromConfig(projectConfig.Tool)
	if err != nil {
		return nil, err
	}

	return setup.NewResolver(execx.NewOSRunner(), tool), nil
}

func RunSetupCommand(cmd *cobra.Command, args []string) error {
	resolver, err := newResolver()
	if err != nil {
		return err
	}

	resolver.SkipTool, _ = cmd.Flags().GetBool("skip-tool")

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		return resolver.RenderDryRun(cmd.OutOrStdout(), log.IsTerminal(os.Stdout))
	}

	return resolver.ResolveAndInstall(cmd.Context())
}
