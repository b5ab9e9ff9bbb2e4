package cmd

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/sbom-observer/xtask/pkg/execx"
	"github.com/sbom-observer/xtask/pkg/log"
	"github.com/sbom-observer/xtask/pkg/platform"
	"github.com/sbom-observer/xtask/pkg/tasks"
	"github.com/sbom-observer/xtask/pkg/types"
	"github.com/spf13/cobra"
)

// populated in PersistentPreRunE
var (
	projectDir    string
	projectConfig types.ProjectConfig
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "xtask",
	Short: "Build automation for the Tauri desktop application",
	Long: `xtask wraps the cargo and Tauri toolchain commands used to check, lint, test,
build and install the application, and installs the native libraries the
build needs on Linux and macOS (xtask setup).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// setup logging
		debug, _ := cmd.Flags().GetBool("debug")
		log.SetDebug(debug)

		projectDir, _ = cmd.Flags().GetString("dir")
		configFilename, _ := cmd.Flags().GetString("config")

		var err error
		projectConfig, err = types.LoadProjectConfig(projectDir, configFilename)
		if err != nil {
			return err
		}
		log.Debug("loaded config", "dir", projectDir, "binary", projectConfig.Binary, "cargo", projectConfig.Cargo)

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.Version = types.Version

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		log.Error(err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (default: xtask.yaml in the project directory, if present)")
	rootCmd.PersistentFlags().StringP("dir", "C", ".", "Project directory")
}

func newProject() *tasks.Project {
	return &tasks.Project{
		Dir:    projectDir,
		Config: projectConfig,
		Runner: execx.NewOSRunner(),
		GOOS:   runtime.GOOS,
		AsRoot: platform.IsRoot(),
	}
}
