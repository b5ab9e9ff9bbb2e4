package cmd

import (
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check code without building",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return newProject().Check(cmd.Context())
	},
}

var fmtCmd = &cobra.Command{
	Use:   "fmt",
	Short: "Format code",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		check, _ := cmd.Flags().GetBool("check")
		return newProject().Fmt(cmd.Context(), check)
	},
}

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Run clippy, treating warnings as errors",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return newProject().Lint(cmd.Context())
	},
}

var testCmd = &cobra.Command{
	Use:     "test [-- test-binary-args...]",
	Short:   "Run tests",
	Example: `xtask test -- --nocapture`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return newProject().Test(cmd.Context(), args...)
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean build artifacts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return newProject().Clean(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(cleanCmd)

	fmtCmd.Flags().Bool("check", false, "Only verify formatting, do not rewrite files")
}
