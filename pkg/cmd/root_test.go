package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommandTree(t *testing.T) {
	r := require.New(t)

	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}

	for _, expected := range []string{
		"build", "dev", "check", "fmt", "lint", "test", "clean",
		"install", "install-system", "setup", "all", "doctor", "version",
	} {
		r.Contains(names, expected)
	}

	r.NotNil(buildCmd.Flags().Lookup("target"))
	r.NotNil(allCmd.Flags().Lookup("target"))
	r.NotNil(setupCmd.Flags().Lookup("dry-run"))
	r.NotNil(fmtCmd.Flags().Lookup("check"))
}

func TestVersionCommand(t *testing.T) {
	r := require.New(t)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version", "--dir", t.TempDir()})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	r.NoError(rootCmd.Execute())
	r.Contains(out.String(), "xtask dev")
}

func TestRenderToolStatuses(t *testing.T) {
	r := require.New(t)

	var out bytes.Buffer
	renderToolStatuses(&out, []toolStatus{
		{Name: "cargo", Path: "/usr/bin/cargo", Version: "cargo 1.80.0"},
		{Name: "appimagetool"},
	}, false)

	r.Contains(out.String(), "cargo 1.80.0")
	r.Contains(out.String(), "found")
	r.Contains(out.String(), "missing")
}
