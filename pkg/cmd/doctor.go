package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/liamg/tml"
	"github.com/sbom-observer/xtask/pkg/execx"
	"github.com/sbom-observer/xtask/pkg/log"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Show the detected platform and which build tools are available",
	Args:  cobra.NoArgs,
	RunE:  RunDoctorCommand,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

type toolStatus struct {
	Name    string
	Path    string
	Version string
}

func RunDoctorCommand(cmd *cobra.Command, args []string) error {
	resolver, err := newResolver()
	if err != nil {
		return err
	}

	resolution, err := resolver.Resolve()
	if err != nil {
		return err
	}

	names := []string{projectConfig.Cargo}
	if resolution.HasPlan {
		names = append(names, resolution.Plan.Manager)
		if resolution.Plan.Privileged {
			names = append(names, "sudo")
		}
	}
	names = append(names, "curl", "wget")
	if resolution.HasPlan && resolution.Plan.InstallsTool {
		names = append(names, resolver.Tool.Name)
	}

	var statuses []toolStatus
	for _, name := range names {
		statuses = append(statuses, probeTool(cmd.Context(), resolver.Runner, name))
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Platform: %s\n", resolution.Profile)
	if !resolution.HasPlan {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "No automatic dependency setup for this platform, run `xtask setup` for instructions\n")
	}

	renderToolStatuses(cmd.OutOrStdout(), statuses, log.IsTerminal(os.Stdout))
	return nil
}

func probeTool(ctx context.Context, runner execx.Runner, name string) toolStatus {
	status := toolStatus{Name: name}

	path, err := runner.LookPath(name)
	if err != nil {
		log.Debug("tool not found", "name", name, "err", err)
		return status
	}
	status.Path = path

	// first line only
	output, err := execx.Exec(ctx, path, "--version")
	if err == nil {
		status.Version, _, _ = strings.Cut(strings.TrimSpace(output), "\n")
	}

	return status
}

func renderToolStatuses(w io.Writer, statuses []toolStatus, colored bool) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Tool", "Status", "Path", "Version"})

	for _, s := range statuses {
		status := "found"
		if s.Path == "" {
			status = "missing"
		}
		if colored {
			status = colorizeStatus(status)
		}
		t.AppendRow(table.Row{s.Name, status, s.Path, s.Version})
	}

	t.Render()
}

func colorizeStatus(status string) string {
	switch status {
	case "found":
		return tml.Sprintf("<green>%s</green>", status)
	default:
		return tml.Sprintf("<red>%s</red>", status)
	}
}
