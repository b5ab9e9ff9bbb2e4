package setup

import (
	"fmt"
	"io"
	"strings"

	"github.com/aquasecurity/table"
)

// RenderDryRun prints what ResolveAndInstall would do without spawning anything
func (r *Resolver) RenderDryRun(w io.Writer, styled bool) error {
	resolution, err := r.Resolve()
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, " -- Platform: %s --\n", resolution.Profile)

	if !resolution.HasPlan {
		_, _ = fmt.Fprintf(w, "no automatic plan, manual instructions would be printed\n")
		return nil
	}

	t := table.New(w)
	if styled {
		t.SetHeaderStyle(table.StyleBold)
		t.SetLineStyle(table.StyleDim)
	}
	t.SetHeaders("#", "Step", "Program", "Arguments", "On failure")

	onFailure := "abort"
	if resolution.Plan.ContinueOnNonzeroExit {
		onFailure = "warn"
	}

	commands := resolution.Plan.Commands(r.AsRoot)
	for i, c := range commands {
		step := "install"
		if i == 0 && len(commands) > 1 {
			step = "refresh"
		}
		t.AddRow(fmt.Sprintf("%d", i+1), step, c.Program, strings.Join(c.Args, " "), onFailure)
	}

	if resolution.Plan.InstallsTool && !r.SkipTool {
		action := "download " + r.Tool.Name + " to " + r.Tool.BinDir
		if path, ok := r.Tools.Installed(r.Tool); ok {
			action = "skip, found at " + path
		}
		t.AddRow(fmt.Sprintf("%d", len(commands)+1), "tool", r.Tool.Name, action, "abort")
	}

	t.Render()
	return nil
}
