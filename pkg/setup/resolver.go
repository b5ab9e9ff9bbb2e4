package setup

import (
	"context"
	"errors"
	"io"
	"os"
	"runtime"

	"github.com/sbom-observer/xtask/pkg/execx"
	"github.com/sbom-observer/xtask/pkg/log"
	"github.com/sbom-observer/xtask/pkg/platform"
)

// Resolver detects the platform, installs its native build prerequisites and,
// on Linux, the AppImage packaging helper.
type Resolver struct {
	Detector *platform.Detector
	Runner   execx.Runner
	Tools    *ToolInstaller
	Tool     AuxiliaryTool
	// Out receives manual instructions for platforms without a plan
	Out io.Writer
	// AsRoot skips the sudo prefix on privileged plans
	AsRoot   bool
	SkipTool bool
}

func NewResolver(runner execx.Runner, tool AuxiliaryTool) *Resolver {
	return &Resolver{
		Detector: platform.NewDetector(runtime.GOOS),
		Runner:   runner,
		Tools: &ToolInstaller{
			Runner:  runner,
			Fetcher: SelectFetcher(runner),
			GOARCH:  runtime.GOARCH,
		},
		Tool:   tool,
		Out:    os.Stdout,
		AsRoot: platform.IsRoot(),
	}
}

// Resolution is the outcome of platform detection and plan lookup
type Resolution struct {
	Profile platform.Profile
	Plan    PackagePlan
	// HasPlan is false when only manual instructions exist for Profile
	HasPlan bool
}

func (r *Resolver) Resolve() (Resolution, error) {
	profile, err := r.Detector.Detect()
	if err != nil {
		return Resolution{Profile: profile}, err
	}

	plan, ok := PlanFor(profile)
	return Resolution{Profile: profile, Plan: plan, HasPlan: ok}, nil
}

func (r *Resolver) ResolveAndInstall(ctx context.Context) error {
	resolution, err := r.Resolve()
	if err != nil {
		return err
	}

	log.Infof("setting up build dependencies for %s", resolution.Profile)

	if !resolution.HasPlan {
		log.Warn("automatic setup is not available for this platform")
		return WriteManualInstructions(r.Out, resolution.Profile)
	}

	if err := r.execute(ctx, resolution.Plan); err != nil {
		return err
	}

	if resolution.Plan.InstallsTool && !r.SkipTool {
		if err := r.Tools.Install(ctx, r.Tool); err != nil {
			return err
		}
	}

	log.Info("dependency setup completed")
	return nil
}

func (r *Resolver) execute(ctx context.Context, plan PackagePlan) error {
	for _, c := range plan.Commands(r.AsRoot) {
		err := r.Runner.Run(ctx, c)
		if err == nil {
			continue
		}

		var exErr *execx.ExternalCommandError
		if plan.ContinueOnNonzeroExit && errors.As(err, &exErr) {
			log.Warn("package manager reported an error, continuing", "cmd", c.String(), "exit", exErr.ExitCode)
			continue
		}

		return err
	}

	return nil
}
