package tasks

import (
	"context"
	"fmt"

	"github.com/sbom-observer/xtask/pkg/execx"
	"github.com/sbom-observer/xtask/pkg/log"
	"github.com/sbom-observer/xtask/pkg/types"
)

// Project runs the cargo/Tauri build tasks for the application in Dir
type Project struct {
	Dir    string
	Config types.ProjectConfig
	Runner execx.Runner
	GOOS   string
	AsRoot bool
}

func (p *Project) cargo(ctx context.Context, env map[string]string, args ...string) error {
	program := p.Config.Cargo
	if program == "" {
		program = "cargo"
	}

	return p.Runner.Run(ctx, execx.Command{
		Program: program,
		Args:    args,
		Dir:     p.Dir,
		Env:     env,
	})
}

// tauriEnv is the overlay for build and dev
func (p *Project) tauriEnv() map[string]string {
	env := map[string]string{types.SkipWebviewDownloadEnv: "false"}
	for k, v := range p.Config.Env {
		env[k] = v
	}
	return env
}

func (p *Project) Build(ctx context.Context, target string) error {
	log.Info("building Tauri application")

	args := []string{"tauri", "build"}
	if target != "" {
		args = append(args, fmt.Sprintf("--target=%s", target))
	}

	if err := p.cargo(ctx, p.tauriEnv(), args...); err != nil {
		return err
	}

	log.Info("build completed")
	return nil
}

func (p *Project) Dev(ctx context.Context) error {
	log.Info("starting development server")
	return p.cargo(ctx, p.tauriEnv(), "tauri", "dev")
}

func (p *Project) Check(ctx context.Context) error {
	log.Info("checking code")
	if err := p.cargo(ctx, nil, "check", "--all"); err != nil {
		return err
	}
	log.Info("check passed")
	return nil
}

// Fmt formats the workspace, or only verifies formatting when check is set
func (p *Project) Fmt(ctx context.Context, check bool) error {
	args := []string{"fmt", "--all"}
	if check {
		log.Info("verifying code formatting")
		args = append(args, "--", "--check")
	} else {
		log.Info("formatting code")
	}

	if err := p.cargo(ctx, nil, args...); err != nil {
		return err
	}
	if check {
		log.Info("formatting check passed")
	} else {
		log.Info("code formatted")
	}
	return nil
}

func (p *Project) Lint(ctx context.Context) error {
	log.Info("running linter")
	if err := p.cargo(ctx, nil, "clippy", "--all", "--", "-D", "warnings"); err != nil {
		return err
	}
	log.Info("linting passed")
	return nil
}

// Test runs the workspace tests, extra is passed to the test binaries after --
func (p *Project) Test(ctx context.Context, extra ...string) error {
	log.Info("running tests")

	args := []string{"test", "--all"}
	if len(extra) > 0 {
		args = append(args, "--")
		args = append(args, extra...)
	}

	if err := p.cargo(ctx, nil, args...); err != nil {
		return err
	}
	log.Info("tests passed")
	return nil
}

func (p *Project) Clean(ctx context.Context) error {
	log.Info("cleaning build artifacts")
	if err := p.cargo(ctx, nil, "clean"); err != nil {
		return err
	}
	log.Info("clean completed")
	return nil
}

// Install produces the platform bundles (deb, AppImage, dmg, msi) via the Tauri bundler
func (p *Project) Install(ctx context.Context) error {
	log.Info("installing application")
	if err := p.cargo(ctx, nil, "tauri", "build"); err != nil {
		return err
	}
	log.Info("installation completed")
	return nil
}

// All runs check, fmt, lint and build, stopping at the first failure
func (p *Project) All(ctx context.Context, target string) error {
	log.Info("running full build pipeline")

	steps := []func(context.Context) error{
		p.Check,
		func(ctx context.Context) error { return p.Fmt(ctx, false) },
		p.Lint,
		func(ctx context.Context) error { return p.Build(ctx, target) },
	}

	for _, step := range steps {
		if err := step(ctx); err != nil {
			return err
		}
	}

	log.Info("full pipeline completed successfully")
	return nil
}
