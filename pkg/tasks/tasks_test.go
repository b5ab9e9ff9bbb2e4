package tasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sbom-observer/xtask/pkg/execx"
	"github.com/sbom-observer/xtask/pkg/execx/execxtest"
	"github.com/sbom-observer/xtask/pkg/platform"
	"github.com/sbom-observer/xtask/pkg/types"
	"github.com/stretchr/testify/require"
)

func newProject(t *testing.T) (*Project, *execxtest.Recorder) {
	t.Helper()
	runner := execxtest.New()
	return &Project{
		Dir:    t.TempDir(),
		Config: types.DefaultProjectConfig(),
		Runner: runner,
		GOOS:   "linux",
		AsRoot: false,
	}, runner
}

func TestCargoTasks(t *testing.T) {
	tests := []struct {
		name     string
		run      func(ctx context.Context, p *Project) error
		expected []string
	}{
		{"check", func(ctx context.Context, p *Project) error { return p.Check(ctx) }, []string{"cargo", "check", "--all"}},
		{"fmt", func(ctx context.Context, p *Project) error { return p.Fmt(ctx, false) }, []string{"cargo", "fmt", "--all"}},
		{"fmt check", func(ctx context.Context, p *Project) error { return p.Fmt(ctx, true) }, []string{"cargo", "fmt", "--all", "--", "--check"}},
		{"lint", func(ctx context.Context, p *Project) error { return p.Lint(ctx) }, []string{"cargo", "clippy", "--all", "--", "-D", "warnings"}},
		{"test", func(ctx context.Context, p *Project) error { return p.Test(ctx) }, []string{"cargo", "test", "--all"}},
		{"test with args", func(ctx context.Context, p *Project) error { return p.Test(ctx, "--nocapture") }, []string{"cargo", "test", "--all", "--", "--nocapture"}},
		{"clean", func(ctx context.Context, p *Project) error { return p.Clean(ctx) }, []string{"cargo", "clean"}},
		{"install", func(ctx context.Context, p *Project) error { return p.Install(ctx) }, []string{"cargo", "tauri", "build"}},
		{"dev", func(ctx context.Context, p *Project) error { return p.Dev(ctx) }, []string{"cargo", "tauri", "dev"}},
		{"build", func(ctx context.Context, p *Project) error { return p.Build(ctx, "") }, []string{"cargo", "tauri", "build"}},
		{"build with target", func(ctx context.Context, p *Project) error { return p.Build(ctx, "aarch64-apple-darwin") }, []string{"cargo", "tauri", "build", "--target=aarch64-apple-darwin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := require.New(t)
			p, runner := newProject(t)

			r.NoError(tt.run(context.Background(), p))
			r.Equal([][]string{tt.expected}, runner.Invocations())
			r.Equal(p.Dir, runner.Commands[0].Dir)
		})
	}
}

func TestTauriEnvOverlay(t *testing.T) {
	r := require.New(t)
	p, runner := newProject(t)
	p.Config.Env = map[string]string{"RUST_LOG": "debug"}
	before := os.Getenv(types.SkipWebviewDownloadEnv)

	r.NoError(p.Build(context.Background(), ""))
	r.NoError(p.Dev(context.Background()))
	r.NoError(p.Check(context.Background()))
	r.NoError(p.Install(context.Background()))

	for _, c := range runner.Commands[:2] {
		r.Equal("false", c.Env[types.SkipWebviewDownloadEnv])
		r.Equal("debug", c.Env["RUST_LOG"])
	}
	r.Empty(runner.Commands[2].Env, "plain cargo commands get no overlay")
	r.Empty(runner.Commands[3].Env, "install builds bundles without the overlay")

	r.Equal(before, os.Getenv(types.SkipWebviewDownloadEnv), "the overlay must not leak into the wrapper's environment")
}

func TestCustomCargo(t *testing.T) {
	r := require.New(t)
	p, runner := newProject(t)
	p.Config.Cargo = "cross"

	r.NoError(p.Check(context.Background()))
	r.Equal("cross", runner.Commands[0].Program)
}

func TestAll(t *testing.T) {
	r := require.New(t)
	p, runner := newProject(t)

	r.NoError(p.All(context.Background(), "x86_64-unknown-linux-gnu"))
	r.Equal([][]string{
		{"cargo", "check", "--all"},
		{"cargo", "fmt", "--all"},
		{"cargo", "clippy", "--all", "--", "-D", "warnings"},
		{"cargo", "tauri", "build", "--target=x86_64-unknown-linux-gnu"},
	}, runner.Invocations())
}

func TestAllStopsAtFirstFailure(t *testing.T) {
	r := require.New(t)
	p, runner := newProject(t)
	runner.Fail = func(c execx.Command) error {
		if c.Args[0] == "clippy" {
			return &execx.ExternalCommandError{Program: c.Program, Args: c.Args, ExitCode: 101}
		}
		return nil
	}

	err := p.All(context.Background(), "")

	var exErr *execx.ExternalCommandError
	r.True(errors.As(err, &exErr))
	r.Equal("cargo", exErr.Program)
	r.Equal([]string{"clippy", "--all", "--", "-D", "warnings"}, exErr.Args)
	r.Len(runner.Commands, 3, "build must not run after lint failed")
}

func TestInstallSystem(t *testing.T) {
	r := require.New(t)
	p, runner := newProject(t)
	p.Config.Binary = "eim"
	p.Config.Prefix = "/usr/local"

	manpage := filepath.Join(p.Dir, "docs", "eim.1")
	binary := filepath.Join(p.Dir, "target", "release", "eim")
	r.NoError(os.MkdirAll(filepath.Dir(manpage), 0o755))
	r.NoError(os.WriteFile(manpage, []byte(".TH EIM 1\n"), 0o644))
	r.NoError(os.MkdirAll(filepath.Dir(binary), 0o755))
	r.NoError(os.WriteFile(binary, []byte("bin"), 0o755))

	r.NoError(p.InstallSystem(context.Background()))
	r.Equal([][]string{
		{"cargo", "build", "--release"},
		{"sudo", "install", "-Dm755", binary, "/usr/local/bin/eim"},
		{"sudo", "install", "-Dm644", manpage, "/usr/local/share/man/man1/eim.1"},
	}, runner.Invocations())
}

func TestInstallSystemAsRoot(t *testing.T) {
	r := require.New(t)
	p, runner := newProject(t)
	p.AsRoot = true
	p.Config.Manpage = filepath.Join(p.Dir, "eim.1")
	r.NoError(os.WriteFile(p.Config.Manpage, []byte(".TH EIM 1\n"), 0o644))
	r.NoError(os.MkdirAll(filepath.Join(p.Dir, "target", "release"), 0o755))
	r.NoError(os.WriteFile(filepath.Join(p.Dir, "target", "release", "eim"), []byte("bin"), 0o755))

	r.NoError(p.InstallSystem(context.Background()))
	r.Equal("install", runner.Commands[1].Program)
	r.Equal("install", runner.Commands[2].Program)
}

func TestInstallSystemMissingManpage(t *testing.T) {
	r := require.New(t)
	p, runner := newProject(t)

	err := p.InstallSystem(context.Background())

	var fsErr *types.FilesystemError
	r.True(errors.As(err, &fsErr))
	r.True(errors.Is(err, os.ErrNotExist))
	r.Empty(runner.Commands, "nothing is built when the man page is missing")
}

func TestInstallSystemMissingBinary(t *testing.T) {
	r := require.New(t)
	p, runner := newProject(t)
	manpage := filepath.Join(p.Dir, "docs", "eim.1")
	r.NoError(os.MkdirAll(filepath.Dir(manpage), 0o755))
	r.NoError(os.WriteFile(manpage, []byte(".TH EIM 1\n"), 0o644))

	err := p.InstallSystem(context.Background())

	var fsErr *types.FilesystemError
	r.True(errors.As(err, &fsErr))
	r.Equal("read binary", fsErr.Op)
	r.Len(runner.Commands, 1)
}

func TestInstallSystemWindows(t *testing.T) {
	r := require.New(t)
	p, runner := newProject(t)
	p.GOOS = "windows"

	err := p.InstallSystem(context.Background())
	r.True(errors.Is(err, platform.ErrUnsupportedPlatform))
	r.Empty(runner.Commands)
}

func TestSystemPaths(t *testing.T) {
	r := require.New(t)
	p, _ := newProject(t)
	p.Config.Prefix = "/opt/espressif"
	p.Config.Binary = "eim"

	r.Equal(SystemPaths{
		Binary:  "/opt/espressif/bin/eim",
		Manpage: "/opt/espressif/share/man/man1/eim.1",
	}, p.SystemPaths())
}
