package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sbom-observer/xtask/pkg/execx"
	"github.com/sbom-observer/xtask/pkg/log"
	"github.com/sbom-observer/xtask/pkg/platform"
	"github.com/sbom-observer/xtask/pkg/types"
)

// SystemPaths are the destinations used by InstallSystem
type SystemPaths struct {
	Binary  string
	Manpage string
}

func (p *Project) SystemPaths() SystemPaths {
	prefix := p.Config.Prefix
	if prefix == "" {
		prefix = "/usr/local"
	}

	return SystemPaths{
		Binary:  filepath.Join(prefix, "bin", p.Config.Binary),
		Manpage: filepath.Join(prefix, "share", "man", "man1", p.Config.Binary+".1"),
	}
}

// InstallSystem builds the release binary and installs it and its man page
// under the configured prefix using a privileged install(1).
func (p *Project) InstallSystem(ctx context.Context) error {
	if platform.ParseOSKind(p.GOOS) == platform.OSWindows {
		return fmt.Errorf("%w: install-system is not available on Windows, use the installer produced by `install`", platform.ErrUnsupportedPlatform)
	}

	if p.Config.Binary == "" {
		return fmt.Errorf("no binary name configured")
	}

	manpage := p.path(p.Config.Manpage)
	if _, err := os.Stat(manpage); err != nil {
		return &types.FilesystemError{Op: "read man page", Path: manpage, Err: err}
	}

	log.Info("building release binary")
	if err := p.cargo(ctx, nil, "build", "--release"); err != nil {
		return err
	}

	binary := p.path(filepath.Join("target", "release", p.Config.Binary))
	if _, err := os.Stat(binary); err != nil {
		return &types.FilesystemError{Op: "read binary", Path: binary, Err: err}
	}

	dest := p.SystemPaths()
	log.Info("installing to system", "binary", dest.Binary, "manpage", dest.Manpage)

	if err := p.privileged(ctx, "install", "-Dm755", binary, dest.Binary); err != nil {
		return err
	}
	if err := p.privileged(ctx, "install", "-Dm644", manpage, dest.Manpage); err != nil {
		return err
	}

	log.Info("system installation completed")
	return nil
}

func (p *Project) privileged(ctx context.Context, program string, args ...string) error {
	c := execx.Command{Program: program, Args: args, Dir: p.Dir}
	if !p.AsRoot {
		c = execx.Command{Program: "sudo", Args: append([]string{program}, args...), Dir: p.Dir}
	}
	return p.Runner.Run(ctx, c)
}

func (p *Project) path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(p.Dir, rel)
}
