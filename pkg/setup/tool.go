package setup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sbom-observer/xtask/pkg/execx"
	"github.com/sbom-observer/xtask/pkg/log"
	"github.com/sbom-observer/xtask/pkg/platform"
	"github.com/sbom-observer/xtask/pkg/types"
)

// AuxiliaryTool is a packaging helper installed by direct download into a
// user-local bin directory, outside the system package manager.
type AuxiliaryTool struct {
	Name string
	// URL may contain {arch}
	URL    string
	BinDir string
}

func ToolFromConfig(config types.ToolConfig) (AuxiliaryTool, error) {
	binDir, err := types.ExpandHome(config.BinDir)
	if err != nil {
		return AuxiliaryTool{}, err
	}

	binDir, err = filepath.Abs(binDir)
	if err != nil {
		return AuxiliaryTool{}, &types.FilesystemError{Op: "resolve", Path: config.BinDir, Err: err}
	}

	return AuxiliaryTool{Name: config.Name, URL: config.URL, BinDir: binDir}, nil
}

// AppImageArch maps runtime.GOARCH to the architecture suffix used by AppImage releases
func AppImageArch(goarch string) (string, error) {
	switch goarch {
	case "amd64":
		return "x86_64", nil
	case "arm64":
		return "aarch64", nil
	default:
		return "", fmt.Errorf("%w: no AppImage tooling for %s", platform.ErrUnsupportedPlatform, goarch)
	}
}

func (t AuxiliaryTool) FileName(arch string) string {
	return fmt.Sprintf("%s-%s.AppImage", t.Name, arch)
}

func (t AuxiliaryTool) DownloadURL(arch string) string {
	return strings.ReplaceAll(t.URL, "{arch}", arch)
}

// ToolInstaller installs an AuxiliaryTool. Installation is skipped entirely
// when the tool already resolves on $PATH.
type ToolInstaller struct {
	Runner  execx.Runner
	Fetcher Fetcher
	GOARCH  string
}

// Installed reports the resolved path of the tool if it is on $PATH
func (i *ToolInstaller) Installed(tool AuxiliaryTool) (string, bool) {
	path, err := i.Runner.LookPath(tool.Name)
	if err != nil {
		return "", false
	}
	return path, true
}

func (i *ToolInstaller) Install(ctx context.Context, tool AuxiliaryTool) error {
	if path, ok := i.Installed(tool); ok {
		log.Info("tool already installed", "name", tool.Name, "path", path)
		return nil
	}

	arch, err := AppImageArch(i.GOARCH)
	if err != nil {
		return err
	}

	// a relative link target resolves against the link's directory, not the cwd
	binDir, err := filepath.Abs(tool.BinDir)
	if err != nil {
		return &types.FilesystemError{Op: "resolve", Path: tool.BinDir, Err: err}
	}

	log.Info("installing tool", "name", tool.Name, "dir", binDir)

	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return &types.FilesystemError{Op: "create directory", Path: binDir, Err: err}
	}

	dest := filepath.Join(binDir, tool.FileName(arch))
	url := tool.DownloadURL(arch)
	log.Debug("downloading", "url", url, "dest", dest)

	if err := i.Fetcher.Fetch(ctx, url, dest); err != nil {
		return &types.FilesystemError{Op: "download", Path: dest, Err: err}
	}

	if err := os.Chmod(dest, 0o755); err != nil {
		return &types.FilesystemError{Op: "mark executable", Path: dest, Err: err}
	}

	link := filepath.Join(binDir, tool.Name)
	// the link may not exist yet
	if err := os.Remove(link); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Debug("could not remove existing link", "path", link, "err", err)
	}

	if err := os.Symlink(dest, link); err != nil {
		return &types.FilesystemError{Op: "symlink", Path: link, Err: err}
	}

	log.Info("installed tool", "name", tool.Name, "path", link)
	if !onPath(binDir) {
		log.Warnf("%s is not on your PATH, add it to use %s directly", binDir, tool.Name)
	}

	return nil
}

func onPath(dir string) bool {
	for _, entry := range filepath.SplitList(os.Getenv("PATH")) {
		if filepath.Clean(entry) == filepath.Clean(dir) {
			return true
		}
	}
	return false
}
