package setup

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/sbom-observer/xtask/pkg/execx"
	"github.com/sbom-observer/xtask/pkg/log"
)

// Fetcher downloads url to the file dest
type Fetcher interface {
	Fetch(ctx context.Context, url, dest string) error
}

// CommandFetcher downloads with curl or wget
type CommandFetcher struct {
	Runner  execx.Runner
	Program string
}

func (f *CommandFetcher) Fetch(ctx context.Context, url, dest string) error {
	var args []string
	switch f.Program {
	case "curl":
		args = []string{"-fsSL", "-o", dest, url}
	case "wget":
		args = []string{"-q", "-O", dest, url}
	default:
		return fmt.Errorf("unsupported download program %q", f.Program)
	}

	return f.Runner.Run(ctx, execx.Command{Program: f.Program, Args: args})
}

// HTTPFetcher downloads in-process, used when neither curl nor wget is installed
type HTTPFetcher struct {
	Client *http.Client
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url, dest string) error {
	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Minute}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to start download of %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download %s: %s", url, resp.Status)
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}

	bar := log.NewDownloadBar(resp.ContentLength, "downloading "+filepath.Base(dest))
	_, err = io.Copy(io.MultiWriter(out, bar), resp.Body)
	_ = bar.Finish()
	if err != nil {
		_ = out.Close()
		_ = os.Remove(dest)
		return fmt.Errorf("failed during download of %s: %w", url, err)
	}

	return out.Close()
}

// SelectFetcher prefers curl, then wget, then the in-process downloader
func SelectFetcher(runner execx.Runner) Fetcher {
	for _, program := range []string{"curl", "wget"} {
		if _, err := runner.LookPath(program); err == nil {
			log.Debug("using download program", "program", program)
			return &CommandFetcher{Runner: runner, Program: program}
		}
	}

	log.Debug("neither curl nor wget found, downloading in-process")
	return &HTTPFetcher{}
}
