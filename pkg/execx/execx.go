package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/sbom-observer/xtask/pkg/log"
)

var ErrNotFound = exec.ErrNotFound

// Command is a single external program invocation
type Command struct {
	Program string
	Args    []string
	// Dir is the working directory, empty means the current directory
	Dir string
	// Env is overlaid on the inherited environment of this child only
	Env map[string]string
}

func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Program
	}
	return c.Program + " " + strings.Join(c.Args, " ")
}

// Runner spawns external programs and resolves names on $PATH
type Runner interface {
	Run(ctx context.Context, c Command) error
	LookPath(file string) (string, error)
}

// ExternalCommandError is returned when a program ran but exited unsuccessfully
type ExternalCommandError struct {
	Program  string
	Args     []string
	ExitCode int
	StdErr   string
}

func (e *ExternalCommandError) Error() string {
	return fmt.Sprintf("command failed: %s %s (exit code %d)", e.Program, strings.Join(e.Args, " "), e.ExitCode)
}

// OSRunner runs commands with stdout/stderr attached to the given writers (os.Stdout/os.Stderr if nil)
type OSRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

func NewOSRunner() *OSRunner {
	return &OSRunner{Stdout: os.Stdout, Stderr: os.Stderr}
}

func (r *OSRunner) Run(ctx context.Context, c Command) error {
	log.Debug("running", "cmd", c.String(), "dir", c.Dir)

	cmd := exec.CommandContext(ctx, c.Program, c.Args...)
	cmd.Dir = c.Dir
	cmd.Env = Environ(os.Environ(), c.Env)
	cmd.Stdin = os.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	return commandError(c, cmd.Run(), "")
}

func (r *OSRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Exec runs a command and returns its stdout, used for short probes like `cargo --version`
func Exec(ctx context.Context, command string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, command, args...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	// forward the current environment
	cmd.Env = os.Environ()

	err := cmd.Run()
	if err != nil {
		return "", commandError(Command{Program: command, Args: args}, err, stderrBuf.String())
	}

	return stdoutBuf.String(), nil
}

// Environ returns base with overlay applied, overlay keys replacing existing entries
func Environ(base []string, overlay map[string]string) []string {
	if len(overlay) == 0 {
		return base
	}

	env := make([]string, 0, len(base)+len(overlay))
	for _, kv := range base {
		key, _, _ := strings.Cut(kv, "=")
		if _, ok := overlay[key]; ok {
			continue
		}
		env = append(env, kv)
	}

	keys := make([]string, 0, len(overlay))
	for k := range overlay {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		env = append(env, k+"="+overlay[k])
	}

	return env
}

func commandError(c Command, err error, stderr string) error {
	if err == nil {
		return nil
	}

	var exerr *exec.ExitError
	if errors.As(err, &exerr) {
		return &ExternalCommandError{
			Program:  c.Program,
			Args:     c.Args,
			ExitCode: exerr.ExitCode(),
			StdErr:   stderr,
		}
	}

	if errors.Is(err, exec.ErrNotFound) {
		return fmt.Errorf("%s: %w", c.Program, ErrNotFound)
	}

	return fmt.Errorf("failed to run %s: %w", c.String(), err)
}
