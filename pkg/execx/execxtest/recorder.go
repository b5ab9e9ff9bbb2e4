// Package execxtest provides a recording execx.Runner for tests.
package execxtest

import (
	"context"
	"os/exec"
	"sync"

	"github.com/sbom-observer/xtask/pkg/execx"
)

// Recorder records every command instead of running it. Paths maps program
// names to the result of LookPath; anything missing is reported as not found.
type Recorder struct {
	mu       sync.Mutex
	Commands []execx.Command
	Paths    map[string]string
	// Fail returns the error for a command, nil means success
	Fail func(c execx.Command) error
}

func New() *Recorder {
	return &Recorder{Paths: map[string]string{}}
}

func (r *Recorder) Run(_ context.Context, c execx.Command) error {
	r.mu.Lock()
	r.Commands = append(r.Commands, c)
	fail := r.Fail
	r.mu.Unlock()

	if fail != nil {
		return fail(c)
	}
	return nil
}

func (r *Recorder) LookPath(file string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if path, ok := r.Paths[file]; ok {
		return path, nil
	}
	return "", &exec.Error{Name: file, Err: exec.ErrNotFound}
}

// Invocations returns the recorded commands as program + args, for compact assertions
func (r *Recorder) Invocations() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out [][]string
	for _, c := range r.Commands {
		out = append(out, append([]string{c.Program}, c.Args...))
	}
	return out
}

// ExitWith fails every command whose program matches with the given exit code
func ExitWith(program string, code int) func(c execx.Command) error {
	return func(c execx.Command) error {
		if c.Program != program {
			return nil
		}
		return &execx.ExternalCommandError{Program: c.Program, Args: c.Args, ExitCode: code}
	}
}
