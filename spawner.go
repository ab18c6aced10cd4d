package shush

import (
	"context"
	"io"
	"os/exec"
)

// SpawnSpec describes one process to start: the literal argument
// vector and the spawn-time parameters resolved by the execution
// engine. A nil Env inherits the parent environment; a nil Stdin,
// Stdout, or Stderr connects that stream to the null device. The
// engine passes the parent's own streams explicitly when inheriting.
type SpawnSpec struct {
	Argv   []string
	Dir    string
	Env    []string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Process is a handle on a started process.
type Process interface {
	// Wait blocks until the process exits and its output copies have
	// completed. A non-zero exit is reported as an error by the
	// underlying collaborator.
	Wait() error

	// ExitCode returns the process's exit status, or -1 if it has not
	// exited.
	ExitCode() int
}

// Spawner is the operating-system process-creation collaborator. The
// default implementation wraps os/exec; tests inject their own to
// observe or fake spawns without starting real processes.
type Spawner interface {
	// Spawn starts the described process without waiting for it.
	Spawn(ctx context.Context, spec SpawnSpec) (Process, error)
}

// osSpawner is the default Spawner over os/exec.
type osSpawner struct{}

func (osSpawner) Spawn(ctx context.Context, spec SpawnSpec) (Process, error) {
	if len(spec.Argv) == 0 {
		return nil, exec.ErrNotFound
	}
	cmd := exec.CommandContext(ctx, spec.Argv[0], spec.Argv[1:]...)
	cmd.Dir = spec.Dir
	cmd.Env = spec.Env
	cmd.Stdin = spec.Stdin
	cmd.Stdout = spec.Stdout
	cmd.Stderr = spec.Stderr
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &osProcess{cmd: cmd}, nil
}

type osProcess struct {
	cmd *exec.Cmd
}

func (p *osProcess) Wait() error {
	return p.cmd.Wait()
}

func (p *osProcess) ExitCode() int {
	if p.cmd.ProcessState == nil {
		return -1
	}
	return p.cmd.ProcessState.ExitCode()
}
