package shush

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Command pairs a program name with a launch configuration and an
// argument set. Commands are immutable: every configuring operation
// returns a new Command and never modifies the one it was called on,
// so a partially configured command can be shared and refined in
// several directions safely.
type Command struct {
	program string
	config  Config
	args    Arguments
	eng     *engine
}

// Args returns a new Command with vs appended to the positional
// arguments. A false or nil value is dropped during flattening, which
// enables conditional arguments without branching at the call site;
// slices expand one level; everything else is stringified. See Value.
func (c Command) Args(vs ...any) Command {
	c.args = c.args.withPositionals(vs)
	return c
}

// Opt returns a new Command with the named option set. A value of true
// renders as a bare flag token; any other value is stringified.
// Setting an existing name overrides its value while keeping the
// option's original position.
func (c Command) Opt(name string, value any) Command {
	c.args = c.args.withOption(name, value)
	return c
}

// Flag is shorthand for Opt(name, true).
func (c Command) Flag(name string) Command {
	return c.Opt(name, true)
}

// Set attaches a generic launch parameter by name: "dir", "env",
// "stdin", "stdout", or "stderr". The key is looked up in a closed
// registry that validates and normalizes the value; an unknown key or
// invalid value panics with a *ConfigError. Last write wins. WithDir
// and WithEnv are the dedicated accessors for the two most common
// parameters.
func (c Command) Set(key string, value any) Command {
	c.config = c.config.set(key, value)
	return c
}

// WithDir returns a new Command that runs in the given working
// directory.
func (c Command) WithDir(dir string) Command {
	c.config = c.config.with(keyDir, dir)
	return c
}

// WithEnv returns a new Command with env merged into the current
// environment mapping, new keys winning on collision.
func (c Command) WithEnv(env map[string]string) Command {
	c.config = c.config.mergeEnv(env)
	return c
}

// Join returns a new Command whose standard error is redirected into
// the same destination as its standard output. Join panics with a
// *ConfigError if standard error was already explicitly configured;
// the two settings are mutually exclusive.
func (c Command) Join() Command {
	if _, ok := c.config.lookup(keyStderr); ok {
		panic(&ConfigError{Op: "Join", Reason: "stderr is already configured"})
	}
	c.config = c.config.with(keyStderr, joinSink{})
	return c
}

// Flatten produces the literal argument vector the process is invoked
// with: the program name, then options in insertion order, then
// positional values. Flatten is pure; flattening the same Command
// twice yields identical output.
func (c Command) Flatten() []string {
	return c.args.flatten(c.program)
}

// Pipe combines this command with the given commands into a pipeline,
// wiring each stage's standard output into the next stage's standard
// input.
func (c Command) Pipe(next ...Command) Pipeline {
	stages := make([]Command, 0, 1+len(next))
	stages = append(stages, c)
	stages = append(stages, next...)
	return Pipeline{stages: stages, eng: c.eng}
}

// ReadFrom builds a single-stage pipeline reading its input from src.
func (c Command) ReadFrom(src Source) Pipeline {
	return c.Pipe().ReadFrom(src)
}

// WriteTo runs the command with its standard output directed to sink
// and blocks until it exits. A non-zero exit status is reported as a
// *ExitError.
func (c Command) WriteTo(ctx context.Context, sink Sink) (*Handle, error) {
	return c.Pipe().WriteTo(ctx, sink)
}

// Check runs the command and blocks until it exits, using the
// configured output sink (the shell's default when none is set). A
// non-zero exit status is reported as a *ExitError.
func (c Command) Check(ctx context.Context) (*Handle, error) {
	return c.Pipe().Check(ctx)
}

// Start spawns the command asynchronously using its configured
// redirections and returns without waiting. The returned Proc reports
// exit status via Wait and never raises on non-zero exit.
func (c Command) Start(ctx context.Context) (*Proc, error) {
	var input *ownedReader
	if src := c.config.stdin(); src != nil {
		opened, err := src.open(c.eng.fs)
		if err != nil {
			return nil, err
		}
		input = opened
	}

	stdout, err := c.resolveStdout(nil)
	if err != nil {
		input.release()
		return nil, err
	}
	stderr, err := c.resolveStderr(stdout.w)
	if err != nil {
		input.release()
		closeSinks(stdout)
		return nil, err
	}

	argv, proc, err := c.spawn(ctx, input.reader(), stdout.w, stderr.w)
	if err != nil {
		input.release()
		closeSinks(stdout, stderr)
		return nil, err
	}
	return &Proc{argv: argv, process: proc, stdout: stdout, stderr: stderr, input: input}, nil
}

// resolveStdout resolves the command's standard output target. An
// explicit sink from a write-to call wins over the configured one;
// with neither, output passes through to the ambient stream.
func (c Command) resolveStdout(explicit Sink) (*resolvedSink, error) {
	sink := explicit
	if sink == nil {
		sink = c.config.stdout()
	}
	if sink == nil {
		sink = Inherit
	}
	return sink.resolve(c.eng.fs, os.Stdout)
}

// resolveStderr resolves the command's standard error target. A joined
// stream follows stdout, including to the null device when stdout is
// discarded.
func (c Command) resolveStderr(stdout io.Writer) (*resolvedSink, error) {
	sink := c.config.stderr()
	if sink == nil {
		return &resolvedSink{w: os.Stderr}, nil
	}
	if _, ok := sink.(joinSink); ok {
		return &resolvedSink{w: stdout}, nil
	}
	return sink.resolve(c.eng.fs, os.Stderr)
}

// spawn flattens the command and hands it to the process collaborator.
func (c Command) spawn(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer) ([]string, Process, error) {
	argv := c.Flatten()
	c.eng.logger.Debug("starting process", "argv", argv, "dir", c.config.dir())
	proc, err := c.eng.spawner.Spawn(ctx, SpawnSpec{
		Argv:   argv,
		Dir:    c.config.dir(),
		Env:    c.config.environ(),
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	})
	if err != nil {
		return argv, nil, fmt.Errorf("shush: start %s: %w", c.program, err)
	}
	return argv, proc, nil
}
