package shush

import (
	"context"
	"fmt"
	"os"
)

// Pipeline is an ordered sequence of commands whose standard streams
// are wired together at execution time, plus an optional input source.
// Pipelines are immutable values built by composition; only running
// one touches operating-system resources.
type Pipeline struct {
	stages []Command
	source Source
	eng    *engine
}

// Pipe builds a pipeline from the given stages in order. It is the
// variadic equivalent of chaining Command.Pipe and preserves its
// associativity: Pipe(a, b, c) and a.Pipe(b).Pipe(c) run identically.
func Pipe(first Command, rest ...Command) Pipeline {
	return first.Pipe(rest...)
}

// Pipe returns a new Pipeline with the given commands appended as
// further stages.
func (p Pipeline) Pipe(next ...Command) Pipeline {
	stages := make([]Command, 0, len(p.stages)+len(next))
	stages = append(stages, p.stages...)
	stages = append(stages, next...)
	return Pipeline{stages: stages, source: p.source, eng: p.eng}
}

// Concat returns a new Pipeline running p's stages followed by q's.
// The input source is taken from p, or from q when p has none.
func (p Pipeline) Concat(q Pipeline) Pipeline {
	src := p.source
	if src == nil {
		src = q.source
	}
	stages := make([]Command, 0, len(p.stages)+len(q.stages))
	stages = append(stages, p.stages...)
	stages = append(stages, q.stages...)
	return Pipeline{stages: stages, source: src, eng: p.eng}
}

// ReadFrom returns a new Pipeline reading its input from src. A
// pipeline's input may be set exactly once; attaching a second source
// panics with a *ConfigError before any process is spawned.
func (p Pipeline) ReadFrom(src Source) Pipeline {
	if p.source != nil {
		panic(&ConfigError{Op: "ReadFrom", Reason: "input source is already set"})
	}
	return Pipeline{stages: p.stages, source: src, eng: p.eng}
}

// WriteTo runs the pipeline with the terminal stage's standard output
// directed to sink and blocks until the terminal stage exits. A
// non-zero exit from the terminal stage is reported as a *ExitError;
// non-final stages' statuses are deliberately not checked, matching
// shell pipe semantics.
func (p Pipeline) WriteTo(ctx context.Context, sink Sink) (*Handle, error) {
	if sink == nil {
		sink = Inherit
	}
	return p.run(ctx, sink)
}

// Check runs the pipeline and blocks until the terminal stage exits,
// using that stage's configured output sink (the shell's default when
// none is set). A non-zero exit from the terminal stage is reported as
// a *ExitError.
func (p Pipeline) Check(ctx context.Context) (*Handle, error) {
	return p.run(ctx, nil)
}

// startedStage tracks one asynchronously spawned stage so it can be
// reaped once the terminal stage has completed, and any file the
// engine opened for its stderr can be closed.
type startedStage struct {
	process Process
	stderr  *resolvedSink
	// input is a reader-backed stdin handle that must stay open until
	// the stage is reaped; descriptor-backed handles are released as
	// soon as the stage is spawned.
	input *ownedReader
}

// run executes the pipeline: resolve the input source, spawn every
// stage but the last asynchronously with a fresh pipe as its output,
// hand each stage's read end to the next as input, then run the
// terminal stage synchronously against the resolved sink. Each owned
// input handle is released as soon as the stage consuming it has been
// spawned, so upstream stages observe end-of-file correctly and no
// descriptors leak, even on the unwind path.
func (p Pipeline) run(ctx context.Context, explicit Sink) (_ *Handle, err error) {
	if len(p.stages) == 0 {
		return nil, fmt.Errorf("shush: empty pipeline")
	}

	input, err := p.resolveInput()
	if err != nil {
		return nil, err
	}

	var started []startedStage
	defer func() {
		input.release()
		// Reap intermediate stages. Their exit statuses are
		// deliberately ignored: only the terminal stage's status
		// determines the pipeline's outcome.
		for _, s := range started {
			_ = s.process.Wait()
			s.input.release()
			closeSinks(s.stderr)
		}
	}()

	last := len(p.stages) - 1
	for _, stage := range p.stages[:last] {
		pr, pw, perr := os.Pipe()
		if perr != nil {
			return nil, fmt.Errorf("shush: create pipe: %w", perr)
		}

		stderr, serr := stage.resolveStderr(pw)
		if serr != nil {
			pr.Close()
			pw.Close()
			return nil, serr
		}

		_, proc, serr := stage.spawn(ctx, input.reader(), pw, stderr.w)
		// The child holds its own copy of the pipe now; release the
		// parent's write end. A descriptor-backed input was
		// duplicated into the child too, so the parent's copy goes as
		// well; a reader-backed input is held until the stage is
		// reaped.
		pw.Close()
		var hold *ownedReader
		if input.fdBacked() {
			input.release()
		} else {
			hold = input
		}
		if serr != nil {
			pr.Close()
			closeSinks(stderr)
			return nil, serr
		}

		started = append(started, startedStage{process: proc, stderr: stderr, input: hold})
		input = &ownedReader{r: pr, owned: true}
	}

	return p.stages[last].runFinal(ctx, input, explicit)
}

// resolveInput opens the pipeline's input source. With no source set,
// the first stage's configured stdin applies; failing that, the
// parent's standard input is inherited (a nil handle).
func (p Pipeline) resolveInput() (*ownedReader, error) {
	src := p.source
	if src == nil {
		src = p.stages[0].config.stdin()
	}
	if src == nil {
		return nil, nil
	}
	return src.open(p.eng.fs)
}

// runFinal runs the terminal stage synchronously: resolve its sinks,
// spawn, wait, and fold the exit status and captured bytes into a
// Handle.
func (c Command) runFinal(ctx context.Context, input *ownedReader, explicit Sink) (*Handle, error) {
	stdout, err := c.resolveStdout(explicit)
	if err != nil {
		return nil, err
	}
	stderr, err := c.resolveStderr(stdout.w)
	if err != nil {
		closeSinks(stdout)
		return nil, err
	}

	argv, proc, err := c.spawn(ctx, input.reader(), stdout.w, stderr.w)
	if input.fdBacked() {
		input.release()
	}
	if err != nil {
		input.release()
		closeSinks(stdout, stderr)
		return nil, err
	}

	werr := proc.Wait()
	input.release()
	closeSinks(stdout, stderr)

	h := &Handle{Argv: argv, ExitCode: proc.ExitCode()}
	collectCaptures(h, stdout, stderr)
	c.eng.logger.Debug("terminal stage finished", "argv", argv, "exit", h.ExitCode)

	if werr != nil || h.ExitCode != 0 {
		return h, &ExitError{
			Argv:     argv,
			ExitCode: h.ExitCode,
			Output:   h.output,
			Stderr:   h.errOutput,
			Err:      werr,
		}
	}
	return h, nil
}
