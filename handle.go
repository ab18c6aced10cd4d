package shush

import "fmt"

// Handle is the result of a completed command or pipeline. It carries
// the terminal stage's exit status and, when that stage's streams were
// configured to capture, the collected bytes. Intermediate stages'
// output is always piped forward, never captured independently.
type Handle struct {
	// Argv is the flattened argument vector of the terminal stage.
	Argv []string

	// ExitCode is the terminal stage's exit status.
	ExitCode int

	output      []byte
	captured    bool
	errOutput   []byte
	errCaptured bool
}

// Output returns the captured standard output of the terminal stage.
// The boolean reports whether capturing was configured at all: a
// discarded or inherited stream yields (nil, false), while a captured
// stream that produced nothing yields an empty slice and true.
func (h *Handle) Output() ([]byte, bool) {
	return h.output, h.captured
}

// Stderr returns the captured standard error of the terminal stage,
// with the same absent-versus-empty distinction as Output.
func (h *Handle) Stderr() ([]byte, bool) {
	return h.errOutput, h.errCaptured
}

// Proc is an asynchronously started command. It does not raise on
// non-zero exit; the status is reported on the Handle returned by
// Wait.
type Proc struct {
	argv    []string
	process Process
	stdout  *resolvedSink
	stderr  *resolvedSink
	input   *ownedReader
}

// Wait blocks until the process exits and returns its Handle. The
// error reports only mechanical failures (the process could not be
// waited on); a non-zero exit status is carried on the Handle.
func (p *Proc) Wait() (*Handle, error) {
	werr := p.process.Wait()
	p.input.release()
	closeSinks(p.stdout, p.stderr)

	h := &Handle{Argv: p.argv, ExitCode: p.process.ExitCode()}
	collectCaptures(h, p.stdout, p.stderr)
	if werr != nil && h.ExitCode < 0 {
		return h, fmt.Errorf("shush: wait for %s: %w", p.argv[0], werr)
	}
	return h, nil
}

// closeSinks closes any files the engine opened for the given sinks.
func closeSinks(sinks ...*resolvedSink) {
	for _, s := range sinks {
		if s != nil && s.closer != nil {
			_ = s.closer.Close()
		}
	}
}

// collectCaptures moves captured bytes from resolved sinks onto the
// handle.
func collectCaptures(h *Handle, stdout, stderr *resolvedSink) {
	if stdout != nil && stdout.buf != nil {
		h.output = stdout.buf.Bytes()
		h.captured = true
	}
	if stderr != nil && stderr.buf != nil {
		h.errOutput = stderr.buf.Bytes()
		h.errCaptured = true
	}
}
