package shush

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
)

// Sink is the destination of a stage's standard output or standard
// error. The set of implementations is closed: Capture, Discard,
// Inherit, a filesystem path, and an already-open writer. Capture and
// Discard are sentinels, not data; an unconfigured stream inherits the
// parent process's stream.
type Sink interface {
	// resolve produces the writer a stage should be spawned with.
	// ambient is the parent stream used when the sink is Inherit.
	resolve(fs billy.Filesystem, ambient io.Writer) (*resolvedSink, error)
}

var (
	// Capture collects the stream as in-memory bytes, exposed on the
	// resulting Handle. Intermediate pipeline stages are never
	// captured; only the terminal stage's streams can be.
	Capture Sink = captureSink{}

	// Discard redirects the stream to the null device. Captured bytes
	// are then absent, not empty, distinguishing "nothing captured"
	// from "captured zero bytes".
	Discard Sink = discardSink{}

	// Inherit passes the stream through to the parent process's
	// corresponding stream. It is also the behavior of an unconfigured
	// stream.
	Inherit Sink = inheritSink{}
)

// ToFile writes the stream to the named file, created or truncated
// through the shell's filesystem when the pipeline runs. Relative
// paths are resolved against the current working directory of the
// calling process.
func ToFile(path string) Sink { return fileSink(path) }

// ToWriter writes the stream to an already-open writer. The engine
// does not close it.
func ToWriter(w io.Writer) Sink { return writerSink{w} }

// resolvedSink is the spawn-ready form of a sink. A nil writer means
// the null device. buf is set when capturing; closer is a file the
// engine opened and must close once the stage has completed.
type resolvedSink struct {
	w      io.Writer
	buf    *bytes.Buffer
	closer io.Closer
}

type captureSink struct{}

func (captureSink) resolve(billy.Filesystem, io.Writer) (*resolvedSink, error) {
	buf := new(bytes.Buffer)
	return &resolvedSink{w: buf, buf: buf}, nil
}

type discardSink struct{}

func (discardSink) resolve(billy.Filesystem, io.Writer) (*resolvedSink, error) {
	return &resolvedSink{}, nil
}

type inheritSink struct{}

func (inheritSink) resolve(_ billy.Filesystem, ambient io.Writer) (*resolvedSink, error) {
	return &resolvedSink{w: ambient}, nil
}

type fileSink string

func (s fileSink) resolve(fs billy.Filesystem, _ io.Writer) (*resolvedSink, error) {
	path := string(s)
	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("shush: resolve output path %q: %w", path, err)
		}
		path = abs
	}
	f, err := fs.Create(path)
	if err != nil {
		return nil, fmt.Errorf("shush: open output %q: %w", path, err)
	}
	return &resolvedSink{w: f, closer: f}, nil
}

type writerSink struct {
	w io.Writer
}

func (s writerSink) resolve(billy.Filesystem, io.Writer) (*resolvedSink, error) {
	return &resolvedSink{w: s.w}, nil
}

// joinSink is the internal sentinel stored for standard error by Join.
// The executor resolves it to the same destination as the stage's
// standard output.
type joinSink struct{}

func (joinSink) resolve(_ billy.Filesystem, ambient io.Writer) (*resolvedSink, error) {
	return &resolvedSink{w: ambient}, nil
}
