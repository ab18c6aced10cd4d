package shush

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
)

// Source is the origin of a pipeline's standard input. The set of
// implementations is closed: raw text, raw bytes, a filesystem path,
// and an already-open reader. An absent source means the parent
// process's standard input is inherited.
type Source interface {
	// open resolves the source to an input handle. Handles opened here
	// are owned by the execution engine and released as soon as the
	// stage consuming them has been spawned.
	open(fs billy.Filesystem) (*ownedReader, error)
}

// Text supplies a string as standard input.
func Text(s string) Source { return textSource(s) }

// Bytes supplies raw bytes as standard input.
func Bytes(b []byte) Source { return bytesSource(b) }

// FromFile supplies the contents of the named file as standard input.
// The file is opened read-only through the shell's filesystem when the
// pipeline runs. Relative paths are resolved against the current
// working directory of the calling process.
func FromFile(path string) Source { return fileSource(path) }

// FromReader supplies an already-open reader as standard input.
// If the reader is an io.Closer the engine closes it after the stage
// consuming it has been spawned.
func FromReader(r io.Reader) Source { return readerSource{r} }

type textSource string

func (s textSource) open(billy.Filesystem) (*ownedReader, error) {
	return &ownedReader{r: strings.NewReader(string(s)), owned: true}, nil
}

type bytesSource []byte

func (s bytesSource) open(billy.Filesystem) (*ownedReader, error) {
	return &ownedReader{r: bytes.NewReader(s), owned: true}, nil
}

type fileSource string

func (s fileSource) open(fs billy.Filesystem) (*ownedReader, error) {
	path := string(s)
	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("shush: resolve input path %q: %w", path, err)
		}
		path = abs
	}
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("shush: open input %q: %w", path, err)
	}
	return &ownedReader{r: f, owned: true}, nil
}

type readerSource struct {
	r io.Reader
}

func (s readerSource) open(billy.Filesystem) (*ownedReader, error) {
	return &ownedReader{r: s.r, owned: true}, nil
}
