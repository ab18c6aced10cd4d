package shush

import (
	"io"
	"os"
)

// ownedReader wraps a pipeline input handle together with its
// ownership. The engine owns every handle it opened itself (pipe read
// ends, files, caller-supplied readers adopted by a source); inherited
// streams are not owned. release closes an owned handle exactly once,
// so the unwind path and the normal path can both release without
// double-close bugs.
type ownedReader struct {
	r     io.Reader
	owned bool
}

// reader returns the stream to hand to the next spawn call.
// A nil ownedReader means "inherit the parent's standard input".
func (o *ownedReader) reader() io.Reader {
	if o == nil {
		return os.Stdin
	}
	return o.r
}

// fdBacked reports whether the handle is a real file descriptor. A
// descriptor is duplicated into the child at spawn time, so the
// parent's copy can be released immediately; a plain reader is copied
// into the child concurrently by the process collaborator and must
// stay open until the consuming stage has been waited on.
func (o *ownedReader) fdBacked() bool {
	if o == nil {
		return false
	}
	_, ok := o.r.(*os.File)
	return ok
}

// release closes the handle if it is still owned. It is idempotent and
// safe on nil.
func (o *ownedReader) release() error {
	if o == nil || !o.owned {
		return nil
	}
	o.owned = false
	if c, ok := o.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
