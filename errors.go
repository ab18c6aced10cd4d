package shush

import (
	"fmt"
	"strings"
)

// ConfigError reports a misuse of the construction API: attaching a
// second input source to a pipeline, calling Join after stderr was
// explicitly configured, or passing an unknown key or an invalid value
// to Set. These are programmer mistakes, not runtime conditions, so
// they are raised as panics carrying a *ConfigError before any process
// is spawned.
type ConfigError struct {
	// Op is the builder operation that was misused.
	Op string

	// Reason describes the mistake.
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("shush: %s: %s", e.Op, e.Reason)
}

// ExitError reports that the terminal stage of a pipeline (or a single
// command run via a checking call) exited with non-zero status. It
// carries the resolved argument vector and the exit status for
// diagnostics, along with any output captured before the failure.
//
// Non-zero exit from a non-final stage is deliberately not surfaced;
// only the terminal stage's status determines the pipeline's outcome.
type ExitError struct {
	// Argv is the flattened argument vector of the failed stage.
	Argv []string

	// ExitCode is the status the process exited with.
	ExitCode int

	// Output is the captured standard output, when capturing.
	Output []byte

	// Stderr is the captured standard error, when capturing.
	Stderr []byte

	// Err is the underlying error from the process collaborator.
	Err error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return fmt.Sprintf("shush: command %q failed with exit code %d", strings.Join(e.Argv, " "), e.ExitCode)
}

// Unwrap returns the underlying error.
func (e *ExitError) Unwrap() error {
	return e.Err
}
