// Package shush provides a fluent, composable API for constructing
// and executing external-process pipelines, in place of hand-built
// argument vectors and manual file-descriptor plumbing.
//
// Every builder type in the package (Shell, Command, Arguments,
// Config, Pipeline) is an immutable value: configuring operations
// return new values and never modify their receiver, so partially
// built commands can be shared across goroutines and refined in
// several directions without locking. Only execution touches live
// operating-system resources.
//
// # Basic Usage
//
// Create a Shell, address a program, and run it:
//
//	sh := shush.New(shush.WithCapture())
//	h, err := sh.Command("echo").Args("hello").Check(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//	out, _ := h.Output() // "hello\n"
//
// # Arguments
//
// Positional arguments accept ordinary Go values. A false or nil value
// is dropped, enabling conditional arguments without branching at the
// call site; slices expand one level; everything else is stringified:
//
//	sh.Command("echo").Args("a", []string{"b", "c"}, shush.If(verbose, "-v"))
//
// Named options follow conventional command-line shape: boolean flags
// render as "-x" or "--foo-bar", valued single-character options as
// two tokens, and valued long options with inline "=":
//
//	sh.Command("grep").Opt("regexp", "foo") // grep --regexp=foo
//	sh.Command("python").Flag("version")    // python --version
//
// # Pipelines
//
// Commands compose into pipelines with Pipe. All stages but the last
// are spawned without waiting, each consuming its predecessor's output
// as it is produced; the engine blocks only on the terminal stage, and
// only the terminal stage's exit status determines success, matching
// shell pipe semantics:
//
//	h, err := sh.Command("echo").Args("hello").
//		Pipe(sh.Command("cat")).
//		WriteTo(ctx, shush.Capture)
//
// Input sources attach with ReadFrom (text, bytes, a file path, or an
// open reader); output sinks with WriteTo (Capture, Discard, Inherit,
// a file path via ToFile, or an open writer via ToWriter):
//
//	h, err := sh.Command("cat").
//		ReadFrom(shush.Text("hello")).
//		WriteTo(ctx, shush.ToFile("/tmp/out.txt"))
//
// # Launch Configuration
//
// Working directory and environment have dedicated accessors on both
// Shell and Command; environments merge with new keys winning:
//
//	sh = sh.WithDir("/srv").WithEnv(map[string]string{"FOO": "bar"})
//
// Everything else goes through the generic string-keyed Set path,
// which validates keys against a closed registry with last-write-wins
// semantics:
//
//	cmd := sh.Command("make").Set("stdout", shush.Discard)
//
// Join redirects standard error into the same destination as standard
// output:
//
//	h, _ := sh.Command("sh").Args("-c", "echo oops >&2").Join().Check(ctx)
//
// # Errors
//
// Environmental failures (a program that cannot be started, a
// redirection file that cannot be opened, a terminal stage exiting
// non-zero) are returned as errors; the last of these is a *ExitError
// carrying the resolved argument vector and exit status. Misuses of
// the construction API itself (setting a pipeline's input twice,
// calling Join over an explicitly configured stderr) are programmer
// mistakes and panic with a *ConfigError before any process is
// spawned.
//
// # Collaborators
//
// Process creation goes through the Spawner interface and filesystem
// access through billy.Filesystem; tests substitute both with
// WithSpawner and WithFilesystem to observe spawns or run against an
// in-memory filesystem.
package shush
