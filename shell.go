package shush

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// engine bundles the runtime collaborators every command and pipeline
// created from a Shell executes against. It is shared by reference and
// never modified after New returns.
type engine struct {
	spawner Spawner
	fs      billy.Filesystem
	logger  *log.Logger
}

// Shell is the root launch-configuration factory. Commands and
// pipelines are created relative to a Shell and inherit its
// accumulated configuration. A Shell is an immutable value: refining
// it with WithDir, WithEnv, or an output mode produces a new Shell and
// never modifies the original, so shells may be shared freely across
// goroutines.
type Shell struct {
	config Config
	eng    *engine
}

// New creates a root Shell. Options configure the default output mode
// and the runtime collaborators (spawner, filesystem, logger).
//
//	sh := shush.New(shush.WithCapture())
//	h, err := sh.Command("echo").Args("hello").Check(ctx)
func New(opts ...Option) Shell {
	sh := Shell{
		eng: &engine{
			spawner: osSpawner{},
			fs:      osfs.New("/"),
			logger:  log.New(io.Discard),
		},
	}
	for _, opt := range opts {
		opt(&sh)
	}
	return sh
}

// Command addresses a program by name, producing a Command that
// inherits the shell's configuration.
func (s Shell) Command(program string) Command {
	return Command{program: program, config: s.config, eng: s.eng}
}

// WithDir returns a new Shell whose commands run in the given working
// directory.
func (s Shell) WithDir(dir string) Shell {
	return Shell{config: s.config.with(keyDir, dir), eng: s.eng}
}

// WithEnv returns a new Shell with env merged into the current
// environment mapping, new keys winning on collision. Spawned
// processes see the parent environment with the accumulated mapping
// applied over it.
func (s Shell) WithEnv(env map[string]string) Shell {
	return Shell{config: s.config.mergeEnv(env), eng: s.eng}
}

// Capture returns a new Shell whose commands capture standard output
// by default.
func (s Shell) Capture() Shell {
	return Shell{config: s.config.with(keyStdout, Capture), eng: s.eng}
}

// Discard returns a new Shell whose commands send standard output to
// the null device by default.
func (s Shell) Discard() Shell {
	return Shell{config: s.config.with(keyStdout, Discard), eng: s.eng}
}

// Inherit returns a new Shell whose commands pass standard output
// through to the ambient stream, the default for a fresh Shell.
func (s Shell) Inherit() Shell {
	return Shell{config: s.config.with(keyStdout, Inherit), eng: s.eng}
}
