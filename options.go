package shush

import (
	"github.com/charmbracelet/log"
	"github.com/go-git/go-billy/v5"
)

// Option configures a Shell at creation time. Options set the defaults
// commands and pipelines inherit; per-command settings always override
// them.
type Option func(*Shell)

// WithCapture makes capturing standard output the shell's default
// sink.
func WithCapture() Option {
	return func(s *Shell) {
		s.config = s.config.with(keyStdout, Capture)
	}
}

// WithDiscard makes the null device the shell's default standard
// output sink.
func WithDiscard() Option {
	return func(s *Shell) {
		s.config = s.config.with(keyStdout, Discard)
	}
}

// WithEnv merges env into the shell's environment mapping.
func WithEnv(env map[string]string) Option {
	return func(s *Shell) {
		s.config = s.config.mergeEnv(env)
	}
}

// WithDir sets the shell's working directory.
func WithDir(dir string) Option {
	return func(s *Shell) {
		s.config = s.config.with(keyDir, dir)
	}
}

// WithSpawner replaces the process-creation collaborator. Tests use
// this to observe or fake spawns without starting real processes.
func WithSpawner(spawner Spawner) Option {
	return func(s *Shell) {
		s.eng = &engine{spawner: spawner, fs: s.eng.fs, logger: s.eng.logger}
	}
}

// WithFilesystem replaces the filesystem used to open path sources and
// create path sinks. The default is the local filesystem.
func WithFilesystem(fs billy.Filesystem) Option {
	return func(s *Shell) {
		s.eng = &engine{spawner: s.eng.spawner, fs: fs, logger: s.eng.logger}
	}
}

// WithLogger sets the logger used for debug-level spawn tracing. The
// default logger discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(s *Shell) {
		s.eng = &engine{spawner: s.eng.spawner, fs: s.eng.fs, logger: logger}
	}
}
