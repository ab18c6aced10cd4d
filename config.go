package shush

import (
	"fmt"
	"io"
	"os"
	"sort"
)

// Recognized launch-parameter keys. Arbitrary spawn parameters are
// attached through the generic string-keyed Set path; these two-letter
// constants are the closed registry it consults.
const (
	keyDir    = "dir"
	keyEnv    = "env"
	keyStdin  = "stdin"
	keyStdout = "stdout"
	keyStderr = "stderr"
)

// configEntry is one launch parameter binding.
type configEntry struct {
	key   string
	value any
}

// Config is an immutable accumulator of process-spawn parameters:
// working directory, environment, and stream redirections. Combining
// configurations follows last-write-wins on key collision, with the
// overridden key keeping its original position. Absence of a
// redirection key means the parent process's stream is inherited.
type Config struct {
	entries []configEntry
}

// with returns a new Config with key bound to value.
func (c Config) with(key string, value any) Config {
	entries := make([]configEntry, len(c.entries))
	copy(entries, c.entries)
	for i := range entries {
		if entries[i].key == key {
			entries[i].value = value
			return Config{entries: entries}
		}
	}
	return Config{entries: append(entries, configEntry{key: key, value: value})}
}

// lookup returns the value bound to key, if any.
func (c Config) lookup(key string) (any, bool) {
	for _, e := range c.entries {
		if e.key == key {
			return e.value, true
		}
	}
	return nil, false
}

// mergeEnv returns a new Config whose environment mapping is the
// current one with env merged over it, new keys winning on collision.
func (c Config) mergeEnv(env map[string]string) Config {
	merged := make(map[string]string, len(env))
	if existing, ok := c.lookup(keyEnv); ok {
		for k, v := range existing.(map[string]string) {
			merged[k] = v
		}
	}
	for k, v := range env {
		merged[k] = v
	}
	return c.with(keyEnv, merged)
}

func (c Config) dir() string {
	if v, ok := c.lookup(keyDir); ok {
		return v.(string)
	}
	return ""
}

func (c Config) env() map[string]string {
	if v, ok := c.lookup(keyEnv); ok {
		return v.(map[string]string)
	}
	return nil
}

func (c Config) stdin() Source {
	if v, ok := c.lookup(keyStdin); ok {
		return v.(Source)
	}
	return nil
}

func (c Config) stdout() Sink {
	if v, ok := c.lookup(keyStdout); ok {
		return v.(Sink)
	}
	return nil
}

func (c Config) stderr() Sink {
	if v, ok := c.lookup(keyStderr); ok {
		return v.(Sink)
	}
	return nil
}

// environ renders the configured environment for spawning: nil when
// nothing is configured (inherit the parent environment unchanged),
// otherwise the parent environment with the configured mapping merged
// over it in sorted key order.
func (c Config) environ() []string {
	env := c.env()
	if len(env) == 0 {
		return nil
	}
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := os.Environ()
	for _, k := range keys {
		out = append(out, k+"="+env[k])
	}
	return out
}

// appliers maps recognized launch-parameter keys to functions that
// validate and normalize the values accepted by the generic Set path.
// Unknown keys and invalid values are programmer mistakes and fail
// fast.
var appliers = map[string]func(any) (any, error){
	keyDir: func(v any) (any, error) {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("want string, got %T", v)
		}
		return s, nil
	},
	keyEnv: func(v any) (any, error) {
		m, ok := v.(map[string]string)
		if !ok {
			return nil, fmt.Errorf("want map[string]string, got %T", v)
		}
		copied := make(map[string]string, len(m))
		for k, val := range m {
			copied[k] = val
		}
		return copied, nil
	},
	keyStdin: func(v any) (any, error) {
		switch x := v.(type) {
		case Source:
			return x, nil
		case string:
			return Text(x), nil
		case []byte:
			return Bytes(x), nil
		case io.Reader:
			return FromReader(x), nil
		default:
			return nil, fmt.Errorf("want Source, string, []byte, or io.Reader, got %T", v)
		}
	},
	keyStdout: applySink,
	keyStderr: applySink,
}

func applySink(v any) (any, error) {
	switch x := v.(type) {
	case Sink:
		return x, nil
	case string:
		return ToFile(x), nil
	case io.Writer:
		return ToWriter(x), nil
	default:
		return nil, fmt.Errorf("want Sink, string, or io.Writer, got %T", v)
	}
}

// set routes a generic launch parameter through the applier registry,
// panicking with a *ConfigError on unknown keys or invalid values.
func (c Config) set(key string, value any) Config {
	apply, ok := appliers[key]
	if !ok {
		panic(&ConfigError{Op: "Set", Reason: fmt.Sprintf("unknown launch parameter %q", key)})
	}
	normalized, err := apply(value)
	if err != nil {
		panic(&ConfigError{Op: "Set", Reason: fmt.Sprintf("invalid value for %q: %v", key, err)})
	}
	return c.with(key, normalized)
}
