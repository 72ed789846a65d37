package logger

import (
	"sync"

	"github.com/treelog/treelog/core"
)

// Registry is the process-wide intern table of loggers. Lookups create
// loggers lazily; entries are never removed, loggers live for the
// process lifetime. Name to instance is a bijection: concurrent
// GetLogger calls with one name return the identical *Logger.
type Registry struct {
	mu      sync.RWMutex
	loggers map[string]*Logger
}

// NewRegistry creates an empty registry containing only the root
// logger.
func NewRegistry() *Registry {
	r := &Registry{loggers: make(map[string]*Logger, 16)}
	r.loggers[""] = newLogger(r, "")
	return r
}

// GetLogger returns the logger for the normalized name, creating it on
// first use. Arbitrary name strings never fail; malformed names only
// affect hierarchy placement.
func (r *Registry) GetLogger(name string) *Logger {
	name = core.NormalizeName(name)

	r.mu.RLock()
	l, ok := r.loggers[name]
	r.mu.RUnlock()
	if ok {
		return l
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.loggers[name]; ok {
		return l
	}
	l = newLogger(r, name)
	r.loggers[name] = l
	return l
}

// Root returns the root logger "".
func (r *Registry) Root() *Logger {
	return r.GetLogger("")
}

// peek returns the logger for an already-normalized name without
// creating it.
func (r *Registry) peek(name string) (*Logger, bool) {
	r.mu.RLock()
	l, ok := r.loggers[name]
	r.mu.RUnlock()
	return l, ok
}

// IsEnabledFor reports whether the named logger accepts level. It makes
// the registry usable as the bridge's native gate.
func (r *Registry) IsEnabledFor(name string, level core.Level) bool {
	return r.GetLogger(name).IsEnabledFor(level)
}

// defaultRegistry is the process registry behind the package-level API.
// It is initialized once here and only reached through Default and the
// exported functions.
var defaultRegistry = NewRegistry()

// Default returns the process registry.
func Default() *Registry {
	return defaultRegistry
}
