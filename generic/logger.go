package generic

import (
	"fmt"
	"sync"
	"time"

	"github.com/treelog/treelog/core"
)

// Logger is one node of the generic facility's hierarchy. Handlers and
// the propagation flag are per-logger; delivery walks parent links.
type Logger struct {
	name   string
	parent *Logger

	mu       sync.RWMutex
	level    int // 0 = unset, inherit from parent
	handlers []Handler

	// Propagate controls whether records handed to this logger also
	// reach ancestor handlers. Guarded by mu.
	propagate bool
}

var (
	registryMu sync.Mutex
	registry   = map[string]*Logger{}
	root       = newRoot()
)

func newRoot() *Logger {
	l := &Logger{name: "", level: core.GenericWarn, propagate: true}
	registry[""] = l
	return l
}

// Root returns the facility's root logger.
func Root() *Logger {
	return root
}

// GetLogger returns the logger for the normalized name, creating it and
// any missing ancestors on first use. Loggers live for the process
// lifetime.
func GetLogger(name string) *Logger {
	name = core.NormalizeName(name)
	registryMu.Lock()
	defer registryMu.Unlock()
	return getLocked(name)
}

func getLocked(name string) *Logger {
	if l, ok := registry[name]; ok {
		return l
	}
	parentName, _ := core.ParentName(name)
	l := &Logger{
		name:      name,
		parent:    getLocked(parentName),
		propagate: true,
	}
	registry[name] = l
	return l
}

// Name returns the logger's hierarchical name; "" is the root.
func (l *Logger) Name() string { return l.name }

// Parent returns the parent logger, or nil for the root.
func (l *Logger) Parent() *Logger { return l.parent }

// SetLevel sets the logger's own threshold on the generic scale.
func (l *Logger) SetLevel(level int) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

// EffectiveLevel resolves the threshold by walking parent links until a
// logger with an explicit level is found.
func (l *Logger) EffectiveLevel() int {
	for c := l; c != nil; c = c.parent {
		c.mu.RLock()
		lv := c.level
		c.mu.RUnlock()
		if lv != 0 {
			return lv
		}
	}
	return core.GenericWarn
}

// IsEnabledFor reports whether a record at level would pass this
// logger's effective threshold.
func (l *Logger) IsEnabledFor(level int) bool {
	return level >= l.EffectiveLevel()
}

// SetPropagate controls whether records handed to this logger also
// reach ancestor handlers.
func (l *Logger) SetPropagate(p bool) {
	l.mu.Lock()
	l.propagate = p
	l.mu.Unlock()
}

// Propagate reports the propagation flag.
func (l *Logger) Propagate() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.propagate
}

// AddHandler attaches a handler to this logger.
func (l *Logger) AddHandler(h Handler) {
	l.mu.Lock()
	l.handlers = append(l.handlers, h)
	l.mu.Unlock()
}

// RemoveHandler detaches a previously attached handler.
func (l *Logger) RemoveHandler(h Handler) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, cur := range l.handlers {
		if cur == h {
			l.handlers = append(l.handlers[:i], l.handlers[i+1:]...)
			return
		}
	}
}

// Handlers returns a copy of the directly attached handler list.
func (l *Logger) Handlers() []Handler {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Handler, len(l.handlers))
	copy(out, l.handlers)
	return out
}

// HasHandlers reports whether this logger, or any ancestor reachable
// through enabled propagation, has at least one handler attached.
func (l *Logger) HasHandlers() bool {
	for c := l; c != nil; {
		c.mu.RLock()
		n := len(c.handlers)
		p := c.propagate
		c.mu.RUnlock()
		if n > 0 {
			return true
		}
		if !p {
			return false
		}
		c = c.parent
	}
	return false
}

// Handle delivers a record to this logger's handlers and, while
// propagation stays enabled, to ancestor handlers. The record is
// delivered regardless of level thresholds; callers that want
// filtering use Log. The first handler error is returned after all
// handlers ran.
func (l *Logger) Handle(rec *Record) error {
	var firstErr error
	for c := l; c != nil; {
		for _, h := range c.Handlers() {
			if err := h.Handle(rec); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		if !c.Propagate() {
			break
		}
		c = c.parent
	}
	return firstErr
}

// Log constructs a record with eager printf interpolation and delivers
// it when level passes the effective threshold.
func (l *Logger) Log(level int, format string, args ...interface{}) error {
	return l.log(level, format, args...)
}

func (l *Logger) log(level int, format string, args ...interface{}) error {
	if !l.IsEnabledFor(level) {
		return nil
	}
	// 0=GetCaller 1=log 2=Log/Debug/... 3=call site
	caller := core.GetCaller(3)
	rec := &Record{
		Name:        l.name,
		LevelNumber: level,
		Message:     fmt.Sprintf(format, args...),
		Args:        args,
		File:        caller.ShortFile,
		Function:    caller.Function,
		Line:        caller.Line,
		Time:        time.Now(),
	}
	return l.Handle(rec)
}

// Debug logs at the generic DEBUG level.
func (l *Logger) Debug(format string, args ...interface{}) error {
	return l.log(core.GenericDebug, format, args...)
}

// Info logs at the generic INFO level.
func (l *Logger) Info(format string, args ...interface{}) error {
	return l.log(core.GenericInfo, format, args...)
}

// Warn logs at the generic WARN level.
func (l *Logger) Warn(format string, args ...interface{}) error {
	return l.log(core.GenericWarn, format, args...)
}

// Error logs at the generic ERROR level.
func (l *Logger) Error(format string, args ...interface{}) error {
	return l.log(core.GenericError, format, args...)
}
