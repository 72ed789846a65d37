package logger

import (
	"github.com/treelog/treelog/core"
	"github.com/treelog/treelog/diag"
)

// LogContext is a scoped logging context: opening pushes a component
// name onto the goroutine's context stack and may apply a temporary
// level override to the resulting current logger. Close restores both,
// unconditionally; it is intended for defer so every exit path,
// including panics, restores. Close is idempotent.
type LogContext struct {
	name     string
	lg       *Logger
	hasLevel bool
	prev     core.Level
	prevSet  bool
	closed   bool
}

// OpenContext pushes name and returns the open context.
func OpenContext(name string) *LogContext {
	return open(name, 0, false)
}

// OpenContextLevel pushes name and applies a temporary explicit level
// to the current logger; the previous explicit level (or its absence)
// is restored on Close.
func OpenContextLevel(name string, level core.Level) *LogContext {
	return open(name, level, true)
}

func open(name string, level core.Level, hasLevel bool) *LogContext {
	c := &LogContext{name: core.NormalizeName(name), hasLevel: hasLevel}
	if c.name != "" {
		diag.PushContext(c.name)
	}
	c.lg = defaultRegistry.GetLogger(diag.CurrentName())
	if hasLevel {
		c.prev, c.prevSet = c.lg.Level()
		c.lg.SetLevel(level)
	}
	return c
}

// Logger returns the logger named by the context at open time.
func (c *LogContext) Logger() *Logger {
	return c.lg
}

// Close restores the level override and pops the context name.
// Re-closing an already-closed context is a no-op.
func (c *LogContext) Close() {
	if c.closed {
		return
	}
	c.closed = true
	if c.hasLevel {
		if c.prevSet {
			c.lg.SetLevel(c.prev)
		} else {
			c.lg.UnsetLevel()
		}
	}
	if c.name != "" {
		diag.PopContext()
	}
}

// WithTemporaryLevel runs fn with an explicit level on the named
// logger, restoring the previous explicit level (or its absence) on
// every exit path.
func WithTemporaryLevel(name string, level core.Level, fn func()) {
	lg := defaultRegistry.GetLogger(name)
	prev, prevSet := lg.Level()
	lg.SetLevel(level)
	defer func() {
		if prevSet {
			lg.SetLevel(prev)
		} else {
			lg.UnsetLevel()
		}
	}()
	fn()
}

// TraceSetAt adjusts the TRACE0..TRACE5 logger family below name so
// that trace numbers up to number log at DEBUG and the rest at INFO.
func TraceSetAt(name string, number int) {
	for i := 0; i <= 5; i++ {
		level := core.InfoLevel
		if i <= number {
			level = core.DebugLevel
		}
		traceName := "TRACE" + string(rune('0'+i))
		if name != "" {
			traceName += "." + name
		}
		defaultRegistry.GetLogger(traceName).SetLevel(level)
	}
}
