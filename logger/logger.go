package logger

import (
	"sync/atomic"

	"github.com/treelog/treelog/bridge"
	"github.com/treelog/treelog/core"
	"github.com/treelog/treelog/diag"
)

// levelUnset is the sentinel stored while a logger has no explicit
// level and inherits from its ancestors.
const levelUnset = -1

// Logger is one node of the native hierarchy. Loggers are stateless
// apart from their optional explicit level; identity is the interned
// name.
type Logger struct {
	registry *Registry
	name     string
	level    atomic.Int64
}

func newLogger(r *Registry, name string) *Logger {
	l := &Logger{registry: r, name: name}
	l.level.Store(levelUnset)
	return l
}

// Name returns the logger's hierarchical name; "" is the root.
func (l *Logger) Name() string { return l.name }

// Child returns the logger for the normalized suffix appended below
// this logger.
func (l *Logger) Child(suffix string) *Logger {
	suffix = core.NormalizeName(suffix)
	if suffix == "" {
		return l
	}
	if l.name == "" {
		return l.registry.GetLogger(suffix)
	}
	return l.registry.GetLogger(l.name + "." + suffix)
}

// Parent returns the logger for the name truncated at the last
// separator; the parent of the root is the root itself.
func (l *Logger) Parent() *Logger {
	parent, ok := core.ParentName(l.name)
	if !ok {
		return l
	}
	return l.registry.GetLogger(parent)
}

// SetLevel sets the logger's explicit level.
func (l *Logger) SetLevel(level core.Level) {
	l.level.Store(int64(level))
}

// UnsetLevel removes the explicit level so the logger inherits again.
func (l *Logger) UnsetLevel() {
	l.level.Store(levelUnset)
}

// Level returns the explicit level; ok is false while unset.
func (l *Logger) Level() (level core.Level, ok bool) {
	v := l.level.Load()
	if v == levelUnset {
		return 0, false
	}
	return core.Level(v), true
}

// EffectiveLevel resolves the level this logger filters at: its own
// explicit level, else the nearest ancestor's, else the process
// default. Ancestors are found by truncating the name, so intermediate
// loggers that were never created do not break inheritance.
func (l *Logger) EffectiveLevel() core.Level {
	if lv, ok := l.Level(); ok {
		return lv
	}
	name := l.name
	for {
		parent, ok := core.ParentName(name)
		if !ok {
			return core.DefaultLevel
		}
		name = parent
		if anc, ok := l.registry.peek(name); ok {
			if lv, ok := anc.Level(); ok {
				return lv
			}
		}
	}
}

// IsEnabledFor reports whether a record at level would be emitted.
func (l *Logger) IsEnabledFor(level core.Level) bool {
	return level >= l.EffectiveLevel()
}

// logMsg assembles a record around an already-constructed message and
// hands it to the bridge. skip addresses the original call site for
// the record's call-site descriptor.
func (l *Logger) logMsg(level core.Level, skip int, msg string) {
	rec := core.GetRecord()
	rec.Name = l.name
	rec.Level = level
	rec.Message = msg
	rec.Caller = core.GetCaller(skip)
	rec.MDC = diag.Snapshot()
	rec.Context = diag.CurrentName()
	// Per-record emission errors are not retried; delivery is
	// best-effort once the message is constructed.
	_ = bridge.Dispatch(rec)
}

// logf interpolates printf-style and emits. Construction failures are
// programmer errors and are raised at the call site.
func (l *Logger) logf(level core.Level, skip int, format string, args []interface{}) {
	msg, err := core.Sprintf(format, args...)
	if err != nil {
		panic(err)
	}
	l.logMsg(level, skip, msg)
}

// logt interpolates template-style and emits.
func (l *Logger) logt(level core.Level, skip int, template string, args []interface{}) {
	msg, err := core.Sprintt(template, args...)
	if err != nil {
		panic(err)
	}
	l.logMsg(level, skip, msg)
}

// Log emits a plain message at level.
func (l *Logger) Log(level core.Level, msg string) {
	if !l.IsEnabledFor(level) {
		return
	}
	l.logMsg(level, 3, msg)
}

// Logf emits a printf-style message at level.
func (l *Logger) Logf(level core.Level, format string, args ...interface{}) {
	if !l.IsEnabledFor(level) {
		return
	}
	l.logf(level, 4, format, args)
}

// Logt emits a template-style message at level: "{}" placeholders
// consume positional arguments, "{name}" consumes core.Arg values.
func (l *Logger) Logt(level core.Level, template string, args ...interface{}) {
	if !l.IsEnabledFor(level) {
		return
	}
	l.logt(level, 4, template, args)
}

// Trace emits a plain TRACE message.
func (l *Logger) Trace(msg string) {
	if !l.IsEnabledFor(core.TraceLevel) {
		return
	}
	l.logMsg(core.TraceLevel, 3, msg)
}

// Debug emits a plain DEBUG message.
func (l *Logger) Debug(msg string) {
	if !l.IsEnabledFor(core.DebugLevel) {
		return
	}
	l.logMsg(core.DebugLevel, 3, msg)
}

// Info emits a plain INFO message.
func (l *Logger) Info(msg string) {
	if !l.IsEnabledFor(core.InfoLevel) {
		return
	}
	l.logMsg(core.InfoLevel, 3, msg)
}

// Warn emits a plain WARN message.
func (l *Logger) Warn(msg string) {
	if !l.IsEnabledFor(core.WarnLevel) {
		return
	}
	l.logMsg(core.WarnLevel, 3, msg)
}

// Error emits a plain ERROR message.
func (l *Logger) Error(msg string) {
	if !l.IsEnabledFor(core.ErrorLevel) {
		return
	}
	l.logMsg(core.ErrorLevel, 3, msg)
}

// Fatal emits a plain FATAL message. Emitting is all it does; process
// termination stays with the caller.
func (l *Logger) Fatal(msg string) {
	if !l.IsEnabledFor(core.FatalLevel) {
		return
	}
	l.logMsg(core.FatalLevel, 3, msg)
}

// Tracef emits a printf-style TRACE message.
func (l *Logger) Tracef(format string, args ...interface{}) {
	if !l.IsEnabledFor(core.TraceLevel) {
		return
	}
	l.logf(core.TraceLevel, 4, format, args)
}

// Debugf emits a printf-style DEBUG message.
func (l *Logger) Debugf(format string, args ...interface{}) {
	if !l.IsEnabledFor(core.DebugLevel) {
		return
	}
	l.logf(core.DebugLevel, 4, format, args)
}

// Infof emits a printf-style INFO message.
func (l *Logger) Infof(format string, args ...interface{}) {
	if !l.IsEnabledFor(core.InfoLevel) {
		return
	}
	l.logf(core.InfoLevel, 4, format, args)
}

// Warnf emits a printf-style WARN message.
func (l *Logger) Warnf(format string, args ...interface{}) {
	if !l.IsEnabledFor(core.WarnLevel) {
		return
	}
	l.logf(core.WarnLevel, 4, format, args)
}

// Errorf emits a printf-style ERROR message.
func (l *Logger) Errorf(format string, args ...interface{}) {
	if !l.IsEnabledFor(core.ErrorLevel) {
		return
	}
	l.logf(core.ErrorLevel, 4, format, args)
}

// Fatalf emits a printf-style FATAL message.
func (l *Logger) Fatalf(format string, args ...interface{}) {
	if !l.IsEnabledFor(core.FatalLevel) {
		return
	}
	l.logf(core.FatalLevel, 4, format, args)
}

// Tracet emits a template-style TRACE message.
func (l *Logger) Tracet(template string, args ...interface{}) {
	if !l.IsEnabledFor(core.TraceLevel) {
		return
	}
	l.logt(core.TraceLevel, 4, template, args)
}

// Debugt emits a template-style DEBUG message.
func (l *Logger) Debugt(template string, args ...interface{}) {
	if !l.IsEnabledFor(core.DebugLevel) {
		return
	}
	l.logt(core.DebugLevel, 4, template, args)
}

// Infot emits a template-style INFO message.
func (l *Logger) Infot(template string, args ...interface{}) {
	if !l.IsEnabledFor(core.InfoLevel) {
		return
	}
	l.logt(core.InfoLevel, 4, template, args)
}

// Warnt emits a template-style WARN message.
func (l *Logger) Warnt(template string, args ...interface{}) {
	if !l.IsEnabledFor(core.WarnLevel) {
		return
	}
	l.logt(core.WarnLevel, 4, template, args)
}

// Errort emits a template-style ERROR message.
func (l *Logger) Errort(template string, args ...interface{}) {
	if !l.IsEnabledFor(core.ErrorLevel) {
		return
	}
	l.logt(core.ErrorLevel, 4, template, args)
}

// Fatalt emits a template-style FATAL message.
func (l *Logger) Fatalt(template string, args ...interface{}) {
	if !l.IsEnabledFor(core.FatalLevel) {
		return
	}
	l.logt(core.FatalLevel, 4, template, args)
}
