package logger

import (
	"github.com/treelog/treelog/core"
	"github.com/treelog/treelog/diag"
)

// Package-level convenience functions. Logging functions resolve the
// goroutine's current context name in the process registry, so pushed
// contexts direct where package-level calls land.

// GetLogger returns the named logger from the process registry.
func GetLogger(name string) *Logger {
	return defaultRegistry.GetLogger(name)
}

// GetDefaultLogger returns the logger named by the goroutine's current
// context; with no pushed context that is the root logger.
func GetDefaultLogger() *Logger {
	return defaultRegistry.GetLogger(diag.CurrentName())
}

// SetLevel sets the explicit level of the named logger.
func SetLevel(name string, level core.Level) {
	defaultRegistry.GetLogger(name).SetLevel(level)
}

// GetLevel returns the named logger's explicit level; ok is false
// while the logger inherits.
func GetLevel(name string) (core.Level, bool) {
	return defaultRegistry.GetLogger(name).Level()
}

// IsEnabledFor reports whether the named logger accepts level.
func IsEnabledFor(name string, level core.Level) bool {
	return defaultRegistry.GetLogger(name).IsEnabledFor(level)
}

// PushContext appends a component name to the goroutine's context
// stack.
func PushContext(name string) {
	diag.PushContext(name)
}

// PopContext removes the most recently pushed component name.
func PopContext() {
	diag.PopContext()
}

// MDC stores a key/value pair in the goroutine's diagnostic map.
func MDC(key string, value interface{}) {
	diag.MDC(key, value)
}

// MDCRemove deletes a key from the goroutine's diagnostic map.
func MDCRemove(key string) {
	diag.MDCRemove(key)
}

// MDCRegisterInit registers a per-goroutine MDC initializer.
func MDCRegisterInit(f func()) {
	diag.MDCRegisterInit(f)
}

// Trace logs a plain TRACE message through the current context logger.
func Trace(msg string) {
	lg := GetDefaultLogger()
	if !lg.IsEnabledFor(core.TraceLevel) {
		return
	}
	lg.logMsg(core.TraceLevel, 3, msg)
}

// Debug logs a plain DEBUG message through the current context logger.
func Debug(msg string) {
	lg := GetDefaultLogger()
	if !lg.IsEnabledFor(core.DebugLevel) {
		return
	}
	lg.logMsg(core.DebugLevel, 3, msg)
}

// Info logs a plain INFO message through the current context logger.
func Info(msg string) {
	lg := GetDefaultLogger()
	if !lg.IsEnabledFor(core.InfoLevel) {
		return
	}
	lg.logMsg(core.InfoLevel, 3, msg)
}

// Warn logs a plain WARN message through the current context logger.
func Warn(msg string) {
	lg := GetDefaultLogger()
	if !lg.IsEnabledFor(core.WarnLevel) {
		return
	}
	lg.logMsg(core.WarnLevel, 3, msg)
}

// Error logs a plain ERROR message through the current context logger.
func Error(msg string) {
	lg := GetDefaultLogger()
	if !lg.IsEnabledFor(core.ErrorLevel) {
		return
	}
	lg.logMsg(core.ErrorLevel, 3, msg)
}

// Fatal logs a plain FATAL message through the current context logger.
func Fatal(msg string) {
	lg := GetDefaultLogger()
	if !lg.IsEnabledFor(core.FatalLevel) {
		return
	}
	lg.logMsg(core.FatalLevel, 3, msg)
}

// Tracef logs a printf-style TRACE message through the current context
// logger.
func Tracef(format string, args ...interface{}) {
	lg := GetDefaultLogger()
	if !lg.IsEnabledFor(core.TraceLevel) {
		return
	}
	lg.logf(core.TraceLevel, 4, format, args)
}

// Debugf logs a printf-style DEBUG message through the current context
// logger.
func Debugf(format string, args ...interface{}) {
	lg := GetDefaultLogger()
	if !lg.IsEnabledFor(core.DebugLevel) {
		return
	}
	lg.logf(core.DebugLevel, 4, format, args)
}

// Infof logs a printf-style INFO message through the current context
// logger.
func Infof(format string, args ...interface{}) {
	lg := GetDefaultLogger()
	if !lg.IsEnabledFor(core.InfoLevel) {
		return
	}
	lg.logf(core.InfoLevel, 4, format, args)
}

// Warnf logs a printf-style WARN message through the current context
// logger.
func Warnf(format string, args ...interface{}) {
	lg := GetDefaultLogger()
	if !lg.IsEnabledFor(core.WarnLevel) {
		return
	}
	lg.logf(core.WarnLevel, 4, format, args)
}

// Errorf logs a printf-style ERROR message through the current context
// logger.
func Errorf(format string, args ...interface{}) {
	lg := GetDefaultLogger()
	if !lg.IsEnabledFor(core.ErrorLevel) {
		return
	}
	lg.logf(core.ErrorLevel, 4, format, args)
}

// Fatalf logs a printf-style FATAL message through the current context
// logger.
func Fatalf(format string, args ...interface{}) {
	lg := GetDefaultLogger()
	if !lg.IsEnabledFor(core.FatalLevel) {
		return
	}
	lg.logf(core.FatalLevel, 4, format, args)
}

// Tracet logs a template-style TRACE message through the current
// context logger.
func Tracet(template string, args ...interface{}) {
	lg := GetDefaultLogger()
	if !lg.IsEnabledFor(core.TraceLevel) {
		return
	}
	lg.logt(core.TraceLevel, 4, template, args)
}

// Debugt logs a template-style DEBUG message through the current
// context logger.
func Debugt(template string, args ...interface{}) {
	lg := GetDefaultLogger()
	if !lg.IsEnabledFor(core.DebugLevel) {
		return
	}
	lg.logt(core.DebugLevel, 4, template, args)
}

// Infot logs a template-style INFO message through the current context
// logger.
func Infot(template string, args ...interface{}) {
	lg := GetDefaultLogger()
	if !lg.IsEnabledFor(core.InfoLevel) {
		return
	}
	lg.logt(core.InfoLevel, 4, template, args)
}

// Warnt logs a template-style WARN message through the current context
// logger.
func Warnt(template string, args ...interface{}) {
	lg := GetDefaultLogger()
	if !lg.IsEnabledFor(core.WarnLevel) {
		return
	}
	lg.logt(core.WarnLevel, 4, template, args)
}

// Errort logs a template-style ERROR message through the current
// context logger.
func Errort(template string, args ...interface{}) {
	lg := GetDefaultLogger()
	if !lg.IsEnabledFor(core.ErrorLevel) {
		return
	}
	lg.logt(core.ErrorLevel, 4, template, args)
}

// Fatalt logs a template-style FATAL message through the current
// context logger.
func Fatalt(template string, args ...interface{}) {
	lg := GetDefaultLogger()
	if !lg.IsEnabledFor(core.FatalLevel) {
		return
	}
	lg.logt(core.FatalLevel, 4, template, args)
}
