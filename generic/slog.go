package generic

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/treelog/treelog/core"
)

// SlogHandler is an adapter that implements slog.Handler on top of a
// generic facility logger, so code written against log/slog feeds the
// facility (and, through the bridge adapter, can reach the native
// engine).
type SlogHandler struct {
	target *Logger
	min    slog.Level
	attrs  map[string]string
	group  string
}

// NewSlogHandler creates a slog.Handler that dispatches records to the
// given facility logger.
func NewSlogHandler(target *Logger, min slog.Level) *SlogHandler {
	return &SlogHandler{target: target, min: min}
}

// Enabled reports whether the handler handles records at the given level.
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= s.min
}

// Handle converts a slog.Record into a facility record and delivers it.
func (s *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	rec := &Record{
		Name:        s.target.Name(),
		LevelNumber: slogLevelToGeneric(record.Level),
		Message:     record.Message,
		Time:        record.Time,
	}

	if record.PC != 0 {
		frames := runtime.CallersFrames([]uintptr{record.PC})
		frame, _ := frames.Next()
		rec.File = frame.File
		rec.Function = frame.Function
		rec.Line = frame.Line
	}

	if len(s.attrs) > 0 || record.NumAttrs() > 0 {
		rec.MDC = make(map[string]string, len(s.attrs)+record.NumAttrs())
		for k, v := range s.attrs {
			rec.MDC[k] = v
		}
		record.Attrs(func(a slog.Attr) bool {
			addSlogAttr(rec.MDC, s.group, a)
			return true
		})
	}

	return s.target.Handle(rec)
}

// WithAttrs returns a new SlogHandler with additional attributes.
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make(map[string]string, len(s.attrs)+len(attrs))
	for k, v := range s.attrs {
		newAttrs[k] = v
	}
	for _, a := range attrs {
		addSlogAttr(newAttrs, s.group, a)
	}
	return &SlogHandler{target: s.target, min: s.min, attrs: newAttrs, group: s.group}
}

// WithGroup returns a new SlogHandler with the given group name; group
// members become dot-prefixed attribute keys.
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	newGroup := name
	if s.group != "" {
		newGroup = s.group + "." + name
	}
	return &SlogHandler{target: s.target, min: s.min, attrs: s.attrs, group: newGroup}
}

// addSlogAttr flattens a slog.Attr into the attribute map, prefixing
// with the group path.
func addSlogAttr(dst map[string]string, group string, a slog.Attr) {
	key := a.Key
	if group != "" {
		key = group + "." + a.Key
	}

	a.Value = a.Value.Resolve()
	if a.Value.Kind() == slog.KindGroup {
		for _, member := range a.Value.Group() {
			addSlogAttr(dst, key, member)
		}
		return
	}
	dst[key] = core.Stringify(a.Value.Any())
}

// slogLevelToGeneric maps slog levels onto the generic scale.
func slogLevelToGeneric(level slog.Level) int {
	switch {
	case level >= slog.LevelError:
		return core.GenericError
	case level >= slog.LevelWarn:
		return core.GenericWarn
	case level >= slog.LevelInfo:
		return core.GenericInfo
	case level >= slog.LevelDebug:
		return core.GenericDebug
	default:
		return core.GenericTrace
	}
}
