package core

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap/zapcore"
)

// Level represents message severity on the native scale. Native levels
// are spaced 1000 apart so that intermediate values can be used for
// fine-grained thresholds.
type Level int

const (
	TraceLevel Level = 5000
	DebugLevel Level = 10000
	InfoLevel  Level = 20000
	WarnLevel  Level = 30000
	ErrorLevel Level = 40000
	FatalLevel Level = 50000
)

// DefaultLevel is the effective level used when neither a logger nor any
// of its ancestors carries an explicit level.
const DefaultLevel = InfoLevel

// Generic levels mirror the scale of the generic logging facility. The
// generic scale has no native TRACE; 5 is used as an approximation.
const (
	GenericTrace = 5
	GenericDebug = 10
	GenericInfo  = 20
	GenericWarn  = 30
	GenericError = 40
	GenericFatal = 50
)

// ToGeneric translates a native level to the generic scale using integer
// floor division. The six canonical levels map onto 5, 10, 20, 30, 40
// and 50.
func ToGeneric(l Level) int {
	return int(l) / 1000
}

// FromGeneric translates a generic level to the native scale. The
// round trip generic -> native -> generic is exact for the canonical
// levels; the opposite direction is not, because intermediate native
// values are floored by ToGeneric. This asymmetry is intentional.
func FromGeneric(l int) Level {
	return Level(l * 1000)
}

// String returns the canonical level name, or the numeric value for
// levels between the canonical steps.
func (l Level) String() string {
	switch l {
	case TraceLevel:
		return "TRACE"
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	default:
		return "LEVEL_" + strconv.Itoa(int(l))
	}
}

// ParseLevel converts a level name to a Level. Unknown names are a
// configuration-time error and are reported to the caller.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return TraceLevel, nil
	case "DEBUG":
		return DebugLevel, nil
	case "INFO":
		return InfoLevel, nil
	case "WARN", "WARNING":
		return WarnLevel, nil
	case "ERROR":
		return ErrorLevel, nil
	case "FATAL":
		return FatalLevel, nil
	default:
		return 0, fmt.Errorf("core: unknown level name %q", s)
	}
}

// ZapLevel maps a native level onto the zapcore scale used by the
// engine. zap has no trace level, so TRACE collapses into DEBUG.
func (l Level) ZapLevel() zapcore.Level {
	switch {
	case l >= FatalLevel:
		return zapcore.FatalLevel
	case l >= ErrorLevel:
		return zapcore.ErrorLevel
	case l >= WarnLevel:
		return zapcore.WarnLevel
	case l >= InfoLevel:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}
