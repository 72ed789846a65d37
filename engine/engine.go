package engine

import (
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/treelog/treelog/config"
	"github.com/treelog/treelog/core"
)

// Engine owns the native sink chain. The zero value is not usable;
// construct with New, NewWithCore or take the process Default.
type Engine struct {
	mu      sync.RWMutex
	core    zapcore.Core
	cleanup func()
}

// allLevels opens the core wide: the front end has already applied the
// effective-level gate.
type allLevels struct{}

func (allLevels) Enabled(zapcore.Level) bool { return true }

// New builds an engine from configuration: console or JSON encoding and
// one writer per output path ("stdout", "stderr" or a file path).
func New(cfg *config.Config) (*Engine, error) {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	var enc zapcore.Encoder
	if cfg.Encoding == "json" {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	paths := cfg.OutputPaths
	if len(paths) == 0 {
		paths = []string{"stderr"}
	}
	ws, cleanup, err := zap.Open(paths...)
	if err != nil {
		return nil, err
	}

	return &Engine{
		core:    zapcore.NewCore(enc, ws, allLevels{}),
		cleanup: cleanup,
	}, nil
}

// NewWithCore wraps an existing zapcore.Core; used by tests with zap's
// observer core and by callers that already own a zap pipeline.
func NewWithCore(c zapcore.Core) *Engine {
	return &Engine{core: c}
}

// Basic returns an engine with the default setup: console encoding to
// stderr.
func Basic() *Engine {
	eng, err := New(&config.Config{})
	if err != nil {
		// stderr cannot fail to open; keep the API panic-free elsewhere
		panic(err)
	}
	return eng
}

// LogMessage writes a fully-constructed record to the sink chain,
// unconditionally. The record's call-site descriptor becomes the zap
// caller; the context name and MDC snapshot ride along as fields.
func (e *Engine) LogMessage(rec *core.Record) error {
	e.mu.RLock()
	c := e.core
	e.mu.RUnlock()

	when := rec.Time
	if when.IsZero() {
		when = time.Now()
	}

	entry := zapcore.Entry{
		Level:      rec.Level.ZapLevel(),
		Time:       when,
		LoggerName: rec.Name,
		Message:    rec.Message,
	}
	if rec.Caller.Defined {
		entry.Caller = zapcore.EntryCaller{
			Defined:  true,
			File:     rec.Caller.File,
			Line:     rec.Caller.Line,
			Function: rec.Caller.Function,
		}
	}

	var fields []zapcore.Field
	if rec.Context != "" {
		fields = append(fields, zap.String("context", rec.Context))
	}
	if len(rec.MDC) > 0 {
		fields = append(fields, zap.Any("mdc", rec.MDC))
	}

	return c.Write(entry, fields)
}

// Swap replaces the sink chain, releasing the previous one. Used when
// the process is reconfigured at runtime.
func (e *Engine) Swap(next *Engine) {
	e.mu.Lock()
	oldCleanup := e.cleanup
	e.core = next.core
	e.cleanup = next.cleanup
	e.mu.Unlock()

	if oldCleanup != nil {
		oldCleanup()
	}
}

// Sync flushes buffered output.
func (e *Engine) Sync() error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.core.Sync()
}

// Close flushes and releases the sinks.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	err := e.core.Sync()
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
	return err
}

// Process-wide default engine; initialized on first use with the basic
// setup and replaced through Configure, never reached through import
// side effects.
var (
	defaultMu     sync.RWMutex
	defaultEngine *Engine
)

// Default returns the process engine, basic-configuring it on first
// use.
func Default() *Engine {
	defaultMu.RLock()
	e := defaultEngine
	defaultMu.RUnlock()
	if e != nil {
		return e
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultEngine == nil {
		defaultEngine = Basic()
	}
	return defaultEngine
}

// Configure rebuilds the process engine from configuration, swapping
// the sink chain in place so handles held by callers stay valid.
func Configure(cfg *config.Config) error {
	next, err := New(cfg)
	if err != nil {
		return err
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultEngine == nil {
		defaultEngine = next
		return nil
	}
	defaultEngine.Swap(next)
	return nil
}

// CloseDefault flushes and releases the process engine.
func CloseDefault() error {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultEngine == nil {
		return nil
	}
	err := defaultEngine.Close()
	defaultEngine = nil
	return err
}
