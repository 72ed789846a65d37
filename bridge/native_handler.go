package bridge

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/treelog/treelog/core"
	"github.com/treelog/treelog/engine"
	"github.com/treelog/treelog/generic"
)

// FallbackSinkError reports a failed write to the adapter's fallback
// sink. The fallback is the last delivery path for a record, so this is
// a fatal operational error surfaced to the caller.
type FallbackSinkError struct {
	Err error
}

func (e *FallbackSinkError) Error() string {
	return "bridge: fallback sink write failed: " + e.Err.Error()
}

func (e *FallbackSinkError) Unwrap() error { return e.Err }

// NativeGate answers whether the native logger of a given name accepts
// a level; the logger package's registry implements it. It keeps the
// adapter decoupled from the front end.
type NativeGate interface {
	IsEnabledFor(name string, level core.Level) bool
}

// NativeHandler is the always-present adapter that gives
// generic-facility records a path into the native engine. Attach it to
// a generic logger (typically the root) with AddHandler.
type NativeHandler struct {
	gate NativeGate
	eng  *engine.Engine

	// fallback is the guaranteed delivery path while bridged; an
	// unbuffered stream writer, os.Stderr unless overridden.
	fallbackMu sync.Mutex
	fallback   io.Writer
}

// NewNativeHandler creates the adapter. A nil eng means the process
// default engine, resolved per record so reconfiguration is picked up.
func NewNativeHandler(gate NativeGate, eng *engine.Engine) *NativeHandler {
	return &NativeHandler{gate: gate, eng: eng, fallback: os.Stderr}
}

// SetFallback overrides the fallback sink; tests use this.
func (h *NativeHandler) SetFallback(w io.Writer) {
	h.fallbackMu.Lock()
	h.fallback = w
	h.fallbackMu.Unlock()
}

// Install attaches a new adapter to the generic facility's root logger
// so every propagated record can reach the native engine.
func Install(gate NativeGate) *NativeHandler {
	h := NewNativeHandler(gate, nil)
	generic.Root().AddHandler(h)
	return h
}

// Handle processes one generic-facility record.
//
// The record is dropped when the matching native logger would not
// accept its translated level. Otherwise, while the bridge is in the
// bridged state, re-injecting into the engine risks a cycle
// (native -> generic -> adapter -> native -> ...), so the adapter first
// looks for another delivery path: any non-adapter handler on the
// target logger, or ancestor handlers reachable through propagation.
// If one exists the record is left to it; if none exists the record is
// force-emitted through the fallback sink so it is never silently
// lost. In the direct state the record goes straight into the engine.
func (h *NativeHandler) Handle(rec *generic.Record) error {
	level := core.FromGeneric(rec.LevelNumber)
	if h.gate != nil && !h.gate.IsEnabledFor(rec.Name, level) {
		return nil
	}

	if Enabled() {
		lg := generic.GetLogger(rec.Name)
		for _, other := range lg.Handlers() {
			if _, ok := other.(*NativeHandler); !ok {
				suppressedTotal.Inc()
				return nil
			}
		}
		if parent := lg.Parent(); parent != nil && parent.HasHandlers() && lg.Propagate() {
			// A NativeHandler further up will answer the same
			// question when propagation reaches it.
			suppressedTotal.Inc()
			return nil
		}
		return h.emitFallback(rec, level)
	}

	native := rec.Native()
	defer core.PutRecord(native)

	eng := h.eng
	if eng == nil {
		eng = engine.Default()
	}
	forwardedTotal.WithLabelValues(directionGenericToNative).Inc()
	return eng.LogMessage(native)
}

// emitFallback writes the record to the fallback sink in the fixed
// "name LEVEL (fallback): message" layout.
func (h *NativeHandler) emitFallback(rec *generic.Record, level core.Level) error {
	name := rec.Name
	if name == "" {
		name = "root"
	}

	h.fallbackMu.Lock()
	_, err := fmt.Fprintf(h.fallback, "%s %s (fallback): %s\n", name, level.String(), rec.Message)
	h.fallbackMu.Unlock()

	if err != nil {
		return &FallbackSinkError{Err: err}
	}
	fallbackTotal.Inc()
	return nil
}

// Close implements generic.Handler; the adapter holds no resources of
// its own.
func (h *NativeHandler) Close() error { return nil }
