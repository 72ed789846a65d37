package bridge

import (
	"sync/atomic"

	"github.com/treelog/treelog/core"
	"github.com/treelog/treelog/engine"
	"github.com/treelog/treelog/generic"
)

// forwarding is the process-wide bridge state. It is read exactly once
// per emission; the snapshot governs the whole record lifecycle even if
// another goroutine flips the state mid-call.
var forwarding atomic.Bool

// Enable switches the bridge to the bridged state: native records are
// forwarded to the generic facility instead of the engine's sinks.
func Enable() { forwarding.Store(true) }

// Disable switches the bridge back to the direct state. This is the
// default.
func Disable() { forwarding.Store(false) }

// Enabled reports the current bridge state.
func Enabled() bool { return forwarding.Load() }

// Scoped enables the bridge and returns a func restoring the previous
// state, for deferred use in tests and bounded scopes.
func Scoped() (restore func()) {
	prev := forwarding.Swap(true)
	return func() { forwarding.Store(prev) }
}

// Dispatch routes a native record that already passed its logger's
// effective-level gate. Ownership of rec transfers to Dispatch; it is
// returned to the pool before Dispatch returns. Emission errors are
// reported but records are never retried.
func Dispatch(rec *core.Record) error {
	defer core.PutRecord(rec)

	if !Enabled() {
		return engine.Default().LogMessage(rec)
	}

	grec := &generic.Record{
		Name:        rec.Name,
		LevelNumber: core.ToGeneric(rec.Level),
		Message:     rec.Message,
		File:        rec.Caller.ShortFile,
		Function:    rec.Caller.Function,
		Line:        rec.Caller.Line,
		Time:        rec.Time,
		MDC:         rec.MDC,
	}
	forwardedTotal.WithLabelValues(directionNativeToGeneric).Inc()
	return generic.GetLogger(rec.Name).Handle(grec)
}
