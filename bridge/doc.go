// Package bridge routes records between the native structured engine
// and the generic facility.
//
// The bridge has two states. In the direct state (the default) native
// records go to the engine's own sinks. In the bridged state they are
// translated to the generic scale and dispatched into the generic
// facility at the logger of the same name, bypassing the engine
// entirely.
//
// The NativeHandler adapter is the path in the other direction: it is
// attached to generic loggers and emits their records into the engine.
// While the bridge is in the bridged state the adapter must not
// re-inject records it may itself have caused, so it applies a
// loop-prevention heuristic based on the target logger's other handlers
// and ancestor propagation. The heuristic is approximate: in hierarchies
// with three or more intermediate loggers carrying mixed
// handler/propagation configurations it can both drop a message that
// had no other path and duplicate one that did. This is a documented
// tradeoff, not a defect to be corrected silently.
package bridge
