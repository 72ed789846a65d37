// Package engine is the native structured engine (NSE): the sink chain
// that native records are written to when the bridge is in its direct
// state. It is a thin owner of a zapcore.Core; level filtering has
// already happened in the front end, so the engine writes every record
// it is handed (forced-log semantics).
package engine
