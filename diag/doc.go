// Package diag implements the goroutine-scoped diagnostic state that is
// attached to every emitted record: the pushed context-name stack and
// the mapped diagnostic context (MDC). Both structures are owned by a
// single goroutine and are never shared, so they need no locking of
// their own; only the slot table that maps goroutine ids to stores is
// synchronized.
package diag
