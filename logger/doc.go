// Package logger is the treelog front end: a process-wide interned
// hierarchy of named loggers with ancestor level inheritance, scoped
// logging contexts, and package-level convenience functions that log
// through the goroutine's current context name.
//
// A log call resolves its logger in the registry, consults the
// effective level, constructs the message eagerly, snapshots the
// goroutine's diagnostic context, and hands the record to the bridge,
// which routes it to the native engine or the generic facility.
package logger
