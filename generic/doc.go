// Package generic implements the generic logging facility (GLF): a
// second, independently configured logging system with a parent-linked
// logger hierarchy, per-logger handler lists and a propagation flag.
// The bridge package routes records between this facility and the
// native engine.
//
// Delivery follows the handler/propagation model: a record handed to a
// logger is given to every handler attached to that logger, then to the
// handlers of each ancestor while propagation stays enabled.
package generic
