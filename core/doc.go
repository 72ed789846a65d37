// Package core holds the building blocks shared by every other treelog
// package: the native level scale and its translation to the generic
// scale, log records with explicit call-site descriptors, logger name
// normalization, and eager printf/template message construction.
package core
