// Package formatter renders records into text or JSON for handlers
// that write to plain byte sinks, such as the generic facility's
// stream and file handlers.
package formatter
