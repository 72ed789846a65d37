// Package config loads treelog configuration from YAML with
// environment-variable overrides, and can watch a configuration file
// for changes. Configuration-time errors (unreadable files, malformed
// YAML, unknown level names) are surfaced synchronously to the
// configuring caller.
package config
