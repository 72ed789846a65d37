package generic

// Handler delivers records attached to a logger. Implementations must
// tolerate concurrent Handle calls.
type Handler interface {
	// Handle processes a record
	Handle(rec *Record) error

	// Close closes the handler and releases resources
	Close() error
}
