package generic

import "go.uber.org/multierr"

// MultiHandler fans a record out to multiple handlers
type MultiHandler struct {
	handlers []Handler
}

// NewMultiHandler creates a new multi-handler
func NewMultiHandler(handlers ...Handler) *MultiHandler {
	return &MultiHandler{handlers: handlers}
}

// Handle delivers the record to every child handler; errors are
// combined so one failing sink does not hide the others.
func (h *MultiHandler) Handle(rec *Record) error {
	var err error
	for _, child := range h.handlers {
		err = multierr.Append(err, child.Handle(rec))
	}
	return err
}

// Close closes all child handlers
func (h *MultiHandler) Close() error {
	var err error
	for _, child := range h.handlers {
		err = multierr.Append(err, child.Close())
	}
	return err
}
