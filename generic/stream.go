package generic

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/treelog/treelog/core"
	"github.com/treelog/treelog/formatter"
)

// StreamHandler writes records to an io.Writer, synchronously or
// through a bounded queue with per-level overflow policies.
type StreamHandler struct {
	writer          io.Writer
	formatter       formatter.Formatter
	writerFormatter formatter.WriterFormatter
	async           bool
	queue           chan *Record
	wg              sync.WaitGroup
	closed          chan struct{}
	mu              sync.Mutex
	overflowPolicy  map[int]OverflowPolicy
	blockTimeout    time.Duration
	stats           *Stats
	drainTimeout    time.Duration
	blockTimer      *time.Timer
}

// StreamConfig holds configuration for the stream handler
type StreamConfig struct {
	// Writer to write to (default: os.Stderr)
	Writer io.Writer
	// Formatter to use (default: TextFormatter)
	Formatter formatter.Formatter
	// Async enables asynchronous delivery
	Async bool
	// BufferSize is the size of the async queue (default: 1000)
	BufferSize int
	// OverflowPolicy defines per-level overflow behavior (default: DefaultLevelPolicy)
	OverflowPolicy map[int]OverflowPolicy
	// BlockTimeout is the timeout for the blocking overflow policy (default: 100ms)
	BlockTimeout time.Duration
	// DrainTimeout is the timeout for draining the queue on Close (default: 5s)
	DrainTimeout time.Duration
}

// NewStreamHandler creates a new stream handler
func NewStreamHandler(cfg StreamConfig) *StreamHandler {
	if cfg.Writer == nil {
		cfg.Writer = os.Stderr
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewTextFormatter(formatter.Config{})
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1000
	}
	if cfg.OverflowPolicy == nil {
		cfg.OverflowPolicy = DefaultLevelPolicy()
	}
	if cfg.BlockTimeout == 0 {
		cfg.BlockTimeout = 100 * time.Millisecond
	}
	if cfg.DrainTimeout == 0 {
		cfg.DrainTimeout = 5 * time.Second
	}

	h := &StreamHandler{
		writer:         cfg.Writer,
		formatter:      cfg.Formatter,
		async:          cfg.Async,
		closed:         make(chan struct{}),
		overflowPolicy: cfg.OverflowPolicy,
		blockTimeout:   cfg.BlockTimeout,
		stats:          NewStats(),
		drainTimeout:   cfg.DrainTimeout,
		blockTimer:     newStoppedTimer(),
	}

	// Cache WriterFormatter for the no-copy path
	h.writerFormatter, _ = cfg.Formatter.(formatter.WriterFormatter)

	if h.async {
		h.queue = make(chan *Record, cfg.BufferSize)
		h.wg.Add(1)
		go h.process()
	}

	return h
}

func newStoppedTimer() *time.Timer {
	t := time.NewTimer(time.Hour)
	if !t.Stop() {
		<-t.C
	}
	return t
}

// Handle processes a record
func (h *StreamHandler) Handle(rec *Record) error {
	if !h.async {
		return h.write(rec)
	}

	policy, ok := h.overflowPolicy[rec.LevelNumber]
	if !ok {
		policy = DropNewest
	}

	switch policy {
	case Block:
		select {
		case h.queue <- rec:
			return nil
		default:
			// Queue full, arm the reusable timer
			if !h.blockTimer.Stop() {
				select {
				case <-h.blockTimer.C:
				default:
				}
			}
			h.blockTimer.Reset(h.blockTimeout)
			select {
			case h.queue <- rec:
				if !h.blockTimer.Stop() {
					select {
					case <-h.blockTimer.C:
					default:
					}
				}
				return nil
			case <-h.blockTimer.C:
				// Timeout - fall back to synchronous write
				h.stats.IncrementBlocked()
				return h.write(rec)
			case <-h.closed:
				if !h.blockTimer.Stop() {
					select {
					case <-h.blockTimer.C:
					default:
					}
				}
				return h.write(rec)
			}
		}

	case DropOldest:
		select {
		case h.queue <- rec:
			return nil
		default:
			// Queue full - drop the oldest and retry once
			select {
			case <-h.queue:
				h.stats.IncrementDropped(rec.LevelNumber)
			default:
			}
			select {
			case h.queue <- rec:
				return nil
			default:
				h.stats.IncrementDropped(rec.LevelNumber)
				return nil
			}
		}

	case DropNewest:
		fallthrough
	default:
		select {
		case h.queue <- rec:
			return nil
		default:
			h.stats.IncrementDropped(rec.LevelNumber)
			return nil
		}
	}
}

// write formats and writes a record
func (h *StreamHandler) write(rec *Record) error {
	native := rec.Native()
	defer core.PutRecord(native)

	if h.writerFormatter != nil {
		h.mu.Lock()
		err := h.writerFormatter.FormatTo(native, h.writer)
		h.mu.Unlock()
		if err == nil {
			h.stats.IncrementProcessed()
		}
		return err
	}

	data, err := h.formatter.Format(native)
	if err != nil {
		return err
	}

	h.mu.Lock()
	_, writeErr := h.writer.Write(data)
	h.mu.Unlock()

	if writeErr == nil {
		h.stats.IncrementProcessed()
	}

	return writeErr
}

// process handles async delivery
func (h *StreamHandler) process() {
	defer h.wg.Done()

	for {
		select {
		case rec := <-h.queue:
			if err := h.write(rec); err != nil {
				return
			}
		case <-h.closed:
			// Drain remaining records with timeout
			deadline := time.After(h.drainTimeout)
		drainLoop:
			for {
				select {
				case rec := <-h.queue:
					if err := h.write(rec); err != nil {
						return
					}
				case <-deadline:
					break drainLoop
				default:
					// Queue empty
					break drainLoop
				}
			}
			return
		}
	}
}

// Stats returns a snapshot of the current statistics
func (h *StreamHandler) Stats() Snapshot {
	return h.stats.GetSnapshot()
}

// Close closes the handler
func (h *StreamHandler) Close() error {
	select {
	case <-h.closed:
		return nil // Already closed
	default:
	}

	if h.async {
		close(h.closed)
		h.wg.Wait()

		h.mu.Lock()
		close(h.queue)
		h.mu.Unlock()
	}
	return nil
}
