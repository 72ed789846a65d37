package generic

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/treelog/treelog/core"
	"github.com/treelog/treelog/formatter"
)

// FileHandler writes records to a file with rotation support
type FileHandler struct {
	filename        string
	file            *os.File
	formatter       formatter.Formatter
	writerFormatter formatter.WriterFormatter
	async           bool
	queue           chan *Record
	wg              sync.WaitGroup
	closed          chan struct{}
	mu              sync.Mutex
	maxSize         int64
	maxBackups      int
	rotateInterval  time.Duration
	currentSize     int64
	lastRotateTime  time.Time
	overflowPolicy  map[int]OverflowPolicy
	blockTimeout    time.Duration
	stats           *Stats
	drainTimeout    time.Duration
}

// FileConfig holds configuration for the file handler
type FileConfig struct {
	// Filename is the path to the log file
	Filename string
	// Formatter to use (default: TextFormatter)
	Formatter formatter.Formatter
	// Async enables asynchronous delivery
	Async bool
	// BufferSize is the size of the async queue (default: 1000)
	BufferSize int
	// MaxSize is the maximum size in bytes before rotation (0 = no size rotation)
	MaxSize int64
	// MaxBackups is the maximum number of old log files to retain (0 = keep all)
	MaxBackups int
	// RotateInterval is the interval for time-based rotation (0 = no interval rotation)
	RotateInterval time.Duration
	// OverflowPolicy defines per-level overflow behavior (default: DefaultLevelPolicy)
	OverflowPolicy map[int]OverflowPolicy
	// BlockTimeout is the timeout for the blocking overflow policy (default: 100ms)
	BlockTimeout time.Duration
	// DrainTimeout is the timeout for draining the queue on Close (default: 5s)
	DrainTimeout time.Duration
}

// NewFileHandler creates a new file handler
func NewFileHandler(cfg FileConfig) (*FileHandler, error) {
	if cfg.Filename == "" {
		return nil, fmt.Errorf("generic: filename is required")
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

	dir := filepath.Dir(cfg.Filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(cfg.Filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}

	h := &FileHandler{
		filename:       cfg.Filename,
		file:           file,
		formatter:      cfg.Formatter,
		async:          cfg.Async,
		maxSize:        cfg.MaxSize,
		maxBackups:     cfg.MaxBackups,
		rotateInterval: cfg.RotateInterval,
		currentSize:    info.Size(),
		lastRotateTime: time.Now(),
		closed:         make(chan struct{}),
		overflowPolicy: cfg.OverflowPolicy,
		blockTimeout:   cfg.BlockTimeout,
		stats:          NewStats(),
		drainTimeout:   cfg.DrainTimeout,
	}

	h.writerFormatter, _ = cfg.Formatter.(formatter.WriterFormatter)

	if h.async {
		h.queue = make(chan *Record, cfg.BufferSize)
		h.wg.Add(1)
		go h.process()
	}

	return h, nil
}

// Handle processes a record
func (h *FileHandler) Handle(rec *Record) error {
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
		case <-time.After(h.blockTimeout):
			h.stats.IncrementBlocked()
			return h.write(rec)
		case <-h.closed:
			return h.write(rec)
		}

	case DropOldest:
		select {
		case h.queue <- rec:
			return nil
		default:
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
func (h *FileHandler) write(rec *Record) error {
	native := rec.Native()
	data, err := h.formatter.Format(native)
	core.PutRecord(native)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.rotateIfNeeded(); err != nil {
		return err
	}

	n, err := h.file.Write(data)
	if err == nil {
		h.currentSize += int64(n)
		h.stats.IncrementProcessed()
	}

	return err
}

// rotateIfNeeded checks and performs rotation if needed
func (h *FileHandler) rotateIfNeeded() error {
	needRotate := false

	if h.maxSize > 0 && h.currentSize >= h.maxSize {
		needRotate = true
	}

	if h.rotateInterval > 0 && time.Since(h.lastRotateTime) >= h.rotateInterval {
		needRotate = true
	}

	if !needRotate {
		return nil
	}

	return h.rotate()
}

// rotate performs the actual file rotation
func (h *FileHandler) rotate() error {
	if err := h.file.Sync(); err != nil {
		return err
	}
	if err := h.file.Close(); err != nil {
		return err
	}

	timestamp := time.Now().Format("2006-01-02T15-04-05")
	rotatedName := fmt.Sprintf("%s.%s", h.filename, timestamp)

	if err := os.Rename(h.filename, rotatedName); err != nil {
		// If rename fails, try to reopen the original file
		file, openErr := os.OpenFile(h.filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if openErr != nil {
			return fmt.Errorf("rotation failed: %v, reopen failed: %v", err, openErr)
		}
		h.file = file
		return err
	}

	if h.maxBackups > 0 {
		h.cleanupOldBackups()
	}

	file, err := os.OpenFile(h.filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}

	h.file = file
	h.currentSize = 0
	h.lastRotateTime = time.Now()

	return nil
}

// cleanupOldBackups removes old backup files based on MaxBackups
func (h *FileHandler) cleanupOldBackups() {
	dir := filepath.Dir(h.filename)
	base := filepath.Base(h.filename)

	pattern := filepath.Join(dir, base+".*")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return
	}

	var backups []string
	for _, match := range matches {
		if strings.HasPrefix(filepath.Base(match), base+".") {
			backups = append(backups, match)
		}
	}

	// Sort by modification time (oldest first)
	sort.Slice(backups, func(i, j int) bool {
		infoI, errI := os.Stat(backups[i])
		infoJ, errJ := os.Stat(backups[j])
		if errI != nil || errJ != nil {
			return false
		}
		return infoI.ModTime().Before(infoJ.ModTime())
	})

	if len(backups) > h.maxBackups {
		toRemove := backups[:len(backups)-h.maxBackups]
		for _, file := range toRemove {
			if err := os.Remove(file); err != nil {
				return
			}
		}
	}
}

// process handles async delivery
func (h *FileHandler) process() {
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
					break drainLoop
				}
			}
			return
		}
	}
}

// Stats returns a snapshot of the current statistics
func (h *FileHandler) Stats() Snapshot {
	return h.stats.GetSnapshot()
}

// Close closes the handler
func (h *FileHandler) Close() error {
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

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.file != nil {
		syncErr := h.file.Sync()
		closeErr := h.file.Close()
		h.file = nil
		if syncErr != nil {
			return syncErr
		}
		return closeErr
	}

	return nil
}
