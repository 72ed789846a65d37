package generic

import (
	"sync/atomic"

	"github.com/treelog/treelog/core"
)

// OverflowPolicy defines how async handlers behave when their queue is
// full
type OverflowPolicy int

const (
	// DropNewest drops the incoming record when the queue is full
	DropNewest OverflowPolicy = iota
	// DropOldest drops the oldest queued record when the queue is full
	DropOldest
	// Block blocks the caller until space is available (with timeout)
	Block
)

// String returns the string representation of the policy
func (p OverflowPolicy) String() string {
	switch p {
	case DropNewest:
		return "DropNewest"
	case DropOldest:
		return "DropOldest"
	case Block:
		return "Block"
	default:
		return "Unknown"
	}
}

// DefaultLevelPolicy returns the default per-level overflow policies
func DefaultLevelPolicy() map[int]OverflowPolicy {
	return map[int]OverflowPolicy{
		core.GenericTrace: DropNewest,
		core.GenericDebug: DropNewest,
		core.GenericInfo:  DropNewest,
		core.GenericWarn:  DropNewest,
		core.GenericError: Block, // never drop errors silently
		core.GenericFatal: Block,
	}
}

// Stats tracks handler statistics
type Stats struct {
	dropped   [6]uint64 // indexed by level/10: TRACE=0 .. FATAL=5
	blocked   uint64
	processed uint64
}

// NewStats creates a new Stats instance
func NewStats() *Stats {
	return &Stats{}
}

func slot(level int) int {
	i := level / 10
	if i < 0 {
		i = 0
	}
	if i > 5 {
		i = 5
	}
	return i
}

// IncrementDropped atomically increments the dropped counter for a level
func (s *Stats) IncrementDropped(level int) {
	atomic.AddUint64(&s.dropped[slot(level)], 1)
}

// IncrementBlocked atomically increments the blocked counter
func (s *Stats) IncrementBlocked() {
	atomic.AddUint64(&s.blocked, 1)
}

// IncrementProcessed atomically increments the processed counter
func (s *Stats) IncrementProcessed() {
	atomic.AddUint64(&s.processed, 1)
}

// Dropped returns the dropped count for a level
func (s *Stats) Dropped(level int) uint64 {
	return atomic.LoadUint64(&s.dropped[slot(level)])
}

// Blocked returns the blocked count
func (s *Stats) Blocked() uint64 {
	return atomic.LoadUint64(&s.blocked)
}

// Processed returns the processed count
func (s *Stats) Processed() uint64 {
	return atomic.LoadUint64(&s.processed)
}

// TotalDropped returns the dropped count summed over all levels
func (s *Stats) TotalDropped() uint64 {
	var n uint64
	for i := range s.dropped {
		n += atomic.LoadUint64(&s.dropped[i])
	}
	return n
}

// Snapshot is a point-in-time copy of the counters
type Snapshot struct {
	Dropped   map[int]uint64
	Blocked   uint64
	Processed uint64
}

// GetSnapshot returns a snapshot of current statistics
func (s *Stats) GetSnapshot() Snapshot {
	return Snapshot{
		Dropped: map[int]uint64{
			core.GenericDebug: s.Dropped(core.GenericDebug),
			core.GenericInfo:  s.Dropped(core.GenericInfo),
			core.GenericWarn:  s.Dropped(core.GenericWarn),
			core.GenericError: s.Dropped(core.GenericError),
		},
		Blocked:   s.Blocked(),
		Processed: s.Processed(),
	}
}
