package core

import (
	"sync"
	"sync/atomic"
	"time"
	"unsafe"
)

var (
	coarseClockOnce sync.Once
	coarseNow       unsafe.Pointer // *time.Time
)

// StartCoarseClock starts the background goroutine that caches
// time.Now() every 500µs. It is safe to call multiple times; the
// goroutine is started exactly once and runs for the lifetime of the
// process, which is intentional because logging typically spans the
// entire application lifecycle.
func StartCoarseClock() {
	coarseClockOnce.Do(func() {
		t := time.Now()
		atomic.StorePointer(&coarseNow, unsafe.Pointer(&t))
		go func() {
			ticker := time.NewTicker(500 * time.Microsecond)
			for range ticker.C {
				t := time.Now()
				atomic.StorePointer(&coarseNow, unsafe.Pointer(&t))
			}
		}()
	})
}

// Now returns the cached coarse time when the coarse clock has been
// started, and time.Now() otherwise. Record timestamps go through Now
// so high-volume emitters can trade timestamp precision for speed.
func Now() time.Time {
	if p := atomic.LoadPointer(&coarseNow); p != nil {
		return *(*time.Time)(p)
	}
	return time.Now()
}
