package diag

import (
	"sort"
	"strings"
	"sync"

	"github.com/treelog/treelog/core"
)

// store holds one goroutine's diagnostic state. It is created on first
// access and only ever touched by its owning goroutine.
type store struct {
	stack       []string
	mdc         map[string]string
	initialized bool
}

var (
	stores sync.Map // goroutine id -> *store

	// initFuncs is the process-wide list of MDC initializers; each
	// runs at most once per goroutine, in registration order.
	initMu    sync.Mutex
	initFuncs []func()
)

// current returns the calling goroutine's store, creating it on first
// use.
func current() *store {
	id := goid()
	if s, ok := stores.Load(id); ok {
		return s.(*store)
	}
	s := &store{mdc: make(map[string]string, 4)}
	stores.Store(id, s)
	return s
}

// runInit applies the registered MDC initializers to the calling
// goroutine's store, once.
func runInit(s *store) {
	if s.initialized {
		return
	}
	s.initialized = true
	initMu.Lock()
	funcs := make([]func(), len(initFuncs))
	copy(funcs, initFuncs)
	initMu.Unlock()
	for _, f := range funcs {
		f()
	}
}

// PushContext appends a normalized component name to the calling
// goroutine's context stack. A name that normalizes to the empty string
// is ignored.
func PushContext(name string) {
	name = core.NormalizeName(name)
	if name == "" {
		return
	}
	s := current()
	s.stack = append(s.stack, name)
}

// PopContext removes the most recently pushed component name. Popping
// an empty stack is a no-op, not an error.
func PopContext() {
	s := current()
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
}

// CurrentName returns the hierarchical logger name formed by the
// calling goroutine's context stack. An empty stack yields the root
// name "".
func CurrentName() string {
	s := current()
	return strings.Join(s.stack, ".")
}

// MDC stores a key/value pair in the calling goroutine's diagnostic
// map. The value is coerced to text. The first MDC access on a
// goroutine runs the registered initializers before the store operation
// proceeds.
func MDC(key string, value interface{}) {
	s := current()
	runInit(s)
	s.mdc[key] = core.Stringify(value)
}

// MDCGet returns the value stored under key, or the empty string when
// the key is absent.
func MDCGet(key string) string {
	return current().mdc[key]
}

// MDCRemove deletes the value stored under key. An absent key is not an
// error.
func MDCRemove(key string) {
	delete(current().mdc, key)
}

// MDCRegisterInit appends f to the process-wide initializer list. The
// function is also invoked immediately in the registering goroutine,
// which is thereby marked initialized; goroutines that have already run
// their initializers do not pick up functions registered later.
func MDCRegisterInit(f func()) {
	initMu.Lock()
	initFuncs = append(initFuncs, f)
	initMu.Unlock()

	s := current()
	s.initialized = true
	f()
}

// Snapshot returns a copy of the calling goroutine's diagnostic map,
// suitable for attaching to a record.
func Snapshot() map[string]string {
	s := current()
	runInit(s)
	if len(s.mdc) == 0 {
		return nil
	}
	out := make(map[string]string, len(s.mdc))
	for k, v := range s.mdc {
		out[k] = v
	}
	return out
}

// RenderMDC renders a diagnostic map as "{k1=v1, k2=v2}" with keys in
// sorted order.
func RenderMDC(mdc map[string]string) string {
	if len(mdc) == 0 {
		return "{}"
	}
	keys := make([]string, 0, len(mdc))
	for k := range mdc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(mdc[k])
	}
	b.WriteByte('}')
	return b.String()
}

// Release drops the calling goroutine's diagnostic store. Long-lived
// worker pools call this when a goroutine exits so the slot table does
// not grow with goroutine turnover.
func Release() {
	stores.Delete(goid())
}
