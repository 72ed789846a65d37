package generic

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/treelog/treelog/core"
)

// captureHandler records everything handed to it.
type captureHandler struct {
	mu   sync.Mutex
	recs []*Record
	err  error
}

func (c *captureHandler) Handle(rec *Record) error {
	c.mu.Lock()
	c.recs = append(c.recs, rec)
	c.mu.Unlock()
	return c.err
}

func (c *captureHandler) Close() error { return nil }

func (c *captureHandler) records() []*Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Record, len(c.recs))
	copy(out, c.recs)
	return out
}

func TestGetLoggerInterned(t *testing.T) {
	a := GetLogger("intern.x.y")
	b := GetLogger(" intern..x.y ")
	if a != b {
		t.Error("GetLogger returned distinct loggers for one normalized name")
	}
	if a.Name() != "intern.x.y" {
		t.Errorf("Name = %q", a.Name())
	}
	if a.Parent() != GetLogger("intern.x") {
		t.Error("parent link does not reach the interned ancestor")
	}
	if GetLogger("") != Root() {
		t.Error("GetLogger(\"\") is not the root")
	}
}

func TestEffectiveLevelInheritance(t *testing.T) {
	parent := GetLogger("inherit.parent")
	child := GetLogger("inherit.parent.child")

	// No explicit levels anywhere below root: fall back to WARN.
	if got := child.EffectiveLevel(); got != core.GenericWarn {
		t.Errorf("EffectiveLevel with no explicit level = %d", got)
	}

	parent.SetLevel(core.GenericDebug)
	if got := child.EffectiveLevel(); got != core.GenericDebug {
		t.Errorf("EffectiveLevel after parent set = %d", got)
	}
	if !child.IsEnabledFor(core.GenericInfo) {
		t.Error("child not enabled for INFO after parent DEBUG")
	}

	child.SetLevel(core.GenericError)
	if child.IsEnabledFor(core.GenericWarn) {
		t.Error("child enabled for WARN with own ERROR threshold")
	}
}

func TestLogFiltersByLevel(t *testing.T) {
	l := GetLogger("filter.node")
	l.SetLevel(core.GenericWarn)
	l.SetPropagate(false)
	cap := &captureHandler{}
	l.AddHandler(cap)

	if err := l.Info("suppressed"); err != nil {
		t.Fatalf("Info: %v", err)
	}
	if err := l.Error("kept %d", 1); err != nil {
		t.Fatalf("Error: %v", err)
	}

	recs := cap.records()
	if len(recs) != 1 {
		t.Fatalf("delivered %d records, want 1", len(recs))
	}
	if recs[0].Message != "kept 1" || recs[0].LevelNumber != core.GenericError {
		t.Errorf("record = %+v", recs[0])
	}
}

func TestLogCapturesCallSite(t *testing.T) {
	l := GetLogger("callsite.node")
	l.SetLevel(core.GenericDebug)
	l.SetPropagate(false)
	cap := &captureHandler{}
	l.AddHandler(cap)

	if err := l.Debug("where am I"); err != nil {
		t.Fatalf("Debug: %v", err)
	}
	recs := cap.records()
	if len(recs) != 1 {
		t.Fatalf("delivered %d records", len(recs))
	}
	if recs[0].File != "logger_test.go" {
		t.Errorf("File = %q, want logger_test.go", recs[0].File)
	}
	if !strings.Contains(recs[0].Function, "TestLogCapturesCallSite") {
		t.Errorf("Function = %q", recs[0].Function)
	}
	if recs[0].Line <= 0 {
		t.Errorf("Line = %d", recs[0].Line)
	}
}

func TestHandleBypassesLevel(t *testing.T) {
	l := GetLogger("bypass.node")
	l.SetLevel(core.GenericFatal)
	l.SetPropagate(false)
	cap := &captureHandler{}
	l.AddHandler(cap)

	rec := &Record{Name: l.Name(), LevelNumber: core.GenericDebug, Message: "direct"}
	if err := l.Handle(rec); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(cap.records()) != 1 {
		t.Error("Handle filtered by level; it must deliver unconditionally")
	}
}

func TestPropagation(t *testing.T) {
	parent := GetLogger("prop.parent")
	child := GetLogger("prop.parent.child")
	parent.SetPropagate(false)
	parentCap := &captureHandler{}
	childCap := &captureHandler{}
	parent.AddHandler(parentCap)
	child.AddHandler(childCap)

	rec := &Record{Name: child.Name(), LevelNumber: core.GenericError, Message: "up"}
	if err := child.Handle(rec); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(childCap.records()) != 1 || len(parentCap.records()) != 1 {
		t.Errorf("delivery = child %d, parent %d, want 1/1",
			len(childCap.records()), len(parentCap.records()))
	}

	child.SetPropagate(false)
	if err := child.Handle(rec); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(parentCap.records()) != 1 {
		t.Error("record propagated past a non-propagating logger")
	}
	if len(childCap.records()) != 2 {
		t.Error("local handler skipped after propagation disabled")
	}
}

func TestHasHandlers(t *testing.T) {
	leaf := GetLogger("hh.mid.leaf")
	mid := GetLogger("hh.mid")
	top := GetLogger("hh")
	top.SetPropagate(false)

	if leaf.HasHandlers() {
		t.Error("HasHandlers true with no handlers attached")
	}

	cap := &captureHandler{}
	top.AddHandler(cap)
	if !leaf.HasHandlers() {
		t.Error("HasHandlers false with ancestor handler reachable")
	}

	mid.SetPropagate(false)
	if leaf.HasHandlers() {
		t.Error("HasHandlers crossed a non-propagating ancestor")
	}
	top.RemoveHandler(cap)
}

func TestRemoveHandler(t *testing.T) {
	l := GetLogger("remove.node")
	l.SetPropagate(false)
	cap := &captureHandler{}
	l.AddHandler(cap)
	l.RemoveHandler(cap)
	if n := len(l.Handlers()); n != 0 {
		t.Errorf("Handlers() has %d entries after remove", n)
	}
	rec := &Record{Name: l.Name(), LevelNumber: core.GenericError, Message: "gone"}
	if err := l.Handle(rec); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(cap.records()) != 0 {
		t.Error("removed handler still received records")
	}
}

func TestHandleReturnsFirstError(t *testing.T) {
	l := GetLogger("err.node")
	l.SetPropagate(false)
	first := &captureHandler{err: errors.New("first")}
	second := &captureHandler{err: errors.New("second")}
	l.AddHandler(first)
	l.AddHandler(second)

	rec := &Record{Name: l.Name(), LevelNumber: core.GenericError, Message: "boom"}
	err := l.Handle(rec)
	if err == nil || err.Error() != "first" {
		t.Errorf("Handle error = %v, want first", err)
	}
	if len(first.records()) != 1 || len(second.records()) != 1 {
		t.Error("an erroring handler stopped delivery to the rest")
	}
}
