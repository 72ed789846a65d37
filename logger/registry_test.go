package logger

import (
	"testing"

	"github.com/treelog/treelog/core"
)

func TestGetLoggerInterned(t *testing.T) {
	r := NewRegistry()
	a := r.GetLogger("app.db")
	b := r.GetLogger(" app..db ")
	if a != b {
		t.Error("one normalized name produced two logger instances")
	}
	if a.Name() != "app.db" {
		t.Errorf("Name = %q", a.Name())
	}
	if r.GetLogger("") != r.Root() {
		t.Error("GetLogger(\"\") is not the root")
	}
}

func TestRegistriesAreIndependent(t *testing.T) {
	r1 := NewRegistry()
	r2 := NewRegistry()
	r1.GetLogger("iso").SetLevel(core.ErrorLevel)
	if _, ok := r2.GetLogger("iso").Level(); ok {
		t.Error("level set in one registry leaked into another")
	}
}

func TestChildComposition(t *testing.T) {
	r := NewRegistry()
	c1 := r.Root().Child("child1")
	c2 := c1.Child(".child2")
	c3 := c2.Child(" .. child3")

	if c1.Name() != "child1" || c2.Name() != "child1.child2" {
		t.Errorf("names = %q, %q", c1.Name(), c2.Name())
	}
	if c3 != r.GetLogger("child1.child2.child3") {
		t.Error("composed child is not the interned logger")
	}
	if c1.Child("child2.child3") != c3 {
		t.Error("multi-segment suffix composed differently")
	}
	if c1.Child("") != c1 || c1.Child(" . ") != c1 {
		t.Error("empty suffix must return the logger itself")
	}
}

func TestParent(t *testing.T) {
	r := NewRegistry()
	l := r.GetLogger("a.b.c")
	if l.Parent().Name() != "a.b" {
		t.Errorf("Parent = %q", l.Parent().Name())
	}
	if r.Root().Parent() != r.Root() {
		t.Error("the root's parent is not the root")
	}
}

func TestEffectiveLevelDefaults(t *testing.T) {
	r := NewRegistry()
	if got := r.GetLogger("fresh.node").EffectiveLevel(); got != core.DefaultLevel {
		t.Errorf("EffectiveLevel with no explicit levels = %v", got)
	}
}

func TestEffectiveLevelInheritance(t *testing.T) {
	r := NewRegistry()
	r.Root().SetLevel(core.WarnLevel)
	child := r.GetLogger("inherit.deep.node")
	if got := child.EffectiveLevel(); got != core.WarnLevel {
		t.Errorf("EffectiveLevel = %v, want root's WARN", got)
	}

	r.GetLogger("inherit").SetLevel(core.DebugLevel)
	if got := child.EffectiveLevel(); got != core.DebugLevel {
		t.Errorf("EffectiveLevel = %v, want nearest ancestor DEBUG", got)
	}

	child.SetLevel(core.ErrorLevel)
	if got := child.EffectiveLevel(); got != core.ErrorLevel {
		t.Errorf("EffectiveLevel = %v, want own ERROR", got)
	}

	child.UnsetLevel()
	if got := child.EffectiveLevel(); got != core.DebugLevel {
		t.Errorf("EffectiveLevel after unset = %v", got)
	}
}

func TestEffectiveLevelSkipsUncreatedAncestors(t *testing.T) {
	r := NewRegistry()
	r.GetLogger("x").SetLevel(core.TraceLevel)
	// "x.y" is never created; inheritance walks name truncations, not
	// instantiated loggers.
	l := r.GetLogger("x.y.z")
	if got := l.EffectiveLevel(); got != core.TraceLevel {
		t.Errorf("EffectiveLevel = %v, want TRACE from grandparent", got)
	}
}

func TestRootLevelChangePropagates(t *testing.T) {
	r := NewRegistry()
	l := r.GetLogger("rootprop.node")
	if l.IsEnabledFor(core.DebugLevel) {
		t.Error("DEBUG enabled under the INFO default")
	}
	r.Root().SetLevel(core.DebugLevel)
	if !l.IsEnabledFor(core.DebugLevel) {
		t.Error("root level change did not reach descendants")
	}
	r.Root().UnsetLevel()
	if l.IsEnabledFor(core.DebugLevel) {
		t.Error("unsetting the root level did not restore the default")
	}
}

func TestRegistryIsEnabledFor(t *testing.T) {
	r := NewRegistry()
	r.GetLogger("gate").SetLevel(core.ErrorLevel)
	if r.IsEnabledFor("gate.child", core.WarnLevel) {
		t.Error("WARN passed an inherited ERROR threshold")
	}
	if !r.IsEnabledFor("gate.child", core.FatalLevel) {
		t.Error("FATAL blocked by an ERROR threshold")
	}
}
