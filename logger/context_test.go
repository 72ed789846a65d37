package logger

import (
	"testing"

	"github.com/treelog/treelog/core"
	"github.com/treelog/treelog/diag"
)

func TestOpenContextNesting(t *testing.T) {
	defer diag.Release()

	outer := OpenContext("job")
	if got := diag.CurrentName(); got != "job" {
		t.Errorf("CurrentName = %q", got)
	}
	if outer.Logger().Name() != "job" {
		t.Errorf("Logger().Name() = %q", outer.Logger().Name())
	}

	inner := OpenContext("stage")
	if got := diag.CurrentName(); got != "job.stage" {
		t.Errorf("nested CurrentName = %q", got)
	}
	inner.Close()
	if got := diag.CurrentName(); got != "job" {
		t.Errorf("CurrentName after inner Close = %q", got)
	}
	outer.Close()
	if got := diag.CurrentName(); got != "" {
		t.Errorf("CurrentName after outer Close = %q", got)
	}
}

func TestOpenContextEmptyName(t *testing.T) {
	defer diag.Release()

	c := OpenContext(" . ")
	if got := diag.CurrentName(); got != "" {
		t.Errorf("empty context changed the stack: %q", got)
	}
	c.Close()
	if got := diag.CurrentName(); got != "" {
		t.Errorf("closing an empty context popped something: %q", got)
	}
}

func TestOpenContextCloseIdempotent(t *testing.T) {
	defer diag.Release()

	OpenContext("once")
	c := OpenContext("twice")
	c.Close()
	c.Close()
	if got := diag.CurrentName(); got != "once" {
		t.Errorf("double Close popped twice: %q", got)
	}
	PopContext()
}

func TestOpenContextLevelRestore(t *testing.T) {
	defer diag.Release()

	lg := GetLogger("scoped.lvl")
	lg.SetLevel(core.WarnLevel)

	c := OpenContextLevel("scoped.lvl", core.TraceLevel)
	if lv, ok := c.Logger().Level(); !ok || lv != core.TraceLevel {
		t.Errorf("override level = %v, %v", lv, ok)
	}
	c.Close()
	if lv, ok := lg.Level(); !ok || lv != core.WarnLevel {
		t.Errorf("level after Close = %v, %v, want WARN restored", lv, ok)
	}
}

func TestOpenContextLevelRestoresUnset(t *testing.T) {
	defer diag.Release()

	c := OpenContextLevel("scoped.unset", core.DebugLevel)
	c.Close()
	if _, ok := GetLogger("scoped.unset").Level(); ok {
		t.Error("Close left an explicit level on a previously-unset logger")
	}
}

func TestContextClosedOnPanic(t *testing.T) {
	defer diag.Release()

	PushContext("survivor")
	func() {
		defer func() { recover() }()
		c := OpenContext("doomed")
		defer c.Close()
		panic("unwound")
	}()
	if got := diag.CurrentName(); got != "survivor" {
		t.Errorf("CurrentName after panic = %q, want survivor", got)
	}
	PopContext()
}

func TestWithTemporaryLevel(t *testing.T) {
	lg := GetLogger("temp.lvl")
	lg.SetLevel(core.InfoLevel)

	WithTemporaryLevel("temp.lvl", core.TraceLevel, func() {
		if !lg.IsEnabledFor(core.TraceLevel) {
			t.Error("temporary level not in effect inside fn")
		}
	})
	if lv, ok := lg.Level(); !ok || lv != core.InfoLevel {
		t.Errorf("level after fn = %v, %v", lv, ok)
	}
}

func TestWithTemporaryLevelRestoresOnPanic(t *testing.T) {
	lg := GetLogger("temp.panic")

	func() {
		defer func() { recover() }()
		WithTemporaryLevel("temp.panic", core.FatalLevel, func() {
			panic("inside")
		})
	}()
	if _, ok := lg.Level(); ok {
		t.Error("panic left the temporary level in place")
	}
}

func TestTraceSetAt(t *testing.T) {
	TraceSetAt("comp.sub", 2)

	for i := 0; i <= 5; i++ {
		name := "TRACE" + string(rune('0'+i)) + ".comp.sub"
		lv, ok := GetLogger(name).Level()
		if !ok {
			t.Fatalf("%s has no explicit level", name)
		}
		want := core.InfoLevel
		if i <= 2 {
			want = core.DebugLevel
		}
		if lv != want {
			t.Errorf("%s level = %v, want %v", name, lv, want)
		}
	}
}

func TestTraceSetAtRoot(t *testing.T) {
	TraceSetAt("", 0)
	if lv, _ := GetLogger("TRACE0").Level(); lv != core.DebugLevel {
		t.Errorf("TRACE0 level = %v", lv)
	}
	if lv, _ := GetLogger("TRACE5").Level(); lv != core.InfoLevel {
		t.Errorf("TRACE5 level = %v", lv)
	}
}
