package generic

import (
	"errors"
	"testing"

	"go.uber.org/multierr"

	"github.com/treelog/treelog/core"
)

func TestMultiHandlerFanOut(t *testing.T) {
	a := &captureHandler{}
	b := &captureHandler{}
	m := NewMultiHandler(a, b)

	rec := &Record{Name: "fan", LevelNumber: core.GenericInfo, Message: "out"}
	if err := m.Handle(rec); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(a.records()) != 1 || len(b.records()) != 1 {
		t.Errorf("delivery = %d/%d, want 1/1", len(a.records()), len(b.records()))
	}
}

func TestMultiHandlerCombinesErrors(t *testing.T) {
	a := &captureHandler{err: errors.New("sink a down")}
	b := &captureHandler{}
	c := &captureHandler{err: errors.New("sink c down")}
	m := NewMultiHandler(a, b, c)

	rec := &Record{Name: "fan", LevelNumber: core.GenericError, Message: "boom"}
	err := m.Handle(rec)
	if err == nil {
		t.Fatal("Handle swallowed sink errors")
	}
	if got := len(multierr.Errors(err)); got != 2 {
		t.Errorf("combined %d errors, want 2: %v", got, err)
	}
	if len(b.records()) != 1 {
		t.Error("a failing sibling stopped delivery to a healthy sink")
	}
}
