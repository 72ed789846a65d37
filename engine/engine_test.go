package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/treelog/treelog/config"
	"github.com/treelog/treelog/core"
)

func observedEngine() (*Engine, *observer.ObservedLogs) {
	obs, logs := observer.New(zapcore.DebugLevel)
	return NewWithCore(obs), logs
}

func TestLogMessage(t *testing.T) {
	eng, logs := observedEngine()

	rec := &core.Record{
		Name:    "app.db",
		Level:   core.WarnLevel,
		Time:    time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC),
		Message: "slow query",
		Caller: core.CallerInfo{
			File:    "/src/db/query.go",
			Line:    88,
			Defined: true,
		},
		MDC:     map[string]string{"table": "events"},
		Context: "app.db",
	}
	if err := eng.LogMessage(rec); err != nil {
		t.Fatalf("LogMessage: %v", err)
	}

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("observed %d entries", len(entries))
	}
	e := entries[0]
	if e.LoggerName != "app.db" || e.Message != "slow query" {
		t.Errorf("entry = %q %q", e.LoggerName, e.Message)
	}
	if e.Level != zapcore.WarnLevel {
		t.Errorf("level = %v", e.Level)
	}
	if !e.Caller.Defined || e.Caller.Line != 88 {
		t.Errorf("caller = %+v", e.Caller)
	}
	fields := e.ContextMap()
	if fields["context"] != "app.db" {
		t.Errorf("context field = %v", fields["context"])
	}
	if mdc, ok := fields["mdc"].(map[string]string); !ok || mdc["table"] != "events" {
		t.Errorf("mdc field = %v", fields["mdc"])
	}
}

func TestLogMessageTraceCollapsesToDebug(t *testing.T) {
	eng, logs := observedEngine()
	rec := &core.Record{Name: "t", Level: core.TraceLevel, Message: "fine-grained"}
	if err := eng.LogMessage(rec); err != nil {
		t.Fatalf("LogMessage: %v", err)
	}
	if got := logs.All()[0].Level; got != zapcore.DebugLevel {
		t.Errorf("level = %v, want DEBUG", got)
	}
}

func TestLogMessageStampsZeroTime(t *testing.T) {
	eng, logs := observedEngine()
	rec := &core.Record{Name: "t", Level: core.InfoLevel, Message: "m"}
	if err := eng.LogMessage(rec); err != nil {
		t.Fatalf("LogMessage: %v", err)
	}
	if logs.All()[0].Time.IsZero() {
		t.Error("entry emitted with a zero time")
	}
}

func TestLogMessageOmitsEmptyFields(t *testing.T) {
	eng, logs := observedEngine()
	rec := &core.Record{Name: "t", Level: core.InfoLevel, Message: "m"}
	if err := eng.LogMessage(rec); err != nil {
		t.Fatalf("LogMessage: %v", err)
	}
	if n := len(logs.All()[0].Context); n != 0 {
		t.Errorf("entry carries %d fields, want none", n)
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	eng, err := New(&config.Config{Encoding: "json", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rec := &core.Record{Name: "file.sink", Level: core.ErrorLevel, Message: "persisted"}
	if err := eng.LogMessage(rec); err != nil {
		t.Fatalf("LogMessage: %v", err)
	}
	if err := eng.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"persisted"`) || !strings.Contains(out, "ERROR") {
		t.Errorf("file content = %q", out)
	}
}

func TestSwap(t *testing.T) {
	eng, oldLogs := observedEngine()
	next, newLogs := observedEngine()

	eng.Swap(next)
	rec := &core.Record{Name: "s", Level: core.InfoLevel, Message: "after swap"}
	if err := eng.LogMessage(rec); err != nil {
		t.Fatalf("LogMessage: %v", err)
	}

	if oldLogs.Len() != 0 {
		t.Error("record reached the replaced sink chain")
	}
	if newLogs.Len() != 1 {
		t.Error("record missed the new sink chain")
	}
}
