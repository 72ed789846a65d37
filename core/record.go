package core

import (
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

// Record is a fully-constructed log event: the message is already
// interpolated and the diagnostic context of the emitting goroutine has
// been snapshotted. Records are handed to the bridge which routes them
// to the native engine or the generic facility.
type Record struct {
	Name    string
	Level   Level
	Time    time.Time
	Message string
	Caller  CallerInfo
	// MDC is the emitting goroutine's diagnostic map at call time.
	MDC map[string]string
	// Context is the emitting goroutine's pushed context name.
	Context string
}

// CallerInfo is the explicit call-site descriptor attached to every
// record in place of run-time stack introspection.
type CallerInfo struct {
	File      string
	ShortFile string
	Line      int
	Function  string
	Defined   bool
}

// recordPool reduces allocations on the hot path
var recordPool = sync.Pool{
	New: func() interface{} {
		return &Record{}
	},
}

// GetRecord retrieves a Record from the pool
func GetRecord() *Record {
	r := recordPool.Get().(*Record)
	r.Time = Now()
	return r
}

// PutRecord returns a Record to the pool
func PutRecord(r *Record) {
	if r == nil {
		return
	}
	*r = Record{}
	recordPool.Put(r)
}

// GetCaller captures the call-site descriptor skip frames above the
// caller of GetCaller.
func GetCaller(skip int) CallerInfo {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return CallerInfo{}
	}

	fn := runtime.FuncForPC(pc)
	var funcName string
	if fn != nil {
		funcName = fn.Name()
	}

	return CallerInfo{
		File:      file,
		ShortFile: filepath.Base(file),
		Line:      line,
		Function:  funcName,
		Defined:   true,
	}
}
