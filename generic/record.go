package generic

import (
	"time"

	"github.com/treelog/treelog/core"
)

// Record is a log event on the generic scale. Message holds the
// interpolated text; Args preserves the raw arguments for handlers that
// want them.
type Record struct {
	Name        string
	LevelNumber int
	Message     string
	Args        []interface{}
	File        string
	Function    string
	Line        int
	Time        time.Time
	MDC         map[string]string
}

// Native converts the record to a native-scale record for formatting
// and engine emission. The caller owns the result and returns it with
// core.PutRecord.
func (r *Record) Native() *core.Record {
	rec := core.GetRecord()
	rec.Name = r.Name
	rec.Level = core.FromGeneric(r.LevelNumber)
	if !r.Time.IsZero() {
		rec.Time = r.Time
	}
	rec.Message = r.Message
	rec.Caller = core.CallerInfo{
		File:      r.File,
		ShortFile: r.File,
		Line:      r.Line,
		Function:  r.Function,
		Defined:   r.File != "",
	}
	rec.MDC = r.MDC
	return rec
}
