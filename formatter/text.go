package formatter

import (
	"bytes"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/treelog/treelog/core"
)

// TextFormatter formats records as human-readable text:
//
//	2024-01-02T15:04:05Z [INFO] app.db (query.go:42) message {k1=v1, k2=v2}
type TextFormatter struct {
	Config
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(cfg Config) *TextFormatter {
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = time.RFC3339
	}
	cfg.IncludeMDC = true
	return &TextFormatter{Config: cfg}
}

// Format formats a record as text
func (f *TextFormatter) Format(rec *core.Record) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	f.formatToBuffer(rec, buf)

	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// FormatTo formats a record and writes it directly to the writer
func (f *TextFormatter) FormatTo(rec *core.Record, w io.Writer) error {
	buf := getBuffer()

	f.formatToBuffer(rec, buf)

	_, err := w.Write(buf.Bytes())
	putBuffer(buf)
	return err
}

// formatToBuffer writes the formatted record into the given buffer
func (f *TextFormatter) formatToBuffer(rec *core.Record, buf *bytes.Buffer) {
	// Timestamp - use AppendFormat to avoid string allocation
	buf.Write(rec.Time.AppendFormat(buf.AvailableBuffer(), f.TimestampFormat))

	buf.WriteString(" [")
	buf.WriteString(rec.Level.String())
	buf.WriteString("] ")

	if rec.Name == "" {
		buf.WriteString("root")
	} else {
		buf.WriteString(rec.Name)
	}

	if f.IncludeCaller && rec.Caller.Defined {
		buf.WriteString(" (")
		buf.WriteString(rec.Caller.ShortFile)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(rec.Caller.Line))
		buf.WriteByte(')')
	}

	buf.WriteByte(' ')
	buf.WriteString(rec.Message)

	if f.IncludeMDC && len(rec.MDC) > 0 {
		buf.WriteByte(' ')
		appendMDC(buf, rec.MDC)
	}

	buf.WriteByte('\n')
}

// appendMDC writes diagnostic pairs as {k1=v1, k2=v2} in key order
func appendMDC(buf *bytes.Buffer, mdc map[string]string) {
	keys := make([]string, 0, len(mdc))
	for k := range mdc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(k)
		buf.WriteByte('=')
		buf.WriteString(mdc[k])
	}
	buf.WriteByte('}')
}
