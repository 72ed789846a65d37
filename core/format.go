package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatError reports bad interpolation arguments at a log call site.
// Message construction failures are programmer errors: the logging
// front end raises them synchronously instead of emitting a mangled
// message.
type FormatError struct {
	Format string
	Reason string
}

func (e *FormatError) Error() string {
	return "core: cannot format " + strconv.Quote(e.Format) + ": " + e.Reason
}

// Sprintf interpolates printf-style directives against positional
// arguments. Unlike fmt.Sprintf it reports mismatched directives as a
// *FormatError instead of embedding %! markers in the result. A format
// whose literal output contains "%!" is indistinguishable from a failed
// one and is also rejected.
func Sprintf(format string, args ...interface{}) (string, error) {
	if len(args) == 0 && !strings.ContainsRune(format, '%') {
		return format, nil
	}
	s := fmt.Sprintf(format, args...)
	if strings.Contains(s, "%!") {
		return "", &FormatError{Format: format, Reason: "bad printf arguments: " + s}
	}
	return s, nil
}

// Arg names a template argument for Sprintt.
type Arg struct {
	Name  string
	Value interface{}
}

// Sprintt interpolates template-style placeholders: "{}" consumes the
// next positional argument, "{2}" an explicit position and "{name}" an
// argument passed as Arg. "{{" and "}}" are literal braces. Positional
// arguments are the non-Arg values in order. Unknown placeholders and
// missing arguments are a *FormatError.
func Sprintt(template string, args ...interface{}) (string, error) {
	var positional []interface{}
	var named map[string]interface{}
	for _, a := range args {
		if arg, ok := a.(Arg); ok {
			if named == nil {
				named = make(map[string]interface{}, 4)
			}
			named[arg.Name] = arg.Value
		} else {
			positional = append(positional, a)
		}
	}

	var b strings.Builder
	b.Grow(len(template) + 16)
	auto := 0
	for i := 0; i < len(template); i++ {
		c := template[i]
		switch c {
		case '{':
			if i+1 < len(template) && template[i+1] == '{' {
				b.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(template[i:], '}')
			if end < 0 {
				return "", &FormatError{Format: template, Reason: "unterminated placeholder"}
			}
			key := template[i+1 : i+end]
			i += end
			var val interface{}
			switch {
			case key == "":
				if auto >= len(positional) {
					return "", &FormatError{Format: template, Reason: "not enough positional arguments"}
				}
				val = positional[auto]
				auto++
			default:
				if idx, err := strconv.Atoi(key); err == nil {
					if idx < 0 || idx >= len(positional) {
						return "", &FormatError{Format: template, Reason: "positional index " + key + " out of range"}
					}
					val = positional[idx]
					break
				}
				v, ok := named[key]
				if !ok {
					return "", &FormatError{Format: template, Reason: "no argument named " + strconv.Quote(key)}
				}
				val = v
			}
			b.WriteString(Stringify(val))
		case '}':
			if i+1 < len(template) && template[i+1] == '}' {
				b.WriteByte('}')
				i++
				continue
			}
			return "", &FormatError{Format: template, Reason: "single '}' in template"}
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}

// Stringify coerces a value to its textual form for MDC entries and
// template substitution.
func Stringify(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(time.RFC3339)
	case time.Duration:
		return x.String()
	case error:
		return x.Error()
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
