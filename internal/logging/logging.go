package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// Logger is a deliberately small, framework-agnostic logging interface.
// Every component takes one and scopes it with With so log lines carry
// the component name.
type Logger interface {
	// Debug logs a debug-level message.
	Debug(msg string, fields ...Field)

	// Info logs an informational message.
	Info(msg string, fields ...Field)

	// Warn logs a warning.
	Warn(msg string, fields ...Field)

	// Error logs an error.
	Error(msg string, fields ...Field)

	// With returns a child logger with persistent fields.
	With(fields ...Field) Logger
}

// Field is a simple key/value pair for structured logging fields.
type Field struct {
	Key   string
	Value interface{}
}

// JSONLogger writes structured JSON lines to an io.Writer (stdout by
// default). It implements Logger.
type JSONLogger struct {
	out       io.Writer
	component string
	persist   []Field
}

// NewJSONLogger creates a logger writing to stdout. component is optional
// and is included on every line when set.
func NewJSONLogger(component string) *JSONLogger {
	return &JSONLogger{out: os.Stdout, component: component}
}

// NewJSONLoggerTo creates a logger writing to w. Useful in tests.
func NewJSONLoggerTo(w io.Writer, component string) *JSONLogger {
	return &JSONLogger{out: w, component: component}
}

func (l *JSONLogger) log(level string, msg string, fields ...Field) {
	type outEntry struct {
		Level     string         `json:"level"`
		Msg       string         `json:"msg"`
		Component string         `json:"component,omitempty"`
		Time      string         `json:"time"`
		Fields    map[string]any `json:"fields,omitempty"`
	}
	m := make(map[string]any)
	for _, f := range l.persist {
		m[f.Key] = f.Value
	}
	for _, f := range fields {
		m[f.Key] = f.Value
	}
	entry := outEntry{
		Level:     level,
		Msg:       msg,
		Component: l.component,
		Time:      time.Now().UTC().Format(time.RFC3339),
		Fields:    m,
	}
	enc, err := json.Marshal(entry)
	if err != nil {
		// Fallback simple formatting if JSON marshal fails
		fmt.Fprintf(l.out, "%s %s %v\n", level, msg, m)
		return
	}
	fmt.Fprintln(l.out, string(enc))
}

func (l *JSONLogger) Debug(msg string, fields ...Field) { l.log("debug", msg, fields...) }
func (l *JSONLogger) Info(msg string, fields ...Field)  { l.log("info", msg, fields...) }
func (l *JSONLogger) Warn(msg string, fields ...Field)  { l.log("warn", msg, fields...) }
func (l *JSONLogger) Error(msg string, fields ...Field) { l.log("error", msg, fields...) }

func (l *JSONLogger) With(fields ...Field) Logger {
	child := &JSONLogger{out: l.out, component: l.component}
	child.persist = append(child.persist, l.persist...)
	for _, f := range fields {
		// A component field replaces the logger's component name instead
		// of being repeated in every line.
		if f.Key == "component" {
			if str, ok := f.Value.(string); ok {
				child.component = str
				continue
			}
		}
		child.persist = append(child.persist, f)
	}
	return child
}

// Nop is a logger that discards everything. Handy default in tests.
type Nop struct{}

func (Nop) Debug(string, ...Field) {}
func (Nop) Info(string, ...Field)  {}
func (Nop) Warn(string, ...Field)  {}
func (Nop) Error(string, ...Field) {}
func (Nop) With(...Field) Logger   { return Nop{} }
