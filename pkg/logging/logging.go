// Package logging is the toolkit's structured logging: one JSON object per
// line with a level, a message and typed fields. The analyzer and exporter
// accept a Logger and default to the no-op implementation, so log output is
// an opt-in of the binaries.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Level orders log severities.
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l < DebugLevel || l > ErrorLevel {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel reads a level name as it appears in config files,
// case-insensitively. Unknown names fall back to InfoLevel.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Field is one key-value pair of a log entry.
type Field struct {
	Key   string
	Value any
}

// Logger is what analysis and export code logs through.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	// With returns a child logger carrying the fields on every entry.
	With(fields ...Field) Logger
}

// entry is the JSON shape of one log line. The fields key is dropped when
// an entry carries none.
type entry struct {
	Time    string         `json:"time"`
	Level   string         `json:"level"`
	Message string         `json:"msg"`
	Fields  map[string]any `json:"fields,omitempty"`
}

// JSONLogger writes entries at or above its level to a single writer.
// Preset fields from With are repeated on every entry; a field given at the
// call site wins over a preset with the same key.
type JSONLogger struct {
	mu     sync.Mutex
	writer io.Writer
	level  Level
	preset []Field
}

// NewJSONLogger creates a logger writing JSON lines to w.
func NewJSONLogger(w io.Writer, level Level) *JSONLogger {
	return &JSONLogger{writer: w, level: level}
}

func (l *JSONLogger) log(level Level, msg string, fields []Field) {
	if level < l.level {
		return
	}

	var fieldMap map[string]any
	if len(l.preset)+len(fields) > 0 {
		fieldMap = make(map[string]any, len(l.preset)+len(fields))
		for _, f := range l.preset {
			fieldMap[f.Key] = f.Value
		}
		for _, f := range fields {
			fieldMap[f.Key] = f.Value
		}
	}

	data, err := json.Marshal(entry{
		Time:    time.Now().Format(time.RFC3339Nano),
		Level:   level.String(),
		Message: msg,
		Fields:  fieldMap,
	})

	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		fmt.Fprintf(l.writer, "{\"level\":\"ERROR\",\"msg\":\"log entry not serializable: %v\"}\n", err)
		return
	}
	l.writer.Write(append(data, '\n'))
}

func (l *JSONLogger) Debug(msg string, fields ...Field) { l.log(DebugLevel, msg, fields) }
func (l *JSONLogger) Info(msg string, fields ...Field)  { l.log(InfoLevel, msg, fields) }
func (l *JSONLogger) Warn(msg string, fields ...Field)  { l.log(WarnLevel, msg, fields) }
func (l *JSONLogger) Error(msg string, fields ...Field) { l.log(ErrorLevel, msg, fields) }

// With returns a child logger sharing the writer and level, with the fields
// appended to the parent's presets.
func (l *JSONLogger) With(fields ...Field) Logger {
	preset := make([]Field, 0, len(l.preset)+len(fields))
	preset = append(preset, l.preset...)
	preset = append(preset, fields...)
	return &JSONLogger{writer: l.writer, level: l.level, preset: preset}
}

// nopLogger discards everything. It is the default of every component that
// takes an optional Logger.
type nopLogger struct{}

func (nopLogger) Debug(string, ...Field) {}
func (nopLogger) Info(string, ...Field)  {}
func (nopLogger) Warn(string, ...Field)  {}
func (nopLogger) Error(string, ...Field) {}
func (n nopLogger) With(...Field) Logger { return n }

// NewNopLogger returns a logger that discards all output.
func NewNopLogger() Logger {
	return nopLogger{}
}
