// Package logging provides a small leveled logger plus request/response
// logging for API debugging. The credential is never written: the HTTP
// logger redacts the x-api-key header before anything reaches the log.
package logging

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Level represents a logging level
type Level int

const (
	// LevelDebug is for detailed debugging information
	LevelDebug Level = iota
	// LevelInfo is for general informational messages
	LevelInfo
	// LevelWarn is for warning messages
	LevelWarn
	// LevelError is for error messages
	LevelError
	// LevelNone disables all logging
	LevelNone
)

// String returns the string representation of the log level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Fields is a map of structured log fields
type Fields map[string]interface{}

// Logger writes leveled, timestamped lines to a single output.
// Safe for use from multiple goroutines.
type Logger struct {
	mu     sync.Mutex
	level  Level
	output io.Writer
}

// New creates a logger at the given level writing to output.
// A nil output defaults to stderr.
func New(level Level, output io.Writer) *Logger {
	if output == nil {
		output = os.Stderr
	}
	return &Logger{level: level, output: output}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return &Logger{level: LevelNone, output: io.Discard}
}

// Debug logs at debug level
func (l *Logger) Debug(msg string, fields Fields) { l.log(LevelDebug, msg, fields) }

// Info logs at info level
func (l *Logger) Info(msg string, fields Fields) { l.log(LevelInfo, msg, fields) }

// Warn logs at warn level
func (l *Logger) Warn(msg string, fields Fields) { l.log(LevelWarn, msg, fields) }

// Error logs at error level
func (l *Logger) Error(msg string, fields Fields) { l.log(LevelError, msg, fields) }

func (l *Logger) log(level Level, msg string, fields Fields) {
	if level < l.level {
		return
	}

	var b strings.Builder
	b.WriteString(time.Now().Format("15:04:05.000"))
	b.WriteString(" [")
	b.WriteString(level.String())
	b.WriteString("] ")
	b.WriteString(msg)

	// Deterministic field order keeps the log diffable
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, fields[k])
	}
	b.WriteByte('\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.output, b.String())
}
