// Package logger provides structured JSON logging and run counters for the
// scrape pipeline.
//
// Per-source failures are logged as warnings with structured fields; dropped
// candidates are not logged per-item (too noisy) but are counted, so a source
// that silently collapses to zero records is visible in the run summary.
//
// Example usage:
//
//	logger.Warn("source fetch failed", logger.Fields{
//	    "source": "syzygy",
//	    "url":    url,
//	}, err)
//
//	logger.IncrCounter("syzygy.emitted")
package logger

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Level represents log severity.
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

var levelRank = map[Level]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// Fields represents structured log fields.
type Fields map[string]interface{}

// Logger writes structured JSON log entries.
type Logger struct {
	minLevel Level
	output   *os.File
}

type logEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
	Fields    Fields `json:"fields,omitempty"`
	Error     string `json:"error,omitempty"`
}

var defaultLogger = New(LevelInfo, os.Stderr)

// New creates a logger that discards messages below the minimum level.
func New(level Level, output *os.File) *Logger {
	return &Logger{minLevel: level, output: output}
}

// SetDefault replaces the package-level logger used by the convenience
// functions, centralizing configuration in the CLI.
func SetDefault(l *Logger) {
	defaultLogger = l
}

func (l *Logger) log(level Level, message string, fields Fields, err error) {
	if levelRank[level] < levelRank[l.minLevel] {
		return
	}

	entry := logEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     string(level),
		Message:   message,
		Fields:    fields,
	}
	if err != nil {
		entry.Error = err.Error()
	}

	data, marshalErr := json.Marshal(entry)
	if marshalErr != nil {
		fmt.Fprintf(l.output, "[%s] %s: %s (marshal error: %v)\n",
			entry.Timestamp, entry.Level, entry.Message, marshalErr)
		return
	}
	fmt.Fprintln(l.output, string(data))
}

// Debug logs diagnostic detail (per-candidate extraction traces).
func (l *Logger) Debug(message string, fields Fields) { l.log(LevelDebug, message, fields, nil) }

// Info logs operational progress (per-source run summaries).
func (l *Logger) Info(message string, fields Fields) { l.log(LevelInfo, message, fields, nil) }

// Warn logs recoverable per-source failures that did not stop the run.
func (l *Logger) Warn(message string, fields Fields, err error) {
	l.log(LevelWarn, message, fields, err)
}

// Error logs failures that prevented normal operation.
func (l *Logger) Error(message string, fields Fields, err error) {
	l.log(LevelError, message, fields, err)
}

// Package-level convenience functions using the default logger.

func Debug(message string, fields Fields) { defaultLogger.Debug(message, fields) }
func Info(message string, fields Fields)  { defaultLogger.Info(message, fields) }
func Warn(message string, fields Fields, err error) {
	defaultLogger.Warn(message, fields, err)
}
func Error(message string, fields Fields, err error) {
	defaultLogger.Error(message, fields, err)
}

// Counters tracks run metrics: candidates seen, records emitted, drops by
// reason. Thread-safe.
type Counters struct {
	mu     sync.Mutex
	counts map[string]int64
}

var defaultCounters = NewCounters()

// NewCounters creates an empty counter set.
func NewCounters() *Counters {
	return &Counters{counts: make(map[string]int64)}
}

// Incr increments a counter by 1.
func (c *Counters) Incr(name string) {
	c.Add(name, 1)
}

// Add increments a counter by n.
func (c *Counters) Add(name string, n int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[name] += n
}

// Snapshot returns a copy of all counters.
func (c *Counters) Snapshot() map[string]int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]int64, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}

// IncrCounter increments a counter on the default counter set.
func IncrCounter(name string) {
	defaultCounters.Incr(name)
}

// AddCounter adds to a counter on the default counter set.
func AddCounter(name string, n int64) {
	defaultCounters.Add(name, n)
}

// CountersSnapshot returns a copy of the default counter set.
func CountersSnapshot() map[string]int64 {
	return defaultCounters.Snapshot()
}
