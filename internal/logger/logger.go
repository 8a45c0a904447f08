// Package logger provides structured JSON logging and run metrics for tk8-stats.
//
// The logger supports multiple log levels (DEBUG, INFO, WARN, ERROR) and writes
// one JSON object per line through logrus. All entries carry a timestamp and may
// include arbitrary structured fields.
//
// Metrics are plain counters plus per-name timing aggregates (count, total,
// min, max); the CLI logs a snapshot when a run ends.
//
// Example usage:
//
//	logger.Info("Fetched page", logger.Fields{
//	    "url":  "https://example.com/player/123",
//	    "rows": 240,
//	})
//
//	logger.Error("Fetch failed", logger.Fields{
//	    "url": "https://example.com/player/123",
//	}, err)
//
//	logger.IncrCounter("rows.extracted")
//	logger.RecordTiming("fetch", duration)
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Level represents log severity
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// ParseLevel converts a level name (any case) to a Level
func ParseLevel(name string) (Level, error) {
	switch Level(strings.ToUpper(strings.TrimSpace(name))) {
	case LevelDebug:
		return LevelDebug, nil
	case LevelInfo:
		return LevelInfo, nil
	case LevelWarn, "WARNING":
		return LevelWarn, nil
	case LevelError:
		return LevelError, nil
	}
	return "", fmt.Errorf("unknown log level: %s", name)
}

func (l Level) logrus() logrus.Level {
	switch l {
	case LevelDebug:
		return logrus.DebugLevel
	case LevelWarn:
		return logrus.WarnLevel
	case LevelError:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// Logger provides structured logging
type Logger struct {
	entry *logrus.Logger
}

// Fields represents structured log fields
type Fields map[string]interface{}

var defaultLogger *Logger

func init() {
	defaultLogger = New(LevelInfo, os.Stderr)
}

// New creates a new logger with the specified minimum log level and output destination.
// Messages below the minimum level will be discarded.
func New(level Level, output io.Writer) *Logger {
	l := logrus.New()
	l.SetOutput(output)
	l.SetLevel(level.logrus())
	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		DataKey:         "fields",
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: "timestamp",
			logrus.FieldKeyMsg:  "message",
		},
	})
	return &Logger{entry: l}
}

// SetDefault sets the default package-level logger used by the convenience functions
// (Debug, Info, Warn, Error).
func SetDefault(logger *Logger) {
	defaultLogger = logger
}

// Default returns the package-level logger
func Default() *Logger {
	return defaultLogger
}

func (l *Logger) log(level logrus.Level, message string, fields Fields, err error) {
	e := l.entry.WithFields(logrus.Fields(fields))
	if err != nil {
		e = e.WithError(err)
	}
	e.Log(level, message)
}

// Debug logs a debug message with optional structured fields.
func (l *Logger) Debug(message string, fields Fields) {
	l.log(logrus.DebugLevel, message, fields, nil)
}

// Info logs an informational message with optional structured fields.
func (l *Logger) Info(message string, fields Fields) {
	l.log(logrus.InfoLevel, message, fields, nil)
}

// Warn logs a warning message with optional structured fields.
// Warning messages indicate potential issues that don't prevent operation.
func (l *Logger) Warn(message string, fields Fields) {
	l.log(logrus.WarnLevel, message, fields, nil)
}

// Error logs an error message with optional structured fields and an error object.
func (l *Logger) Error(message string, fields Fields, err error) {
	l.log(logrus.ErrorLevel, message, fields, err)
}

// Package-level convenience functions using default logger

// Debug logs a debug message with the default logger
func Debug(message string, fields Fields) {
	defaultLogger.Debug(message, fields)
}

// Info logs an info message with the default logger
func Info(message string, fields Fields) {
	defaultLogger.Info(message, fields)
}

// Warn logs a warning message with the default logger
func Warn(message string, fields Fields) {
	defaultLogger.Warn(message, fields)
}

// Error logs an error message with the default logger
func Error(message string, fields Fields, err error) {
	defaultLogger.Error(message, fields, err)
}

// Metrics counts what a run did and how long fetches took. Safe for
// concurrent use.
type Metrics struct {
	mu       sync.Mutex
	counters map[string]int64
	timings  map[string]*Timing
}

// Timing aggregates the durations recorded under one name
type Timing struct {
	Count int           `json:"count"`
	Total time.Duration `json:"total"`
	Min   time.Duration `json:"min"`
	Max   time.Duration `json:"max"`
}

// Average returns Total/Count, or zero when nothing was recorded
func (t Timing) Average() time.Duration {
	if t.Count == 0 {
		return 0
	}
	return t.Total / time.Duration(t.Count)
}

func (t *Timing) add(d time.Duration) {
	if t.Count == 0 || d < t.Min {
		t.Min = d
	}
	if d > t.Max {
		t.Max = d
	}
	t.Count++
	t.Total += d
}

// Snapshot is a point-in-time copy of Metrics
type Snapshot struct {
	Counters map[string]int64  `json:"counters"`
	Timings  map[string]Timing `json:"timings"`
}

// Fields flattens the snapshot for a log entry
func (s Snapshot) Fields() Fields {
	f := make(Fields, len(s.Counters)+len(s.Timings))
	for name, v := range s.Counters {
		f[name] = v
	}
	for name, t := range s.Timings {
		f[name+".count"] = t.Count
		f[name+".avg"] = t.Average().String()
		f[name+".max"] = t.Max.String()
	}
	return f
}

var defaultMetrics = NewMetrics()

// NewMetrics creates an empty tracker
func NewMetrics() *Metrics {
	return &Metrics{
		counters: make(map[string]int64),
		timings:  make(map[string]*Timing),
	}
}

// IncrCounter increments a counter by 1.
func (m *Metrics) IncrCounter(name string) {
	m.AddCounter(name, 1)
}

// AddCounter increments a counter by n.
func (m *Metrics) AddCounter(name string, n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[name] += n
}

// RecordTiming records a duration measurement.
func (m *Metrics) RecordTiming(name string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.timings[name]
	if !ok {
		t = &Timing{}
		m.timings[name] = t
	}
	t.add(duration)
}

// Counter returns the current value of a counter
func (m *Metrics) Counter(name string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[name]
}

// Snapshot copies the current counters and timings
func (m *Metrics) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{
		Counters: make(map[string]int64, len(m.counters)),
		Timings:  make(map[string]Timing, len(m.timings)),
	}
	for name, v := range m.counters {
		snap.Counters[name] = v
	}
	for name, t := range m.timings {
		snap.Timings[name] = *t
	}
	return snap
}

// IncrCounter increments a counter on the default tracker
func IncrCounter(name string) {
	defaultMetrics.IncrCounter(name)
}

// AddCounter adds n to a counter on the default tracker
func AddCounter(name string, n int64) {
	defaultMetrics.AddCounter(name, n)
}

// RecordTiming records a timing on the default tracker
func RecordTiming(name string, duration time.Duration) {
	defaultMetrics.RecordTiming(name, duration)
}

// MetricsSnapshot returns a snapshot of the default tracker
func MetricsSnapshot() Snapshot {
	return defaultMetrics.Snapshot()
}
