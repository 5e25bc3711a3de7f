// File: logger.go
// Title: Logger
// Description: The Logger type. Loggers are immutable from the caller's point
//              of view: every With* method returns a configured copy, so a
//              component can derive its own logger without affecting others.
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-03
// Modified: 2025-11-12
//
// Change History:
// - 2025-11-03 v0.1.0: Initial implementation
// - 2025-11-12 v0.1.0: Added session IDs for the websocket gateway

package log

import (
	"io"
	"os"
	"sync"
)

// Logger is a structured, leveled logger
type Logger struct {
	level         Level
	formatter     Formatter
	output        io.Writer
	name          string
	fields        Fields
	sessionID     string
	correlationID string

	// writeMu is shared between a logger and its clones so that lines
	// written to the same output never interleave.
	writeMu *sync.Mutex
}

// Config represents logger configuration
type Config struct {
	Level  Level
	Format Format
	Output io.Writer
	Name   string
}

// New creates a new logger writing JSON to stderr at info level
func New() *Logger {
	return NewWithConfig(Config{Level: LevelInfo, Format: FormatJSON})
}

// NewWithConfig creates a new logger with the specified configuration
func NewWithConfig(config Config) *Logger {
	output := config.Output
	if output == nil {
		output = os.Stderr
	}
	return &Logger{
		level:     config.Level,
		formatter: GetFormatter(config.Format),
		output:    output,
		name:      config.Name,
		fields:    make(Fields),
		writeMu:   &sync.Mutex{},
	}
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return NewWithConfig(Config{Level: LevelError + 1, Output: io.Discard})
}

// WithLevel returns a copy with the given minimum level
func (l *Logger) WithLevel(level Level) *Logger {
	clone := l.clone()
	clone.level = level
	return clone
}

// WithFormat returns a copy with the given output format
func (l *Logger) WithFormat(format Format) *Logger {
	clone := l.clone()
	clone.formatter = GetFormatter(format)
	return clone
}

// WithOutput returns a copy writing to output
func (l *Logger) WithOutput(output io.Writer) *Logger {
	clone := l.clone()
	clone.output = output
	clone.writeMu = &sync.Mutex{}
	return clone
}

// WithName returns a copy with the given logger name
func (l *Logger) WithName(name string) *Logger {
	clone := l.clone()
	clone.name = name
	return clone
}

// WithField returns a copy that adds key to every entry
func (l *Logger) WithField(key string, value interface{}) *Logger {
	clone := l.clone()
	clone.fields[key] = value
	return clone
}

// WithFields returns a copy that adds fields to every entry
func (l *Logger) WithFields(fields Fields) *Logger {
	clone := l.clone()
	for k, v := range fields {
		clone.fields[k] = v
	}
	return clone
}

// WithSessionID returns a copy tagged with a session ID
func (l *Logger) WithSessionID(sessionID string) *Logger {
	clone := l.clone()
	clone.sessionID = sessionID
	return clone
}

// WithCorrelationID returns a copy tagged with a correlation ID
func (l *Logger) WithCorrelationID(correlationID string) *Logger {
	clone := l.clone()
	clone.correlationID = correlationID
	return clone
}

// Trace logs a trace level message
func (l *Logger) Trace(message string, fields ...Fields) {
	l.log(LevelTrace, message, nil, fields...)
}

// Debug logs a debug level message
func (l *Logger) Debug(message string, fields ...Fields) {
	l.log(LevelDebug, message, nil, fields...)
}

// Info logs an info level message
func (l *Logger) Info(message string, fields ...Fields) {
	l.log(LevelInfo, message, nil, fields...)
}

// Warn logs a warning level message
func (l *Logger) Warn(message string, fields ...Fields) {
	l.log(LevelWarn, message, nil, fields...)
}

// Error logs an error level message
func (l *Logger) Error(message string, fields ...Fields) {
	l.log(LevelError, message, nil, fields...)
}

// ErrorWithErr logs an error together with its cause
func (l *Logger) ErrorWithErr(message string, err error, fields ...Fields) {
	l.log(LevelError, message, err, fields...)
}

// WarnWithErr logs a warning together with its cause
func (l *Logger) WarnWithErr(message string, err error, fields ...Fields) {
	l.log(LevelWarn, message, err, fields...)
}

// StartTimer creates and starts a new performance timer
func (l *Logger) StartTimer(operation string) *Timer {
	return NewTimer(l, operation)
}

// GetLevel returns the current minimum level
func (l *Logger) GetLevel() Level {
	return l.level
}

// IsLevelEnabled reports whether level would be written
func (l *Logger) IsLevelEnabled(level Level) bool {
	return level.Enabled(l.level)
}

func (l *Logger) log(level Level, message string, err error, fields ...Fields) {
	if !level.Enabled(l.level) {
		return
	}

	entry := newEntry(level, message)
	entry.Logger = l.name
	entry.SessionID = l.sessionID
	entry.CorrelationID = l.correlationID
	entry.Error = err
	for k, v := range l.fields {
		entry.Fields[k] = v
	}
	for _, set := range fields {
		for k, v := range set {
			entry.Fields[k] = v
		}
	}
	l.write(entry)
}

func (l *Logger) write(entry *Entry) {
	formatted, err := l.formatter.Format(entry)
	if err != nil {
		return
	}
	l.writeMu.Lock()
	defer l.writeMu.Unlock()
	_, _ = l.output.Write(formatted)
}

func (l *Logger) clone() *Logger {
	clone := *l
	clone.fields = make(Fields, len(l.fields))
	for k, v := range l.fields {
		clone.fields[k] = v
	}
	return &clone
}

var (
	defaultMu     sync.RWMutex
	defaultLogger = New()
)

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the default logger instance
func SetDefault(logger *Logger) {
	if logger == nil {
		return
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = logger
}
