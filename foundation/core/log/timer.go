// File: timer.go
// Title: Performance Timer
// Description: Measures an operation and logs its duration on completion.
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-03
// Modified: 2025-11-03
//
// Change History:
// - 2025-11-03 v0.1.0: Initial implementation

package log

import (
	"time"
)

// Timer measures the duration of a single operation
type Timer struct {
	logger    *Logger
	operation string
	start     time.Time
	fields    Fields
	level     Level
	stopped   bool
}

// NewTimer creates a new timer for the given operation
func NewTimer(logger *Logger, operation string) *Timer {
	return &Timer{
		logger:    logger,
		operation: operation,
		start:     time.Now(),
		fields:    make(Fields),
		level:     LevelDebug,
	}
}

// WithLevel sets the level of the completion message
func (t *Timer) WithLevel(level Level) *Timer {
	t.level = level
	return t
}

// WithField adds a field to the completion message
func (t *Timer) WithField(key string, value interface{}) *Timer {
	t.fields[key] = value
	return t
}

// Elapsed returns the time since the timer was started
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Stop logs the completion message and returns the elapsed time.
// Calling Stop twice returns 0 and logs nothing.
func (t *Timer) Stop() time.Duration {
	return t.finish(nil)
}

// StopWithError logs a failure at error level and returns the elapsed time
func (t *Timer) StopWithError(err error) time.Duration {
	return t.finish(err)
}

func (t *Timer) finish(err error) time.Duration {
	if t.stopped {
		return 0
	}
	t.stopped = true
	elapsed := t.Elapsed()
	if t.logger == nil {
		return elapsed
	}

	entry := newEntry(t.level, t.operation+" completed")
	if err != nil {
		entry.Level = LevelError
		entry.Message = t.operation + " failed"
		entry.Error = err
	}
	if !entry.Level.Enabled(t.logger.level) {
		return elapsed
	}
	entry.Logger = t.logger.name
	entry.SessionID = t.logger.sessionID
	entry.CorrelationID = t.logger.correlationID
	entry.Duration = elapsed
	entry.Fields = Merge(t.logger.fields, t.fields, Fields{"operation": t.operation})
	t.logger.write(entry)
	return elapsed
}
