// File: entry.go
// Title: Log Entry
// Description: The record passed from a Logger to its Formatter, plus helpers
//              for building field sets.
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-03
// Modified: 2025-11-03
//
// Change History:
// - 2025-11-03 v0.1.0: Initial implementation

package log

import (
	"sort"
	"time"
)

// Entry is a single log record
type Entry struct {
	Timestamp     time.Time
	Level         Level
	Message       string
	Logger        string
	SessionID     string
	CorrelationID string
	Fields        Fields
	Error         error
	Duration      time.Duration
}

// Fields represents custom key-value pairs for structured logging
type Fields map[string]interface{}

// Field creates a single field for logging
func Field(key string, value interface{}) Fields {
	return Fields{key: value}
}

// Err creates an error field for logging
func Err(err error) Fields {
	if err == nil {
		return Fields{}
	}
	return Fields{"error": err.Error()}
}

// Merge combines several field sets; later keys win
func Merge(sets ...Fields) Fields {
	out := make(Fields)
	for _, set := range sets {
		for k, v := range set {
			out[k] = v
		}
	}
	return out
}

// Keys returns the field names in sorted order
func (f Fields) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func newEntry(level Level, message string) *Entry {
	return &Entry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
		Fields:    make(Fields),
	}
}
