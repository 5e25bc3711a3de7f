// File: format.go
// Title: Log Formats
// Description: JSON, text and console formatters for log entries.
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-03
// Modified: 2025-11-03
//
// Change History:
// - 2025-11-03 v0.1.0: Initial implementation

package log

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Format represents the output format for log messages
type Format int

const (
	// FormatJSON outputs one JSON object per line
	FormatJSON Format = iota

	// FormatText outputs human-readable text
	FormatText

	// FormatConsole outputs colored text for terminals
	FormatConsole
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatText:
		return "text"
	case FormatConsole:
		return "console"
	default:
		return "unknown"
	}
}

// ParseFormat parses a string into a log format
func ParseFormat(format string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "":
		return FormatJSON, nil
	case "text":
		return FormatText, nil
	case "console":
		return FormatConsole, nil
	default:
		return FormatJSON, &ParseError{Input: format, Type: "format"}
	}
}

// Formatter renders an entry into bytes, including the trailing newline
type Formatter interface {
	Format(entry *Entry) ([]byte, error)
}

// JSONFormatter formats log entries as JSON
type JSONFormatter struct {
	TimestampFormat string
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{TimestampFormat: time.RFC3339}
}

// Format formats a log entry as JSON
func (f *JSONFormatter) Format(entry *Entry) ([]byte, error) {
	data := make(map[string]interface{}, len(entry.Fields)+6)
	for k, v := range entry.Fields {
		data[k] = v
	}

	data["timestamp"] = entry.Timestamp.Format(f.TimestampFormat)
	data["level"] = entry.Level.String()
	data["message"] = entry.Message
	if entry.Logger != "" {
		data["logger"] = entry.Logger
	}
	if entry.SessionID != "" {
		data["session_id"] = entry.SessionID
	}
	if entry.CorrelationID != "" {
		data["correlation_id"] = entry.CorrelationID
	}
	if entry.Error != nil {
		data["error"] = entry.Error.Error()
	}
	if entry.Duration > 0 {
		data["duration_ms"] = float64(entry.Duration.Nanoseconds()) / 1e6
	}

	out, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

// TextFormatter formats log entries as a single line of text
type TextFormatter struct {
	TimestampFormat  string
	DisableTimestamp bool
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{TimestampFormat: "15:04:05"}
}

// Format formats a log entry as text
func (f *TextFormatter) Format(entry *Entry) ([]byte, error) {
	var b strings.Builder

	if !f.DisableTimestamp {
		b.WriteString(entry.Timestamp.Format(f.TimestampFormat))
		b.WriteByte(' ')
	}
	fmt.Fprintf(&b, "[%s]", entry.Level.ShortString())
	if entry.Logger != "" {
		fmt.Fprintf(&b, " {%s}", entry.Logger)
	}
	if entry.SessionID != "" {
		fmt.Fprintf(&b, " (session=%s)", entry.SessionID)
	}
	b.WriteByte(' ')
	b.WriteString(entry.Message)

	if len(entry.Fields) > 0 {
		parts := make([]string, 0, len(entry.Fields))
		for _, k := range entry.Fields.Keys() {
			parts = append(parts, fmt.Sprintf("%s=%v", k, entry.Fields[k]))
		}
		fmt.Fprintf(&b, " [%s]", strings.Join(parts, " "))
	}
	if entry.Error != nil {
		fmt.Fprintf(&b, " error=%q", entry.Error.Error())
	}
	if entry.Duration > 0 {
		fmt.Fprintf(&b, " duration=%s", entry.Duration)
	}

	b.WriteByte('\n')
	return []byte(b.String()), nil
}

// ConsoleFormatter wraps TextFormatter output in level colors
type ConsoleFormatter struct {
	DisableColors bool
	*TextFormatter
}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{TextFormatter: NewTextFormatter()}
}

// Format formats a log entry for console output
func (f *ConsoleFormatter) Format(entry *Entry) ([]byte, error) {
	data, err := f.TextFormatter.Format(entry)
	if err != nil || f.DisableColors {
		return data, err
	}
	line := strings.TrimRight(string(data), "\n")
	return []byte(entry.Level.Color() + line + "\033[0m\n"), nil
}

// GetFormatter returns a formatter for the specified format
func GetFormatter(format Format) Formatter {
	switch format {
	case FormatText:
		return NewTextFormatter()
	case FormatConsole:
		return NewConsoleFormatter()
	default:
		return NewJSONFormatter()
	}
}
