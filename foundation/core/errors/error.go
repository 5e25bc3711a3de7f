// File: error.go
// Title: Core Error Type
// Description: Structured error with code, operation, details and cause.
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-03
// Modified: 2025-11-03
//
// Change History:
// - 2025-11-03 v0.1.0: Initial implementation

package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"sort"
)

// Error is a structured error
type Error struct {
	message   string
	cause     error
	code      Code
	operation string
	details   map[string]interface{}
}

// New creates a new Error with the given message
func New(message string) *Error {
	return &Error{
		message: message,
		code:    CodeUnknown,
		details: make(map[string]interface{}),
	}
}

// Newf creates a new Error with a formatted message
func Newf(format string, args ...interface{}) *Error {
	return New(fmt.Sprintf(format, args...))
}

// Wrap wraps err with additional context. Code, operation and details of a
// wrapped *Error are inherited. Wrap returns nil when err is nil.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}
	wrapped := New(message)
	wrapped.cause = err
	var inner *Error
	if stderrors.As(err, &inner) {
		wrapped.code = inner.code
		wrapped.operation = inner.operation
		for k, v := range inner.details {
			wrapped.details[k] = v
		}
	}
	return wrapped
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches another *Error with the same code, so sentinel-style
// comparisons such as errors.Is(err, &Error{code: CodeNotFound}) work
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.message == "" && t.code == e.code
}

// WithCode sets the error code
func (e *Error) WithCode(code Code) *Error {
	e.code = code
	return e
}

// WithOperation sets the operation that failed
func (e *Error) WithOperation(operation string) *Error {
	e.operation = operation
	return e
}

// WithDetail adds a key-value detail
func (e *Error) WithDetail(key string, value interface{}) *Error {
	e.details[key] = value
	return e
}

// Code returns the error code
func (e *Error) Code() Code {
	return e.code
}

// Operation returns the operation that failed
func (e *Error) Operation() string {
	return e.operation
}

// Message returns the message without the cause chain
func (e *Error) Message() string {
	return e.message
}

// Detail returns a single detail value
func (e *Error) Detail(key string) (interface{}, bool) {
	v, ok := e.details[key]
	return v, ok
}

// Details returns a copy of the details
func (e *Error) Details() map[string]interface{} {
	out := make(map[string]interface{}, len(e.details))
	for k, v := range e.details {
		out[k] = v
	}
	return out
}

// MarshalJSON renders the error for API responses
func (e *Error) MarshalJSON() ([]byte, error) {
	payload := struct {
		Message   string                 `json:"message"`
		Code      Code                   `json:"code"`
		Operation string                 `json:"operation,omitempty"`
		Details   map[string]interface{} `json:"details,omitempty"`
		Cause     string                 `json:"cause,omitempty"`
	}{
		Message:   e.message,
		Code:      e.code,
		Operation: e.operation,
		Details:   e.details,
	}
	if len(payload.Details) == 0 {
		payload.Details = nil
	}
	if e.cause != nil {
		payload.Cause = e.cause.Error()
	}
	return json.Marshal(payload)
}

// Sentinel returns a value usable as an errors.Is target for code
func Sentinel(code Code) error {
	return &Error{code: code}
}

// CodeOf returns the code of the outermost *Error in err's chain, or
// CodeUnknown when there is none
func CodeOf(err error) Code {
	var e *Error
	if stderrors.As(err, &e) {
		return e.code
	}
	return CodeUnknown
}

// HasCode reports whether any *Error in err's chain carries code
func HasCode(err error, code Code) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.code == code {
			return true
		}
		err = stderrors.Unwrap(err)
	}
	return false
}

// DetailKeys returns the detail keys of err in sorted order
func DetailKeys(err error) []string {
	var e *Error
	if !stderrors.As(err, &e) {
		return nil
	}
	keys := make([]string, 0, len(e.details))
	for k := range e.details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
