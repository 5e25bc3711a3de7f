// File: builder.go
// Title: Error Builder
// Description: Fluent construction of module errors plus shorthand helpers
//              for the common cases.
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-03
// Modified: 2025-11-03
//
// Change History:
// - 2025-11-03 v0.1.0: Initial implementation

package errors

import (
	"fmt"
)

// ErrorBuilder provides a fluent interface for building errors
type ErrorBuilder struct {
	module    string
	operation string
	message   string
	cause     error
	code      Code
	details   map[string]interface{}
}

// NewErrorBuilder creates a new error builder for the specified module
func NewErrorBuilder(module string) *ErrorBuilder {
	return &ErrorBuilder{
		module:  module,
		details: make(map[string]interface{}),
	}
}

// Operation sets the operation name
func (eb *ErrorBuilder) Operation(operation string) *ErrorBuilder {
	eb.operation = operation
	return eb
}

// Message sets the error message
func (eb *ErrorBuilder) Message(message string) *ErrorBuilder {
	eb.message = message
	return eb
}

// Messagef sets the error message with formatting
func (eb *ErrorBuilder) Messagef(format string, args ...interface{}) *ErrorBuilder {
	eb.message = fmt.Sprintf(format, args...)
	return eb
}

// Cause sets the underlying cause
func (eb *ErrorBuilder) Cause(cause error) *ErrorBuilder {
	eb.cause = cause
	return eb
}

// Code sets the error code
func (eb *ErrorBuilder) Code(code Code) *ErrorBuilder {
	eb.code = code
	return eb
}

// Detail adds a detail key-value pair
func (eb *ErrorBuilder) Detail(key string, value interface{}) *ErrorBuilder {
	eb.details[key] = value
	return eb
}

// Build creates the error. A missing message defaults to
// "<module>.<operation> failed".
func (eb *ErrorBuilder) Build() *Error {
	message := eb.message
	if message == "" {
		if eb.operation != "" {
			message = fmt.Sprintf("%s.%s failed", eb.module, eb.operation)
		} else {
			message = eb.module + " operation failed"
		}
	}

	var err *Error
	if eb.cause != nil {
		err = Wrap(eb.cause, message)
	} else {
		err = New(message)
	}
	if eb.code != "" {
		err.code = eb.code
	}
	if eb.operation != "" {
		err.operation = eb.module + "." + eb.operation
	}
	err.details["module"] = eb.module
	for k, v := range eb.details {
		err.details[k] = v
	}
	return err
}

// InvalidInput creates an error for rejected input values
func InvalidInput(module, operation, field string, value interface{}) *Error {
	return NewErrorBuilder(module).
		Operation(operation).
		Code(CodeInvalidInput).
		Messagef("invalid %s: %v", field, value).
		Detail("field", field).
		Detail("value", value).
		Build()
}

// NotFound creates an error for missing resources
func NotFound(module, operation, resource, id string) *Error {
	return NewErrorBuilder(module).
		Operation(operation).
		Code(CodeNotFound).
		Messagef("%s not found: %s", resource, id).
		Detail("resource", resource).
		Detail("id", id).
		Build()
}

// OperationFailed wraps cause as a failure of module.operation
func OperationFailed(module, operation string, cause error) *Error {
	return NewErrorBuilder(module).
		Operation(operation).
		Code(CodeInternal).
		Cause(cause).
		Build()
}
