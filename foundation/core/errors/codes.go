// File: codes.go
// Title: Error Codes
// Description: Error codes used by the engine, the configuration layer and
//              the command-line shell.
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-03
// Modified: 2025-11-03
//
// Change History:
// - 2025-11-03 v0.1.0: Initial implementation

package errors

// Code classifies an error
type Code string

const (
	CodeUnknown        Code = "UNKNOWN"
	CodeInternal       Code = "INTERNAL"
	CodeInvalidInput   Code = "INVALID_INPUT"
	CodeNotFound       Code = "NOT_FOUND"
	CodeAlreadyExists  Code = "ALREADY_EXISTS"
	CodeConfig         Code = "CONFIG_ERROR"
	CodeStorage        Code = "STORAGE_ERROR"
	CodeCanceled       Code = "CANCELED"
	CodeRateLimited    Code = "RATE_LIMITED"
	CodeNotCommand     Code = "NOT_COMMAND"
	CodeUnknownCommand Code = "UNKNOWN_COMMAND"
	CodeInputTooLong   Code = "INPUT_TOO_LONG"
	CodeRetryExhausted Code = "RETRY_EXHAUSTED"
)

// String returns the code as a string
func (c Code) String() string {
	return string(c)
}

// IsUserError reports whether the code describes a problem with what the
// user typed rather than with the system
func (c Code) IsUserError() bool {
	switch c {
	case CodeInvalidInput, CodeNotCommand, CodeUnknownCommand, CodeInputTooLong, CodeRetryExhausted:
		return true
	default:
		return false
	}
}
