// Package errors provides coded, wrappable errors for argot.
//
// Package: errors
// Title: argot Error Handling
// Description: A structured Error type carrying a code, the failing operation,
//              free-form details and an optional cause, together with a fluent
//              ErrorBuilder for constructing errors consistently across
//              modules. Errors interoperate with the standard errors package
//              through Unwrap and Is.
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-03
// Modified: 2025-11-03
//
// Change History:
// - 2025-11-03 v0.1.0: Initial implementation
//
// Usage:
//   import argoterrors "github.com/msto63/argot/foundation/core/errors"
//
//   err := argoterrors.NewErrorBuilder("engine").
//     Operation("Parse").
//     Code(argoterrors.CodeUnknownCommand).
//     Messagef("unknown command %q", name).
//     Detail("suggestions", suggestions).
//     Build()
//
//   if argoterrors.HasCode(err, argoterrors.CodeUnknownCommand) {
//     // ...
//   }
package errors
