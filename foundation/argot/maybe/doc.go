// Package maybe provides small Option and Result values used by the
// argument cursor and the retry loop.
//
// Package: maybe
// Title: argot Optional Values
// Description: Option[T] is a value that may be absent. Result[T, E] is
//              either a success value or a failure value where the failure
//              need not be an error. Both are plain structs with value
//              semantics and zero values that mean None and Ok(zero).
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-07
// Modified: 2025-11-07
//
// Change History:
// - 2025-11-07 v0.1.0: Initial implementation
//
// Usage:
//   n := maybe.Some(3)
//   if v, ok := n.Get(); ok { ... }
//   r := maybe.SomeToOk(args.Single(), "missing argument")
package maybe
