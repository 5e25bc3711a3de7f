// Package parser sorts tokens into ordered arguments, flags and options.
//
// Package: parser
// Title: argot Parser
// Description: Single pass over a token slice. Classification is delegated
//              to a strategy.Strategy, which may be swapped between steps.
//              Parsing never fails: every token ends up as exactly one of an
//              ordered token, a flag, an option name or an option value.
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-07
// Modified: 2025-11-07
//
// Change History:
// - 2025-11-07 v0.1.0: Initial implementation
//
// Usage:
//   out := parser.New(tokens).SetStrategy(strategy.Long()).Parse()
package parser
