// Package lexer turns a command string into lossless tokens.
//
// Package: lexer
// Title: argot Lexer
// Description: Pull-based lexer over a single finite input. Tokens are split
//              on Unicode whitespace; configured quote pairs group text that
//              contains whitespace. Leading whitespace of the input is
//              skipped, all other whitespace ends up in the Trailing field of
//              the token before it.
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-05
// Modified: 2025-11-05
//
// Change History:
// - 2025-11-05 v0.1.0: Initial implementation
//
// Usage:
//   l := lexer.New(`!remind "buy milk" --in=10m`).SetQuotes(lexer.DoubleQuotes)
//   cmd, rest, ok := l.LexCommand(token.Prefix("!"))
//   if ok {
//     tokens := rest() // ["buy milk", "--in=10m"]
//   }
package lexer
