// Package token defines the lossless token produced by the lexer.
//
// Package: token
// Title: argot Tokens
// Description: A Token keeps the semantic value of a lexeme, its exact raw
//              spelling and the whitespace that followed it. Concatenating
//              Raw+Trailing over a token stream reproduces the input from its
//              first non-whitespace character, which lets callers rebuild the
//              "rest of the line" exactly as the user typed it.
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-05
// Modified: 2025-11-05
//
// Change History:
// - 2025-11-05 v0.1.0: Initial implementation
package token
