// Package output holds the result of parsing a token stream.
//
// Package: output
// Title: argot Parser Output
// Description: Output values, their merge algebra and their JSON and CBOR
//              encodings.
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-07
// Modified: 2025-11-07
//
// Change History:
// - 2025-11-07 v0.1.0: Initial implementation
package output
