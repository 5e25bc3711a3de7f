// Package registry provides the command table of the argot engine.
//
// Package: registry
// Title: argot Command Registry
// Description: Thread-safe table from command names to caller defined
//              entries. Names are case-insensitive. Besides exact names the
//              registry resolves aliases and, when enabled, unambiguous
//              abbreviations. Unknown names get fuzzy "did you mean"
//              suggestions.
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-09
// Modified: 2025-11-09
//
// Change History:
// - 2025-11-09 v0.1.0: Initial implementation
//
// Usage:
//   reg := registry.New[*Definition](registry.Options{Logger: logger})
//   err := reg.Register("echo", def, "say")
//   def, ok := reg.Lookup("SAY")
//   hints := reg.Suggest("ehco", 3)
package registry
