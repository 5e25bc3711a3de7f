// Package log provides structured logging for argot.
//
// Package: log
// Title: argot Structured Logging
// Description: Structured, leveled logging with contextual fields and several
//              output formats. Used by the engine, the registry, the config
//              watcher and the command-line shell. The argument core itself
//              (lexer, parser, args) never logs.
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-03
// Modified: 2025-11-03
//
// Change History:
// - 2025-11-03 v0.1.0: Initial implementation
//
// Usage:
//   import argotlog "github.com/msto63/argot/foundation/core/log"
//
//   logger := argotlog.New().
//     WithLevel(argotlog.LevelDebug).
//     WithFormat(argotlog.FormatConsole).
//     WithField("component", "repl")
//
//   logger.Info("command dispatched", argotlog.Fields{
//     "command": "sum",
//     "tokens":  4,
//   })
//
//   timer := logger.StartTimer("parse")
//   // ... parse
//   timer.Stop()
package log
