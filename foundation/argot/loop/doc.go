// Package loop drives input-and-parse retry loops.
//
// Package: loop
// Title: argot Retry Loop
// Description: A loop alternates between fetching an input and parsing it
//              until parsing finishes or something fails for good. Both
//              steps are supplied by the caller as a Strategy and answer
//              with an Action: Step to go on, Finish to succeed or Fail to
//              stop. The loop itself performs no I/O and enforces no retry
//              limit; budgets live in the caller's state.
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-08
// Modified: 2025-11-08
//
// Change History:
// - 2025-11-08 v0.1.0: Initial implementation
//
// Usage:
//   res := loop.Loop1(&attempts, loop.Funcs[*int, string, int, string]{
//       GetInputFn: func(n *int) loop.Action[string, int, string] { ... },
//       ParseFn:    func(s string, n *int) loop.Control[int, string] { ... },
//   })
package loop
