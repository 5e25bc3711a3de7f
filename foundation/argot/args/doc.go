// Package args provides a cursor over parsed command arguments.
//
// Package: args
// Title: argot Argument Cursor
// Description: Args wraps an output.Output and hands out its ordered tokens
//              one by one, from the front or from the back, skipping tokens
//              that were already taken. Every token is handed out at most
//              once. State can be saved and restored for speculative
//              consumption. Flags and options are read without consuming.
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-07
// Modified: 2025-11-08
//
// Change History:
// - 2025-11-07 v0.1.0: Initial implementation
// - 2025-11-08 v0.1.0: Context variants
//
// Usage:
//   a := args.New(out)
//   first := a.Single()
//   last := a.SingleFromEnd()
//   n := args.SingleParse(a, parseInt, false)
//   state := a.Save()
//   rest := a.Many(args.Unlimited)
//   a.Restore(state)
package args
