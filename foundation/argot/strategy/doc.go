// Package strategy classifies tokens as flags, options or compact options.
//
// Package: strategy
// Title: argot Unordered Argument Strategies
// Description: A Strategy decides, from a token's text alone, whether the
//              token is a flag ("--verbose"), an option expecting its value in
//              the next token ("--name=") or a compact option carrying its
//              value ("--name=value"). Strategies are immutable values and
//              are composed by wrapping, see MapKeys and RenameKeys.
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-06
// Modified: 2025-11-10
//
// Change History:
// - 2025-11-06 v0.1.0: Initial implementation
// - 2025-11-10 v0.1.0: Collation based matching
//
// Usage:
//   st := strategy.RenameKeys(strategy.LongShort(), strategy.Pairing{
//     strategy.Pair("verbose", "v"),
//   }, true)
//   st.MatchFlag("-v") // "verbose", true
package strategy
