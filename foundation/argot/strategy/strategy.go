// File: strategy.go
// Title: Strategy Interface
// Description: The Strategy interface, the closure-bundle adapter and the
//              strategy that matches nothing.
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-06
// Modified: 2025-11-06
//
// Change History:
// - 2025-11-06 v0.1.0: Initial implementation

package strategy

// Strategy recognizes unordered arguments. Implementations must be pure:
// the same text always yields the same answer.
type Strategy interface {
	// MatchFlag returns the canonical flag name for s
	MatchFlag(s string) (string, bool)

	// MatchOption returns the canonical name of an option whose value
	// follows in the next token
	MatchOption(s string) (string, bool)

	// MatchCompactOption splits s into a canonical option name and a value
	MatchCompactOption(s string) (name, value string, ok bool)
}

// Funcs adapts three functions to a Strategy. A nil function never matches.
type Funcs struct {
	Flag          func(s string) (string, bool)
	Option        func(s string) (string, bool)
	CompactOption func(s string) (string, string, bool)
}

// MatchFlag implements Strategy
func (f Funcs) MatchFlag(s string) (string, bool) {
	if f.Flag == nil {
		return "", false
	}
	return f.Flag(s)
}

// MatchOption implements Strategy
func (f Funcs) MatchOption(s string) (string, bool) {
	if f.Option == nil {
		return "", false
	}
	return f.Option(s)
}

// MatchCompactOption implements Strategy
func (f Funcs) MatchCompactOption(s string) (string, string, bool) {
	if f.CompactOption == nil {
		return "", "", false
	}
	return f.CompactOption(s)
}

// None returns a strategy that matches nothing, so every token is ordered
func None() Strategy {
	return Funcs{}
}

// IsUnordered reports whether s is a flag, option or compact option under st
func IsUnordered(st Strategy, s string) bool {
	if _, ok := st.MatchFlag(s); ok {
		return true
	}
	if _, ok := st.MatchOption(s); ok {
		return true
	}
	_, _, ok := st.MatchCompactOption(s)
	return ok
}
