// File: output.go
// Title: Parser Output
// Description: The result of parsing a token stream: ordered tokens, flags
//              and options. Outputs form a monoid under Merge with Empty as
//              the identity, which is how the parser folds its steps.
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-07
// Modified: 2025-11-07
//
// Change History:
// - 2025-11-07 v0.1.0: Initial implementation

package output

import (
	"slices"
	"sort"

	"github.com/msto63/argot/foundation/argot/token"
)

// Output is the parse of a token stream. An Output is treated as immutable
// once built; Merge never modifies its arguments.
type Output struct {
	// Ordered holds every token that is not a flag or an option, in input order
	Ordered []token.Token

	// Flags is the set of canonical flag names seen
	Flags map[string]struct{}

	// Options maps canonical option names to their values in input order.
	// An option given without a value maps to an empty slice.
	Options map[string][]string
}

// Empty returns an output with nothing in it
func Empty() Output {
	return Output{
		Flags:   make(map[string]struct{}),
		Options: make(map[string][]string),
	}
}

// OfOrdered returns an output holding a single ordered token
func OfOrdered(t token.Token) Output {
	o := Empty()
	o.Ordered = []token.Token{t}
	return o
}

// OfFlag returns an output holding a single flag
func OfFlag(name string) Output {
	o := Empty()
	o.Flags[name] = struct{}{}
	return o
}

// OfOption returns an output holding one option with the given values
func OfOption(name string, values ...string) Output {
	o := Empty()
	o.Options[name] = append([]string{}, values...)
	return o
}

// Merge combines outputs left to right: ordered tokens are concatenated,
// flags are united and the values of each option are concatenated.
func Merge(outputs ...Output) Output {
	merged := Empty()
	for _, o := range outputs {
		merged.Ordered = append(merged.Ordered, o.Ordered...)
		for name := range o.Flags {
			merged.Flags[name] = struct{}{}
		}
		for name, values := range o.Options {
			existing, ok := merged.Options[name]
			if !ok {
				existing = []string{}
			}
			merged.Options[name] = append(existing, values...)
		}
	}
	return merged
}

// HasFlag reports whether the flag was given
func (o Output) HasFlag(name string) bool {
	_, ok := o.Flags[name]
	return ok
}

// Values returns the values of an option and whether it was given at all
func (o Output) Values(name string) ([]string, bool) {
	values, ok := o.Options[name]
	return values, ok
}

// FlagNames returns the flag names in sorted order
func (o Output) FlagNames() []string {
	names := make([]string, 0, len(o.Flags))
	for name := range o.Flags {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OptionNames returns the option names in sorted order
func (o Output) OptionNames() []string {
	names := make([]string, 0, len(o.Options))
	for name := range o.Options {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Equal reports whether two outputs hold the same tokens, flags and
// options. Nil and empty collections compare equal.
func Equal(a, b Output) bool {
	if len(a.Ordered) != len(b.Ordered) || len(a.Flags) != len(b.Flags) || len(a.Options) != len(b.Options) {
		return false
	}
	if !slices.Equal(a.Ordered, b.Ordered) {
		return false
	}
	for name := range a.Flags {
		if _, ok := b.Flags[name]; !ok {
			return false
		}
	}
	for name, values := range a.Options {
		other, ok := b.Options[name]
		if !ok || !slices.Equal(values, other) {
			return false
		}
	}
	return true
}
