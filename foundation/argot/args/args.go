// File: args.go
// Title: Argument Cursor
// Description: Dual-ended cursor over the ordered tokens of a parse result
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-07
// Modified: 2025-11-07
//
// Change History:
// - 2025-11-07 v0.1.0: Initial implementation

package args

import (
	"github.com/msto63/argot/foundation/argot/maybe"
	"github.com/msto63/argot/foundation/argot/output"
	"github.com/msto63/argot/foundation/argot/token"
)

// Unlimited disables the limit of Many, FilterMap and their variants
const Unlimited = -1

// State is the consumption state of an Args. Position is the next index the
// forward cursor looks at, PositionFromEnd the next index the backward
// cursor looks at.
type State struct {
	Used            map[int]struct{}
	Position        int
	PositionFromEnd int
}

func (s State) clone() State {
	used := make(map[int]struct{}, len(s.Used))
	for i := range s.Used {
		used[i] = struct{}{}
	}
	return State{Used: used, Position: s.Position, PositionFromEnd: s.PositionFromEnd}
}

// Args is not safe for concurrent use
type Args struct {
	out   output.Output
	state State
}

// New creates a cursor over out. The ordered tokens are never modified.
func New(out output.Output) *Args {
	return &Args{
		out: out,
		state: State{
			Used:            make(map[int]struct{}),
			PositionFromEnd: len(out.Ordered) - 1,
		},
	}
}

// Output returns the underlying parse result
func (a *Args) Output() output.Output { return a.out }

// Len returns the number of ordered tokens
func (a *Args) Len() int { return len(a.out.Ordered) }

// Remaining returns the number of ordered tokens not yet used
func (a *Args) Remaining() int { return len(a.out.Ordered) - len(a.state.Used) }

// Finished reports whether every ordered token has been used
func (a *Args) Finished() bool { return a.Remaining() <= 0 }

// Position returns the forward cursor
func (a *Args) Position() int { return a.state.Position }

// PositionFromEnd returns the backward cursor
func (a *Args) PositionFromEnd() int { return a.state.PositionFromEnd }

// Used reports whether the token at index i has been handed out
func (a *Args) Used(i int) bool {
	_, ok := a.state.Used[i]
	return ok
}

// Save returns an independent copy of the current state
func (a *Args) Save() State {
	return a.state.clone()
}

// Restore replaces the current state with a copy of s
func (a *Args) Restore(s State) {
	a.state = s.clone()
}

func (a *Args) use(i int) {
	a.state.Used[i] = struct{}{}
}

// nextForward moves the forward cursor onto the next unused index
func (a *Args) nextForward() (int, bool) {
	if a.Finished() {
		return 0, false
	}
	for a.state.Position < len(a.out.Ordered) && a.Used(a.state.Position) {
		a.state.Position++
	}
	if a.state.Position >= len(a.out.Ordered) {
		return 0, false
	}
	return a.state.Position, true
}

// nextBackward moves the backward cursor onto the next unused index
func (a *Args) nextBackward() (int, bool) {
	if a.Finished() {
		return 0, false
	}
	for a.state.PositionFromEnd >= 0 && a.Used(a.state.PositionFromEnd) {
		a.state.PositionFromEnd--
	}
	if a.state.PositionFromEnd < 0 {
		return 0, false
	}
	return a.state.PositionFromEnd, true
}

// Single takes the value of the next unused token from the front
func (a *Args) Single() maybe.Option[string] {
	i, ok := a.nextForward()
	if !ok {
		return maybe.None[string]()
	}
	a.use(i)
	a.state.Position++
	return maybe.Some(a.out.Ordered[i].Value)
}

// SingleFromEnd takes the value of the next unused token from the back
func (a *Args) SingleFromEnd() maybe.Option[string] {
	i, ok := a.nextBackward()
	if !ok {
		return maybe.None[string]()
	}
	a.use(i)
	a.state.PositionFromEnd--
	return maybe.Some(a.out.Ordered[i].Value)
}

// Many takes up to limit unused tokens starting at the forward cursor
func (a *Args) Many(limit int) []token.Token {
	return a.ManyFrom(a.state.Position, limit)
}

// ManyFrom takes up to limit unused tokens scanning forward from index from.
// The cursors are not moved.
func (a *Args) ManyFrom(from, limit int) []token.Token {
	var ts []token.Token
	for i := max(from, 0); i < len(a.out.Ordered) && !reached(len(ts), limit); i++ {
		if a.Used(i) {
			continue
		}
		a.use(i)
		ts = append(ts, a.out.Ordered[i])
	}
	return ts
}

// ManyFromEnd takes up to limit unused tokens starting at the backward
// cursor. The tokens are returned in their original order.
func (a *Args) ManyFromEnd(limit int) []token.Token {
	return a.ManyFromEndFrom(a.state.PositionFromEnd, limit)
}

// ManyFromEndFrom takes up to limit unused tokens scanning backward from
// index from, returned in their original order. The cursors are not moved.
func (a *Args) ManyFromEndFrom(from, limit int) []token.Token {
	var ts []token.Token
	for i := min(from, len(a.out.Ordered)-1); i >= 0 && !reached(len(ts), limit); i-- {
		if a.Used(i) {
			continue
		}
		a.use(i)
		ts = append(ts, a.out.Ordered[i])
	}
	for l, r := 0, len(ts)-1; l < r; l, r = l+1, r-1 {
		ts[l], ts[r] = ts[r], ts[l]
	}
	return ts
}

func reached(n, limit int) bool {
	return limit >= 0 && n >= limit
}

// Flag reports whether any of the flags is present
func (a *Args) Flag(names ...string) bool {
	for _, name := range names {
		if a.out.HasFlag(name) {
			return true
		}
	}
	return false
}

// Option returns the last value of the first option in names that has a value
func (a *Args) Option(names ...string) maybe.Option[string] {
	for _, name := range names {
		if vs := a.out.Options[name]; len(vs) > 0 {
			return maybe.Some(vs[len(vs)-1])
		}
	}
	return maybe.None[string]()
}

// Options returns every value of every option in names that is present.
// An option given without a value counts as present, so the result may be
// Some of an empty slice. None means no option in names was given at all.
func (a *Args) Options(names ...string) maybe.Option[[]string] {
	var values []string
	found := false
	for _, name := range names {
		vs, ok := a.out.Options[name]
		if !ok {
			continue
		}
		found = true
		values = append(values, vs...)
	}
	if !found {
		return maybe.None[[]string]()
	}
	if values == nil {
		values = []string{}
	}
	return maybe.Some(values)
}
