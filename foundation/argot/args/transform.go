// File: transform.go
// Title: Transforming Accessors
// Description: Generic accessors that take tokens only when a transform
//              accepts them
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-07
// Modified: 2025-11-07
//
// Change History:
// - 2025-11-07 v0.1.0: Initial implementation

package args

import "github.com/msto63/argot/foundation/argot/maybe"

// SingleMap applies f to the next unused token from the front. The token is
// used when f returns Some, or always when useAnyways is set. None is
// returned both when no token is left and when f rejects the token.
func SingleMap[T any](a *Args, f func(string) maybe.Option[T], useAnyways bool) maybe.Option[T] {
	i, ok := a.nextForward()
	if !ok {
		return maybe.None[T]()
	}
	o := f(a.out.Ordered[i].Value)
	if o.IsSome() || useAnyways {
		a.use(i)
		a.state.Position++
	}
	return o
}

// SingleMapFromEnd is SingleMap from the back
func SingleMapFromEnd[T any](a *Args, f func(string) maybe.Option[T], useAnyways bool) maybe.Option[T] {
	i, ok := a.nextBackward()
	if !ok {
		return maybe.None[T]()
	}
	o := f(a.out.Ordered[i].Value)
	if o.IsSome() || useAnyways {
		a.use(i)
		a.state.PositionFromEnd--
	}
	return o
}

// SingleParse applies f to the next unused token from the front. The token
// is used when f returns Ok, or always when useAnyways is set. The outer
// Option is None only when no token is left.
func SingleParse[T, E any](a *Args, f func(string) maybe.Result[T, E], useAnyways bool) maybe.Option[maybe.Result[T, E]] {
	i, ok := a.nextForward()
	if !ok {
		return maybe.None[maybe.Result[T, E]]()
	}
	r := f(a.out.Ordered[i].Value)
	if r.IsOk() || useAnyways {
		a.use(i)
		a.state.Position++
	}
	return maybe.Some(r)
}

// SingleParseFromEnd is SingleParse from the back
func SingleParseFromEnd[T, E any](a *Args, f func(string) maybe.Result[T, E], useAnyways bool) maybe.Option[maybe.Result[T, E]] {
	i, ok := a.nextBackward()
	if !ok {
		return maybe.None[maybe.Result[T, E]]()
	}
	r := f(a.out.Ordered[i].Value)
	if r.IsOk() || useAnyways {
		a.use(i)
		a.state.PositionFromEnd--
	}
	return maybe.Some(r)
}

// FindMap takes the first unused token from the forward cursor on that f
// accepts. Rejected tokens stay available.
func FindMap[T any](a *Args, f func(string) maybe.Option[T]) maybe.Option[T] {
	return FindMapFrom(a, a.state.Position, f)
}

// FindMapFrom is FindMap scanning from index from
func FindMapFrom[T any](a *Args, from int, f func(string) maybe.Option[T]) maybe.Option[T] {
	for i := max(from, 0); i < len(a.out.Ordered); i++ {
		if a.Used(i) {
			continue
		}
		if o := f(a.out.Ordered[i].Value); o.IsSome() {
			a.use(i)
			return o
		}
	}
	return maybe.None[T]()
}

// FilterMap takes up to limit unused tokens from the forward cursor on that
// f accepts, in order. Rejected tokens stay available.
func FilterMap[T any](a *Args, f func(string) maybe.Option[T], limit int) []T {
	return FilterMapFrom(a, a.state.Position, f, limit)
}

// FilterMapFrom is FilterMap scanning from index from
func FilterMapFrom[T any](a *Args, from int, f func(string) maybe.Option[T], limit int) []T {
	var ys []T
	for i := max(from, 0); i < len(a.out.Ordered) && !reached(len(ys), limit); i++ {
		if a.Used(i) {
			continue
		}
		if y, ok := f(a.out.Ordered[i].Value).Get(); ok {
			a.use(i)
			ys = append(ys, y)
		}
	}
	return ys
}
