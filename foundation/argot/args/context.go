// File: context.go
// Title: Context Accessors
// Description: Variants of the transforming accessors whose transform
//              takes a context and may fail. Transforms run one at a time
//              in token order; a failing transform stops the call and the
//              token it was given is not used.
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-08
// Modified: 2025-11-08
//
// Change History:
// - 2025-11-08 v0.1.0: Initial implementation

package args

import (
	"context"

	"github.com/msto63/argot/foundation/argot/maybe"
)

// MapFunc transforms a token value under a context
type MapFunc[T any] func(ctx context.Context, value string) (maybe.Option[T], error)

// ParseFunc parses a token value under a context
type ParseFunc[T, E any] func(ctx context.Context, value string) (maybe.Result[T, E], error)

// SingleMapContext is SingleMap with a context-aware transform
func SingleMapContext[T any](ctx context.Context, a *Args, f MapFunc[T], useAnyways bool) (maybe.Option[T], error) {
	i, ok := a.nextForward()
	if !ok {
		return maybe.None[T](), nil
	}
	if err := ctx.Err(); err != nil {
		return maybe.None[T](), err
	}
	o, err := f(ctx, a.out.Ordered[i].Value)
	if err != nil {
		return maybe.None[T](), err
	}
	if o.IsSome() || useAnyways {
		a.use(i)
		a.state.Position++
	}
	return o, nil
}

// SingleMapFromEndContext is SingleMapFromEnd with a context-aware transform
func SingleMapFromEndContext[T any](ctx context.Context, a *Args, f MapFunc[T], useAnyways bool) (maybe.Option[T], error) {
	i, ok := a.nextBackward()
	if !ok {
		return maybe.None[T](), nil
	}
	if err := ctx.Err(); err != nil {
		return maybe.None[T](), err
	}
	o, err := f(ctx, a.out.Ordered[i].Value)
	if err != nil {
		return maybe.None[T](), err
	}
	if o.IsSome() || useAnyways {
		a.use(i)
		a.state.PositionFromEnd--
	}
	return o, nil
}

// SingleParseContext is SingleParse with a context-aware transform
func SingleParseContext[T, E any](ctx context.Context, a *Args, f ParseFunc[T, E], useAnyways bool) (maybe.Option[maybe.Result[T, E]], error) {
	none := maybe.None[maybe.Result[T, E]]()
	i, ok := a.nextForward()
	if !ok {
		return none, nil
	}
	if err := ctx.Err(); err != nil {
		return none, err
	}
	r, err := f(ctx, a.out.Ordered[i].Value)
	if err != nil {
		return none, err
	}
	if r.IsOk() || useAnyways {
		a.use(i)
		a.state.Position++
	}
	return maybe.Some(r), nil
}

// SingleParseFromEndContext is SingleParseFromEnd with a context-aware transform
func SingleParseFromEndContext[T, E any](ctx context.Context, a *Args, f ParseFunc[T, E], useAnyways bool) (maybe.Option[maybe.Result[T, E]], error) {
	none := maybe.None[maybe.Result[T, E]]()
	i, ok := a.nextBackward()
	if !ok {
		return none, nil
	}
	if err := ctx.Err(); err != nil {
		return none, err
	}
	r, err := f(ctx, a.out.Ordered[i].Value)
	if err != nil {
		return none, err
	}
	if r.IsOk() || useAnyways {
		a.use(i)
		a.state.PositionFromEnd--
	}
	return maybe.Some(r), nil
}

// FindMapContext is FindMapFrom with a context-aware transform
func FindMapContext[T any](ctx context.Context, a *Args, from int, f MapFunc[T]) (maybe.Option[T], error) {
	for i := max(from, 0); i < len(a.out.Ordered); i++ {
		if a.Used(i) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return maybe.None[T](), err
		}
		o, err := f(ctx, a.out.Ordered[i].Value)
		if err != nil {
			return maybe.None[T](), err
		}
		if o.IsSome() {
			a.use(i)
			return o, nil
		}
	}
	return maybe.None[T](), nil
}

// FilterMapContext is FilterMapFrom with a context-aware transform. On
// error the values collected so far are returned with it and their tokens
// stay used.
func FilterMapContext[T any](ctx context.Context, a *Args, from int, f MapFunc[T], limit int) ([]T, error) {
	var ys []T
	for i := max(from, 0); i < len(a.out.Ordered) && !reached(len(ys), limit); i++ {
		if a.Used(i) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return ys, err
		}
		o, err := f(ctx, a.out.Ordered[i].Value)
		if err != nil {
			return ys, err
		}
		if y, ok := o.Get(); ok {
			a.use(i)
			ys = append(ys, y)
		}
	}
	return ys, nil
}
