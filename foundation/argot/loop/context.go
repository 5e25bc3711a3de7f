// File: context.go
// Title: Context Loop
// Description: Loop variants whose callbacks take a context. Callbacks run
//              one at a time; the loop checks the context before each one
//              and stops with its error once it is done.
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-08
// Modified: 2025-11-08
//
// Change History:
// - 2025-11-08 v0.1.0: Initial implementation

package loop

import (
	"context"

	"github.com/msto63/argot/foundation/argot/maybe"
)

// StrategyContext is Strategy with context-aware callbacks
type StrategyContext[S, A, Z, E any] interface {
	GetInput(ctx context.Context, state S) Action[A, Z, E]
	Parse(ctx context.Context, input A, state S) Control[Z, E]
}

// InputErrorHandlerContext is InputErrorHandler for StrategyContext
type InputErrorHandlerContext[S, Z, E any] interface {
	OnInputError(ctx context.Context, err E, state S) Control[Z, E]
}

// ParseErrorHandlerContext is ParseErrorHandler for StrategyContext
type ParseErrorHandlerContext[S, A, Z, E any] interface {
	OnParseError(ctx context.Context, err E, input A, state S) Control[Z, E]
}

// FuncsContext builds a StrategyContext from functions
type FuncsContext[S, A, Z, E any] struct {
	GetInputFn     func(ctx context.Context, state S) Action[A, Z, E]
	ParseFn        func(ctx context.Context, input A, state S) Control[Z, E]
	OnInputErrorFn func(ctx context.Context, err E, state S) Control[Z, E]
	OnParseErrorFn func(ctx context.Context, err E, input A, state S) Control[Z, E]
}

func (f FuncsContext[S, A, Z, E]) GetInput(ctx context.Context, state S) Action[A, Z, E] {
	return f.GetInputFn(ctx, state)
}

func (f FuncsContext[S, A, Z, E]) Parse(ctx context.Context, input A, state S) Control[Z, E] {
	return f.ParseFn(ctx, input, state)
}

func (f FuncsContext[S, A, Z, E]) OnInputError(ctx context.Context, err E, state S) Control[Z, E] {
	if f.OnInputErrorFn == nil {
		return Fail[struct{}, Z](err)
	}
	return f.OnInputErrorFn(ctx, err, state)
}

func (f FuncsContext[S, A, Z, E]) OnParseError(ctx context.Context, err E, input A, state S) Control[Z, E] {
	if f.OnParseErrorFn == nil {
		return Continue[Z, E]()
	}
	return f.OnParseErrorFn(ctx, err, input, state)
}

// LoopContext is Loop with context-aware callbacks. The error is non-nil
// only when ctx ended the loop.
func LoopContext[S, A, Z, E any](ctx context.Context, initial A, state S, strat StrategyContext[S, A, Z, E]) (maybe.Result[Z, E], error) {
	r, done, err := parseContext(ctx, initial, state, strat)
	if err != nil || done {
		return r, err
	}
	return Loop1Context(ctx, state, strat)
}

// Loop1Context is Loop1 with context-aware callbacks
func Loop1Context[S, A, Z, E any](ctx context.Context, state S, strat StrategyContext[S, A, Z, E]) (maybe.Result[Z, E], error) {
	var zero maybe.Result[Z, E]
	for {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		got := strat.GetInput(ctx, state)
		switch got.tag {
		case TagStep:
			r, done, err := parseContext(ctx, got.item, state, strat)
			if err != nil || done {
				return r, err
			}
		case TagFinish:
			return maybe.Ok[Z, E](got.value), nil
		default:
			if err := ctx.Err(); err != nil {
				return zero, err
			}
			var handled Control[Z, E]
			if h, ok := strat.(InputErrorHandlerContext[S, Z, E]); ok {
				handled = h.OnInputError(ctx, got.err, state)
			} else {
				handled = Fail[struct{}, Z](got.err)
			}
			if r, done := settle(handled); done {
				return r, nil
			}
		}
	}
}

func parseContext[S, A, Z, E any](ctx context.Context, input A, state S, strat StrategyContext[S, A, Z, E]) (maybe.Result[Z, E], bool, error) {
	var zero maybe.Result[Z, E]
	if err := ctx.Err(); err != nil {
		return zero, true, err
	}
	parsed := strat.Parse(ctx, input, state)
	if parsed.tag != TagFail {
		r, done := settle(parsed)
		return r, done, nil
	}
	if err := ctx.Err(); err != nil {
		return zero, true, err
	}
	handled := Continue[Z, E]()
	if h, ok := strat.(ParseErrorHandlerContext[S, A, Z, E]); ok {
		handled = h.OnParseError(ctx, parsed.err, input, state)
	}
	r, done := settle(handled)
	return r, done, nil
}
