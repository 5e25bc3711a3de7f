// File: loop.go
// Title: Retry Loop
// Description: Loop and Loop1 over a caller supplied Strategy
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-08
// Modified: 2025-11-08
//
// Change History:
// - 2025-11-08 v0.1.0: Initial implementation

package loop

import "github.com/msto63/argot/foundation/argot/maybe"

// Strategy supplies the two steps of a loop. S is caller state handed to
// every call, A the input type, Z the result type and E the error type.
type Strategy[S, A, Z, E any] interface {
	// GetInput fetches the next input. Finish ends the loop without
	// parsing; Fail goes to the input error handler.
	GetInput(state S) Action[A, Z, E]

	// Parse interprets an input. Step asks for another input; Fail goes
	// to the parse error handler.
	Parse(input A, state S) Control[Z, E]
}

// InputErrorHandler may be implemented by a Strategy to handle failed
// input. Step fetches another input. Without it the failure ends the loop.
type InputErrorHandler[S, Z, E any] interface {
	OnInputError(err E, state S) Control[Z, E]
}

// ParseErrorHandler may be implemented by a Strategy to handle failed
// parses. Step fetches another input. Without it every parse failure is
// retried.
type ParseErrorHandler[S, A, Z, E any] interface {
	OnParseError(err E, input A, state S) Control[Z, E]
}

// Funcs builds a Strategy from functions. Nil error handlers use the
// default behaviour.
type Funcs[S, A, Z, E any] struct {
	GetInputFn     func(state S) Action[A, Z, E]
	ParseFn        func(input A, state S) Control[Z, E]
	OnInputErrorFn func(err E, state S) Control[Z, E]
	OnParseErrorFn func(err E, input A, state S) Control[Z, E]
}

func (f Funcs[S, A, Z, E]) GetInput(state S) Action[A, Z, E] { return f.GetInputFn(state) }

func (f Funcs[S, A, Z, E]) Parse(input A, state S) Control[Z, E] { return f.ParseFn(input, state) }

func (f Funcs[S, A, Z, E]) OnInputError(err E, state S) Control[Z, E] {
	if f.OnInputErrorFn == nil {
		return Fail[struct{}, Z](err)
	}
	return f.OnInputErrorFn(err, state)
}

func (f Funcs[S, A, Z, E]) OnParseError(err E, input A, state S) Control[Z, E] {
	if f.OnParseErrorFn == nil {
		return Continue[Z, E]()
	}
	return f.OnParseErrorFn(err, input, state)
}

func onInputError[S, A, Z, E any](strat Strategy[S, A, Z, E], err E, state S) Control[Z, E] {
	if h, ok := strat.(InputErrorHandler[S, Z, E]); ok {
		return h.OnInputError(err, state)
	}
	return Fail[struct{}, Z](err)
}

func onParseError[S, A, Z, E any](strat Strategy[S, A, Z, E], err E, input A, state S) Control[Z, E] {
	if h, ok := strat.(ParseErrorHandler[S, A, Z, E]); ok {
		return h.OnParseError(err, input, state)
	}
	return Continue[Z, E]()
}

// settle converts a terminal Finish or Fail into a Result. It reports false
// for Step.
func settle[A, Z, E any](a Action[A, Z, E]) (maybe.Result[Z, E], bool) {
	switch a.tag {
	case TagFinish:
		return maybe.Ok[Z, E](a.value), true
	case TagFail:
		return maybe.Err[Z](a.err), true
	default:
		return maybe.Result[Z, E]{}, false
	}
}

// Loop parses initial first and fetches inputs until a parse finishes or
// an action ends the loop
func Loop[S, A, Z, E any](initial A, state S, strat Strategy[S, A, Z, E]) maybe.Result[Z, E] {
	if r, done := parse(initial, state, strat); done {
		return r
	}
	return Loop1(state, strat)
}

// Loop1 is Loop without an initial input; it starts by fetching one
func Loop1[S, A, Z, E any](state S, strat Strategy[S, A, Z, E]) maybe.Result[Z, E] {
	for {
		got := strat.GetInput(state)
		switch got.tag {
		case TagStep:
			if r, done := parse(got.item, state, strat); done {
				return r
			}
		case TagFinish:
			return maybe.Ok[Z, E](got.value)
		default:
			if r, done := settle(onInputError(strat, got.err, state)); done {
				return r
			}
		}
	}
}

func parse[S, A, Z, E any](input A, state S, strat Strategy[S, A, Z, E]) (maybe.Result[Z, E], bool) {
	parsed := strat.Parse(input, state)
	if parsed.tag == TagFail {
		return settle(onParseError(strat, parsed.err, input, state))
	}
	return settle(parsed)
}
