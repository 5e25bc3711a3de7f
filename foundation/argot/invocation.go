// File: invocation.go
// Title: Command Invocation
// Description: Parsed command handed to a handler, and bounded interactive
//              prompting on top of the retry loop
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-09
// Modified: 2025-11-10
//
// Change History:
// - 2025-11-09 v0.1.0: Initial implementation
// - 2025-11-10 v0.1.0: Ask

package argot

import (
	"context"

	"github.com/msto63/argot/foundation/argot/args"
	"github.com/msto63/argot/foundation/argot/loop"
	"github.com/msto63/argot/foundation/argot/output"
	"github.com/msto63/argot/foundation/argot/token"
	argoterrors "github.com/msto63/argot/foundation/core/errors"
	argotlog "github.com/msto63/argot/foundation/core/log"
)

// Invocation is one parsed command line. It is owned by a single handler
// call and is not safe for concurrent use.
type Invocation struct {
	ID         string
	Input      string
	Command    token.Token
	Tokens     []token.Token
	Definition *Definition
	Output     output.Output
	Args       *args.Args

	// Prompt asks the user for more input; nil when not interactive
	Prompt Prompter

	Logger *argotlog.Logger

	attempts int
}

// Rest returns the input after the command name as the user typed it,
// without trailing whitespace
func (inv *Invocation) Rest() string {
	return token.Join(inv.Tokens, true)
}

// askState is threaded through the prompt loop
type askState struct {
	question string
	left     int
	asked    int
	last     error
}

// Ask prompts with question until parse accepts an answer or maxAttempts
// answers were rejected. maxAttempts <= 0 uses the engine default. A failing
// prompter ends the loop with its error.
func Ask[T any](ctx context.Context, inv *Invocation, question string, parse func(string) (T, error), maxAttempts int) (T, error) {
	var zero T
	if inv.Prompt == nil {
		return zero, argoterrors.NewErrorBuilder(module).
			Operation("ask").
			Code(argoterrors.CodeInvalidInput).
			Message("command needs interactive input").
			Detail("question", question).
			Build()
	}
	if maxAttempts <= 0 {
		maxAttempts = inv.attempts
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	logger := inv.Logger
	if logger == nil {
		logger = argotlog.GetDefault()
	}

	state := &askState{question: question, left: maxAttempts}
	strat := loop.FuncsContext[*askState, string, T, error]{
		GetInputFn: func(ctx context.Context, s *askState) loop.Action[string, T, error] {
			q := s.question
			if s.last != nil {
				q = s.last.Error() + ". " + q
			}
			s.asked++
			answer, err := inv.Prompt.Prompt(ctx, q)
			if err != nil {
				return loop.Fail[string, T](err)
			}
			return loop.Step[string, T, error](answer)
		},
		ParseFn: func(_ context.Context, answer string, _ *askState) loop.Control[T, error] {
			v, err := parse(answer)
			if err != nil {
				return loop.Fail[struct{}, T](err)
			}
			return loop.Finish[struct{}, T, error](v)
		},
		OnParseErrorFn: func(_ context.Context, err error, answer string, s *askState) loop.Control[T, error] {
			s.last = err
			s.left--
			logger.Debug("Answer rejected", argotlog.Fields{
				"answer":   answer,
				"attempts": s.asked,
				"left":     s.left,
			})
			if s.left > 0 {
				return loop.Continue[T, error]()
			}
			return loop.Fail[struct{}, T](argoterrors.NewErrorBuilder(module).
				Operation("ask").
				Code(argoterrors.CodeRetryExhausted).
				Messagef("no valid answer after %d attempts", s.asked).
				Cause(err).
				Detail("attempts", s.asked).
				Build())
		},
	}

	res, err := loop.Loop1Context(ctx, state, strat)
	if err != nil {
		return zero, argoterrors.Wrap(err, "prompt canceled").WithCode(argoterrors.CodeCanceled)
	}
	if v, ok := res.Get(); ok {
		return v, nil
	}
	failure, _ := res.Error()
	return zero, failure
}
