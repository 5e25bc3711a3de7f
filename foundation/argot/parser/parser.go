// File: parser.go
// Title: Parser
// Description: Step-wise classification of tokens. Each call to Next
//              consumes one token, or two for an option followed by its
//              value, and returns the elementary Output for that step.
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-07
// Modified: 2025-11-07
//
// Change History:
// - 2025-11-07 v0.1.0: Initial implementation

package parser

import (
	"github.com/msto63/argot/foundation/argot/output"
	"github.com/msto63/argot/foundation/argot/strategy"
	"github.com/msto63/argot/foundation/argot/token"
)

// Parser walks a token slice once. A Parser is not safe for concurrent use.
type Parser struct {
	input    []token.Token
	position int
	strategy strategy.Strategy
}

// New creates a parser over tokens using strategy.None
func New(tokens []token.Token) *Parser {
	return &Parser{input: tokens, strategy: strategy.None()}
}

// SetStrategy replaces the strategy; it applies from the next step on.
// A nil strategy restores strategy.None.
func (p *Parser) SetStrategy(st strategy.Strategy) *Parser {
	if st == nil {
		st = strategy.None()
	}
	p.strategy = st
	return p
}

// Finished reports whether every token has been consumed
func (p *Parser) Finished() bool {
	return p.position >= len(p.input)
}

// Next classifies the token at the cursor. In order of precedence it is a
// flag, an option, a compact option or an ordered token. An option takes
// the following token as its value unless there is none or that token is
// itself a flag or option; in that case the option has no value and the
// following token is left for the next step.
func (p *Parser) Next() (output.Output, bool) {
	if p.Finished() {
		return output.Output{}, false
	}

	t := p.input[p.position]
	p.position++

	if name, ok := p.strategy.MatchFlag(t.Value); ok {
		return output.OfFlag(name), true
	}

	if name, ok := p.strategy.MatchOption(t.Value); ok {
		if p.Finished() || strategy.IsUnordered(p.strategy, p.input[p.position].Value) {
			return output.OfOption(name), true
		}
		value := p.input[p.position]
		p.position++
		return output.OfOption(name, value.Value), true
	}

	if name, value, ok := p.strategy.MatchCompactOption(t.Value); ok {
		return output.OfOption(name, value), true
	}

	return output.OfOrdered(t), true
}

// Parse consumes the remaining tokens and returns the merged output
func (p *Parser) Parse() output.Output {
	steps := []output.Output{output.Empty()}
	for {
		step, ok := p.Next()
		if !ok {
			return output.Merge(steps...)
		}
		steps = append(steps, step)
	}
}

// Parse is shorthand for New(tokens).SetStrategy(st).Parse()
func Parse(tokens []token.Token, st strategy.Strategy) output.Output {
	return New(tokens).SetStrategy(st).Parse()
}
