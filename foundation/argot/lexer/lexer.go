// File: lexer.go
// Title: Lossless Lexer
// Description: Splits a command string into tokens on whitespace, honoring
//              configurable quote pairs. Lexing never fails: an unclosed
//              quote runs to the end of the input. Every token remembers its
//              raw spelling and the whitespace after it, so the input can be
//              rebuilt exactly from the token stream.
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-05
// Modified: 2025-11-08
//
// Change History:
// - 2025-11-05 v0.1.0: Initial lexer implementation
// - 2025-11-08 v0.1.0: Added LexCommand and lexer reuse through SetInput

package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/msto63/argot/foundation/argot/token"
)

// QuotePair is an open and close delimiter. Open and Close may be equal.
type QuotePair struct {
	Open  string
	Close string
}

// DoubleQuotes is the common "..." pair
var DoubleQuotes = QuotePair{Open: `"`, Close: `"`}

// Lexer produces tokens from a single input string on demand. A Lexer is
// not safe for concurrent use.
type Lexer struct {
	input    string
	position int
	quotes   []QuotePair
}

// New creates a lexer over input with no quote pairs configured
func New(input string) *Lexer {
	return &Lexer{input: input}
}

// SetQuotes replaces the quote pairs. It may be called between tokens; the
// new pairs apply from the next token on. Pairs are tried in order and
// pairs with an empty delimiter are ignored.
func (l *Lexer) SetQuotes(pairs ...QuotePair) *Lexer {
	l.quotes = l.quotes[:0]
	for _, p := range pairs {
		if p.Open != "" && p.Close != "" {
			l.quotes = append(l.quotes, p)
		}
	}
	return l
}

// SetInput resets the lexer to the start of a new input, keeping the quote
// configuration
func (l *Lexer) SetInput(input string) *Lexer {
	l.input = input
	l.position = 0
	return l
}

// Quotes returns a copy of the configured quote pairs
func (l *Lexer) Quotes() []QuotePair {
	return append([]QuotePair(nil), l.quotes...)
}

// Finished reports whether the input has been fully consumed. Leading
// whitespace of a not yet started input is skipped first, so a blank input
// is finished before the first call to Next.
func (l *Lexer) Finished() bool {
	if l.position == 0 {
		l.skipSpace()
	}
	return l.position >= len(l.input)
}

// Next returns the next token, or false once the input is exhausted
func (l *Lexer) Next() (token.Token, bool) {
	if l.Finished() {
		return token.Token{}, false
	}
	if t, ok := l.quoted(); ok {
		return t, true
	}
	return l.word(), true
}

// Lex returns all remaining tokens
func (l *Lexer) Lex() []token.Token {
	var tokens []token.Token
	for {
		t, ok := l.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, t)
	}
}

// LexCommand reads a command name from the head of the input. match
// reports the length of a command prefix. The prefix may be fused to the
// name ("!ping") or stand alone ("! ping"); at most two tokens are read.
//
// On success the command token is returned with the prefix removed, along
// with a function that lexes the rest of the input when called. The rest
// is not read before that, so tokens pulled from the lexer in between are
// no longer part of it.
func (l *Lexer) LexCommand(match token.MatchPrefix) (token.Token, func() []token.Token, bool) {
	head, ok := l.Next()
	if !ok {
		return token.Token{}, nil, false
	}
	n, found := match(head.Raw)
	if !found {
		return token.Token{}, nil, false
	}

	if n >= len(head.Raw) {
		name, ok := l.Next()
		if !ok {
			return token.Token{}, nil, false
		}
		return name, l.Lex, true
	}

	command := token.Token{
		Value:    strings.TrimPrefix(head.Value, head.Raw[:n]),
		Raw:      head.Raw[n:],
		Trailing: head.Trailing,
	}
	return command, l.Lex, true
}

func (l *Lexer) quoted() (token.Token, bool) {
	rest := l.input[l.position:]
	for _, q := range l.quotes {
		if !strings.HasPrefix(rest, q.Open) {
			continue
		}

		inner := rest[len(q.Open):]
		closing := ""
		if i := strings.Index(inner, q.Close); i >= 0 {
			inner, closing = inner[:i], q.Close
		}
		l.position += len(q.Open) + len(inner) + len(closing)

		return token.Token{
			Value:    inner,
			Raw:      q.Open + inner + closing,
			Trailing: l.skipSpace(),
		}, true
	}
	return token.Token{}, false
}

// word takes the run of non-whitespace at the cursor, cut short at the
// first quote delimiter after its first rune
func (l *Lexer) word() token.Token {
	rest := l.input[l.position:]
	end := strings.IndexFunc(rest, unicode.IsSpace)
	if end < 0 {
		end = len(rest)
	}
	w := rest[:end]

	_, first := utf8.DecodeRuneInString(w)
	cut := len(w)
	for _, q := range l.quotes {
		for _, d := range [2]string{q.Open, q.Close} {
			if i := strings.Index(w[first:], d); i >= 0 && first+i < cut {
				cut = first + i
			}
		}
	}
	w = w[:cut]
	l.position += len(w)

	return token.Token{Value: w, Raw: w, Trailing: l.skipSpace()}
}

func (l *Lexer) skipSpace() string {
	start := l.position
	for l.position < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.position:])
		if !unicode.IsSpace(r) {
			break
		}
		l.position += size
	}
	return l.input[start:l.position]
}
