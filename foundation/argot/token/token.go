// File: token.go
// Title: Token Model
// Description: The Token type, joining helpers and command extraction over
//              an already lexed token slice.
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-05
// Modified: 2025-11-05
//
// Change History:
// - 2025-11-05 v0.1.0: Initial implementation

package token

import (
	"strings"
)

// Token is a single lexeme. For a quoted lexeme Value is the text between
// the delimiters and Raw includes them; for a word both are identical.
// Trailing holds the whitespace after the lexeme, possibly empty.
type Token struct {
	Value    string `json:"value"`
	Raw      string `json:"raw"`
	Trailing string `json:"trailing"`
}

// Word returns an unquoted token with no trailing whitespace
func Word(s string) Token {
	return Token{Value: s, Raw: s}
}

// MatchPrefix reports the byte length of a command prefix at the start of
// s, or false when s does not start with a prefix.
type MatchPrefix func(s string) (int, bool)

// Prefix returns a MatchPrefix recognizing any of the given literal
// prefixes; the first listed match wins. Empty prefixes are ignored.
func Prefix(prefixes ...string) MatchPrefix {
	return func(s string) (int, bool) {
		for _, p := range prefixes {
			if p != "" && strings.HasPrefix(s, p) {
				return len(p), true
			}
		}
		return 0, false
	}
}

// Join concatenates tokens with their original trailing whitespace between
// them, using Raw when raw is set and Value otherwise. The trailing
// whitespace of the last token is not included.
func Join(tokens []Token, raw bool) string {
	var b strings.Builder
	for i, t := range tokens {
		if raw {
			b.WriteString(t.Raw)
		} else {
			b.WriteString(t.Value)
		}
		if i < len(tokens)-1 {
			b.WriteString(t.Trailing)
		}
	}
	return b.String()
}

// JoinSep concatenates tokens with a fixed separator instead of their
// original whitespace
func JoinSep(tokens []Token, sep string, raw bool) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		if raw {
			parts[i] = t.Raw
		} else {
			parts[i] = t.Value
		}
	}
	return strings.Join(parts, sep)
}

// Reconstruct returns the exact text the tokens were lexed from, trailing
// whitespace of the last token included
func Reconstruct(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Raw)
		b.WriteString(t.Trailing)
	}
	return b.String()
}

// ExtractCommand finds a command name at the head of tokens. Two layouts
// are recognized: the prefix fused to the name ("!ping") and the prefix as
// a token of its own ("! ping"). The returned command token has the prefix
// removed from Value and Raw; rest holds the remaining tokens. ok is false
// when tokens is empty, carries no prefix, or carries only the prefix.
//
// tokens is never modified.
func ExtractCommand(match MatchPrefix, tokens []Token) (command Token, rest []Token, ok bool) {
	if len(tokens) == 0 {
		return Token{}, nil, false
	}
	head := tokens[0]
	n, found := match(head.Raw)
	if !found {
		return Token{}, nil, false
	}

	if n == len(head.Raw) {
		if len(tokens) < 2 {
			return Token{}, nil, false
		}
		return tokens[1], append([]Token(nil), tokens[2:]...), true
	}

	command = Token{
		Value:    cutPrefix(head.Value, head.Raw[:n]),
		Raw:      head.Raw[n:],
		Trailing: head.Trailing,
	}
	return command, append([]Token(nil), tokens[1:]...), true
}

// cutPrefix removes the prefix from a token value. Quoted tokens whose raw
// prefix is not part of the value are returned unchanged.
func cutPrefix(value, prefix string) string {
	if rest, found := strings.CutPrefix(value, prefix); found {
		return rest
	}
	return value
}
