// File: pairing.go
// Title: Table Driven Strategies
// Description: Strategies that look tokens up in an ordered table of
//              canonical names and their accepted spellings, compared
//              exactly, case-insensitively or through locale collation.
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-06
// Modified: 2025-11-21
//
// Change History:
// - 2025-11-06 v0.1.0: Exact and case-insensitive tables
// - 2025-11-10 v0.1.0: Collation based tables
// - 2025-11-21 v0.1.0: Compact options match heads of any length

package strategy

import (
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Entry maps a canonical name to the spellings that select it
type Entry struct {
	Name  string
	Words []string
}

// Pair builds an Entry
func Pair(name string, words ...string) Entry {
	return Entry{Name: name, Words: words}
}

// Pairing is an ordered table of entries. The first entry with a matching
// spelling wins, so overlapping spellings resolve by table order.
type Pairing []Entry

// equalFunc reports whether a token text and a spelling are the same word
type equalFunc func(text, word string) bool

type pairing struct {
	flags   Pairing
	options Pairing
	equal   equalFunc
}

// Exact returns a strategy matching spellings byte for byte. Prefixes and
// separators are part of the spellings, e.g. Pair("name", "--name=", "-n=")
// in the options table.
func Exact(flags, options Pairing) Strategy {
	return pairing{flags: flags, options: options, equal: func(a, b string) bool { return a == b }}
}

// CaseInsensitive returns a strategy comparing spellings after lower
// casing them with the rules of tag
func CaseInsensitive(flags, options Pairing, tag language.Tag) Strategy {
	return pairing{flags: flags, options: options, equal: lowerEqual(tag)}
}

// Matching returns a strategy comparing spellings with a collator for tag.
// Without options the comparison distinguishes case and accents; pass
// collate.IgnoreCase and collate.IgnoreDiacritics to compare base letters
// only, so that "--FLAG" and "--flág" both select "--flag".
func Matching(flags, options Pairing, tag language.Tag, opts ...collate.Option) Strategy {
	return pairing{flags: flags, options: options, equal: collateEqual(tag, opts...)}
}

func (p pairing) MatchFlag(s string) (string, bool) {
	return p.lookup(p.flags, s)
}

func (p pairing) MatchOption(s string) (string, bool) {
	return p.lookup(p.options, s)
}

// MatchCompactOption finds the first spelling that starts s. The value is
// whatever follows the matched spelling. Under collation a spelling can
// match a head of a different length, e.g. "--name=" matches the decomposed
// "--name\u0301=", so every rune boundary of s is tried, shortest first.
func (p pairing) MatchCompactOption(s string) (string, string, bool) {
	for _, e := range p.options {
		for _, w := range e.Words {
			if w == "" {
				continue
			}
			if head, ok := p.headOf(s, w); ok {
				return e.Name, s[len(head):], true
			}
		}
	}
	return "", "", false
}

// headOf returns the shortest prefix of s that equals w
func (p pairing) headOf(s, w string) (string, bool) {
	for i := range s {
		if i > 0 && p.equal(s[:i], w) {
			return s[:i], true
		}
	}
	if p.equal(s, w) {
		return s, true
	}
	return "", false
}

func (p pairing) lookup(table Pairing, s string) (string, bool) {
	for _, e := range table {
		for _, w := range e.Words {
			if p.equal(s, w) {
				return e.Name, true
			}
		}
	}
	return "", false
}

func lowerEqual(tag language.Tag) equalFunc {
	return func(a, b string) bool {
		// A Caser keeps state between calls and is built per comparison.
		c := cases.Lower(tag)
		return c.String(a) == c.String(b)
	}
}

func collateEqual(tag language.Tag, opts ...collate.Option) equalFunc {
	var mu sync.Mutex
	col := collate.New(tag, opts...)
	return func(a, b string) bool {
		mu.Lock()
		defer mu.Unlock()
		return col.CompareString(a, b) == 0
	}
}
