// File: compose.go
// Title: Strategy Composition
// Description: Wrappers that rename or drop the names produced by another
//              strategy.
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-06
// Modified: 2025-11-10
//
// Change History:
// - 2025-11-06 v0.1.0: Initial implementation
// - 2025-11-10 v0.1.0: Collation based renaming

package strategy

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// MapKeys returns a strategy that passes every name st produces through f.
// When f returns false the token is no longer classified as that kind.
func MapKeys(st Strategy, f func(name string) (string, bool)) Strategy {
	return Funcs{
		Flag: func(s string) (string, bool) {
			name, ok := st.MatchFlag(s)
			if !ok {
				return "", false
			}
			return f(name)
		},
		Option: func(s string) (string, bool) {
			name, ok := st.MatchOption(s)
			if !ok {
				return "", false
			}
			return f(name)
		},
		CompactOption: func(s string) (string, string, bool) {
			name, value, ok := st.MatchCompactOption(s)
			if !ok {
				return "", "", false
			}
			renamed, ok := f(name)
			if !ok {
				return "", "", false
			}
			return renamed, value, true
		},
	}
}

// RenameKeys maps the names st produces through an alias table: a name
// listed among an entry's words becomes the entry's name. Names not in
// the table are kept when keepNotFound is set and dropped otherwise.
func RenameKeys(st Strategy, keys Pairing, keepNotFound bool) Strategy {
	return MapKeys(st, renamer(keys, keepNotFound, func(a, b string) bool { return a == b }))
}

// RenameKeysMatching is RenameKeys with names compared by a collator for
// tag, see Matching
func RenameKeysMatching(st Strategy, keys Pairing, keepNotFound bool, tag language.Tag, opts ...collate.Option) Strategy {
	return MapKeys(st, renamer(keys, keepNotFound, collateEqual(tag, opts...)))
}

func renamer(keys Pairing, keepNotFound bool, equal equalFunc) func(string) (string, bool) {
	return func(name string) (string, bool) {
		for _, e := range keys {
			for _, w := range e.Words {
				if equal(name, w) {
					return e.Name, true
				}
			}
		}
		return name, keepNotFound
	}
}
