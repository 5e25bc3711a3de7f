// File: strategy_test.go
// Title: Strategy Tests
// Description: Tests for the prefixed, table driven and composed strategies.
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-06
// Modified: 2025-11-10
//
// Change History:
// - 2025-11-06 v0.1.0: Initial implementation
// - 2025-11-10 v0.1.0: Collation tests

package strategy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// match is a flattened view of all three answers for table tests
type match struct {
	flag    string
	option  string
	compact [2]string
}

func classify(st Strategy, s string) match {
	var m match
	if name, ok := st.MatchFlag(s); ok {
		m.flag = name
	}
	if name, ok := st.MatchOption(s); ok {
		m.option = name
	}
	if name, value, ok := st.MatchCompactOption(s); ok {
		m.compact = [2]string{name, value}
	}
	return m
}

func TestNone(t *testing.T) {
	st := None()
	assert.Equal(t, match{}, classify(st, "--foo"))
	assert.Equal(t, match{}, classify(st, "--bar="))
	assert.False(t, IsUnordered(st, "--baz=1"))
}

func TestLong(t *testing.T) {
	tests := []struct {
		input string
		want  match
	}{
		{"--flag", match{flag: "flag"}},
		{"--opt=", match{option: "opt"}},
		{"--opt=15", match{compact: [2]string{"opt", "15"}}},
		{"--opt=a=b", match{compact: [2]string{"opt", "a=b"}}},
		{"-f", match{}},
		{"plain", match{}},
		{"--", match{}},
		{"--=", match{}},
		{"--=x", match{}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(Long(), tt.input))
		})
	}
}

func TestLongShort(t *testing.T) {
	st := LongShort()
	assert.Equal(t, match{flag: "f"}, classify(st, "-f"))
	assert.Equal(t, match{flag: "flag"}, classify(st, "--flag"))
	assert.Equal(t, match{option: "o"}, classify(st, "-o="))
	assert.Equal(t, match{compact: [2]string{"o", "1"}}, classify(st, "-o=1"))
	assert.Equal(t, match{}, classify(st, "-"))
	assert.Equal(t, match{}, classify(st, "--"), "end-of-options marker is not flag \"-\"")
}

func TestPrefixedCustom(t *testing.T) {
	st := Prefixed([]string{"/", ""}, []string{"::", ":"})
	assert.Equal(t, match{flag: "v"}, classify(st, "/v"))
	assert.Equal(t, match{option: "out"}, classify(st, "/out:"))
	assert.Equal(t, match{compact: [2]string{"out", "file"}}, classify(st, "/out::file"))
	assert.Equal(t, match{}, classify(st, "out:file"))
}

var (
	flagTable   = Pairing{Pair("flag", "--flag", "-f")}
	optionTable = Pairing{
		Pair("option", "--option=", "-o="),
		Pair("out", "-o"),
	}
)

func TestExact(t *testing.T) {
	st := Exact(flagTable, optionTable)

	tests := []struct {
		input string
		want  match
	}{
		{"--flag", match{flag: "flag"}},
		{"-f", match{flag: "flag"}},
		{"--FLAG", match{}},
		{"--option=", match{option: "option", compact: [2]string{"option", ""}}},
		{"--option=Hello", match{compact: [2]string{"option", "Hello"}}},
		{"-o=x", match{compact: [2]string{"option", "x"}}},
		{"-ox", match{compact: [2]string{"out", "x"}}},
		{"-o", match{option: "out", compact: [2]string{"out", ""}}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(st, tt.input))
		})
	}
}

func TestExactTableOrderWins(t *testing.T) {
	st := Exact(Pairing{Pair("first", "-x"), Pair("second", "-x")}, nil)
	name, ok := st.MatchFlag("-x")
	assert.True(t, ok)
	assert.Equal(t, "first", name)
}

func TestCaseInsensitive(t *testing.T) {
	st := CaseInsensitive(flagTable, optionTable, language.English)

	name, ok := st.MatchFlag("--FlAg")
	assert.True(t, ok)
	assert.Equal(t, "flag", name)

	name, ok = st.MatchOption("-O=")
	assert.True(t, ok)
	assert.Equal(t, "option", name)

	name, value, ok := st.MatchCompactOption("--OPTION=Hello")
	assert.True(t, ok)
	assert.Equal(t, "option", name)
	assert.Equal(t, "Hello", value)
}

func TestCaseInsensitiveTurkish(t *testing.T) {
	st := CaseInsensitive(Pairing{Pair("info", "--info")}, nil, language.Turkish)

	_, ok := st.MatchFlag("--İNFO")
	assert.True(t, ok)

	_, ok = st.MatchFlag("--INFO")
	assert.False(t, ok, "dotless I lowers to ı in Turkish")
}

func TestMatching(t *testing.T) {
	flags := Pairing{Pair("flag", "--flag")}
	options := Pairing{Pair("option", "--option=")}

	exact := Matching(flags, options, language.AmericanEnglish)
	name, ok := exact.MatchFlag("--flag")
	assert.True(t, ok)
	assert.Equal(t, "flag", name)
	name, ok = exact.MatchOption("--option=")
	assert.True(t, ok)
	assert.Equal(t, "option", name)
	name, value, ok := exact.MatchCompactOption("--option=Hello")
	assert.True(t, ok)
	assert.Equal(t, [2]string{"option", "Hello"}, [2]string{name, value})

	_, ok = exact.MatchFlag("--flaG")
	assert.False(t, ok)
	_, ok = exact.MatchOption("--opTION=")
	assert.False(t, ok)
	_, _, ok = exact.MatchCompactOption("--opTION=")
	assert.False(t, ok)

	base := Matching(flags, nil, language.AmericanEnglish, collate.IgnoreCase, collate.IgnoreDiacritics)
	for _, input := range []string{"--FLAG", "--flág"} {
		name, ok := base.MatchFlag(input)
		assert.True(t, ok, input)
		assert.Equal(t, "flag", name)
	}
}

func TestMatchingDecomposedInput(t *testing.T) {
	st := Matching(Pairing{Pair("name", "--name")}, Pairing{Pair("name", "--name=")},
		language.English, collate.IgnoreCase, collate.IgnoreDiacritics)

	tests := []struct {
		input string
		want  match
	}{
		{"--name\u0301", match{flag: "name"}},
		{"--name\u0301=", match{option: "name", compact: [2]string{"name", ""}}},
		{"--name\u0301=x", match{compact: [2]string{"name", "x"}}},
		{"--NAME\u0301=x\u0301", match{compact: [2]string{"name", "x\u0301"}}},
		{"--nam\u00e9=x", match{compact: [2]string{"name", "x"}}},
		{"--name=", match{option: "name", compact: [2]string{"name", ""}}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(st, tt.input))
		})
	}
}

func TestMapKeys(t *testing.T) {
	st := MapKeys(Long(), func(name string) (string, bool) {
		if name == "foo" {
			return "", false
		}
		return name + "!", true
	})

	assert.Equal(t, match{}, classify(st, "--foo"))
	assert.Equal(t, match{flag: "bar!"}, classify(st, "--bar"))
	assert.Equal(t, match{option: "bar!"}, classify(st, "--bar="))
	assert.Equal(t, match{compact: [2]string{"baz!", "1"}}, classify(st, "--baz=1"))
	assert.Equal(t, match{}, classify(st, "--foo=1"))
}

func TestRenameKeys(t *testing.T) {
	keys := Pairing{Pair("foo", "bar")}

	tests := []struct {
		name  string
		st    Strategy
		input string
		want  string
		ok    bool
	}{
		{"renames", RenameKeys(Long(), keys, true), "--bar", "foo", true},
		{"keeps unknown", RenameKeys(Long(), keys, true), "--quux", "quux", true},
		{"drops unknown", RenameKeys(Long(), keys, false), "--quux", "", false},
		{"exact comparison", RenameKeys(Long(), keys, true), "--Bar", "Bar", true},
		{
			"base comparison",
			RenameKeysMatching(Long(), keys, true, language.AmericanEnglish, collate.IgnoreCase, collate.IgnoreDiacritics),
			"--BAR", "foo", true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.st.MatchFlag(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFuncsCustomStrategy(t *testing.T) {
	st := Funcs{
		Flag: func(s string) (string, bool) {
			if strings.HasPrefix(s, "+") && len(s) > 1 {
				return s[1:], true
			}
			return "", false
		},
	}
	assert.True(t, IsUnordered(st, "+x"))
	_, ok := st.MatchOption("+x")
	assert.False(t, ok)
}
