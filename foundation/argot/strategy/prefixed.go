// File: prefixed.go
// Title: Prefix and Separator Strategies
// Description: Conventional "--flag", "--opt=" and "--opt=value" syntax
//              with configurable prefixes and separators.
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-06
// Modified: 2025-11-21
//
// Change History:
// - 2025-11-06 v0.1.0: Initial implementation
// - 2025-11-21 v0.1.0: Document empty names

package strategy

import (
	"strings"
)

type prefixed struct {
	prefixes   []string
	separators []string
}

// Prefixed returns a strategy for prefix/separator syntax. Given prefix
// "--" and separator "=":
//
//	--flag       flag "flag"
//	--opt=       option "opt", value in the next token
//	--opt=value  compact option "opt" with value "value"
//	--           ordered, not flag ""
//	--=x         ordered, not option "" with value "x"
//
// Empty names are rejected by all three matchers, so a lone prefix such as
// the "--" end-of-options marker stays an ordered token. Only the first
// listed prefix that matches is considered, so prefixes and separators
// should be ordered longest first ("--" before "-").
func Prefixed(prefixes, separators []string) Strategy {
	p := prefixed{}
	for _, x := range prefixes {
		if x != "" {
			p.prefixes = append(p.prefixes, x)
		}
	}
	for _, x := range separators {
		if x != "" {
			p.separators = append(p.separators, x)
		}
	}
	return p
}

// Long matches --flag, --opt= and --opt=value. A lone "--" has an empty
// name and is left ordered.
func Long() Strategy {
	return Prefixed([]string{"--"}, []string{"="})
}

// LongShort matches the Long syntax and the same with a single dash
func LongShort() Strategy {
	return Prefixed([]string{"--", "-"}, []string{"="})
}

func (p prefixed) stripPrefix(s string) (string, bool) {
	for _, pre := range p.prefixes {
		if strings.HasPrefix(s, pre) {
			return s[len(pre):], true
		}
	}
	return "", false
}

func (p prefixed) MatchFlag(s string) (string, bool) {
	rest, ok := p.stripPrefix(s)
	if !ok || rest == "" {
		return "", false
	}
	for _, sep := range p.separators {
		if strings.Contains(rest, sep) {
			return "", false
		}
	}
	return rest, true
}

func (p prefixed) MatchOption(s string) (string, bool) {
	rest, ok := p.stripPrefix(s)
	if !ok {
		return "", false
	}
	for _, sep := range p.separators {
		if name, found := strings.CutSuffix(rest, sep); found {
			if name == "" {
				return "", false
			}
			return name, true
		}
	}
	return "", false
}

func (p prefixed) MatchCompactOption(s string) (string, string, bool) {
	rest, ok := p.stripPrefix(s)
	if !ok {
		return "", "", false
	}
	for _, sep := range p.separators {
		i := strings.Index(rest, sep)
		if i < 0 {
			continue
		}
		name, value := rest[:i], rest[i+len(sep):]
		if name == "" || value == "" {
			return "", "", false
		}
		return name, value, true
	}
	return "", "", false
}
