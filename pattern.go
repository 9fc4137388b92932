// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package combinator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Test is a single-rune comparator.
type Test interface {
	// Match returns whether r is accepted.
	Match(r rune) bool

	// String describes what the test accepts, for diagnostics.
	String() string
}

// Char returns a [Test] that accepts exactly r.
func Char(r rune) Test {
	return char(r)
}

// AnyOf returns a [Test] that accepts any rune in chars.
func AnyOf(chars string) Test {
	return &set{chars: chars}
}

// NoneOf returns a [Test] that accepts any rune not in chars.
func NoneOf(chars string) Test {
	return &set{chars: chars, negate: true}
}

// Range returns a [Test] that accepts runes between lo and hi, inclusive.
func Range(lo, hi rune) Test {
	return Func(fmt.Sprintf("%s…%s", strconv.QuoteRune(lo), strconv.QuoteRune(hi)), func(r rune) bool {
		return lo <= r && r <= hi
	})
}

// In returns a [Test] that accepts runes in any of the given Unicode tables.
func In(name string, tables ...*unicode.RangeTable) Test {
	return Func(name, func(r rune) bool { return unicode.In(r, tables...) })
}

// Regexp returns a [Test] that accepts a rune if expr matches it, when the rune
// is taken as a one-rune string. For example, Regexp(`[a-z]`).
//
// Panics if expr does not compile.
func Regexp(expr string) Test {
	return &re{regexp.MustCompile(expr)}
}

// Func returns a [Test] that accepts runes for which f returns true. The name
// is used in diagnostics.
func Func(name string, f func(rune) bool) Test {
	return &fn{name, f}
}

// Any is a [Test] that accepts every rune.
var Any Test = Func("any character", func(rune) bool { return true })

// Pattern is an ordered list of [Test]s, matched one rune each by [Tag].
type Pattern []Test

// Literal returns a [Pattern] that matches text exactly.
func Literal(text string) Pattern {
	pattern := make(Pattern, 0, len(text))
	for _, r := range text {
		pattern = append(pattern, char(r))
	}
	return pattern
}

// String implements [fmt.Stringer].
func (p Pattern) String() string {
	var literal strings.Builder
	for _, test := range p {
		c, ok := test.(char)
		if !ok {
			literal.Reset()
			break
		}
		literal.WriteRune(rune(c))
	}
	if literal.Len() > 0 || len(p) == 0 {
		return strconv.Quote(literal.String())
	}

	parts := make([]string, len(p))
	for i, test := range p {
		parts[i] = test.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

type char rune

func (c char) Match(r rune) bool { return rune(c) == r }
func (c char) String() string    { return strconv.QuoteRune(rune(c)) }

type set struct {
	chars  string
	negate bool
}

func (s *set) Match(r rune) bool { return strings.ContainsRune(s.chars, r) != s.negate }
func (s *set) String() string {
	if s.negate {
		return "none of " + strconv.Quote(s.chars)
	}
	return "one of " + strconv.Quote(s.chars)
}

type re struct{ *regexp.Regexp }

func (r *re) Match(c rune) bool { return r.MatchString(string(c)) }
func (r *re) String() string    { return "/" + r.Regexp.String() + "/" }

type fn struct {
	name string
	f    func(rune) bool
}

func (f *fn) Match(r rune) bool { return f.f(r) }
func (f *fn) String() string    { return f.name }

// describe renders a rune found in the input for a diagnostic.
func describe(r rune) string {
	return strconv.QuoteRune(r)
}
