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

import "fmt"

// TagParser matches a [Pattern]. See [Tag].
type TagParser struct {
	pattern Pattern
	config  config
}

// Tag returns a parser that matches pattern: each [Test] in it against the
// next rune, in order. The first rejected rune aborts the match; there is no
// retry and no partial success.
//
// If input runs out partway through, the parser requests more and resumes with
// the next test in the pattern. If the source has been closed, it aborts
// instead.
//
// Min and Max are not accepted.
func Tag(pattern Pattern, options ...Option) *TagParser {
	return &TagParser{
		pattern: pattern,
		config:  newConfig("Tag", false, options),
	}
}

// Exact is shorthand for Tag(Literal(text), options...).
func Exact(text string, options ...Option) *TagParser {
	return Tag(Literal(text), options...)
}

// Kind implements [Parser].
func (p *TagParser) Kind() Kind {
	return KindTag
}

func (p *TagParser) start(m *machine, prev *Successful) frame {
	return &tagFrame{p: p, prev: prev, start: m.src.Offset()}
}

type tagFrame struct {
	p     *TagParser
	prev  *Successful
	start int

	next    int // Index of the next test in the pattern.
	matched []rune
	done    *Successful
}

func (f *tagFrame) step(m *machine) Event {
	if f.done != nil {
		return f.done
	}

	for f.next < len(f.p.pattern) {
		test := f.p.pattern[f.next]
		r, ok := m.src.Next()
		if !ok {
			if !m.src.Closed() {
				return InputRequest{}
			}
			return f.abort(fmt.Sprintf("expected %v, but reached end of input", test), m.src.Offset())
		}
		if !test.Match(r) {
			return f.abort(fmt.Sprintf("expected %v, but found %s", test, describe(r)), m.src.Offset()-1)
		}
		f.matched = append(f.matched, r)
		f.next++
	}

	f.done = m.succeed(KindTag, f.start)
	f.done.Text = string(f.matched)
	if token := f.p.config.token(f.done); token != nil {
		return token
	}
	return f.done
}

func (f *tagFrame) abort(message string, at int) *Aborted {
	return &Aborted{
		kind:           KindTag,
		Reason:         PatternMismatch,
		Message:        message,
		Name:           f.p.config.name,
		Pattern:        f.p.pattern.String(),
		LastSuccessful: f.prev,
		PartialText:    string(f.matched),
		At:             at,
	}
}
