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

// TakeParser matches one [Test] repeatedly. See [Take].
type TakeParser struct {
	test   Test
	config config
}

// Take returns a parser that matches test against consecutive runes, at least
// [Min] and at most [Max] times (by default, one or more).
//
// Matching stops at the maximum, or at the first rejected rune, which is
// pushed back onto the source so that the next parser sees it. Running out of
// input after the minimum has been reached also stops the match cleanly;
// before the minimum, it requests more input, or aborts if the source has been
// closed.
//
// When [Named], the token is only emitted if at least one rune matched.
func Take(test Test, options ...Option) *TakeParser {
	return &TakeParser{
		test:   test,
		config: newConfig("Take", true, options),
	}
}

// Kind implements [Parser].
func (p *TakeParser) Kind() Kind {
	return KindTake
}

func (p *TakeParser) start(m *machine, prev *Successful) frame {
	return &takeFrame{p: p, prev: prev, start: m.src.Offset()}
}

type takeFrame struct {
	p     *TakeParser
	prev  *Successful
	start int

	matched []rune
	done    *Successful
}

func (f *takeFrame) step(m *machine) Event {
	if f.done != nil {
		return f.done
	}

	for f.p.config.below(len(f.matched)) {
		r, ok := m.src.Next()
		if !ok {
			if len(f.matched) >= f.p.config.min {
				break
			}
			if !m.src.Closed() {
				return InputRequest{}
			}
			return f.abort("end of input", m.src.Offset())
		}
		if !f.p.test.Match(r) {
			if len(f.matched) < f.p.config.min {
				return f.abort(describe(r), m.src.Offset()-1)
			}
			// The rejected rune belongs to whatever comes next.
			m.src.Revert(1)
			break
		}
		f.matched = append(f.matched, r)
	}

	f.done = m.succeed(KindTake, f.start)
	f.done.Text = string(f.matched)
	if len(f.matched) > 0 {
		if token := f.p.config.token(f.done); token != nil {
			return token
		}
	}
	return f.done
}

func (f *takeFrame) abort(found string, at int) *Aborted {
	return &Aborted{
		kind:   KindTake,
		Reason: BelowMinimum,
		Message: fmt.Sprintf(
			"expected at least %d of %v, but found %s after %d",
			f.p.config.min, f.p.test, found, len(f.matched),
		),
		Name:           f.p.config.name,
		Pattern:        f.p.test.String(),
		LastSuccessful: f.prev,
		PartialText:    string(f.matched),
		At:             at,
	}
}
