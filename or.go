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

// OrParser tries alternatives in order. See [Or].
type OrParser struct {
	parsers []Parser
	config  config
}

// Or returns a parser that tries each of parsers in order, starting from the
// same position each time, and succeeds with the first one that matches.
//
// The first matching alternative wins, irrespective of how much input a later
// one might have matched. Callers writing ambiguous grammars rely on this.
//
// An alternative that aborts leaves no trace: the runes it consumed are
// reverted and the tokens it produced are discarded. To make that possible,
// tokens are held back until an alternative succeeds, and then passed on in
// their original order.
//
// If every alternative aborts, so does Or, with one cause per alternative.
func Or(parsers ...Parser) *OrParser {
	return &OrParser{
		parsers: parsers,
		config:  newConfig("Or", false, nil),
	}
}

// With returns a copy of this parser with additional options applied.
//
// Min and Max are not accepted.
func (p *OrParser) With(options ...Option) *OrParser {
	q := *p
	q.config = p.config.with("Or", false, options)
	return &q
}

// Kind implements [Parser].
func (p *OrParser) Kind() Kind {
	return KindOr
}

func (p *OrParser) start(m *machine, prev *Successful) frame {
	return &orFrame{p: p, prev: prev, start: m.src.Offset()}
}

type orFrame struct {
	p     *OrParser
	prev  *Successful
	start int

	next       int // Index of the alternative being tried.
	checkpoint int
	child      frame

	held   []*Token // Tokens from the current alternative.
	causes []*Aborted
	out    queue
}

func (f *orFrame) step(m *machine) Event {
	if ev, ok := f.out.pop(); ok {
		return ev
	}

	for f.next < len(f.p.parsers) {
		if f.child == nil {
			f.checkpoint = m.src.Offset()
			f.child = f.p.parsers[f.next].start(m, f.prev)
		}

		switch ev := f.child.step(m).(type) {
		case *Token:
			f.held = append(f.held, ev)
		case InputRequest:
			return ev
		case *Successful:
			result := m.succeed(KindOr, f.start)
			result.Children = []*Successful{ev}

			for _, token := range f.held {
				f.out.push(token)
			}
			f.held = nil
			if token := f.p.config.token(result); token != nil {
				f.out.push(token)
			}
			f.out.push(result)

			next, _ := f.out.pop()
			return next
		case *Aborted:
			f.causes = append(f.causes, ev)
			m.backtrack(KindOr, f.checkpoint)
			clear(f.held)
			f.held = f.held[:0]
			f.child = nil
			f.next++
		}
	}

	at := f.start
	for _, cause := range f.causes {
		at = max(at, cause.At)
	}
	return &Aborted{
		kind:           KindOr,
		Reason:         NoAlternativeMatched,
		Message:        "no alternative matched",
		Name:           f.p.config.name,
		LastSuccessful: f.prev,
		Causes:         f.causes,
		At:             at,
	}
}
