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
	"slices"
)

// RepeatParser runs a parser repeatedly. See [Repeat].
type RepeatParser struct {
	parser Parser
	config config
}

// Repeat returns a parser that runs parser repeatedly against the advancing
// source, at least [Min] and at most [Max] times (by default, one or more).
//
// An attempt that aborts is undone completely and never counts. If that
// happens before the minimum is reached, Repeat aborts too; otherwise it is
// the normal end of the repetition. Likewise, once the minimum is reached,
// running out of input ends the repetition instead of waiting for more: the
// partial attempt is undone and Repeat succeeds with what it has.
//
// Tokens are held back until the minimum is reached, since the whole
// repetition may still abort before then. After that, each attempt's tokens
// are passed on as soon as the attempt succeeds.
//
// An attempt that succeeds without consuming anything ends the repetition
// once the minimum is met. Below the minimum it counts, and is simply run
// again until the minimum is reached.
//
// When [Named], the token is only emitted if at least one attempt matched.
func Repeat(parser Parser, options ...Option) *RepeatParser {
	return &RepeatParser{
		parser: parser,
		config: newConfig("Repeat", true, options),
	}
}

// Optional returns a parser that matches parser zero or one times. It never
// aborts: if parser does not match, Optional succeeds with no children.
//
// This is exactly Repeat with Min(0) and Max(1); bounds in options are
// overridden.
func Optional(parser Parser, options ...Option) *RepeatParser {
	return Repeat(parser, append(slices.Clip(options), Min(0), Max(1))...)
}

// Kind implements [Parser].
func (p *RepeatParser) Kind() Kind {
	return KindRepeat
}

func (p *RepeatParser) start(m *machine, prev *Successful) frame {
	return &repeatFrame{p: p, last: prev, start: m.src.Offset()}
}

type repeatFrame struct {
	p     *RepeatParser
	last  *Successful
	start int

	checkpoint int
	child      frame
	results    []*Successful

	attempt []*Token // Tokens from the attempt in flight.
	held    []*Token // Tokens from completed attempts, while below the minimum.
	out     queue
}

func (f *repeatFrame) step(m *machine) Event {
	if ev, ok := f.out.pop(); ok {
		return ev
	}

	for f.p.config.below(len(f.results)) {
		if f.child == nil {
			f.checkpoint = m.src.Offset()
			f.child = f.p.parser.start(m, f.last)
		}

		switch ev := f.child.step(m).(type) {
		case *Token:
			f.attempt = append(f.attempt, ev)

		case InputRequest:
			if len(f.results) < f.p.config.min {
				return ev
			}
			// Greedy, but never blocks once the minimum is met.
			m.backtrack(KindRepeat, f.checkpoint)
			return f.finish(m)

		case *Successful:
			f.results = append(f.results, ev)
			f.last = ev
			f.child = nil

			f.held = append(f.held, f.attempt...)
			clear(f.attempt)
			f.attempt = f.attempt[:0]
			if len(f.results) >= f.p.config.min {
				for _, token := range f.held {
					f.out.push(token)
				}
				f.held = nil
			}

			// A zero-width attempt cannot make progress, but still counts
			// toward the minimum.
			if m.src.Offset() == f.checkpoint && len(f.results) >= f.p.config.min {
				return f.finish(m)
			}
			if ev, ok := f.out.pop(); ok {
				return ev
			}

		case *Aborted:
			m.backtrack(KindRepeat, f.checkpoint)
			if len(f.results) < f.p.config.min {
				return &Aborted{
					kind:   KindRepeat,
					Reason: BelowMinimum,
					Message: fmt.Sprintf(
						"expected at least %d repetitions, but matched %d: %s",
						f.p.config.min, len(f.results), ev.Message,
					),
					Name:            f.p.config.name,
					LastSuccessful:  f.last,
					PartialChildren: f.results,
					At:              ev.At,
				}
			}
			return f.finish(m)
		}
	}

	return f.finish(m)
}

// finish queues the successful outcome behind any pending tokens, and returns
// the first queued event.
func (f *repeatFrame) finish(m *machine) Event {
	f.child = nil
	for _, token := range f.held {
		f.out.push(token)
	}
	f.held = nil

	result := m.succeed(KindRepeat, f.start)
	result.Children = f.results
	if len(f.results) > 0 {
		if token := f.p.config.token(result); token != nil {
			f.out.push(token)
		}
	}
	f.out.push(result)

	ev, _ := f.out.pop()
	return ev
}
