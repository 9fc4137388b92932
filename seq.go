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

// SeqParser runs parsers in order. See [Seq].
type SeqParser struct {
	parsers []Parser
	config  config
}

// Seq returns a parser that runs each of parsers in order, each one starting
// where the previous one stopped.
//
// Tokens from the children are passed through as soon as they are produced.
// The first child to abort aborts the whole sequence; children that already
// matched are not undone here, which is left to an enclosing [Or] or [Repeat].
//
// On success, [Successful.Children] holds every child's outcome.
func Seq(parsers ...Parser) *SeqParser {
	return &SeqParser{
		parsers: parsers,
		config:  newConfig("Seq", false, nil),
	}
}

// With returns a copy of this parser with additional options applied.
//
// Min and Max are not accepted.
func (p *SeqParser) With(options ...Option) *SeqParser {
	q := *p
	q.config = p.config.with("Seq", false, options)
	return &q
}

// Kind implements [Parser].
func (p *SeqParser) Kind() Kind {
	return KindSeq
}

func (p *SeqParser) start(m *machine, prev *Successful) frame {
	return &seqFrame{p: p, last: prev, start: m.src.Offset()}
}

type seqFrame struct {
	p     *SeqParser
	last  *Successful // The most recent success, in or before the sequence.
	start int

	child    frame
	children []*Successful
	done     *Successful
}

func (f *seqFrame) step(m *machine) Event {
	if f.done != nil {
		return f.done
	}

	for len(f.children) < len(f.p.parsers) {
		if f.child == nil {
			f.child = f.p.parsers[len(f.children)].start(m, f.last)
		}

		switch ev := f.child.step(m).(type) {
		case *Token, InputRequest:
			return ev
		case *Successful:
			f.children = append(f.children, ev)
			f.last = ev
			f.child = nil
		case *Aborted:
			return &Aborted{
				kind:            KindSeq,
				Reason:          SequenceStepFailed,
				Message:         fmt.Sprintf("%v step %d failed: %s", ev.kind, len(f.children)+1, ev.Message),
				Name:            f.p.config.name,
				LastSuccessful:  f.last,
				PartialChildren: f.children,
				Causes:          []*Aborted{ev},
				At:              ev.At,
			}
		}
	}

	f.done = m.succeed(KindSeq, f.start)
	f.done.Children = f.children
	if token := f.p.config.token(f.done); token != nil {
		return token
	}
	return f.done
}
