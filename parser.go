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
	"sync"

	"github.com/tliron/commonlog"

	"github.com/bufbuild/combinator/source"
)

// Parser is a combinator that has not been run yet.
//
// Parsers are immutable once constructed and may be shared between grammars,
// and between runs on different goroutines. The set of implementations is
// closed: [Tag], [Take], [Seq], [Or], [Repeat], and [Lazy].
type Parser interface {
	// Kind returns the kind of outcome this parser produces.
	Kind() Kind

	// start returns a new frame that will match at the current offset of
	// the run's source. prev is the most recent successful outcome before
	// this one, for diagnostics.
	start(m *machine, prev *Successful) frame
}

// frame is one in-progress invocation of a parser.
//
// A frame is a resumable state machine: each call to step advances it until it
// produces an event. After an [InputRequest], the next call resumes exactly
// where the previous one stopped. A frame must not be stepped again after it
// returns an [Outcome].
type frame interface {
	step(m *machine) Event
}

// machine is the state shared by every frame in a run.
type machine struct {
	src *source.Source
	log commonlog.Logger
}

// backtrack rewinds the source to checkpoint, undoing everything an attempt
// consumed.
func (m *machine) backtrack(kind Kind, checkpoint int) {
	if n := m.src.Rewind(checkpoint); n > 0 {
		m.log.Debug("backtrack", "kind", kind.String(), "runes", n, "offset", checkpoint)
	}
}

// succeed builds the outcome of a combinator that started at start and has
// just finished matching.
func (m *machine) succeed(kind Kind, start int) *Successful {
	return &Successful{
		kind:         kind,
		Span:         source.Span{Start: start, End: m.src.Offset()},
		Continuation: m.src,
	}
}

// queue is a FIFO of events that a frame has decided on but not yet handed to
// its parent, which receives one per step.
type queue []Event

func (q *queue) push(events ...Event) {
	*q = append(*q, events...)
}

func (q *queue) pop() (Event, bool) {
	if len(*q) == 0 {
		return nil, false
	}
	ev := (*q)[0]
	(*q)[0] = nil
	*q = (*q)[1:]
	return ev, true
}

// LazyParser defers construction of a parser until it is first run. See [Lazy].
type LazyParser struct {
	once   sync.Once
	f      func() Parser
	parser Parser
}

// Lazy returns a parser that calls f the first time it is needed and behaves
// exactly like the result. This is how recursive grammars refer to rules that
// are not defined yet.
func Lazy(f func() Parser) *LazyParser {
	return &LazyParser{f: f}
}

// Kind implements [Parser].
func (p *LazyParser) Kind() Kind {
	return p.get().Kind()
}

func (p *LazyParser) start(m *machine, prev *Successful) frame {
	return p.get().start(m, prev)
}

func (p *LazyParser) get() Parser {
	p.once.Do(func() {
		p.parser = p.f()
		if p.parser == nil {
			panic("combinator: Lazy function returned a nil parser")
		}
	})
	return p.parser
}
