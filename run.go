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
	"context"
	"errors"
	"io"
	"iter"

	"github.com/tliron/commonlog"

	"github.com/bufbuild/combinator/source"
)

// Run is one invocation of a [Parser] over a [source.Source].
//
// A Run is driven by calling [Run.Next] until it returns an [Outcome]. When it
// returns an [InputRequest], the caller must call [Run.Feed] or [Run.Close]
// before calling Next again.
//
// A Run is not safe for concurrent use.
type Run struct {
	m       machine
	root    frame
	waiting bool // The last event was an InputRequest that has not been answered.
	outcome Outcome
	err     error
}

// NewRun prepares parser to run over src. Nothing is consumed until the first
// call to [Run.Next].
//
// src must not be shared with another Run.
func NewRun(parser Parser, src *source.Source) *Run {
	r := &Run{m: machine{
		src: src,
		log: commonlog.GetLogger("combinator"),
	}}
	r.root = parser.start(&r.m, nil)
	return r
}

// Source returns the source this run reads from.
func (r *Run) Source() *source.Source {
	return r.m.src
}

// Next steps the parser until it produces an event.
//
// Once an [Outcome] has been returned, every further call returns it again.
//
// Panics if the previous call returned an [InputRequest] and neither
// [Run.Feed] nor [Run.Close] has been called since.
func (r *Run) Next() Event {
	if r.outcome != nil {
		return r.outcome
	}
	if r.waiting {
		panic("combinator: Run.Next called after InputRequest without Feed or Close")
	}

	ev := r.root.step(&r.m)
	switch ev := ev.(type) {
	case InputRequest:
		r.waiting = true
		r.m.log.Debug("suspend", "offset", r.m.src.Offset())
	case *Successful:
		r.outcome = ev
		r.m.log.Debug("matched", "kind", ev.kind.String(), "span", ev.Span.String())
	case *Aborted:
		r.outcome = ev
		r.m.log.Debug("aborted", "kind", ev.kind.String(), "at", ev.At, "message", ev.Message)
	}
	return ev
}

// Feed answers an [InputRequest] with another chunk of input.
//
// An empty chunk means no more input exists, exactly like [Run.Close].
func (r *Run) Feed(chunk string) {
	if chunk == "" {
		r.Close()
		return
	}
	r.m.src.Feed(chunk)
	r.waiting = false
	r.m.log.Debug("resume", "bytes", len(chunk))
}

// Close answers an [InputRequest] by declaring that no more input will ever
// arrive. Parsers that still need input will abort.
func (r *Run) Close() {
	if !r.m.src.Closed() {
		r.m.src.Close()
		r.m.log.Debug("closed", "offset", r.m.src.Offset())
	}
	r.waiting = false
}

// Done returns whether the run has produced its outcome.
func (r *Run) Done() bool {
	return r.outcome != nil
}

// Outcome returns the terminal outcome, or nil if the run has not finished.
func (r *Run) Outcome() Outcome {
	return r.outcome
}

// Err returns the error that ended the run: a failure from [Run.Tokens]'s
// supplier or context, or the [*Aborted] outcome. Returns nil for a run that
// matched or has not finished.
func (r *Run) Err() error {
	if r.err != nil {
		return r.err
	}
	if aborted, ok := r.outcome.(*Aborted); ok {
		return aborted
	}
	return nil
}

// Supplier produces the next chunk of input for a suspended run. It returns
// [io.EOF] (possibly alongside a final chunk) once the input is exhausted.
type Supplier func(ctx context.Context) (string, error)

// Tokens returns an iterator that drives the run to completion, yielding each
// [*Token] as it is produced. Each [InputRequest] is answered by calling
// supply; a nil supply means there is no more input.
//
// ctx is checked at every suspension. When iteration stops, [Run.Outcome] and
// [Run.Err] describe how the run ended; if it stopped because the consumer
// broke out of the loop, the run can be resumed by iterating again.
func (r *Run) Tokens(ctx context.Context, supply Supplier) iter.Seq[*Token] {
	return func(yield func(*Token) bool) {
		for r.err == nil {
			switch ev := r.Next().(type) {
			case *Token:
				if !yield(ev) {
					return
				}
			case InputRequest:
				if err := context.Cause(ctx); err != nil {
					r.err = err
					return
				}
				if supply == nil {
					r.Close()
					continue
				}

				chunk, err := supply(ctx)
				switch {
				case errors.Is(err, io.EOF):
					if chunk != "" {
						r.m.src.Feed(chunk)
					}
					r.Close()
				case err != nil:
					r.err = err
					return
				default:
					r.Feed(chunk)
				}
			case *Successful, *Aborted:
				return
			}
		}
	}
}

// Parse runs parser over the complete input and returns the match along with
// every token produced.
//
// On failure, the error is the [*Aborted] outcome, or ctx's error.
func Parse(ctx context.Context, parser Parser, input string) (*Successful, []*Token, error) {
	run := NewRun(parser, source.Complete(input))
	return collect(ctx, run, nil)
}

func collect(ctx context.Context, run *Run, supply Supplier) (*Successful, []*Token, error) {
	var tokens []*Token
	for token := range run.Tokens(ctx, supply) {
		tokens = append(tokens, token)
	}
	if err := run.Err(); err != nil {
		return nil, tokens, err
	}
	match, _ := run.Outcome().(*Successful)
	return match, tokens, nil
}
