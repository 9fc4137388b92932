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
	"strings"

	"github.com/bufbuild/combinator/source"
)

// Event is the result of stepping a parser once.
//
// It is one of [*Token], [InputRequest], [*Successful], or [*Aborted]; no other
// types implement it.
type Event interface {
	event()
}

// Signal is an intermediate [Event]: a [*Token] or an [InputRequest].
type Signal interface {
	Event
	signal()
}

// Outcome is a terminal [Event]: a [*Successful] or an [*Aborted].
type Outcome interface {
	Event
	outcome()

	// Kind returns the kind of combinator that produced this outcome.
	Kind() Kind
}

// Token is a labeled piece of output that a combinator surfaces to the
// caller, requested with [Named].
type Token struct {
	// The name given with [Named].
	Name string
	// The matched data, or the result of the [Transform] function.
	Data any
	// The runes this token summarizes.
	Span source.Span
}

// String implements [fmt.Stringer].
func (t *Token) String() string {
	if s, ok := t.Data.(string); ok {
		return fmt.Sprintf("%s(%q)", t.Name, s)
	}
	return fmt.Sprintf("%s(%v)", t.Name, t.Data)
}

// InputRequest is the suspend signal: the source is exhausted and the parser
// needs more input before it can continue.
type InputRequest struct{}

// Successful is the outcome of a combinator that matched.
type Successful struct {
	kind Kind

	// The matched text, for Tag and Take.
	Text string
	// The outcomes of the children, in order, for Seq and Repeat. For Or, this
	// holds exactly one element: the winning alternative.
	Children []*Successful

	// The runes consumed by this match.
	Span source.Span
	// The source the match was read from. It is shared by the whole parse and
	// keeps advancing after this match; Span.End is the stable offset right
	// after the match.
	Continuation *source.Source
}

// Kind implements [Outcome].
func (s *Successful) Kind() Kind {
	return s.kind
}

// Data returns the raw matched value: [Successful.Text] for leaves, and
// [Successful.Children] otherwise.
func (s *Successful) Data() any {
	switch s.kind {
	case KindTag, KindTake:
		return s.Text
	default:
		return s.Children
	}
}

// Matched returns the text consumed by this match, including text consumed by
// all of its descendants.
func (s *Successful) Matched() string {
	if s.Continuation == nil {
		return s.Text
	}
	return s.Continuation.Text(s.Span.Start, s.Span.End)
}

// String implements [fmt.Stringer].
func (s *Successful) String() string {
	return fmt.Sprintf("%v %q %v", s.kind, s.Matched(), s.Span)
}

// Aborted is the outcome of a combinator that failed to match.
//
// Aborted is also an error. Its [Aborted.Unwrap] exposes [Aborted.Causes], so
// [errors.As] can search the whole failure trail.
type Aborted struct {
	kind Kind

	Reason  Reason
	Message string

	// The name given with [Named], if any.
	Name string
	// A description of what a leaf expected, for Tag and Take.
	Pattern string

	// The last successful outcome before the failure: the previous sibling
	// in a Seq, or whatever matched before this combinator started.
	LastSuccessful *Successful

	// What matched before the failure. PartialText is used by Tag and Take,
	// PartialChildren by Seq and Repeat.
	PartialText     string
	PartialChildren []*Successful

	// The nested failures that led to this one, in the order they occurred.
	// Only Seq and Or record causes.
	Causes []*Aborted

	// The rune offset at which the failure was detected.
	At int
}

// Kind implements [Outcome].
func (a *Aborted) Kind() Kind {
	return a.kind
}

// Error implements [error].
func (a *Aborted) Error() string {
	return a.Message
}

// Unwrap returns the causes of this failure.
func (a *Aborted) Unwrap() []error {
	if len(a.Causes) == 0 {
		return nil
	}
	errs := make([]error, len(a.Causes))
	for i, cause := range a.Causes {
		errs[i] = cause
	}
	return errs
}

// Deepest follows the causes of this failure to the leaf that got furthest
// into the input, which is usually the most useful one to show a user.
func (a *Aborted) Deepest() *Aborted {
	for len(a.Causes) > 0 {
		next := a.Causes[0]
		for _, cause := range a.Causes[1:] {
			if cause.At > next.At {
				next = cause
			}
		}
		a = next
	}
	return a
}

// Explain renders the whole failure trail as an indented tree, one failure per
// line.
func (a *Aborted) Explain() string {
	var out strings.Builder
	var walk func(*Aborted, int)
	walk = func(a *Aborted, depth int) {
		fmt.Fprintf(&out, "%s%v: %s\n", strings.Repeat("  ", depth), a.kind, a.Message)
		for _, cause := range a.Causes {
			walk(cause, depth+1)
		}
	}
	walk(a, 0)
	return out.String()
}

func (*Token) event() {}
func (InputRequest) event() {}
func (*Successful) event() {}
func (*Aborted) event() {}

func (*Token) signal() {}
func (InputRequest) signal() {}

func (*Successful) outcome() {}
func (*Aborted) outcome() {}
