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

package combinator_test

import (
	"context"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/combinator"
	"github.com/bufbuild/combinator/source"
)

func TestTag(t *testing.T) {
	t.Parallel()

	match, tokens, err := combinator.Parse(context.Background(), combinator.Exact("abc"), "abc")
	require.NoError(t, err)
	assert.Empty(t, tokens)
	assert.Equal(t, combinator.KindTag, match.Kind())
	assert.Equal(t, "abc", match.Text)
	assert.Equal(t, source.Span{Start: 0, End: 3}, match.Span)
	assert.True(t, match.Continuation.AtEOF())
}

func TestTagSuspend(t *testing.T) {
	t.Parallel()

	run := combinator.NewRun(combinator.Exact("abc"), source.NewString("ab"))
	assert.Equal(t, combinator.InputRequest{}, run.Next())
	assert.False(t, run.Done())

	run.Feed("cd")
	match, ok := run.Next().(*combinator.Successful)
	require.True(t, ok)
	assert.Equal(t, "abc", match.Text)
	assert.Equal(t, source.Span{Start: 0, End: 3}, match.Span)
	assert.Equal(t, "d", match.Continuation.Buffered())

	// The outcome is sticky.
	assert.Same(t, match, run.Next())
	assert.Same(t, match, run.Outcome())
	assert.NoError(t, run.Err())
}

func TestTagMismatch(t *testing.T) {
	t.Parallel()

	events, outcome := drive(combinator.Exact("abc"), "abd")
	assert.Equal(t, []string{
		"input",
		`abort tag at 2: expected 'c', but found 'd'`,
	}, events)

	aborted := outcome.(*combinator.Aborted)
	assert.Equal(t, combinator.PatternMismatch, aborted.Reason)
	assert.Equal(t, `"abc"`, aborted.Pattern)
	assert.Equal(t, "ab", aborted.PartialText)
	assert.Nil(t, aborted.LastSuccessful)
	assert.Empty(t, aborted.Causes)
}

func TestTagEOF(t *testing.T) {
	t.Parallel()

	events, _ := drive(combinator.Exact("abc"), "a", "b")
	assert.Equal(t, []string{
		"input",
		"input",
		"input",
		`abort tag at 2: expected 'c', but reached end of input`,
	}, events)
}

func TestTagPattern(t *testing.T) {
	t.Parallel()

	p := combinator.Tag(combinator.Pattern{
		combinator.Char('<'),
		combinator.Regexp(`[a-z]`),
		combinator.AnyOf("xyz"),
		combinator.In("digit", unicode.Digit),
		combinator.NoneOf(">"),
		combinator.Any,
	}, combinator.Named("T"), combinator.Transform(matched))

	events, _ := drive(p, "<by7", "-🐈")
	assert.Equal(t, []string{
		"input",
		"input",
		`token T("<by7-🐈") [0, 6)`,
		`ok tag "<by7-🐈" [0, 6)`,
	}, events)

	events, _ = drive(p, "<bx7>")
	assert.Equal(t, []string{
		"input",
		`abort tag at 4: expected none of ">", but found '>'`,
	}, events)

	assert.Equal(t, `['<' /[a-z]/ one of "xyz" digit none of ">" any character]`, patternString(p))
}

// patternString extracts a TagParser's pattern description from a failure.
func patternString(p combinator.Parser) string {
	_, _, err := combinator.Parse(context.Background(), p, "")
	return err.(*combinator.Aborted).Pattern
}

func TestTagToken(t *testing.T) {
	t.Parallel()

	_, tokens, err := combinator.Parse(context.Background(), combinator.Seq(
		combinator.Exact("<", combinator.Named("LT")),
		combinator.Exact("div", combinator.Named("NAME"), combinator.Transform(func(s *combinator.Successful) any {
			return len(s.Text)
		})),
	), "<div")
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, &combinator.Token{Name: "LT", Data: "<", Span: source.Span{Start: 0, End: 1}}, tokens[0])
	assert.Equal(t, &combinator.Token{Name: "NAME", Data: 3, Span: source.Span{Start: 1, End: 4}}, tokens[1])
}

func TestTagBounds(t *testing.T) {
	t.Parallel()

	assert.PanicsWithValue(t, "combinator: Tag does not accept Min or Max", func() {
		combinator.Exact("a", combinator.Min(1))
	})
	assert.PanicsWithValue(t, "combinator: Seq does not accept Min or Max", func() {
		combinator.Seq(combinator.Exact("a")).With(combinator.Max(2))
	})
	assert.PanicsWithValue(t, "combinator: Or does not accept Min or Max", func() {
		combinator.Or(combinator.Exact("a")).With(combinator.Min(0))
	})
}
