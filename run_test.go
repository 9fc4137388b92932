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
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/combinator"
	"github.com/bufbuild/combinator/source"
)

func TestRunRequiresInput(t *testing.T) {
	t.Parallel()

	run := combinator.NewRun(combinator.Exact("a"), source.New())
	assert.Equal(t, combinator.InputRequest{}, run.Next())
	assert.PanicsWithValue(t, "combinator: Run.Next called after InputRequest without Feed or Close", func() {
		run.Next()
	})
}

func TestRunFeedEmptyCloses(t *testing.T) {
	t.Parallel()

	run := combinator.NewRun(combinator.Exact("a"), source.New())
	assert.Equal(t, combinator.InputRequest{}, run.Next())
	run.Feed("")
	assert.True(t, run.Source().Closed())

	aborted, ok := run.Next().(*combinator.Aborted)
	require.True(t, ok)
	assert.Equal(t, "expected 'a', but reached end of input", aborted.Message)
	assert.True(t, run.Done())
	assert.Same(t, aborted, run.Err())
}

func TestRunTokens(t *testing.T) {
	t.Parallel()

	chunks := []string{"<d", "iv", ">"}
	supply := func(context.Context) (string, error) {
		if len(chunks) == 0 {
			return "", io.EOF
		}
		chunk := chunks[0]
		chunks = chunks[1:]
		return chunk, nil
	}

	run := combinator.NewRun(element(), source.New())
	var names []string
	for token := range run.Tokens(context.Background(), supply) {
		names = append(names, token.String())
	}
	assert.Equal(t, []string{`OPEN("<")`, `NAME("div")`, `CLOSE(">")`}, names)
	require.NoError(t, run.Err())
	assert.Equal(t, "<div>", run.Outcome().(*combinator.Successful).Matched())
}

func TestRunTokensFinalChunk(t *testing.T) {
	t.Parallel()

	// A supplier may hand over the last chunk alongside io.EOF.
	done := false
	supply := func(context.Context) (string, error) {
		if done {
			t.Fatal("supplier called after io.EOF")
		}
		done = true
		return "aaa", io.EOF
	}

	run := combinator.NewRun(combinator.Repeat(combinator.Exact("a"), combinator.Min(2)), source.New())
	for range run.Tokens(context.Background(), supply) {
	}
	require.NoError(t, run.Err())
	assert.Len(t, run.Outcome().(*combinator.Successful).Children, 3)
}

func TestRunTokensSupplierError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	run := combinator.NewRun(combinator.Exact("abc"), source.New())
	for range run.Tokens(context.Background(), func(context.Context) (string, error) {
		return "", boom
	}) {
	}
	assert.ErrorIs(t, run.Err(), boom)
	assert.False(t, run.Done())
}

func TestRunTokensCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	run := combinator.NewRun(combinator.Exact("abc"), source.NewString("ab"))
	for range run.Tokens(ctx, nil) {
	}
	assert.ErrorIs(t, run.Err(), context.Canceled)
	assert.Equal(t, 2, run.Source().Offset())
}

func TestRunTokensBreak(t *testing.T) {
	t.Parallel()

	p := combinator.Repeat(combinator.Take(combinator.Any, combinator.Max(1), combinator.Named("C")))
	run := combinator.NewRun(p, source.Complete("abc"))

	for range run.Tokens(context.Background(), nil) {
		break
	}
	assert.False(t, run.Done())

	// Iterating again picks up where the first loop stopped.
	var rest []string
	for token := range run.Tokens(context.Background(), nil) {
		rest = append(rest, token.Data.(string))
	}
	assert.Equal(t, []string{"b", "c"}, rest)
	assert.True(t, run.Done())
}

func TestLazy(t *testing.T) {
	t.Parallel()

	// list := "(" (list | "x")* ")"
	var list combinator.Parser
	list = combinator.Seq(
		combinator.Exact("("),
		combinator.Repeat(combinator.Or(
			combinator.Lazy(func() combinator.Parser { return list }),
			combinator.Exact("x", combinator.Named("X")),
		), combinator.Min(0)),
		combinator.Exact(")"),
	)

	match, tokens, err := combinator.Parse(context.Background(), list, "(x(x())x)")
	require.NoError(t, err)
	assert.Equal(t, "(x(x())x)", match.Matched())
	assert.Len(t, tokens, 3)
	require.NoError(t, combinator.CheckCoverage(match))

	_, _, err = combinator.Parse(context.Background(), list, "(x(x)")
	assert.Error(t, err)

	assert.PanicsWithValue(t, "combinator: Lazy function returned a nil parser", func() {
		combinator.Lazy(func() combinator.Parser { return nil }).Kind()
	})
}

// element matches an opening HTML tag, like <div>.
func element() combinator.Parser {
	return combinator.Seq(
		combinator.Exact("<", combinator.Named("OPEN")),
		combinator.Or(
			combinator.Exact("div"),
			combinator.Exact("span"),
			combinator.Exact("a"),
		).With(combinator.Named("NAME"), combinator.Transform(matched)),
		combinator.Exact(">", combinator.Named("CLOSE")),
	)
}

func TestParseReader(t *testing.T) {
	t.Parallel()

	p := combinator.Seq(element(), element(), element())
	match, tokens, err := combinator.ParseReader(
		context.Background(), p,
		iotest.OneByteReader(strings.NewReader("<a><span><div>")),
		combinator.ReaderOptions{Prefetch: 2},
	)
	require.NoError(t, err)
	assert.Len(t, match.Children, 3)
	assert.Equal(t, "<a><span><div>", match.Matched())
	assert.Len(t, tokens, 9)
	require.NoError(t, combinator.CheckCoverage(match))
}

func TestParseReaderError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	_, _, err := combinator.ParseReader(
		context.Background(), element(),
		io.MultiReader(strings.NewReader("<di"), iotest.ErrReader(boom)),
		combinator.ReaderOptions{},
	)
	assert.ErrorIs(t, err, boom)
}

func TestReaderSupplier(t *testing.T) {
	t.Parallel()

	run := combinator.NewRun(element(), source.New())
	supply := combinator.ReaderSupplier(
		iotest.HalfReader(strings.NewReader("<span>")),
		combinator.ReaderOptions{ChunkSize: 4},
	)

	var tokens []*combinator.Token
	for token := range run.Tokens(context.Background(), supply) {
		tokens = append(tokens, token)
	}
	require.NoError(t, run.Err())
	require.Len(t, tokens, 3)
	assert.Equal(t, "span", tokens[1].Data)
	assert.Equal(t, source.Span{Start: 1, End: 5}, tokens[1].Span)
}
