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

package source

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// Source is a resumable, revertible stream of runes.
//
// The zero value is an empty, open Source that is ready to use.
type Source struct {
	// Every rune decoded so far, in order. Runes before cursor have been
	// consumed; runes after it were reverted and will be re-yielded.
	buf    []rune
	cursor int

	// Fed bytes that have not been decoded yet. A trailing incomplete UTF-8
	// sequence stays here until the rest of it arrives.
	pending []byte
	closed  bool

	// Offsets into buf at which each line after the first begins.
	lines []int
}

// New returns a new open Source with no input.
func New() *Source {
	return new(Source)
}

// NewString returns a new open Source whose first chunk is text.
func NewString(text string) *Source {
	s := New()
	s.Feed(text)
	return s
}

// Complete returns a closed Source containing exactly text.
func Complete(text string) *Source {
	s := NewString(text)
	s.Close()
	return s
}

// Feed appends a chunk of input.
//
// Panics if the Source has been closed.
func (s *Source) Feed(chunk string) {
	if s.closed {
		panic("combinator/source: Feed called after Close")
	}
	s.pending = append(s.pending, chunk...)
}

// Close marks the Source as permanently exhausted: once the runes already
// fed have been consumed, no more will arrive.
func (s *Source) Close() {
	s.closed = true
}

// Closed returns whether [Source.Close] has been called.
func (s *Source) Closed() bool {
	return s.closed
}

// Next returns the next rune.
//
// Returns false if no rune is currently available. Callers distinguish
// "wait for more input" from "end of input" with [Source.Closed].
func (s *Source) Next() (rune, bool) {
	if s.cursor < len(s.buf) {
		r := s.buf[s.cursor]
		s.cursor++
		return r, true
	}

	if len(s.pending) == 0 || (!s.closed && !utf8.FullRune(s.pending)) {
		return 0, false
	}

	r, n := utf8.DecodeRune(s.pending)
	s.pending = s.pending[n:]
	s.buf = append(s.buf, r)
	s.cursor++
	if r == '\n' {
		s.lines = append(s.lines, len(s.buf))
	}
	return r, true
}

// Exhausted returns whether [Source.Next] would currently return false.
func (s *Source) Exhausted() bool {
	if s.cursor < len(s.buf) {
		return false
	}
	return len(s.pending) == 0 || (!s.closed && !utf8.FullRune(s.pending))
}

// AtEOF returns whether the Source is closed and fully consumed.
func (s *Source) AtEOF() bool {
	return s.closed && s.Exhausted()
}

// Offset returns the number of runes consumed so far.
//
// This is the checkpoint a parser records before an attempt; the distance to
// revert after a failed attempt is always Offset() minus that checkpoint.
func (s *Source) Offset() int {
	return s.cursor
}

// Len returns the number of runes decoded so far, including reverted runes
// that have not been consumed again.
func (s *Source) Len() int {
	return len(s.buf)
}

// Revert pushes the last n consumed runes back, so that the next n calls to
// [Source.Next] yield them again, in order.
//
// Panics if n is negative or greater than [Source.Offset].
func (s *Source) Revert(n int) {
	if n < 0 || n > s.cursor {
		panic(fmt.Sprintf("combinator/source: cannot revert %d runes at offset %d", n, s.cursor))
	}
	s.cursor -= n
}

// Rewind moves the cursor back to offset, which must have been obtained from
// [Source.Offset] earlier in the same parse.
//
// Returns the number of runes reverted.
func (s *Source) Rewind(offset int) int {
	n := s.cursor - offset
	if n > 0 {
		s.Revert(n)
	}
	return n
}

// Text returns the decoded text between two rune offsets.
//
// Panics if the range has not been decoded yet.
func (s *Source) Text(start, end int) string {
	return string(s.buf[start:end])
}

// Buffered returns the input that is available but not yet consumed: runes
// awaiting re-consumption after a revert, followed by fed bytes that have not
// been decoded.
func (s *Source) Buffered() string {
	return string(s.buf[s.cursor:]) + string(s.pending)
}

// Location converts a rune offset into a line and column.
//
// Only offsets that have been decoded have meaningful line numbers.
func (s *Source) Location(offset int) Location {
	n, found := slices.BinarySearch(s.lines, offset)
	if found {
		n++
	}

	start := 0
	if n > 0 {
		start = s.lines[n-1]
	}
	return Location{
		Offset: offset,
		Line:   n + 1,
		Column: offset - start + 1,
	}
}

// Line returns the text of the given 1-indexed line, without its trailing
// newline.
func (s *Source) Line(line int) string {
	if line < 1 || line > len(s.lines)+1 {
		return ""
	}

	start := 0
	if line > 1 {
		start = s.lines[line-2]
	}
	if line <= len(s.lines) {
		return string(s.buf[start : s.lines[line-1]-1])
	}

	// The last line may continue into input that has not been decoded yet.
	rest, _, _ := strings.Cut(string(s.pending), "\n")
	return string(s.buf[start:]) + rest
}
