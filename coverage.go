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
	"iter"
	"strings"

	"github.com/bufbuild/combinator/internal/spanset"
	"github.com/bufbuild/combinator/source"
)

// Leaves returns an iterator over the [Tag] and [Take] matches beneath match,
// in the order they consumed input.
func Leaves(match *Successful) iter.Seq[*Successful] {
	return func(yield func(*Successful) bool) {
		var walk func(*Successful) bool
		walk = func(s *Successful) bool {
			switch s.kind {
			case KindTag, KindTake:
				return yield(s)
			}
			for _, child := range s.Children {
				if !walk(child) {
					return false
				}
			}
			return true
		}
		walk(match)
	}
}

// CheckCoverage verifies that the leaves beneath match account for exactly the
// input it consumed: their spans are disjoint, leave no gaps, and their text
// concatenates to [Successful.Matched].
//
// A violation means backtracking consumed a rune twice or lost one.
func CheckCoverage(match *Successful) error {
	var (
		set  spanset.Set[int, *Successful]
		text strings.Builder
	)
	for leaf := range Leaves(match) {
		if overlap, ok := set.Insert(leaf.Span.Start, leaf.Span.End, leaf); !ok {
			return fmt.Errorf("combinator: %v overlaps %v", leaf, overlap.Value)
		}
		text.WriteString(leaf.Text)
	}

	for start, end := range set.Gaps(match.Span.Start, match.Span.End) {
		return fmt.Errorf("combinator: no leaf consumed %v; leaves: %v", source.Span{Start: start, End: end}, &set)
	}

	if got, want := text.String(), match.Matched(); got != want {
		return fmt.Errorf("combinator: leaves spell %q, but %q was consumed", got, want)
	}
	return nil
}
