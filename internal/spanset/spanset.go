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

// Package spanset provides an ordered set of disjoint half-open ranges.
package spanset

import (
	"fmt"
	"iter"

	"github.com/tidwall/btree"
	"golang.org/x/exp/constraints" //nolint:exptostd // Tries to replace w/ cmp.
)

// Set is a collection of pairwise disjoint half-open ranges [Start, End), each
// with an associated value.
//
// A zero value is ready to use.
type Set[K constraints.Integer, V any] struct {
	// Keys in this tree are the (exclusive) ends of the ranges.
	tree btree.Map[K, *Range[K, V]]
}

// Range is an entry in a [Set].
type Range[K constraints.Integer, V any] struct {
	Start, End K
	Value      V
}

// Insert adds [start, end) to the set, unless it overlaps a range that is
// already present. In that case, the set is unchanged and the overlapping
// range with the least start is returned along with false.
//
// Empty ranges never overlap anything and are not stored.
//
// Panics if start > end.
func (s *Set[K, V]) Insert(start, end K, value V) (Range[K, V], bool) {
	if start > end {
		panic(fmt.Sprintf("spanset: start (%#v) > end (%#v)", start, end))
	}
	if start == end {
		return Range[K, V]{}, true
	}

	// Any overlapping range must end after start; the least such range is
	// the only candidate, since ranges in the set are disjoint.
	iter := s.tree.Iter()
	if iter.Seek(start+1) && iter.Value().Start < end {
		return *iter.Value(), false
	}

	s.tree.Set(end, &Range[K, V]{Start: start, End: end, Value: value})
	return Range[K, V]{}, true
}

// Gaps returns an iterator over the maximal sub-ranges of [lo, hi) that no
// range in the set covers, in order.
func (s *Set[K, V]) Gaps(lo, hi K) iter.Seq2[K, K] {
	return func(yield func(K, K) bool) {
		cursor := lo
		iter := s.tree.Iter()
		for more := iter.Seek(lo + 1); more && cursor < hi; more = iter.Next() {
			r := iter.Value()
			if r.Start > cursor {
				if !yield(cursor, min(r.Start, hi)) {
					return
				}
			}
			cursor = max(cursor, r.End)
		}
		if cursor < hi {
			yield(cursor, hi)
		}
	}
}

// Format implements [fmt.Formatter].
func (s *Set[K, V]) Format(state fmt.State, verb rune) {
	fmt.Fprint(state, "{")
	first := true
	s.tree.Scan(func(end K, r *Range[K, V]) bool {
		if !first {
			fmt.Fprint(state, ", ")
		}
		first = false

		fmt.Fprintf(state, "[%#v, %#v): ", r.Start, end)
		fmt.Fprintf(state, fmt.FormatString(state, verb), r.Value)
		return true
	})
	fmt.Fprint(state, "}")
}
