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

package spanset_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/combinator/internal/spanset"
)

func TestInsert(t *testing.T) {
	t.Parallel()
	type r struct {
		start, end int
		value      string
	}

	tests := []struct {
		name   string
		ranges []r    // Ranges to insert.
		want   string // If not "", the value of the overlap for the last range.
	}{
		{
			name:   "empty",
			ranges: []r{{0, 10, "foo"}},
		},
		{
			name:   "adjacent-after",
			ranges: []r{{0, 10, "foo"}, {10, 20, "bar"}},
		},
		{
			name:   "adjacent-before",
			ranges: []r{{10, 20, "bar"}, {0, 10, "foo"}},
		},
		{
			name:   "between",
			ranges: []r{{0, 10, "foo"}, {30, 40, "bar"}, {10, 30, "baz"}},
		},
		{
			name:   "zero-width",
			ranges: []r{{0, 10, "foo"}, {5, 5, "baz"}},
		},
		{
			name:   "inside",
			ranges: []r{{0, 10, "foo"}, {2, 3, "baz"}},
			want:   "foo",
		},
		{
			name:   "straddle-start",
			ranges: []r{{10, 20, "foo"}, {5, 11, "baz"}},
			want:   "foo",
		},
		{
			name:   "straddle-end",
			ranges: []r{{10, 20, "foo"}, {19, 25, "baz"}},
			want:   "foo",
		},
		{
			name:   "cover-two",
			ranges: []r{{0, 10, "foo"}, {30, 40, "bar"}, {-2, 35, "baz"}},
			want:   "foo",
		},
		{
			name:   "cover-second",
			ranges: []r{{0, 10, "foo"}, {30, 40, "bar"}, {15, 35, "baz"}},
			want:   "bar",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := new(spanset.Set[int, string])
			for i, e := range tt.ranges {
				overlap, ok := s.Insert(e.start, e.end, e.value)
				if i < len(tt.ranges)-1 || tt.want == "" {
					require.True(t, ok, "inserting %v", e)
				} else {
					assert.False(t, ok)
					assert.Equal(t, tt.want, overlap.Value)
				}
				t.Logf("%v", s)
			}
		})
	}
}

func TestGaps(t *testing.T) {
	t.Parallel()

	s := new(spanset.Set[int, struct{}])
	s.Insert(2, 4, struct{}{})
	s.Insert(4, 6, struct{}{})
	s.Insert(8, 9, struct{}{})

	type gap struct{ start, end int }
	collect := func(lo, hi int) []gap {
		var out []gap
		for start, end := range s.Gaps(lo, hi) {
			out = append(out, gap{start, end})
		}
		return out
	}

	assert.Equal(t, []gap{{0, 2}, {6, 8}, {9, 12}}, collect(0, 12))
	assert.Equal(t, []gap{{6, 7}}, collect(3, 7))
	assert.Nil(t, collect(2, 6))
	assert.Equal(t, []gap{{10, 11}}, collect(10, 11))
}

func TestFormat(t *testing.T) {
	t.Parallel()

	s := new(spanset.Set[int, string])
	assert.Equal(t, "{}", fmt.Sprint(s))

	s.Insert(4, 6, "ef")
	s.Insert(0, 3, "abc")
	assert.Equal(t, `{[0, 3): abc, [4, 6): ef}`, fmt.Sprintf("%v", s))
	assert.Equal(t, `{[0, 3): "abc", [4, 6): "ef"}`, fmt.Sprintf("%q", s))
}
