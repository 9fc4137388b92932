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

import "fmt"

// Span is a half-open range of rune offsets within a [Source].
type Span struct {
	Start, End int
}

// Len returns the number of runes in this span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Contains returns whether offset lies within this span.
func (s Span) Contains(offset int) bool {
	return s.Start <= offset && offset < s.End
}

// String implements [fmt.Stringer].
func (s Span) String() string {
	return fmt.Sprintf("[%d, %d)", s.Start, s.End)
}

// Location is a user-displayable position within a [Source].
type Location struct {
	// The rune offset for this location.
	Offset int

	// The line and column for this location, 1-indexed. Columns count runes.
	Line, Column int
}

// String implements [fmt.Stringer].
func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}
