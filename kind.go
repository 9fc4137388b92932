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

import "fmt"

// Kind identifies which combinator produced an outcome.
type Kind int8

const (
	KindTag Kind = 1 + iota
	KindTake
	KindSeq
	KindOr
	KindRepeat
)

// String implements [fmt.Stringer].
func (k Kind) String() string {
	switch k {
	case KindTag:
		return "tag"
	case KindTake:
		return "take"
	case KindSeq:
		return "seq"
	case KindOr:
		return "or"
	case KindRepeat:
		return "repeat"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Reason classifies why a combinator aborted.
type Reason int8

const (
	// A leaf's comparator rejected a rune, or input ended mid-pattern.
	PatternMismatch Reason = 1 + iota
	// Take or Repeat stopped before reaching its minimum.
	BelowMinimum
	// A child of Seq aborted.
	SequenceStepFailed
	// Every alternative of Or aborted.
	NoAlternativeMatched
)

// String implements [fmt.Stringer].
func (r Reason) String() string {
	switch r {
	case PatternMismatch:
		return "pattern mismatch"
	case BelowMinimum:
		return "below minimum repetitions"
	case SequenceStepFailed:
		return "sequence step failed"
	case NoAlternativeMatched:
		return "no alternative matched"
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}
