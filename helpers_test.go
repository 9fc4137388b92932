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
	"fmt"

	"github.com/bufbuild/combinator"
	"github.com/bufbuild/combinator/source"
)

// drive runs p over a fresh source. See [feed].
func drive(p combinator.Parser, chunks ...string) ([]string, combinator.Outcome) {
	run := combinator.NewRun(p, source.New())
	return feed(run, chunks...), run.Outcome()
}

// feed runs run to completion, answering each InputRequest with the next
// chunk, and closing the source once chunks run out. It returns every event
// the run produced, in order, rendered with show.
func feed(run *combinator.Run, chunks ...string) []string {
	var events []string
	for {
		ev := run.Next()
		events = append(events, show(ev))
		switch ev.(type) {
		case combinator.InputRequest:
			if len(chunks) == 0 {
				run.Close()
				continue
			}
			run.Feed(chunks[0])
			chunks = chunks[1:]
		case combinator.Outcome:
			return events
		}
	}
}

func show(ev combinator.Event) string {
	switch ev := ev.(type) {
	case *combinator.Token:
		return fmt.Sprintf("token %v %v", ev, ev.Span)
	case combinator.InputRequest:
		return "input"
	case *combinator.Successful:
		return fmt.Sprintf("ok %v", ev)
	case *combinator.Aborted:
		return fmt.Sprintf("abort %v at %d: %s", ev.Kind(), ev.At, ev.Message)
	default:
		return fmt.Sprintf("unknown %T", ev)
	}
}

// matched returns the text a match consumed; used as a Transform.
func matched(s *combinator.Successful) any {
	return s.Matched()
}
