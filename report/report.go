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

// Package report renders parse failures for humans.
//
// A [combinator.Aborted] carries the whole trail of failures that led to it.
// A [Renderer] turns that trail into either a one-line message, in the style
// of the Go compiler, or a source snippet with a caret under the offending
// character and one note per nested failure, in the style of the Rust
// compiler.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bufbuild/combinator"
	"github.com/bufbuild/combinator/source"
)

// Renderer configures a rendering operation.
type Renderer struct {
	// If set, uses a compact one-line format.
	Compact bool

	// If set, rendering results are enriched with ANSI color escapes.
	Colorize bool

	// The number of levels of nested failures to list as notes. Zero means
	// all of them.
	MaxDepth int
}

// Render writes a rendering of failure to out. src must be the source the
// failing parse read from.
func (r Renderer) Render(out io.Writer, src *source.Source, failure *combinator.Aborted) error {
	_, err := io.WriteString(out, r.String(src, failure))
	return err
}

// String renders failure to a string. See [Renderer.Render].
func (r Renderer) String(src *source.Source, failure *combinator.Aborted) string {
	c := r.colors()
	deepest := failure.Deepest()
	loc := src.Location(deepest.At)

	if r.Compact {
		return fmt.Sprintf("%serror: %v: %s%s\n", c.bError, loc, failure.Message, c.reset)
	}

	var out strings.Builder
	fmt.Fprintf(&out, "%serror: %s%s\n", c.bError, failure.Message, c.reset)

	lineno := strconv.Itoa(loc.Line)
	gutter := strings.Repeat(" ", len(lineno))
	fmt.Fprintf(&out, "%s%s-->%s %v\n", gutter, c.nBlue, c.reset, loc)
	fmt.Fprintf(&out, "%s%s |%s\n", gutter, c.nBlue, c.reset)

	line := src.Line(loc.Line)
	fmt.Fprintf(&out, "%s%s |%s %s\n", c.nBlue, lineno, c.reset, expandTabs(line))

	// The caret goes under the offending character, or just past the end of
	// the line if the failure happened at a line break or the end of input.
	runes := []rune(line)
	offending := min(loc.Column-1, len(runes))
	column := stringWidth(0, string(runes[:offending]))
	carets := 1
	if offending < len(runes) {
		carets = max(1, stringWidth(column, string(runes[offending]))-column)
	}
	fmt.Fprintf(&out, "%s%s |%s %s%s%s%s %s\n",
		gutter, c.nBlue, c.reset,
		strings.Repeat(" ", column),
		c.bError, strings.Repeat("^", carets), c.reset,
		deepest.Message,
	)

	var notes func(*combinator.Aborted, int)
	notes = func(a *combinator.Aborted, depth int) {
		if r.MaxDepth > 0 && depth > r.MaxDepth {
			return
		}
		for _, cause := range a.Causes {
			fmt.Fprintf(&out, "%s %s=%s %snote: %v at %v: %s\n",
				gutter, c.nBlue, c.reset,
				strings.Repeat("  ", depth-1),
				cause.Kind(), src.Location(cause.At), cause.Message,
			)
			notes(cause, depth+1)
		}
	}
	notes(failure, 1)

	return out.String()
}

type colors struct {
	reset, bError, nBlue string
}

func (r Renderer) colors() colors {
	if !r.Colorize {
		return colors{}
	}
	return colors{
		reset:  "\033[0m",
		bError: "\033[1;31m",
		nBlue:  "\033[0;34m",
	}
}
