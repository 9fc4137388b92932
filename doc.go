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

// Package combinator provides parser combinators that run over input which
// may not have fully arrived yet.
//
// A grammar is built from five primitives:
//
//   - [Tag] matches a fixed list of single-rune [Test]s, such as a literal.
//   - [Take] matches one [Test] repeatedly, within [Min] and [Max] bounds.
//   - [Seq] runs parsers one after another.
//   - [Or] tries parsers in order and keeps the first that matches.
//   - [Repeat] runs one parser repeatedly; [Optional] is Repeat with bounds
//     zero and one.
//
// Nothing grammar-specific lives in this package: a grammar is just a
// composition of these values, and [Lazy] allows that composition to be
// recursive.
//
// # Driving a Parser
//
// Parsers are run by a [Run], which steps the parser tree one [Event] at a
// time. Each event is one of:
//
//   - a [*Token], a labeled piece of output requested with [Named];
//   - an [InputRequest], meaning the [source.Source] ran dry and the caller
//     must feed it more text (or close it) before stepping again;
//   - a terminal [*Successful] or [*Aborted] outcome.
//
// Suspension happens only at InputRequest. Between requests, the whole
// parse runs on the caller's goroutine; there is no hidden concurrency.
// [Run.Tokens] wraps this loop in an iterator, and [Parse] and [ParseReader]
// wrap it further for the common cases of complete input and an [io.Reader].
//
// # Backtracking
//
// Every combinator in a parse shares one [source.Source]. Or and Repeat
// record the source offset before each attempt; when an attempt aborts, they
// revert exactly the runes that attempt consumed and discard any tokens it
// produced, so the next attempt starts from the same position and the caller
// never observes the losing branch. Seq never backtracks on its own; undoing
// a partially matched sequence is the job of whichever Or or Repeat encloses
// it.
//
// Or is ordered: the first alternative that matches wins, even if a later
// one would have matched more input.
package combinator
