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

// Package source provides the character stream that parsers consume.
//
// A [Source] is fed text incrementally, in chunks, and remembers every rune
// it has ever yielded. That history is what makes backtracking cheap: a
// parser records [Source.Offset] before an attempt and, if the attempt fails,
// calls [Source.Revert] with the number of runes consumed since then. The
// reverted runes are re-yielded from the history without touching whatever
// produced them.
//
// A Source is owned by exactly one parse and is shared by pointer between
// every combinator taking part in it. It must never be copied.
package source
