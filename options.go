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

// Option configures a combinator.
//
// Nil options are ignored.
type Option interface {
	apply(*config)
}

type optionFunc func(*config)

func (f optionFunc) apply(c *config) { f(c) }

// Named makes a combinator emit a [Token] with the given name each time it
// matches.
func Named(name string) Option {
	return optionFunc(func(c *config) { c.name = name })
}

// Transform sets the function that computes [Token.Data] from a match. If it
// is not set, the token carries [Successful.Data].
//
// Transform has no effect without [Named].
func Transform(f func(*Successful) any) Option {
	return optionFunc(func(c *config) { c.transform = f })
}

// Min sets the minimum number of repetitions for [Take] and [Repeat]. The
// default is 1.
func Min(n int) Option {
	return optionFunc(func(c *config) {
		c.min = n
		c.hasMin = true
	})
}

// Max sets the maximum number of repetitions for [Take] and [Repeat]. The
// default is unbounded.
func Max(n int) Option {
	return optionFunc(func(c *config) {
		c.max = n
		c.hasMax = true
	})
}

type config struct {
	name      string
	transform func(*Successful) any

	min, max       int // max < 0 means unbounded.
	hasMin, hasMax bool
}

func newConfig(what string, repeats bool, options []Option) config {
	return config{min: 1, max: -1}.with(what, repeats, options)
}

// with returns a copy of c with options applied.
//
// Panics if the resulting bounds are invalid, or if bounds were given to a
// combinator that does not repeat.
func (c config) with(what string, repeats bool, options []Option) config {
	c.update(options)

	if !repeats {
		if c.hasMin || c.hasMax {
			panic(fmt.Sprintf("combinator: %s does not accept Min or Max", what))
		}
		return c
	}

	switch {
	case c.min < 0:
		panic(fmt.Sprintf("combinator: %s minimum must not be negative, got %d", what, c.min))
	case c.hasMax && c.max <= 0:
		panic(fmt.Sprintf("combinator: %s maximum must be positive, got %d", what, c.max))
	case c.max > 0 && c.min > c.max:
		panic(fmt.Sprintf("combinator: %s minimum %d exceeds maximum %d", what, c.min, c.max))
	}
	return c
}

func (c *config) update(options []Option) {
	for _, option := range options {
		if option != nil {
			option.apply(c)
		}
	}
}

// token builds the token for a match, if this combinator is named.
func (c *config) token(s *Successful) *Token {
	if c.name == "" {
		return nil
	}

	data := s.Data()
	if c.transform != nil {
		data = c.transform(s)
	}
	return &Token{Name: c.name, Data: data, Span: s.Span}
}

// below returns whether count has not yet reached the maximum.
func (c *config) below(count int) bool {
	return c.max < 0 || count < c.max
}
