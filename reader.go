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
	"context"
	"errors"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/bufbuild/combinator/source"
)

// ReaderOptions configures [ParseReader] and [ReaderSupplier].
type ReaderOptions struct {
	// The number of bytes to read at a time. Zero means 4096.
	ChunkSize int

	// The number of chunks [ParseReader] may read ahead of the parser. Zero
	// means 1.
	Prefetch int
}

func (o ReaderOptions) chunkSize() int {
	if o.ChunkSize <= 0 {
		return 4096
	}
	return o.ChunkSize
}

// ReaderSupplier returns a [Supplier] that reads chunks from r on demand, on
// the caller's goroutine.
func ReaderSupplier(r io.Reader, opts ReaderOptions) Supplier {
	buf := make([]byte, opts.chunkSize())
	return func(ctx context.Context) (string, error) {
		for {
			n, err := r.Read(buf)
			if n > 0 || err != nil {
				return string(buf[:n]), err
			}
			if err := context.Cause(ctx); err != nil {
				return "", err
			}
		}
	}
}

// ParseReader runs parser over the contents of r, which is read incrementally
// as the parser asks for input.
//
// Reading happens on a separate goroutine, up to opts.Prefetch chunks ahead of
// the parser; the parse itself runs on the caller's goroutine. ParseReader
// does not return until that goroutine's current Read call does.
//
// On failure, the error is the [*Aborted] outcome, a read error, or ctx's error.
func ParseReader(ctx context.Context, parser Parser, r io.Reader, opts ReaderOptions) (*Successful, []*Token, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	chunks := make(chan string, max(opts.Prefetch, 1))

	g.Go(func() error {
		defer close(chunks)
		read := ReaderSupplier(r, opts)
		for {
			chunk, err := read(ctx)
			if chunk != "" {
				select {
				case chunks <- chunk:
				case <-ctx.Done():
					return context.Cause(ctx)
				}
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
		}
	})

	supply := func(ctx context.Context) (string, error) {
		select {
		case chunk, ok := <-chunks:
			if !ok {
				return "", io.EOF
			}
			return chunk, nil
		case <-ctx.Done():
			return "", context.Cause(ctx)
		}
	}

	match, tokens, err := collect(ctx, NewRun(parser, source.New()), supply)

	// The parse may finish before the reader does; stop it.
	cancel()
	if werr := g.Wait(); werr != nil && !errors.Is(werr, context.Canceled) {
		return nil, tokens, werr
	}
	return match, tokens, err
}
