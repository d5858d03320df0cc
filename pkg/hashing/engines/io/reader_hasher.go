// Copyright 2025 The Crypto Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package io

import (
	"errors"
	"fmt"
	"io"

	"github.com/karanabe/crypto/pkg/hashing/digests"
	hashengines "github.com/karanabe/crypto/pkg/hashing/engines"
)

// ReaderHasher digests everything read from an io.Reader, typically stdin.
// The reader is consumed, so Compute is meaningful once per reader.
type ReaderHasher struct {
	r         io.Reader
	engine    hashengines.StreamingHashEngine
	chunkSize int
	read      int64
}

// NewReaderHasher returns a hasher for r.
func NewReaderHasher(r io.Reader, engine hashengines.StreamingHashEngine, chunkSize int) (*ReaderHasher, error) {
	if err := checkChunkSize(chunkSize); err != nil {
		return nil, err
	}
	if r == nil {
		return nil, errors.New("reader must not be nil")
	}
	if engine == nil {
		return nil, errors.New("hash engine must not be nil")
	}
	return &ReaderHasher{r: r, engine: engine, chunkSize: chunkSize}, nil
}

func (h *ReaderHasher) DigestName() string { return h.engine.DigestName() }

func (h *ReaderHasher) DigestSize() int { return h.engine.DigestSize() }

// BytesRead reports how many bytes the last Compute consumed.
func (h *ReaderHasher) BytesRead() int64 { return h.read }

// Compute drains the reader and returns the digest of what it produced.
func (h *ReaderHasher) Compute() (digests.Digest, error) {
	h.engine.Reset(nil)

	n, err := stream(h.engine, h.r, h.chunkSize)
	h.read = n
	if err != nil {
		return digests.Digest{}, fmt.Errorf("read input: %w", err)
	}
	return h.engine.Compute()
}
