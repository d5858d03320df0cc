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
	"os"

	"github.com/karanabe/crypto/pkg/hashing/digests"
	hashengines "github.com/karanabe/crypto/pkg/hashing/engines"
)

// SimpleFileHasher digests a whole file through a streaming engine.
type SimpleFileHasher struct {
	filePath  string
	engine    hashengines.StreamingHashEngine
	chunkSize int
	name      string
}

// NewSimpleFileHasher returns a hasher for filePath. chunkSize is the read
// buffer size, 0 reads the file in one call. A non-empty name replaces the
// engine's algorithm name on the returned digest.
func NewSimpleFileHasher(
	filePath string,
	engine hashengines.StreamingHashEngine,
	chunkSize int,
	name string,
) (*SimpleFileHasher, error) {
	if err := checkChunkSize(chunkSize); err != nil {
		return nil, err
	}
	if filePath == "" {
		return nil, errors.New("file path must be non-empty")
	}
	if engine == nil {
		return nil, errors.New("hash engine must not be nil")
	}

	return &SimpleFileHasher{
		filePath:  filePath,
		engine:    engine,
		chunkSize: chunkSize,
		name:      name,
	}, nil
}

// SetFile points the hasher at another file.
func (h *SimpleFileHasher) SetFile(filePath string) error {
	if filePath == "" {
		return errors.New("file path must be non-empty")
	}
	h.filePath = filePath
	return nil
}

// DigestName implements hashengines.HashEngine.
func (h *SimpleFileHasher) DigestName() string {
	if h.name != "" {
		return h.name
	}
	return h.engine.DigestName()
}

// DigestSize implements hashengines.HashEngine.
func (h *SimpleFileHasher) DigestSize() int {
	return h.engine.DigestSize()
}

// Compute reads the file and returns its digest. The engine is reset first,
// so Compute may be called repeatedly.
func (h *SimpleFileHasher) Compute() (digests.Digest, error) {
	h.engine.Reset(nil)

	f, err := os.Open(h.filePath)
	if err != nil {
		return digests.Digest{}, fmt.Errorf("open file %q: %w", h.filePath, err)
	}
	//nolint:errcheck
	defer f.Close()

	if _, err := stream(h.engine, f, h.chunkSize); err != nil {
		return digests.Digest{}, fmt.Errorf("read file %q: %w", h.filePath, err)
	}

	d, err := h.engine.Compute()
	if err != nil {
		return digests.Digest{}, fmt.Errorf("compute digest of %q: %w", h.filePath, err)
	}
	return digests.NewDigest(h.DigestName(), d.Value()), nil
}
