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
	"fmt"
	"io"
	"os"

	"github.com/karanabe/crypto/pkg/hashing/digests"
	hashengines "github.com/karanabe/crypto/pkg/hashing/engines"
)

// ShardedFileHasher digests the byte range [start, end) of a file.
type ShardedFileHasher struct {
	*SimpleFileHasher

	start     int64
	end       int64
	shardSize int64
}

// NewShardedFileHasher returns a hasher for one shard of filePath. The shard
// may not be longer than shardSize.
func NewShardedFileHasher(
	filePath string,
	engine hashengines.StreamingHashEngine,
	start, end int64,
	chunkSize int,
	shardSize int64,
	name string,
) (*ShardedFileHasher, error) {
	if shardSize <= 0 {
		return nil, fmt.Errorf("shard size must be positive, got %d", shardSize)
	}

	base, err := NewSimpleFileHasher(filePath, engine, chunkSize, name)
	if err != nil {
		return nil, err
	}

	h := &ShardedFileHasher{SimpleFileHasher: base, shardSize: shardSize}
	if err := h.SetShard(start, end); err != nil {
		return nil, err
	}
	return h, nil
}

// SetShard selects the byte range hashed by the next Compute.
func (h *ShardedFileHasher) SetShard(start, end int64) error {
	if start < 0 {
		return fmt.Errorf("shard start must be non-negative, got %d", start)
	}
	if end <= start {
		return fmt.Errorf("shard end must be greater than start, got [%d, %d)", start, end)
	}
	if end-start > h.shardSize {
		return fmt.Errorf("shard [%d, %d) is longer than shard size %d", start, end, h.shardSize)
	}

	h.start = start
	h.end = end
	return nil
}

// ShardSize returns the configured maximum shard length.
func (h *ShardedFileHasher) ShardSize() int64 {
	return h.shardSize
}

// DigestName returns the override name or "<algorithm>-sharded-<shardSize>".
func (h *ShardedFileHasher) DigestName() string {
	if h.name != "" {
		return h.name
	}
	return fmt.Sprintf("%s-sharded-%d", h.engine.DigestName(), h.shardSize)
}

// Compute digests the selected shard. A shard that runs past the end of the
// file is an error.
func (h *ShardedFileHasher) Compute() (digests.Digest, error) {
	h.engine.Reset(nil)

	f, err := os.Open(h.filePath)
	if err != nil {
		return digests.Digest{}, fmt.Errorf("open file %q: %w", h.filePath, err)
	}
	//nolint:errcheck
	defer f.Close()

	length := h.end - h.start
	n, err := stream(h.engine, io.NewSectionReader(f, h.start, length), h.chunkSize)
	if err != nil {
		return digests.Digest{}, fmt.Errorf("read shard %s: %w", h.shardLabel(), err)
	}
	if n != length {
		return digests.Digest{}, fmt.Errorf("read shard %s: got %d bytes, want %d", h.shardLabel(), n, length)
	}

	d, err := h.engine.Compute()
	if err != nil {
		return digests.Digest{}, fmt.Errorf("compute digest of shard %s: %w", h.shardLabel(), err)
	}
	return digests.NewDigest(h.DigestName(), d.Value()), nil
}

func (h *ShardedFileHasher) shardLabel() string {
	return fmt.Sprintf("%s:%d:%d", h.filePath, h.start, h.end)
}
