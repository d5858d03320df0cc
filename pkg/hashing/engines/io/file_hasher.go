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

// Package io feeds files and readers into streaming hash engines.
package io

import (
	"errors"
	"fmt"
	"io"

	hashengines "github.com/karanabe/crypto/pkg/hashing/engines"
)

// FileHasher is a HashEngine whose input is read from storage rather than
// passed in through Update.
type FileHasher interface {
	hashengines.HashEngine
}

// FileHasherFactory builds a FileHasher for a whole file.
type FileHasherFactory func(path string) (FileHasher, error)

// ShardedFileHasherFactory builds a FileHasher for the byte range [start, end)
// of a file.
type ShardedFileHasherFactory func(path string, start, end int64) (FileHasher, error)

// stream copies r into engine. chunkSize 0 reads everything at once.
func stream(engine hashengines.Streaming, r io.Reader, chunkSize int) (int64, error) {
	if chunkSize == 0 {
		data, err := io.ReadAll(r)
		if err != nil {
			return 0, err
		}
		engine.Update(data)
		return int64(len(data)), nil
	}

	var total int64
	buf := make([]byte, chunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			engine.Update(buf[:n])
			total += int64(n)
		}
		if errors.Is(err, io.EOF) {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

func checkChunkSize(chunkSize int) error {
	if chunkSize < 0 {
		return fmt.Errorf("chunk size must be non-negative, got %d", chunkSize)
	}
	return nil
}
