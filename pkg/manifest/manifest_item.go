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

package manifest

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/karanabe/crypto/pkg/hashing/digests"
)

// ManifestItem is one named digest.
//
//nolint:revive
type ManifestItem interface {
	Name() string
	Digest() digests.Digest
}

// FileManifestItem is the digest of a whole file.
type FileManifestItem struct {
	path   string
	digest digests.Digest
}

// NewFileManifestItem records digest for path. The path is stored with
// forward slashes.
func NewFileManifestItem(path string, digest digests.Digest) *FileManifestItem {
	return &FileManifestItem{path: filepath.ToSlash(path), digest: digest}
}

func (item *FileManifestItem) Name() string { return item.path }

func (item *FileManifestItem) Digest() digests.Digest { return item.digest }

// ShardedFileManifestItem is the digest of the byte range [start, end) of a
// file.
type ShardedFileManifestItem struct {
	path   string
	start  int64
	end    int64
	digest digests.Digest
}

// NewShardedFileManifestItem records digest for one shard of path.
func NewShardedFileManifestItem(path string, start, end int64, digest digests.Digest) *ShardedFileManifestItem {
	return &ShardedFileManifestItem{
		path:   filepath.ToSlash(path),
		start:  start,
		end:    end,
		digest: digest,
	}
}

// Name returns "path:start:end".
func (item *ShardedFileManifestItem) Name() string {
	return fmt.Sprintf("%s:%d:%d", item.path, item.start, item.end)
}

func (item *ShardedFileManifestItem) Digest() digests.Digest { return item.digest }

// Path returns the file the shard belongs to.
func (item *ShardedFileManifestItem) Path() string { return item.path }

// Range returns the shard bounds.
func (item *ShardedFileManifestItem) Range() (start, end int64) { return item.start, item.end }

// parseShardName splits "path:start:end". The path itself may contain
// colons; the last two fields are the bounds.
func parseShardName(name string) (path string, start, end int64, err error) {
	last := strings.LastIndexByte(name, ':')
	if last < 0 {
		return "", 0, 0, fmt.Errorf("invalid shard name %q: want path:start:end", name)
	}
	mid := strings.LastIndexByte(name[:last], ':')
	if mid <= 0 {
		return "", 0, 0, fmt.Errorf("invalid shard name %q: want path:start:end", name)
	}

	path = name[:mid]
	if start, err = strconv.ParseInt(name[mid+1:last], 10, 64); err != nil {
		return "", 0, 0, fmt.Errorf("invalid shard start in %q: %w", name, err)
	}
	if end, err = strconv.ParseInt(name[last+1:], 10, 64); err != nil {
		return "", 0, 0, fmt.Errorf("invalid shard end in %q: %w", name, err)
	}
	// [0, 0) is the single shard of an empty file.
	if start < 0 || end < start || (end == start && start != 0) {
		return "", 0, 0, fmt.Errorf("invalid shard range in %q", name)
	}
	return path, start, end, nil
}
