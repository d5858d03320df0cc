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

	"github.com/karanabe/crypto/pkg/hashing/digests"
)

// SerializationType records how a manifest was produced: which algorithm,
// whether files were sharded, and which paths were skipped. Parameters and
// SerializationTypeFromArgs round-trip through JSON.
type SerializationType interface {
	// Method is "files" or "shards".
	Method() string

	// HashType is the engine algorithm name, e.g. "md5".
	HashType() string

	// DigestName is the algorithm name carried by each item digest.
	DigestName() string

	Parameters() map[string]any

	// NewItem parses name according to the method.
	NewItem(name string, digest digests.Digest) (ManifestItem, error)
}

const (
	fileMethod  = "files"
	shardMethod = "shards"
)

// SerializationTypeFromArgs is the inverse of Parameters.
func SerializationTypeFromArgs(args map[string]any) (SerializationType, error) {
	p := params(args)

	method, err := p.str("method")
	if err != nil {
		return nil, err
	}
	hashType, err := p.str("hash_type")
	if err != nil {
		return nil, err
	}
	allowSymlinks, err := p.boolean("allow_symlinks", false)
	if err != nil {
		return nil, err
	}
	ignorePaths, err := p.stringList("ignore_paths")
	if err != nil {
		return nil, err
	}

	switch method {
	case fileMethod:
		return NewFileSerialization(hashType, allowSymlinks, ignorePaths), nil
	case shardMethod:
		shardSize, err := p.integer("shard_size")
		if err != nil {
			return nil, err
		}
		if shardSize <= 0 {
			return nil, fmt.Errorf("shard size must be positive, got %d", shardSize)
		}
		return NewShardSerialization(hashType, shardSize, allowSymlinks, ignorePaths), nil
	default:
		return nil, fmt.Errorf("unknown serialization method %q", method)
	}
}

type baseSerialization struct {
	hashType      string
	allowSymlinks bool
	ignorePaths   []string
}

func (s baseSerialization) HashType() string { return s.hashType }

func (s baseSerialization) params(method string) map[string]any {
	p := map[string]any{
		"method":         method,
		"hash_type":      s.hashType,
		"allow_symlinks": s.allowSymlinks,
	}
	if len(s.ignorePaths) > 0 {
		p["ignore_paths"] = append([]string(nil), s.ignorePaths...)
	}
	return p
}

// FileSerialization hashes each file whole.
type FileSerialization struct {
	baseSerialization
}

// NewFileSerialization copies ignorePaths.
func NewFileSerialization(hashType string, allowSymlinks bool, ignorePaths []string) *FileSerialization {
	return &FileSerialization{baseSerialization{
		hashType:      hashType,
		allowSymlinks: allowSymlinks,
		ignorePaths:   append([]string(nil), ignorePaths...),
	}}
}

func (s *FileSerialization) Method() string { return fileMethod }

func (s *FileSerialization) DigestName() string { return s.hashType }

func (s *FileSerialization) Parameters() map[string]any { return s.params(fileMethod) }

func (s *FileSerialization) NewItem(name string, digest digests.Digest) (ManifestItem, error) {
	if name == "" {
		return nil, fmt.Errorf("empty file name")
	}
	return NewFileManifestItem(name, digest), nil
}

// ShardSerialization hashes files in fixed-size shards.
type ShardSerialization struct {
	baseSerialization
	shardSize int64
}

// NewShardSerialization copies ignorePaths.
func NewShardSerialization(hashType string, shardSize int64, allowSymlinks bool, ignorePaths []string) *ShardSerialization {
	return &ShardSerialization{
		baseSerialization: baseSerialization{
			hashType:      hashType,
			allowSymlinks: allowSymlinks,
			ignorePaths:   append([]string(nil), ignorePaths...),
		},
		shardSize: shardSize,
	}
}

func (s *ShardSerialization) Method() string { return shardMethod }

func (s *ShardSerialization) ShardSize() int64 { return s.shardSize }

// DigestName matches the name produced by the sharded file hasher.
func (s *ShardSerialization) DigestName() string {
	return fmt.Sprintf("%s-sharded-%d", s.hashType, s.shardSize)
}

func (s *ShardSerialization) Parameters() map[string]any {
	p := s.params(shardMethod)
	p["shard_size"] = s.shardSize
	return p
}

func (s *ShardSerialization) NewItem(name string, digest digests.Digest) (ManifestItem, error) {
	path, start, end, err := parseShardName(name)
	if err != nil {
		return nil, err
	}
	if end-start > s.shardSize {
		return nil, fmt.Errorf("shard %q is longer than shard size %d", name, s.shardSize)
	}
	return NewShardedFileManifestItem(path, start, end, digest), nil
}
