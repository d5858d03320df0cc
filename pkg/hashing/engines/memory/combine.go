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

package memory

import (
	"fmt"

	"github.com/karanabe/crypto/pkg/hashing/digests"
	hashengines "github.com/karanabe/crypto/pkg/hashing/engines"
)

// CombineDigests hashes the raw bytes of parts, in order, with the named
// algorithm. Applied to the per-shard MD5 digests of a file this gives the
// multipart checksum used by S3-compatible object stores.
//
// Example:
//
//	combined, err := memory.CombineDigests("md5", shardDigests)
func CombineDigests(algorithm string, parts []digests.Digest) (digests.Digest, error) {
	engine, err := hashengines.Create(algorithm)
	if err != nil {
		return digests.Digest{}, err
	}

	for _, d := range parts {
		engine.Update(d.Value())
	}

	combined, err := engine.Compute()
	if err != nil {
		return digests.Digest{}, fmt.Errorf("failed to compute combined digest: %w", err)
	}
	return combined, nil
}
