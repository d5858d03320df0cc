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

// Package digests provides the value type passed between hash engines,
// manifests and the CLI.
//
// A Digest pairs an algorithm name with the raw digest bytes. Its fields are
// unexported and every accessor copies, so a Digest can be shared freely.
package digests

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"
)

// Digest is a computed hash value tagged with the algorithm that produced it.
type Digest struct {
	algorithm string
	value     []byte
}

// NewDigest returns a Digest holding a copy of value.
func NewDigest(algorithm string, value []byte) Digest {
	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	return Digest{
		algorithm: algorithm,
		value:     valueCopy,
	}
}

// ParseDigest decodes a hex string produced by Hex.
//
// Upper-case input is accepted. If size is positive the decoded value must be
// exactly size bytes long.
func ParseDigest(algorithm, hexValue string, size int) (Digest, error) {
	value, err := hex.DecodeString(strings.ToLower(strings.TrimSpace(hexValue)))
	if err != nil {
		return Digest{}, fmt.Errorf("invalid %s digest %q: %w", algorithm, hexValue, err)
	}
	if size > 0 && len(value) != size {
		return Digest{}, fmt.Errorf("invalid %s digest %q: got %d bytes, want %d",
			algorithm, hexValue, len(value), size)
	}
	return Digest{algorithm: algorithm, value: value}, nil
}

// Algorithm returns the name of the algorithm, for example "md5" or
// "sha1-sharded-1048576".
func (d Digest) Algorithm() string {
	return d.algorithm
}

// Value returns a copy of the raw digest bytes.
func (d Digest) Value() []byte {
	valueCopy := make([]byte, len(d.value))
	copy(valueCopy, d.value)
	return valueCopy
}

// Hex returns the lowercase hex encoding of the digest bytes.
func (d Digest) Hex() string {
	return hex.EncodeToString(d.value)
}

// Size returns the digest length in bytes.
func (d Digest) Size() int {
	return len(d.value)
}

// IsZero reports whether d is the zero Digest.
func (d Digest) IsZero() bool {
	return d.algorithm == "" && len(d.value) == 0
}

// String returns "algorithm:hex".
func (d Digest) String() string {
	return fmt.Sprintf("%s:%s", d.algorithm, d.Hex())
}

// Equal reports whether both digests have the same algorithm and value.
func (d Digest) Equal(other Digest) bool {
	return d.algorithm == other.algorithm && bytes.Equal(d.value, other.value)
}
