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
	"crypto/sha256"
	"hash"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"

	hashengines "github.com/karanabe/crypto/pkg/hashing/engines"
)

const (
	// SHA256Name is the registry name of the crypto/sha256 engine.
	SHA256Name = "sha256"
	// BLAKE2Name is the registry name of the BLAKE2b-512 engine.
	BLAKE2Name = "blake2b"
	// BLAKE3Name is the registry name of the 256-bit BLAKE3 engine.
	BLAKE3Name = "blake3"
	// SHA3Name is the registry name of the SHA3-256 engine.
	SHA3Name = "sha3-256"
)

func init() {
	hashengines.MustRegister(SHA256Name, func() (hashengines.StreamingHashEngine, error) {
		return NewSHA256(nil)
	})
	hashengines.MustRegister(BLAKE2Name, func() (hashengines.StreamingHashEngine, error) {
		return NewBLAKE2(nil)
	})
	hashengines.MustRegister(BLAKE3Name, func() (hashengines.StreamingHashEngine, error) {
		return NewBLAKE3(nil)
	})
	hashengines.MustRegister(SHA3Name, func() (hashengines.StreamingHashEngine, error) {
		return NewSHA3(nil)
	})
}

// BLAKE2 is a GenericHashEngine configured for unkeyed BLAKE2b-512.
type BLAKE2 = GenericHashEngine

// NewBLAKE2 creates a BLAKE2b-512 engine seeded with initialData.
func NewBLAKE2(initialData []byte) (*BLAKE2, error) {
	return NewGenericHashEngine(
		BLAKE2Name,
		blake2b.Size,
		func() (hash.Hash, error) {
			return blake2b.New512(nil)
		},
		initialData,
	)
}

// SHA256 is a GenericHashEngine configured for crypto/sha256.
type SHA256 = GenericHashEngine

// NewSHA256 creates a SHA-256 engine seeded with initialData.
func NewSHA256(initialData []byte) (*SHA256, error) {
	return NewGenericHashEngine(
		SHA256Name,
		sha256.Size,
		func() (hash.Hash, error) {
			return sha256.New(), nil
		},
		initialData,
	)
}

// NewBLAKE3 creates an unkeyed BLAKE3 engine with a 32-byte output.
func NewBLAKE3(initialData []byte) (*GenericHashEngine, error) {
	return NewGenericHashEngine(
		BLAKE3Name,
		32,
		func() (hash.Hash, error) {
			return blake3.New(), nil
		},
		initialData,
	)
}

// NewSHA3 creates a SHA3-256 engine seeded with initialData.
func NewSHA3(initialData []byte) (*GenericHashEngine, error) {
	return NewGenericHashEngine(
		SHA3Name,
		32,
		func() (hash.Hash, error) {
			return sha3.New256(), nil
		},
		initialData,
	)
}
