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

// Package hashengines defines the capability every digest algorithm exposes
// (create, append, finalize) and a registry of named engine factories.
//
// The reference MD5 and SHA-1 engines and the library-backed engines live in
// the memory subpackage, which registers them on import.
package hashengines

import (
	"github.com/karanabe/crypto/pkg/hashing/digests"
)

// HashEngine computes a digest and describes the algorithm that produced it.
type HashEngine interface {
	// Compute finalizes the computation and returns the digest.
	//
	// Engines built on the single-shot reference implementations can be
	// computed once per Reset; a second Compute without Reset panics.
	Compute() (digests.Digest, error)

	// DigestName returns the canonical algorithm name. It must include every
	// parameter that changes the output (e.g. "md5-sharded-1024") and is
	// copied into the Digest returned by Compute.
	DigestName() string

	// DigestSize returns the size in bytes of the digests this engine produces.
	DigestSize() int
}

// Streaming feeds data to an engine incrementally.
type Streaming interface {
	// Update appends data to the message being hashed.
	Update(data []byte)

	// Reset discards all state and starts a new message seeded with data.
	Reset(data []byte)
}

// StreamingHashEngine is a HashEngine that accepts incremental input.
type StreamingHashEngine interface {
	HashEngine
	Streaming
}
