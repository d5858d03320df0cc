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
	"hash"

	"github.com/karanabe/crypto/pkg/hashing/digests"
	hashengines "github.com/karanabe/crypto/pkg/hashing/engines"
)

var _ hashengines.StreamingHashEngine = (*GenericHashEngine)(nil)

// HashFactoryFunc creates a new hash.Hash instance.
type HashFactoryFunc func() (hash.Hash, error)

// GenericHashEngine wraps any hash.Hash as a StreamingHashEngine.
//
// Unlike the reference engines it may be computed any number of times, since
// hash.Hash.Sum does not change the underlying state.
type GenericHashEngine struct {
	name    string
	size    int
	factory HashFactoryFunc
	h       hash.Hash
}

// NewGenericHashEngine creates an engine named name whose digests are size
// bytes long, seeded with initialData if non-empty. The factory is called once
// here and again on every Reset.
func NewGenericHashEngine(name string, size int, factory HashFactoryFunc, initialData []byte) (*GenericHashEngine, error) {
	h, err := factory()
	if err != nil {
		return nil, fmt.Errorf("create %s hash: %w", name, err)
	}
	if h.Size() != size {
		return nil, fmt.Errorf("%s hash produces %d bytes, want %d", name, h.Size(), size)
	}

	engine := &GenericHashEngine{
		name:    name,
		size:    size,
		factory: factory,
		h:       h,
	}
	engine.Update(initialData)
	return engine, nil
}

// Update appends data to the message.
func (e *GenericHashEngine) Update(data []byte) {
	if len(data) > 0 {
		// hash.Hash.Write never returns an error.
		_, _ = e.h.Write(data)
	}
}

// Reset starts a new message seeded with data.
func (e *GenericHashEngine) Reset(data []byte) {
	h, err := e.factory()
	if err != nil {
		// The factory succeeded in the constructor with the same inputs.
		panic(fmt.Sprintf("%s: factory failed on reset: %v", e.name, err))
	}
	e.h = h
	e.Update(data)
}

// Compute returns the digest of the message so far.
func (e *GenericHashEngine) Compute() (digests.Digest, error) {
	return digests.NewDigest(e.name, e.h.Sum(nil)), nil
}

// DigestName returns the algorithm name given to the constructor.
func (e *GenericHashEngine) DigestName() string {
	return e.name
}

// DigestSize returns the digest size given to the constructor.
func (e *GenericHashEngine) DigestSize() int {
	return e.size
}
