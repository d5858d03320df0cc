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
	"github.com/karanabe/crypto/pkg/hashing/digests"
	hashengines "github.com/karanabe/crypto/pkg/hashing/engines"
	"github.com/karanabe/crypto/pkg/hashing/md5"
	"github.com/karanabe/crypto/pkg/hashing/sha1"
)

const (
	// MD5Name is the registry name of the reference MD5 engine.
	MD5Name = "md5"
	// SHA1Name is the registry name of the reference SHA-1 engine.
	SHA1Name = "sha1"
)

func init() {
	hashengines.MustRegister(MD5Name, func() (hashengines.StreamingHashEngine, error) {
		return NewMD5Engine(nil), nil
	})
	hashengines.MustRegister(SHA1Name, func() (hashengines.StreamingHashEngine, error) {
		return NewSHA1Engine(nil), nil
	})
}

var (
	_ hashengines.StreamingHashEngine = (*MD5Engine)(nil)
	_ hashengines.StreamingHashEngine = (*SHA1Engine)(nil)
)

// MD5Engine adapts the reference md5.Engine to StreamingHashEngine.
//
// Compute finalizes the underlying engine, so it may be called once per
// Reset. Calling it twice in a row panics.
type MD5Engine struct {
	e *md5.Engine
}

// NewMD5Engine returns an MD5 engine, seeded with initialData if non-empty.
func NewMD5Engine(initialData []byte) *MD5Engine {
	e := &MD5Engine{}
	e.Reset(initialData)
	return e
}

// Update appends data to the message.
func (e *MD5Engine) Update(data []byte) {
	e.e.Update(data)
}

// Reset starts a new message seeded with data.
func (e *MD5Engine) Reset(data []byte) {
	e.e = md5.New()
	if len(data) > 0 {
		e.e.Update(data)
	}
}

// Compute finalizes the message and returns its digest.
func (e *MD5Engine) Compute() (digests.Digest, error) {
	sum := e.e.Finalize()
	return digests.NewDigest(e.DigestName(), sum.Bytes()), nil
}

// DigestName returns "md5".
func (e *MD5Engine) DigestName() string {
	return MD5Name
}

// DigestSize returns md5.Size.
func (e *MD5Engine) DigestSize() int {
	return md5.Size
}

// SHA1Engine adapts the reference sha1.Engine to StreamingHashEngine, with the
// same single Compute per Reset rule as MD5Engine.
type SHA1Engine struct {
	e *sha1.Engine
}

// NewSHA1Engine returns a SHA-1 engine, seeded with initialData if non-empty.
func NewSHA1Engine(initialData []byte) *SHA1Engine {
	e := &SHA1Engine{}
	e.Reset(initialData)
	return e
}

// Update appends data to the message.
func (e *SHA1Engine) Update(data []byte) {
	e.e.Update(data)
}

// Reset starts a new message seeded with data.
func (e *SHA1Engine) Reset(data []byte) {
	e.e = sha1.New()
	if len(data) > 0 {
		e.e.Update(data)
	}
}

// Compute finalizes the message and returns its digest.
func (e *SHA1Engine) Compute() (digests.Digest, error) {
	sum := e.e.Finalize()
	return digests.NewDigest(e.DigestName(), sum.Bytes()), nil
}

// DigestName returns "sha1".
func (e *SHA1Engine) DigestName() string {
	return SHA1Name
}

// DigestSize returns sha1.Size.
func (e *SHA1Engine) DigestSize() int {
	return sha1.Size
}
