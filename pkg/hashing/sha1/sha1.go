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

// Package sha1 is a reference implementation of the SHA-1 hash algorithm
// (FIPS 180-4).
//
// It mirrors package md5: an Engine buffers the whole message and Finalize
// pads and compresses it exactly once. SHA-1 differs in its byte order: the
// length field and the block words are big-endian.
package sha1

import (
	"encoding/binary"
	"fmt"
	"strings"
)

const (
	// Size is the size of a SHA-1 digest in bytes.
	Size = 20

	// BlockSize is the block size of SHA-1 in bytes.
	BlockSize = 64

	lengthSize = 8
)

var initialState = [5]uint32{
	0x67452301,
	0xefcdab89,
	0x98badcfe,
	0x10325476,
	0xc3d2e1f0,
}

// Sum is the final SHA-1 state, h0 through h4.
type Sum [5]uint32

// Words returns the five state words.
func (s Sum) Words() [5]uint32 {
	return s
}

// Bytes returns the 20 digest bytes, each word encoded big-endian.
func (s Sum) Bytes() []byte {
	out := make([]byte, 0, Size)
	for _, w := range s {
		out = binary.BigEndian.AppendUint32(out, w)
	}
	return out
}

// Hex renders the digest as 40 lowercase hex characters. The words are
// printed as they are; no byte swapping is needed for big-endian words.
func (s Sum) Hex() string {
	var sb strings.Builder
	sb.Grow(2 * Size)
	for _, w := range s {
		fmt.Fprintf(&sb, "%08x", w)
	}
	return sb.String()
}

// String implements fmt.Stringer and is equivalent to Hex.
func (s Sum) String() string {
	return s.Hex()
}

// Engine accumulates a message and computes its SHA-1 digest once.
type Engine struct {
	message   []byte
	state     [5]uint32
	finalized bool
}

// New returns an Engine with an empty message and the standard initial state.
func New() *Engine {
	return &Engine{state: initialState}
}

// Update appends p to the buffered message. It panics after Finalize.
func (e *Engine) Update(p []byte) {
	e.mustBeOpen("Update")
	e.message = append(e.message, p...)
}

// Len returns the number of message bytes buffered so far.
func (e *Engine) Len() int {
	return len(e.message)
}

// Finalize pads the buffered message, compresses every block and returns the
// resulting digest. The engine cannot be used afterwards.
func (e *Engine) Finalize() Sum {
	e.mustBeOpen("Finalize")
	e.finalized = true

	padded := pad(e.message)
	e.message = nil

	for len(padded) > 0 {
		block(&e.state, padded[:BlockSize])
		padded = padded[BlockSize:]
	}

	return Sum(e.state)
}

func (e *Engine) mustBeOpen(op string) {
	if e.finalized {
		panic("sha1: " + op + " called after Finalize")
	}
}

// Digest returns the SHA-1 digest of data.
func Digest(data []byte) Sum {
	e := New()
	e.Update(data)
	return e.Finalize()
}

// pad returns a copy of msg with the 0x80 marker, zero fill and the big-endian
// bit length appended, a multiple of BlockSize long.
func pad(msg []byte) []byte {
	bitLen := uint64(len(msg)) * 8

	padded := make([]byte, len(msg), (len(msg)+lengthSize)/BlockSize*BlockSize+BlockSize)
	copy(padded, msg)

	padded = append(padded, 0x80)
	for (len(padded)+lengthSize)%BlockSize != 0 {
		padded = append(padded, 0x00)
	}
	return binary.BigEndian.AppendUint64(padded, bitLen)
}
