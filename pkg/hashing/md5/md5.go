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

// Package md5 is a reference implementation of the MD5 message digest
// (RFC 1321).
//
// An Engine buffers every byte passed to Update and does all of the work in
// Finalize: it pads the buffered message, runs the compression function over
// each 64-byte block and returns the final state. An Engine is single-shot;
// calling Update or Finalize after Finalize panics.
//
// This package is not hardened: it is neither constant-time nor streaming,
// and MD5 must not be used where collision resistance matters.
package md5

import (
	"encoding/binary"
	"fmt"
	"math/bits"
	"strings"
)

const (
	// Size is the size of an MD5 digest in bytes.
	Size = 16

	// BlockSize is the block size of MD5 in bytes.
	BlockSize = 64

	// lengthSize is the number of trailing bytes holding the message bit length.
	lengthSize = 8
)

var initialState = [4]uint32{
	0x67452301, // A
	0xefcdab89, // B
	0x98badcfe, // C
	0x10325476, // D
}

// Sum is the final MD5 state: the words A, B, C and D in that order.
//
// The words are stored as computed. Their little-endian byte encoding is the
// digest, which is why Hex swaps the bytes of every word before printing it.
type Sum [4]uint32

// Words returns the four state words.
func (s Sum) Words() [4]uint32 {
	return s
}

// Bytes returns the 16 digest bytes, each word encoded little-endian.
func (s Sum) Bytes() []byte {
	out := make([]byte, 0, Size)
	for _, w := range s {
		out = binary.LittleEndian.AppendUint32(out, w)
	}
	return out
}

// Hex renders the digest as 32 lowercase hex characters.
func (s Sum) Hex() string {
	var sb strings.Builder
	sb.Grow(2 * Size)
	for _, w := range s {
		fmt.Fprintf(&sb, "%08x", bits.ReverseBytes32(w))
	}
	return sb.String()
}

// String implements fmt.Stringer and is equivalent to Hex.
func (s Sum) String() string {
	return s.Hex()
}

// Engine accumulates a message and computes its MD5 digest once.
//
// The zero value is not usable; create engines with New. An Engine must not
// be used from more than one goroutine at a time.
type Engine struct {
	message   []byte
	state     [4]uint32
	finalized bool
}

// New returns an Engine with an empty message and the standard initial state.
func New() *Engine {
	return &Engine{state: initialState}
}

// Update appends p to the buffered message.
//
// Update may be called any number of times before Finalize. It panics if the
// engine was already finalized.
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
		panic("md5: " + op + " called after Finalize")
	}
}

// Digest returns the MD5 digest of data.
func Digest(data []byte) Sum {
	e := New()
	e.Update(data)
	return e.Finalize()
}

// pad returns a copy of msg followed by the 0x80 marker, zero bytes, and the
// message bit length as a little-endian uint64. The result is always a
// multiple of BlockSize long, so a block-aligned message gains a whole block.
func pad(msg []byte) []byte {
	bitLen := uint64(len(msg)) * 8

	padded := make([]byte, len(msg), paddedLen(len(msg)))
	copy(padded, msg)

	padded = append(padded, 0x80)
	for (len(padded)+lengthSize)%BlockSize != 0 {
		padded = append(padded, 0x00)
	}
	return binary.LittleEndian.AppendUint64(padded, bitLen)
}

// paddedLen is the length pad produces for an n byte message.
func paddedLen(n int) int {
	return (n+lengthSize)/BlockSize*BlockSize + BlockSize
}
