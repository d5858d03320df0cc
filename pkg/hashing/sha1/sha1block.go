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

package sha1

import (
	"encoding/binary"
	"fmt"
	"math/bits"
)

// roundConstants[i/20] is the constant used at step i.
var roundConstants = [4]uint32{
	0x5a827999,
	0x6ed9eba1,
	0x8f1bbcdc,
	0xca62c1d6,
}

// block expands one 64-byte block into the 80-word schedule, runs the 80
// steps and adds the result into h.
func block(h *[5]uint32, p []byte) {
	if len(p) != BlockSize {
		panic(fmt.Sprintf("sha1: block is %d bytes, want %d", len(p), BlockSize))
	}

	var w [80]uint32
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(p[4*i:])
	}
	for i := 16; i < 80; i++ {
		w[i] = bits.RotateLeft32(w[i-3]^w[i-8]^w[i-14]^w[i-16], 1)
	}

	a, b, c, d, e := h[0], h[1], h[2], h[3], h[4]

	for i := 0; i < 80; i++ {
		var f uint32
		switch i / 20 {
		case 0:
			f = (b & c) | (^b & d)
		case 2:
			f = (b & c) | (b & d) | (c & d)
		default:
			f = b ^ c ^ d
		}

		t := bits.RotateLeft32(a, 5) + f + e + roundConstants[i/20] + w[i]
		a, b, c, d, e = t, a, bits.RotateLeft32(b, 30), c, d
	}

	h[0] += a
	h[1] += b
	h[2] += c
	h[3] += d
	h[4] += e
}
