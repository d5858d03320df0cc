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

package md5

import (
	"encoding/binary"
	"fmt"
	"math/bits"
)

// table holds T[1..64] from RFC 1321, T[i] = floor(2^32 * |sin(i)|).
// table[j] is T[j+1].
var table = [64]uint32{
	// round 1
	0xd76aa478, 0xe8c7b756, 0x242070db, 0xc1bdceee,
	0xf57c0faf, 0x4787c62a, 0xa8304613, 0xfd469501,
	0x698098d8, 0x8b44f7af, 0xffff5bb1, 0x895cd7be,
	0x6b901122, 0xfd987193, 0xa679438e, 0x49b40821,
	// round 2
	0xf61e2562, 0xc040b340, 0x265e5a51, 0xe9b6c7aa,
	0xd62f105d, 0x02441453, 0xd8a1e681, 0xe7d3fbc8,
	0x21e1cde6, 0xc33707d6, 0xf4d50d87, 0x455a14ed,
	0xa9e3e905, 0xfcefa3f8, 0x676f02d9, 0x8d2a4c8a,
	// round 3
	0xfffa3942, 0x8771f681, 0x6d9d6122, 0xfde5380c,
	0xa4beea44, 0x4bdecfa9, 0xf6bb4b60, 0xbebfbc70,
	0x289b7ec6, 0xeaa127fa, 0xd4ef3085, 0x04881d05,
	0xd9d4d039, 0xe6db99e5, 0x1fa27cf8, 0xc4ac5665,
	// round 4
	0xf4292244, 0x432aff97, 0xab9423a7, 0xfc93a039,
	0x655b59c3, 0x8f0ccc92, 0xffeff47d, 0x85845dd1,
	0x6fa87e4f, 0xfe2ce6e0, 0xa3014314, 0x4e0811a1,
	0xf7537e82, 0xbd3af235, 0x2ad7d2bb, 0xeb86d391,
}

// shifts holds the four rotate amounts used by each round, in step order.
var shifts = [4][4]int{
	{7, 12, 17, 22},
	{5, 9, 14, 20},
	{4, 11, 16, 23},
	{6, 10, 15, 21},
}

// block runs the MD5 compression function over one 64-byte block and adds
// the result into s.
func block(s *[4]uint32, p []byte) {
	if len(p) != BlockSize {
		panic(fmt.Sprintf("md5: block is %d bytes, want %d", len(p), BlockSize))
	}

	var x [16]uint32
	for i := range x {
		x[i] = binary.LittleEndian.Uint32(p[4*i:])
	}

	a, b, c, d := s[0], s[1], s[2], s[3]

	for i := 0; i < 64; i++ {
		round := i / 16

		var f uint32
		var k int
		switch round {
		case 0:
			f = (b & c) | (^b & d)
			k = i
		case 1:
			f = (b & d) | (c &^ d)
			k = (5*i + 1) % 16
		case 2:
			f = b ^ c ^ d
			k = (3*i + 5) % 16
		default:
			f = c ^ (b | ^d)
			k = (7 * i) % 16
		}

		t := a + f + x[k] + table[i]
		a, b, c, d = d, b+bits.RotateLeft32(t, shifts[round][i%4]), b, c
	}

	s[0] += a
	s[1] += b
	s[2] += c
	s[3] += d
}
