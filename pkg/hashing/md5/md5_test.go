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
	"bytes"
	stdmd5 "crypto/md5"
	"encoding/binary"
	"encoding/hex"
	"math/rand"
	"strings"
	"testing"
)

func TestDigest_KnownAnswers(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", "d41d8cd98f00b204e9800998ecf8427e"},
		{"a", "a", "0cc175b9c0f1b6a831c399e269772661"},
		{"abc", "abc", "900150983cd24fb0d6963f7d28e17f72"},
		{"Hello", "Hello", "8b1a9953c4611296a827abf8c47804d7"},
		{"message digest", "message digest", "f96b697d7cb7938d525a2f31aaf161d0"},
		{"alphabet", "abcdefghijklmnopqrstuvwxyz", "c3fcd3d76192e4007dfb496cca67e13b"},
		{"alphanumeric", "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789", "d174ab98d277d9f5a5611c2c9f419d9f"},
		{"digits", strings.Repeat("1234567890", 8), "57edf4a22be3c955ac49da2e2107b67a"},
		{"55 bytes", strings.Repeat("a", 55), "ef1772b6dff9a122358552954ad0df65"},
		{"56 bytes", strings.Repeat("a", 56), "3b0c8ac703f828b04c6c197006d17218"},
		{"64 bytes", strings.Repeat("a", 64), "014842d480b571495a4a0363793f7367"},
		{"120 bytes", strings.Repeat("a", 120), "5f61c0ccad4cac44c75ff505e1f1e537"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New()
			e.Update([]byte(tt.input))
			got := e.Finalize().Hex()
			if got != tt.want {
				t.Errorf("Finalize().Hex() = %q, want %q", got, tt.want)
			}
			if s := Digest([]byte(tt.input)).String(); s != tt.want {
				t.Errorf("Digest().String() = %q, want %q", s, tt.want)
			}
		})
	}
}

func TestDigest_MillionA(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping 1MB digest in short mode")
	}
	const want = "7707d6ae4e027c70eea2a935c2296f21"

	got := Digest(bytes.Repeat([]byte("a"), 1000000)).Hex()
	if got != want {
		t.Errorf("Digest(1M 'a') = %q, want %q", got, want)
	}
}

func TestDigest_MatchesStandardLibrary(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for n := 0; n <= 300; n++ {
		msg := make([]byte, n)
		rng.Read(msg)

		want := stdmd5.Sum(msg)
		got := Digest(msg)

		if !bytes.Equal(got.Bytes(), want[:]) {
			t.Fatalf("len %d: Bytes() = %x, want %x", n, got.Bytes(), want)
		}
		if got.Hex() != hex.EncodeToString(want[:]) {
			t.Fatalf("len %d: Hex() = %q, want %x", n, got.Hex(), want)
		}
	}
}

func TestUpdate_ChunkBoundariesDoNotMatter(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	msg := make([]byte, 517)
	rng.Read(msg)

	want := Digest(msg)

	for _, chunk := range []int{1, 3, 7, 63, 64, 65, 128, 516} {
		e := New()
		for rest := msg; len(rest) > 0; {
			n := chunk
			if n > len(rest) {
				n = len(rest)
			}
			e.Update(rest[:n])
			rest = rest[n:]
		}
		if got := e.Finalize(); got != want {
			t.Errorf("chunk size %d: got %s, want %s", chunk, got, want)
		}
	}
}

func TestUpdate_EmptyCallsAreNoops(t *testing.T) {
	e := New()
	e.Update(nil)
	e.Update([]byte{})
	e.Update([]byte("abc"))
	e.Update(nil)

	if e.Len() != 3 {
		t.Errorf("Len() = %d, want 3", e.Len())
	}
	if got := e.Finalize().Hex(); got != "900150983cd24fb0d6963f7d28e17f72" {
		t.Errorf("Finalize() = %q", got)
	}
}

func TestUpdate_CopiesInput(t *testing.T) {
	buf := []byte("abc")
	e := New()
	e.Update(buf)
	buf[0] = 'x'

	if got := e.Finalize().Hex(); got != "900150983cd24fb0d6963f7d28e17f72" {
		t.Errorf("Finalize() after caller mutation = %q", got)
	}
}

func TestPad_Invariant(t *testing.T) {
	for n := 0; n <= 200; n++ {
		msg := bytes.Repeat([]byte{0xab}, n)
		padded := pad(msg)

		if len(padded)%BlockSize != 0 {
			t.Fatalf("len %d: padded length %d is not a multiple of %d", n, len(padded), BlockSize)
		}
		if len(padded) != paddedLen(n) {
			t.Fatalf("len %d: padded length %d, paddedLen() = %d", n, len(padded), paddedLen(n))
		}
		if len(padded) < n+1+lengthSize {
			t.Fatalf("len %d: padded length %d leaves no room for marker and length", n, len(padded))
		}
		if !bytes.Equal(padded[:n], msg) {
			t.Fatalf("len %d: message prefix altered", n)
		}
		if padded[n] != 0x80 {
			t.Fatalf("len %d: marker byte = %#x, want 0x80", n, padded[n])
		}
		for i := n + 1; i < len(padded)-lengthSize; i++ {
			if padded[i] != 0 {
				t.Fatalf("len %d: fill byte %d = %#x, want 0", n, i, padded[i])
			}
		}
		if got := binary.LittleEndian.Uint64(padded[len(padded)-lengthSize:]); got != uint64(8*n) {
			t.Fatalf("len %d: encoded bit length = %d, want %d", n, got, 8*n)
		}
	}
}

func TestPad_BlockAlignedInputGainsBlock(t *testing.T) {
	padded := pad(make([]byte, BlockSize))
	if len(padded) != 2*BlockSize {
		t.Errorf("pad(64 bytes) length = %d, want %d", len(padded), 2*BlockSize)
	}
}

func TestPad_DoesNotWriteIntoCallerSlice(t *testing.T) {
	backing := make([]byte, 3, 64)
	copy(backing, "abc")
	_ = pad(backing)

	if got := backing[:4][3]; got != 0 {
		t.Errorf("pad wrote %#x past the caller's length", got)
	}
}

func TestSum_Rendering(t *testing.T) {
	s := Sum(initialState)

	if got, want := s.Hex(), "0123456789abcdeffedcba9876543210"; got != want {
		t.Errorf("Hex() = %q, want %q", got, want)
	}
	if got, want := hex.EncodeToString(s.Bytes()), s.Hex(); got != want {
		t.Errorf("hex(Bytes()) = %q, want %q", got, want)
	}
	if s.Words() != initialState {
		t.Errorf("Words() = %x, want %x", s.Words(), initialState)
	}
	if len(s.Hex()) != 2*Size {
		t.Errorf("len(Hex()) = %d, want %d", len(s.Hex()), 2*Size)
	}
}

func TestFinalize_Twice_Panics(t *testing.T) {
	e := New()
	e.Finalize()

	defer func() {
		if r := recover(); r == nil {
			t.Error("second Finalize() should panic")
		}
	}()
	e.Finalize()
}

func TestUpdate_AfterFinalize_Panics(t *testing.T) {
	e := New()
	e.Update([]byte("abc"))
	e.Finalize()

	defer func() {
		if r := recover(); r == nil {
			t.Error("Update() after Finalize() should panic")
		}
	}()
	e.Update([]byte("more"))
}

func TestBlock_WrongSize_Panics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("block() with a short block should panic")
		}
	}()
	state := initialState
	block(&state, make([]byte, BlockSize-1))
}

func TestEngines_AreIndependent(t *testing.T) {
	a, b := New(), New()
	a.Update([]byte("abc"))
	b.Update([]byte("message digest"))

	if got := a.Finalize().Hex(); got != "900150983cd24fb0d6963f7d28e17f72" {
		t.Errorf("a = %q", got)
	}
	if got := b.Finalize().Hex(); got != "f96b697d7cb7938d525a2f31aaf161d0" {
		t.Errorf("b = %q", got)
	}
}
