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

package manifest

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteChecksums(t *testing.T) {
	m := NewManifest("x", []ManifestItem{
		NewFileManifestItem("b.txt", digestHello),
		NewFileManifestItem("a.txt", digestABC),
	}, NewFileSerialization("md5", false, nil))

	var buf bytes.Buffer
	if err := WriteChecksums(&buf, m); err != nil {
		t.Fatalf("WriteChecksums() error = %v", err)
	}

	want := "900150983cd24fb0d6963f7d28e17f72  a.txt\n" +
		"8b1a9953c4611296a827abf8c47804d7  b.txt\n"
	if buf.String() != want {
		t.Errorf("WriteChecksums() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestWriteChecksum_EscapesNames(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteChecksum(&buf, digestABC, "odd\\name\nhere"); err != nil {
		t.Fatal(err)
	}

	want := "\\900150983cd24fb0d6963f7d28e17f72  odd\\\\name\\nhere\n"
	if buf.String() != want {
		t.Errorf("WriteChecksum() = %q, want %q", buf.String(), want)
	}

	entries, err := ParseChecksums(&buf, "md5", 16)
	if err != nil {
		t.Fatalf("ParseChecksums() error = %v", err)
	}
	if entries[0].Path != "odd\\name\nhere" {
		t.Errorf("Path = %q", entries[0].Path)
	}
}

func TestParseChecksums(t *testing.T) {
	input := strings.Join([]string{
		"# generated by hashsum",
		"",
		"900150983cd24fb0d6963f7d28e17f72  a.txt",
		"8B1A9953C4611296A827ABF8C47804D7 *bin/b.dat",
		"d41d8cd98f00b204e9800998ecf8427e  name with  spaces\r",
	}, "\n")

	entries, err := ParseChecksums(strings.NewReader(input), "md5", 16)
	if err != nil {
		t.Fatalf("ParseChecksums() error = %v", err)
	}

	want := []struct {
		path   string
		digest string
		binary bool
		line   int
	}{
		{"a.txt", digestABC.Hex(), false, 3},
		{"bin/b.dat", digestHello.Hex(), true, 4},
		{"name with  spaces", digestEmpty.Hex(), false, 5},
	}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(entries), len(want))
	}
	for i, w := range want {
		e := entries[i]
		if e.Path != w.path || e.Digest.Hex() != w.digest || e.Binary != w.binary || e.Line != w.line {
			t.Errorf("entries[%d] = %+v, want %+v", i, e, w)
		}
		if e.Digest.Algorithm() != "md5" {
			t.Errorf("entries[%d] algorithm = %q", i, e.Digest.Algorithm())
		}
	}
}

func TestParseChecksums_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		size     int
		wantPath string
		wantKind ErrorKind
	}{
		{"empty input", "", 16, "", ErrKindInvalidFormat},
		{"comments only", "# nothing\n", 16, "", ErrKindInvalidFormat},
		{"no separator", "900150983cd24fb0d6963f7d28e17f72\n", 16, "line 1", ErrKindInvalidFormat},
		{"missing name", "900150983cd24fb0d6963f7d28e17f72  \n", 16, "line 1", ErrKindInvalidFormat},
		{"bad mode", "900150983cd24fb0d6963f7d28e17f72 xa.txt\n", 16, "line 1", ErrKindInvalidFormat},
		{"not hex", "zz0150983cd24fb0d6963f7d28e17f72  a\n", 16, "line 1", ErrKindInvalidFormat},
		{"wrong length", "# c\n" + "a9993e364706816aba3e25717850c26c9cd0d89d  a\n", 16, "line 2", ErrKindInvalidFormat},
		{"bad escape", "\\900150983cd24fb0d6963f7d28e17f72  a\\x\n", 16, "line 1", ErrKindInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseChecksums(strings.NewReader(tt.input), "md5", tt.size)
			if err == nil {
				t.Fatal("ParseChecksums() should fail")
			}
			if !IsKind(err, tt.wantKind) {
				t.Errorf("error = %v, want kind %s", err, tt.wantKind)
			}
			ce := err.(*CheckError)
			if ce.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", ce.Path, tt.wantPath)
			}
		})
	}
}

func TestParseChecksums_AnySize(t *testing.T) {
	entries, err := ParseChecksums(strings.NewReader("abcd  short\n"), "custom", 0)
	if err != nil {
		t.Fatalf("ParseChecksums() error = %v", err)
	}
	if entries[0].Digest.Size() != 2 {
		t.Errorf("Size() = %d", entries[0].Digest.Size())
	}
}

func TestManifestFromChecksums(t *testing.T) {
	entries := []ChecksumEntry{
		{Path: "a.txt", Digest: digestABC, Line: 1},
		{Path: "b.txt", Digest: digestHello, Line: 2},
	}

	m, err := ManifestFromChecksums("list", entries, NewFileSerialization("md5", false, nil))
	if err != nil {
		t.Fatalf("ManifestFromChecksums() error = %v", err)
	}
	if d, ok := m.Lookup("b.txt"); !ok || !d.Equal(digestHello) {
		t.Errorf("Lookup(b.txt) = %v, %v", d, ok)
	}

	_, err = ManifestFromChecksums("list", entries, NewShardSerialization("md5", 10, false, nil))
	if !IsKind(err, ErrKindInvalidFormat) {
		t.Errorf("sharded names error = %v", err)
	}
}
