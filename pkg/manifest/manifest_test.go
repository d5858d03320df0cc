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
	"testing"

	"github.com/karanabe/crypto/pkg/hashing/digests"
)

func md5Digest(hexValue string) digests.Digest {
	d, err := digests.ParseDigest("md5", hexValue, 16)
	if err != nil {
		panic(err)
	}
	return d
}

var (
	digestEmpty = md5Digest("d41d8cd98f00b204e9800998ecf8427e")
	digestABC   = md5Digest("900150983cd24fb0d6963f7d28e17f72")
	digestHello = md5Digest("8b1a9953c4611296a827abf8c47804d7")
)

func TestManifest_ResourceDescriptorsSorted(t *testing.T) {
	m := NewManifest("tree", []ManifestItem{
		NewFileManifestItem("z.txt", digestABC),
		NewFileManifestItem("a/b.txt", digestEmpty),
		NewFileManifestItem("m.txt", digestHello),
	}, NewFileSerialization("md5", false, nil))

	descs := m.ResourceDescriptors()
	want := []string{"a/b.txt", "m.txt", "z.txt"}
	if len(descs) != len(want) {
		t.Fatalf("len = %d, want %d", len(descs), len(want))
	}
	for i, id := range want {
		if descs[i].Identifier != id {
			t.Errorf("descs[%d] = %q, want %q", i, descs[i].Identifier, id)
		}
	}
	if !descs[0].Digest.Equal(digestEmpty) {
		t.Errorf("a/b.txt digest = %s", descs[0].Digest)
	}
	if m.Name() != "tree" || m.Len() != 3 {
		t.Errorf("Name() = %q, Len() = %d", m.Name(), m.Len())
	}
}

func TestManifest_Equal(t *testing.T) {
	ser := NewFileSerialization("md5", false, nil)
	base := NewManifest("one", []ManifestItem{
		NewFileManifestItem("a", digestABC),
		NewFileManifestItem("b", digestHello),
	}, ser)

	tests := []struct {
		name  string
		other *Manifest
		want  bool
	}{
		{"same items other name", NewManifest("two", []ManifestItem{
			NewFileManifestItem("b", digestHello),
			NewFileManifestItem("a", digestABC),
		}, ser), true},
		{"different digest", NewManifest("one", []ManifestItem{
			NewFileManifestItem("a", digestABC),
			NewFileManifestItem("b", digestEmpty),
		}, ser), false},
		{"missing item", NewManifest("one", []ManifestItem{
			NewFileManifestItem("a", digestABC),
		}, ser), false},
		{"different algorithm", NewManifest("one", []ManifestItem{
			NewFileManifestItem("a", digests.NewDigest("sha1", digestABC.Value())),
			NewFileManifestItem("b", digestHello),
		}, ser), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Equal(tt.other); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
	if !base.Equal(base) {
		t.Error("manifest should equal itself")
	}
}

func TestManifest_LookupAndParameters(t *testing.T) {
	m := NewManifest("x", []ManifestItem{
		NewFileManifestItem("dir/file", digestABC),
	}, NewFileSerialization("md5", true, []string{".git"}))

	if d, ok := m.Lookup("dir/file"); !ok || !d.Equal(digestABC) {
		t.Errorf("Lookup() = %v, %v", d, ok)
	}
	if _, ok := m.Lookup("other"); ok {
		t.Error("Lookup() found an unknown identifier")
	}

	params := m.SerializationParameters()
	params["method"] = "changed"
	if m.SerializationParameters()["method"] != "files" {
		t.Error("SerializationParameters() returned shared map")
	}
}

func TestShardedFileManifestItem(t *testing.T) {
	item := NewShardedFileManifestItem("dir/big.bin", 1024, 2048, digestABC)

	if item.Name() != "dir/big.bin:1024:2048" {
		t.Errorf("Name() = %q", item.Name())
	}
	if item.Path() != "dir/big.bin" {
		t.Errorf("Path() = %q", item.Path())
	}
	if s, e := item.Range(); s != 1024 || e != 2048 {
		t.Errorf("Range() = %d, %d", s, e)
	}
}

func TestParseShardName(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantPath  string
		wantStart int64
		wantEnd   int64
		wantErr   bool
	}{
		{"simple", "file:0:10", "file", 0, 10, false},
		{"colon in path", "c:/data/file:10:20", "c:/data/file", 10, 20, false},
		{"no separators", "file", "", 0, 0, true},
		{"one separator", "file:10", "", 0, 0, true},
		{"empty path", ":0:10", "", 0, 0, true},
		{"bad start", "file:x:10", "", 0, 0, true},
		{"bad end", "file:0:y", "", 0, 0, true},
		{"empty range", "file:5:5", "", 0, 0, true},
		{"empty file", "file:0:0", "file", 0, 0, false},
		{"reversed range", "file:9:5", "", 0, 0, true},
		{"negative start", "file:-1:5", "", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, start, end, err := parseShardName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseShardName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if path != tt.wantPath || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("parseShardName(%q) = %q, %d, %d", tt.input, path, start, end)
			}
		})
	}
}
