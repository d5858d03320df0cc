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
	"encoding/json"
	"reflect"
	"testing"
)

func TestSerializationRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		ser  SerializationType
	}{
		{"files", NewFileSerialization("md5", false, nil)},
		{"files with ignores", NewFileSerialization("sha1", true, []string{".git", "build"})},
		{"shards", NewShardSerialization("sha1", 1 << 20, false, []string{"tmp"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Go through JSON so numbers come back as float64 and lists as []any.
			raw, err := json.Marshal(tt.ser.Parameters())
			if err != nil {
				t.Fatal(err)
			}
			var args map[string]any
			if err := json.Unmarshal(raw, &args); err != nil {
				t.Fatal(err)
			}

			got, err := SerializationTypeFromArgs(args)
			if err != nil {
				t.Fatalf("SerializationTypeFromArgs() error = %v", err)
			}
			if !reflect.DeepEqual(got.Parameters(), tt.ser.Parameters()) {
				t.Errorf("Parameters() = %v, want %v", got.Parameters(), tt.ser.Parameters())
			}
			if got.DigestName() != tt.ser.DigestName() {
				t.Errorf("DigestName() = %q, want %q", got.DigestName(), tt.ser.DigestName())
			}
		})
	}
}

func TestSerializationTypeFromArgs_Errors(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
	}{
		{"missing method", map[string]any{"hash_type": "md5"}},
		{"unknown method", map[string]any{"method": "blocks", "hash_type": "md5"}},
		{"missing hash type", map[string]any{"method": "files"}},
		{"bad allow_symlinks", map[string]any{"method": "files", "hash_type": "md5", "allow_symlinks": "yes"}},
		{"bad ignore list", map[string]any{"method": "files", "hash_type": "md5", "ignore_paths": []any{"a", 1}}},
		{"missing shard size", map[string]any{"method": "shards", "hash_type": "md5"}},
		{"fractional shard size", map[string]any{"method": "shards", "hash_type": "md5", "shard_size": 1.5}},
		{"zero shard size", map[string]any{"method": "shards", "hash_type": "md5", "shard_size": 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := SerializationTypeFromArgs(tt.args); err == nil {
				t.Errorf("SerializationTypeFromArgs(%v) should fail", tt.args)
			}
		})
	}
}

func TestShardSerialization_NewItem(t *testing.T) {
	ser := NewShardSerialization("md5", 100, false, nil)

	if ser.DigestName() != "md5-sharded-100" {
		t.Errorf("DigestName() = %q", ser.DigestName())
	}

	item, err := ser.NewItem("a/b:100:200", digestABC)
	if err != nil {
		t.Fatalf("NewItem() error = %v", err)
	}
	if item.Name() != "a/b:100:200" {
		t.Errorf("Name() = %q", item.Name())
	}

	if _, err := ser.NewItem("a/b:0:101", digestABC); err == nil {
		t.Error("NewItem() should reject a shard longer than the shard size")
	}
	if _, err := ser.NewItem("a/b", digestABC); err == nil {
		t.Error("NewItem() should reject a plain path")
	}
}

func TestFileSerialization_CopiesIgnorePaths(t *testing.T) {
	ignore := []string{"a"}
	ser := NewFileSerialization("md5", false, ignore)
	ignore[0] = "b"

	got := ser.Parameters()["ignore_paths"].([]string)
	if got[0] != "a" {
		t.Errorf("ignore_paths = %v, constructor did not copy", got)
	}
	got[0] = "c"
	if ser.Parameters()["ignore_paths"].([]string)[0] != "a" {
		t.Error("Parameters() exposed internal slice")
	}
}
