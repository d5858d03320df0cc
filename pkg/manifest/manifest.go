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

// Package manifest pairs resource identifiers (file paths or file shards)
// with their digests, and reads and writes those pairs as checksum lists and
// in-toto statements.
package manifest

import (
	"sort"

	"github.com/karanabe/crypto/pkg/hashing/digests"
)

// ResourceDescriptor is one identifier and its digest.
type ResourceDescriptor struct {
	// Identifier is a slash-separated path, or "path:start:end" for shards.
	Identifier string

	Digest digests.Digest
}

// Manifest is a set of digested resources plus the serialization that
// produced them.
type Manifest struct {
	name          string
	items         map[string]digests.Digest
	serialization SerializationType
}

// NewManifest builds a manifest from hashed items. Items with the same name
// collapse to the last one.
func NewManifest(name string, items []ManifestItem, serialization SerializationType) *Manifest {
	m := make(map[string]digests.Digest, len(items))
	for _, it := range items {
		m[it.Name()] = it.Digest()
	}
	return &Manifest{
		name:          name,
		items:         m,
		serialization: serialization,
	}
}

// Name returns the informative name of the manifest. It does not take part
// in Equal.
func (m *Manifest) Name() string {
	return m.name
}

// Len returns the number of resources.
func (m *Manifest) Len() int {
	return len(m.items)
}

// Serialization returns the serialization that produced the manifest.
func (m *Manifest) Serialization() SerializationType {
	return m.serialization
}

// SerializationParameters returns a copy of the serialization parameters.
func (m *Manifest) SerializationParameters() map[string]any {
	if m.serialization == nil {
		return map[string]any{}
	}
	params := m.serialization.Parameters()
	out := make(map[string]any, len(params))
	for k, v := range params {
		out[k] = v
	}
	return out
}

// Lookup returns the digest recorded for identifier.
func (m *Manifest) Lookup(identifier string) (digests.Digest, bool) {
	d, ok := m.items[identifier]
	return d, ok
}

// Equal reports whether both manifests map the same identifiers to the same
// digests.
func (m *Manifest) Equal(other *Manifest) bool {
	if m == other {
		return true
	}
	if m == nil || other == nil {
		return false
	}
	if len(m.items) != len(other.items) {
		return false
	}
	for id, d := range m.items {
		od, ok := other.items[id]
		if !ok || !d.Equal(od) {
			return false
		}
	}
	return true
}

// ResourceDescriptors returns every resource sorted by identifier.
func (m *Manifest) ResourceDescriptors() []ResourceDescriptor {
	ids := make([]string, 0, len(m.items))
	for id := range m.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]ResourceDescriptor, 0, len(ids))
	for _, id := range ids {
		out = append(out, ResourceDescriptor{Identifier: id, Digest: m.items[id]})
	}
	return out
}
