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
	"fmt"
	"sort"
	"strings"
)

// ManifestDiff lists how a freshly computed manifest differs from an
// expected one.
//
//nolint:revive
type ManifestDiff struct {
	// Extra identifiers are in the actual manifest only.
	Extra []string

	// Missing identifiers are in the expected manifest only.
	Missing []string

	Mismatches []HashMismatch
}

// HashMismatch is an identifier present in both manifests with different
// digests.
type HashMismatch struct {
	Identifier string
	Expected   string
	Actual     string
}

// IsEmpty reports whether the manifests matched.
func (d *ManifestDiff) IsEmpty() bool {
	return len(d.Extra) == 0 && len(d.Missing) == 0 && len(d.Mismatches) == 0
}

// Err turns the diff into a *CheckError, or nil when there is nothing to
// report. Extra resources are ignored when ignoreExtra is set.
func (d *ManifestDiff) Err(ignoreExtra bool) error {
	var parts []string
	kind := ErrKindMismatch

	if len(d.Mismatches) > 0 {
		ids := make([]string, len(d.Mismatches))
		for i, m := range d.Mismatches {
			ids[i] = m.Identifier
		}
		parts = append(parts, fmt.Sprintf("%d mismatched: %s", len(ids), strings.Join(ids, ", ")))
	}
	if len(d.Missing) > 0 {
		if len(parts) == 0 {
			kind = ErrKindMissingFile
		}
		parts = append(parts, fmt.Sprintf("%d missing: %s", len(d.Missing), strings.Join(d.Missing, ", ")))
	}
	if len(d.Extra) > 0 && !ignoreExtra {
		parts = append(parts, fmt.Sprintf("%d unexpected: %s", len(d.Extra), strings.Join(d.Extra, ", ")))
	}

	if len(parts) == 0 {
		return nil
	}
	return NewCheckError(kind, "", strings.Join(parts, "; "), nil)
}

// ComputeDiff compares actual against expected by identifier and digest hex.
// All slices in the result are sorted and non-nil.
func ComputeDiff(actual, expected *Manifest) *ManifestDiff {
	diff := &ManifestDiff{
		Extra:      []string{},
		Missing:    []string{},
		Mismatches: []HashMismatch{},
	}

	got := hexByIdentifier(actual)
	want := hexByIdentifier(expected)

	for id, gotHex := range got {
		wantHex, ok := want[id]
		switch {
		case !ok:
			diff.Extra = append(diff.Extra, id)
		case gotHex != wantHex:
			diff.Mismatches = append(diff.Mismatches, HashMismatch{
				Identifier: id,
				Expected:   wantHex,
				Actual:     gotHex,
			})
		}
	}
	for id := range want {
		if _, ok := got[id]; !ok {
			diff.Missing = append(diff.Missing, id)
		}
	}

	sort.Strings(diff.Extra)
	sort.Strings(diff.Missing)
	sort.Slice(diff.Mismatches, func(i, j int) bool {
		return diff.Mismatches[i].Identifier < diff.Mismatches[j].Identifier
	})
	return diff
}

func hexByIdentifier(m *Manifest) map[string]string {
	out := make(map[string]string, m.Len())
	for id, d := range m.items {
		out[id] = d.Hex()
	}
	return out
}
