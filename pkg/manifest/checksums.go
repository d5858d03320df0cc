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
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/karanabe/crypto/pkg/hashing/digests"
)

// maxLineSize bounds a single checksum line.
const maxLineSize = 1 << 20

// ChecksumEntry is one parsed line of a checksum list.
type ChecksumEntry struct {
	Path   string
	Digest digests.Digest

	// Binary is set when the line used the "*" marker.
	Binary bool

	// Line is the 1-based line number in the input.
	Line int
}

// WriteChecksum writes one "<hex>  <name>" line in the md5sum/sha1sum
// layout. Names containing a backslash or newline are escaped and the line
// is prefixed with a backslash.
func WriteChecksum(w io.Writer, d digests.Digest, name string) error {
	prefix := ""
	if strings.ContainsAny(name, "\\\n") {
		prefix = "\\"
		name = escapeName(name)
	}
	_, err := fmt.Fprintf(w, "%s%s  %s\n", prefix, d.Hex(), name)
	return err
}

// WriteChecksums writes every resource of m in identifier order.
func WriteChecksums(w io.Writer, m *Manifest) error {
	for _, rd := range m.ResourceDescriptors() {
		if err := WriteChecksum(w, rd.Digest, rd.Identifier); err != nil {
			return NewCheckError(ErrKindIO, rd.Identifier, "write checksum", err)
		}
	}
	return nil
}

// ParseChecksums reads a checksum list. Blank lines and lines starting with
// "#" are skipped. Every digest must be size bytes of hex (any size if
// size is 0) and is tagged with algorithm.
func ParseChecksums(r io.Reader, algorithm string, size int) ([]ChecksumEntry, error) {
	var entries []ChecksumEntry

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineSize)

	for lineNo := 1; sc.Scan(); lineNo++ {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry, err := parseChecksumLine(line, algorithm, size)
		if err != nil {
			return nil, NewCheckError(ErrKindInvalidFormat, fmt.Sprintf("line %d", lineNo), "malformed checksum line", err)
		}
		entry.Line = lineNo
		entries = append(entries, entry)
	}
	if err := sc.Err(); err != nil {
		return nil, NewCheckError(ErrKindIO, "", "read checksum list", err)
	}
	if len(entries) == 0 {
		return nil, NewCheckError(ErrKindInvalidFormat, "", "no checksum lines found", nil)
	}
	return entries, nil
}

func parseChecksumLine(line, algorithm string, size int) (ChecksumEntry, error) {
	escaped := strings.HasPrefix(line, "\\")
	if escaped {
		line = line[1:]
	}

	sep := strings.IndexByte(line, ' ')
	if sep <= 0 || sep+2 > len(line) {
		return ChecksumEntry{}, fmt.Errorf("want \"<digest>  <name>\", got %q", line)
	}

	hexValue, rest := line[:sep], line[sep+1:]
	var binary bool
	switch rest[0] {
	case ' ':
	case '*':
		binary = true
	default:
		return ChecksumEntry{}, fmt.Errorf("unexpected mode character %q", rest[0])
	}

	name := rest[1:]
	if name == "" {
		return ChecksumEntry{}, fmt.Errorf("missing file name after digest %q", hexValue)
	}
	if escaped {
		var err error
		if name, err = unescapeName(name); err != nil {
			return ChecksumEntry{}, err
		}
	}

	d, err := digests.ParseDigest(algorithm, hexValue, size)
	if err != nil {
		return ChecksumEntry{}, err
	}
	return ChecksumEntry{Path: name, Digest: d, Binary: binary}, nil
}

func escapeName(name string) string {
	return strings.NewReplacer("\\", "\\\\", "\n", "\\n").Replace(name)
}

func unescapeName(name string) (string, error) {
	var sb strings.Builder
	for i := 0; i < len(name); i++ {
		if name[i] != '\\' {
			sb.WriteByte(name[i])
			continue
		}
		if i+1 == len(name) {
			return "", fmt.Errorf("dangling escape in %q", name)
		}
		i++
		switch name[i] {
		case '\\':
			sb.WriteByte('\\')
		case 'n':
			sb.WriteByte('\n')
		default:
			return "", fmt.Errorf("unknown escape \\%c in %q", name[i], name)
		}
	}
	return sb.String(), nil
}

// ManifestFromChecksums builds the expected manifest described by a parsed
// checksum list.
func ManifestFromChecksums(name string, entries []ChecksumEntry, serialization SerializationType) (*Manifest, error) {
	items := make([]ManifestItem, 0, len(entries))
	for _, e := range entries {
		item, err := serialization.NewItem(e.Path, e.Digest)
		if err != nil {
			return nil, NewCheckError(ErrKindInvalidFormat, fmt.Sprintf("line %d", e.Line), "invalid resource name", err)
		}
		items = append(items, item)
	}
	return NewManifest(name, items, serialization), nil
}
