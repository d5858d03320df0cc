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

package config

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/karanabe/crypto/pkg/hashing/digests"
	"github.com/karanabe/crypto/pkg/logging"
	"github.com/karanabe/crypto/pkg/manifest"
)

// CheckReport is the outcome of a check.
type CheckReport struct {
	*manifest.ManifestDiff

	// Skipped lists entries dropped because their file does not exist and
	// missing files are ignored.
	Skipped []string

	// Verified counts the files that were hashed.
	Verified int
}

// CheckConfig re-hashes the files named by an expected manifest and reports
// how they differ.
type CheckConfig struct {
	hashing       *HashingConfig
	ignoreMissing bool
	logger        logging.Logger
}

func NewCheckConfig() *CheckConfig {
	return &CheckConfig{logger: logging.Discard()}
}

// SetHashingConfig overrides the hashing settings. Without it they are
// derived from the expected manifest's serialization.
func (c *CheckConfig) SetHashingConfig(h *HashingConfig) *CheckConfig {
	c.hashing = h
	return c
}

// SetIgnoreMissing drops entries whose file does not exist instead of
// failing on them.
func (c *CheckConfig) SetIgnoreMissing(ignore bool) *CheckConfig {
	c.ignoreMissing = ignore
	return c
}

func (c *CheckConfig) SetLogger(l logging.Logger) *CheckConfig {
	c.logger = logging.EnsureLogger(l)
	return c
}

// Check hashes every file expected lists and compares the result. The report
// is returned even when the check fails; the error is then a
// *manifest.CheckError of kind Mismatch or MissingFile. Shards that appear
// because a file grew count as failures.
func (c *CheckConfig) Check(ctx context.Context, expected *manifest.Manifest) (*CheckReport, error) {
	if expected == nil || expected.Len() == 0 {
		return nil, manifest.NewCheckError(manifest.ErrKindInvalidFormat, "", "nothing to check", nil)
	}
	if expected.Serialization() == nil {
		return nil, manifest.NewCheckError(manifest.ErrKindInvalidFormat, "", "manifest has no serialization", nil)
	}

	hashing := c.hashing
	if hashing == nil {
		hashing = HashingConfigFor(expected.Serialization()).SetLogger(c.logger)
	}

	paths, err := filePaths(expected)
	if err != nil {
		return nil, err
	}

	var present []string
	absent := map[string]bool{}
	for _, p := range paths {
		info, err := os.Stat(p)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			absent[p] = true
		case err != nil:
			return nil, manifest.NewCheckError(manifest.ErrKindIO, p, "cannot access", err)
		case !info.Mode().IsRegular():
			c.logger.WithField("path", p).Warn("not a regular file")
			absent[p] = true
		default:
			present = append(present, p)
		}
	}

	actual := manifest.NewManifest("", nil, hashing.SerializationType())
	if len(present) > 0 {
		if actual, err = hashing.Hash(ctx, present); err != nil {
			return nil, err
		}
	}

	diff := manifest.ComputeDiff(actual, expected)
	report := &CheckReport{ManifestDiff: diff, Skipped: []string{}, Verified: len(present)}
	if c.ignoreMissing {
		kept := []string{}
		for _, id := range diff.Missing {
			p, err := filePath(expected.Serialization(), id)
			if err == nil && absent[p] {
				report.Skipped = append(report.Skipped, id)
				continue
			}
			kept = append(kept, id)
		}
		diff.Missing = kept
		if len(present) == 0 {
			return report, manifest.NewCheckError(manifest.ErrKindMissingFile, "", "no file was verified", nil)
		}
	}

	c.logger.WithFields(map[string]any{
		"checked":    len(present),
		"missing":    len(diff.Missing),
		"mismatched": len(diff.Mismatches),
	}).Debug("check finished")
	return report, diff.Err(false)
}

// HashingConfigFor rebuilds the hashing settings that produced a manifest
// with serialization s. Ignore patterns are not carried over.
func HashingConfigFor(s manifest.SerializationType) *HashingConfig {
	allowSymlinks, _ := s.Parameters()["allow_symlinks"].(bool)

	c := NewHashingConfig()
	if shard, ok := s.(*manifest.ShardSerialization); ok {
		return c.UseShardSerialization(shard.HashType(), shard.ShardSize(), allowSymlinks, nil)
	}
	return c.UseFileSerialization(s.HashType(), allowSymlinks, nil)
}

// filePaths returns the distinct files named by m, in identifier order.
func filePaths(m *manifest.Manifest) ([]string, error) {
	seen := map[string]bool{}
	var paths []string
	for _, rd := range m.ResourceDescriptors() {
		p, err := filePath(m.Serialization(), rd.Identifier)
		if err != nil {
			return nil, err
		}
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}
	return paths, nil
}

func filePath(s manifest.SerializationType, identifier string) (string, error) {
	item, err := s.NewItem(identifier, digests.Digest{})
	if err != nil {
		return "", manifest.NewCheckError(manifest.ErrKindInvalidFormat, identifier, "invalid resource name", err)
	}
	if shard, ok := item.(*manifest.ShardedFileManifestItem); ok {
		return shard.Path(), nil
	}
	return item.Name(), nil
}
