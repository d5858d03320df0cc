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

// Package config turns hashing options into manifests: it resolves the
// engine, walks the inputs, and hashes whole files or shards.
package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/karanabe/crypto/pkg/hashing/digests"
	hashengines "github.com/karanabe/crypto/pkg/hashing/engines"
	hashio "github.com/karanabe/crypto/pkg/hashing/engines/io"
	_ "github.com/karanabe/crypto/pkg/hashing/engines/memory" // registers the engines
	"github.com/karanabe/crypto/pkg/logging"
	"github.com/karanabe/crypto/pkg/manifest"
	"github.com/karanabe/crypto/pkg/tracing"
)

const (
	// DefaultAlgorithm is used when no algorithm is configured.
	DefaultAlgorithm = "md5"

	// DefaultChunkSize is the read buffer size for file hashing.
	DefaultChunkSize = 8192
)

// gitRelatedPaths are skipped when git paths are ignored.
var gitRelatedPaths = []string{
	".git",
	".gitignore",
	".gitattributes",
	".github",
	".gitmodules",
}

// HashingConfig decides what is hashed and how. Setters return the config
// so calls can be chained.
type HashingConfig struct {
	algorithm      string
	shardSize      int64
	chunkSize      int
	allowSymlinks  bool
	ignoredPaths   []string
	ignoreGitPaths bool
	workers        int
	logger         logging.Logger
}

// NewHashingConfig returns whole-file MD5 hashing with 8 KiB reads, one
// worker and symlinks skipped.
func NewHashingConfig() *HashingConfig {
	return &HashingConfig{
		algorithm: DefaultAlgorithm,
		chunkSize: DefaultChunkSize,
		workers:   1,
		logger:    logging.Discard(),
	}
}

// UseFileSerialization hashes every file whole. ignorePaths are appended to
// the ignore list.
func (c *HashingConfig) UseFileSerialization(algorithm string, allowSymlinks bool, ignorePaths []string) *HashingConfig {
	c.algorithm = algorithm
	c.shardSize = 0
	c.allowSymlinks = allowSymlinks
	c.ignoredPaths = append(c.ignoredPaths, ignorePaths...)
	return c
}

// UseShardSerialization splits files into shardSize-byte shards.
func (c *HashingConfig) UseShardSerialization(algorithm string, shardSize int64, allowSymlinks bool, ignorePaths []string) *HashingConfig {
	c.algorithm = algorithm
	c.shardSize = shardSize
	c.allowSymlinks = allowSymlinks
	c.ignoredPaths = append(c.ignoredPaths, ignorePaths...)
	return c
}

// SetAlgorithm selects the registered engine.
func (c *HashingConfig) SetAlgorithm(algorithm string) *HashingConfig {
	c.algorithm = algorithm
	return c
}

// SetIgnoredPaths replaces the ignore list. Patterns are matched against
// slash-separated paths relative to each walked directory, either exactly,
// as a directory prefix, or as a path.Match glob. With ignoreGitPaths the
// common git files are added so they are recorded in the manifest too.
func (c *HashingConfig) SetIgnoredPaths(paths []string, ignoreGitPaths bool) *HashingConfig {
	c.ignoredPaths = append([]string(nil), paths...)
	c.ignoreGitPaths = ignoreGitPaths
	if ignoreGitPaths {
		c.ignoredPaths = append(c.ignoredPaths, gitRelatedPaths...)
	}
	return c
}

func (c *HashingConfig) SetAllowSymlinks(allow bool) *HashingConfig {
	c.allowSymlinks = allow
	return c
}

// SetChunkSize sets the read buffer size; 0 reads each file in one call.
func (c *HashingConfig) SetChunkSize(size int) *HashingConfig {
	c.chunkSize = size
	return c
}

// SetWorkers sets how many files or shards are hashed concurrently.
func (c *HashingConfig) SetWorkers(n int) *HashingConfig {
	c.workers = n
	return c
}

func (c *HashingConfig) SetLogger(l logging.Logger) *HashingConfig {
	c.logger = logging.EnsureLogger(l)
	return c
}

func (c *HashingConfig) Algorithm() string { return c.algorithm }

func (c *HashingConfig) ShardSize() int64 { return c.shardSize }

// Validate checks the configuration without touching the file system.
func (c *HashingConfig) Validate() error {
	var errs []error
	if !hashengines.IsSupported(c.algorithm) {
		errs = append(errs, fmt.Errorf("unsupported algorithm %q (supported: %s)",
			c.algorithm, strings.Join(hashengines.SupportedAlgorithms(), ", ")))
	}
	if c.chunkSize < 0 {
		errs = append(errs, fmt.Errorf("chunk size must be non-negative, got %d", c.chunkSize))
	}
	if c.shardSize < 0 {
		errs = append(errs, fmt.Errorf("shard size must be non-negative, got %d", c.shardSize))
	}
	if c.workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.workers))
	}
	for _, p := range c.ignoredPaths {
		if _, err := path.Match(p, ""); err != nil {
			errs = append(errs, fmt.Errorf("invalid ignore pattern %q: %w", p, err))
		}
	}
	return errors.Join(errs...)
}

// SerializationType describes this configuration for a manifest.
func (c *HashingConfig) SerializationType() manifest.SerializationType {
	if c.shardSize > 0 {
		return manifest.NewShardSerialization(c.algorithm, c.shardSize, c.allowSymlinks, c.ignoredPaths)
	}
	return manifest.NewFileSerialization(c.algorithm, c.allowSymlinks, c.ignoredPaths)
}

// hashJob is one file or one shard of a file.
type hashJob struct {
	path       string
	start, end int64
	sharded    bool
}

// Hash hashes every path, descending into directories, and returns the
// manifest. Identifiers are the given paths (or their walked descendants) in
// slash form. Ignore patterns apply only below directories given as inputs.
func (c *HashingConfig) Hash(ctx context.Context, paths []string) (*manifest.Manifest, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, errors.New("no paths to hash")
	}

	var m *manifest.Manifest
	attrs := map[string]any{"algorithm": c.algorithm, "inputs": len(paths), "shard_size": c.shardSize}
	err := tracing.Run(ctx, "hashsum.manifest", attrs, func(ctx context.Context) error {
		files, err := c.collect(paths)
		if err != nil {
			return err
		}
		jobs, err := c.plan(files)
		if err != nil {
			return err
		}
		c.logger.WithFields(map[string]any{"files": len(files), "jobs": len(jobs)}).Debug("hashing with %s", c.algorithm)

		items, err := c.run(ctx, jobs)
		if err != nil {
			return err
		}

		name := ""
		if len(paths) == 1 {
			name = filepath.Base(paths[0])
		}
		m = manifest.NewManifest(name, items, c.SerializationType())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// HashReader digests everything r produces with the configured engine and
// chunk size.
func (c *HashingConfig) HashReader(ctx context.Context, r io.Reader) (digests.Digest, error) {
	if err := c.Validate(); err != nil {
		return digests.Digest{}, err
	}

	var d digests.Digest
	err := tracing.Run(ctx, "hashsum.hash_reader", map[string]any{"algorithm": c.algorithm}, func(context.Context) error {
		engine, err := hashengines.Create(c.algorithm)
		if err != nil {
			return err
		}
		h, err := hashio.NewReaderHasher(r, engine, c.chunkSize)
		if err != nil {
			return err
		}
		if d, err = h.Compute(); err != nil {
			return err
		}
		c.logger.WithField("bytes", h.BytesRead()).Debug("hashed standard input")
		return nil
	})
	return d, err
}

// collect expands the inputs into the list of files to hash.
func (c *HashingConfig) collect(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Lstat(p)
		if err != nil {
			return nil, missingOrIO(p, err)
		}

		if info.Mode()&fs.ModeSymlink != 0 {
			if !c.allowSymlinks {
				return nil, manifest.NewCheckError(manifest.ErrKindIO, p, "refusing to follow symlink without --allow-symlinks", nil)
			}
			if info, err = os.Stat(p); err != nil {
				return nil, missingOrIO(p, err)
			}
		}

		switch {
		case info.IsDir():
			walked, err := c.walk(p)
			if err != nil {
				return nil, err
			}
			files = append(files, walked...)
		case info.Mode().IsRegular():
			files = append(files, p)
		default:
			return nil, manifest.NewCheckError(manifest.ErrKindIO, p, "not a regular file", nil)
		}
	}
	return files, nil
}

func (c *HashingConfig) walk(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == root {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		if c.ignored(filepath.ToSlash(rel)) {
			c.logger.WithField("path", p).Debug("ignored")
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		switch {
		case d.IsDir():
			return nil
		case d.Type()&fs.ModeSymlink != 0:
			if !c.allowSymlinks {
				c.logger.WithField("path", p).Debug("skipping symlink")
				return nil
			}
			target, err := os.Stat(p)
			if err != nil {
				return fmt.Errorf("resolve symlink %s: %w", p, err)
			}
			// Directory links are not followed, which also rules out cycles.
			if !target.Mode().IsRegular() {
				return nil
			}
		case !d.Type().IsRegular():
			c.logger.WithField("path", p).Debug("skipping special file")
			return nil
		}

		files = append(files, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return files, nil
}

func (c *HashingConfig) ignored(rel string) bool {
	base := path.Base(rel)
	for _, p := range c.ignoredPaths {
		p = strings.TrimSuffix(filepath.ToSlash(p), "/")
		if rel == p || strings.HasPrefix(rel, p+"/") {
			return true
		}
		if ok, _ := path.Match(p, rel); ok {
			return true
		}
		if !strings.Contains(p, "/") {
			if ok, _ := path.Match(p, base); ok {
				return true
			}
		}
	}
	return false
}

// plan turns files into jobs: one per file, or one per shard.
func (c *HashingConfig) plan(files []string) ([]hashJob, error) {
	if c.shardSize == 0 {
		jobs := make([]hashJob, len(files))
		for i, f := range files {
			jobs[i] = hashJob{path: f}
		}
		return jobs, nil
	}

	var jobs []hashJob
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			return nil, missingOrIO(f, err)
		}
		size := info.Size()
		if size == 0 {
			jobs = append(jobs, hashJob{path: f, sharded: true})
			continue
		}
		for start := int64(0); start < size; start += c.shardSize {
			end := min(start+c.shardSize, size)
			jobs = append(jobs, hashJob{path: f, start: start, end: end, sharded: true})
		}
	}
	return jobs, nil
}

// run hashes jobs on c.workers goroutines. Items keep the order of jobs.
// The first failure cancels the remaining work.
func (c *HashingConfig) run(ctx context.Context, jobs []hashJob) ([]manifest.ManifestItem, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	items := make([]manifest.ManifestItem, len(jobs))
	next := make(chan int)
	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)

	workers := min(c.workers, len(jobs))
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range next {
				item, err := c.hashOne(ctx, jobs[i])
				if err != nil {
					once.Do(func() {
						firstErr = err
						cancel()
					})
					continue
				}
				items[i] = item
			}
		}()
	}

feed:
	for i := range jobs {
		select {
		case next <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(next)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *HashingConfig) hashOne(ctx context.Context, job hashJob) (manifest.ManifestItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var item manifest.ManifestItem
	attrs := map[string]any{"path": job.path, "start": job.start, "end": job.end}
	err := tracing.Run(ctx, "hashsum.hash_file", attrs, func(context.Context) error {
		engine, err := hashengines.Create(c.algorithm)
		if err != nil {
			return err
		}

		if !job.sharded {
			h, err := hashio.NewSimpleFileHasher(job.path, engine, c.chunkSize, "")
			if err != nil {
				return err
			}
			d, err := h.Compute()
			if err != nil {
				return classify(job.path, err)
			}
			item = manifest.NewFileManifestItem(job.path, d)
			return nil
		}

		var d digests.Digest
		if job.end == job.start {
			// The shard hasher rejects empty ranges, so an empty file is
			// digested directly.
			engine.Reset(nil)
			raw, err := engine.Compute()
			if err != nil {
				return err
			}
			d = digests.NewDigest(c.SerializationType().DigestName(), raw.Value())
		} else {
			h, err := hashio.NewShardedFileHasher(job.path, engine, job.start, job.end, c.chunkSize, c.shardSize, "")
			if err != nil {
				return err
			}
			if d, err = h.Compute(); err != nil {
				return classify(job.path, err)
			}
		}
		item = manifest.NewShardedFileManifestItem(job.path, job.start, job.end, d)
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.WithFields(map[string]any{"path": item.Name(), "digest": item.Digest().Hex()}).Debug("hashed")
	return item, nil
}

func missingOrIO(p string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return manifest.NewCheckError(manifest.ErrKindMissingFile, p, "no such file or directory", err)
	}
	return manifest.NewCheckError(manifest.ErrKindIO, p, "cannot access", err)
}

func classify(p string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return missingOrIO(p, err)
	}
	return manifest.NewCheckError(manifest.ErrKindIO, p, "read failed", err)
}
