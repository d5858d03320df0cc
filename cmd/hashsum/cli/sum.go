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

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/karanabe/crypto/cmd/hashsum/cli/options"
	"github.com/karanabe/crypto/pkg/config"
	"github.com/karanabe/crypto/pkg/hashing/digests"
	"github.com/karanabe/crypto/pkg/hashing/engines/memory"
	"github.com/karanabe/crypto/pkg/manifest"
	"github.com/karanabe/crypto/pkg/tracing"
)

// stdinName stands for standard input on the command line and in output.
const stdinName = "-"

// Sum returns the `sum` command.
func Sum() *cobra.Command {
	o := &options.SumOptions{}

	long := `Print the digest of every PATH.

Directories are walked recursively. With no PATH, or when PATH is -, standard
input is read. The text format matches md5sum and sha1sum and can be fed back
to "hashsum check". The in-toto format emits an unsigned in-toto Statement
with one subject per file or shard. The etag format hashes the concatenated
shard digests of each file and appends the shard count, as S3-compatible
stores do for multipart uploads; it needs --shard-size.`

	cmd := &cobra.Command{
		Use:   "sum [OPTIONS] [PATH...]",
		Short: "Compute digests of files, directories or standard input.",
		Long:  long,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Validate(); err != nil {
				return err
			}
			hc := o.HashingConfig().SetLogger(newLogger(cmd))

			ctx, cancel := commandContext(cmd)
			defer cancel()

			attrs := map[string]any{
				"hashsum.algorithm":  o.Algorithm,
				"hashsum.format":     o.Format,
				"hashsum.shard_size": o.ShardSize,
				"hashsum.inputs":     len(args),
			}
			return withExitCode(tracing.Run(ctx, "Sum", attrs, func(ctx context.Context) error {
				m, err := hashInputs(ctx, hc, args, cmd.InOrStdin())
				if err != nil {
					return err
				}
				return writeManifest(cmd.OutOrStdout(), m, o.Format)
			}))
		},
	}

	o.AddFlags(cmd)
	return cmd
}

func hashInputs(ctx context.Context, hc *config.HashingConfig, args []string, stdin io.Reader) (*manifest.Manifest, error) {
	if len(args) == 0 {
		args = []string{stdinName}
	}
	for _, a := range args {
		if a == stdinName && len(args) > 1 {
			return nil, errors.New("standard input cannot be combined with other paths")
		}
	}
	if args[0] != stdinName {
		return hc.Hash(ctx, args)
	}

	if hc.ShardSize() > 0 {
		return nil, errors.New("standard input cannot be sharded")
	}
	d, err := hc.HashReader(ctx, stdin)
	if err != nil {
		return nil, err
	}
	item := manifest.NewFileManifestItem(stdinName, d)
	return manifest.NewManifest(stdinName, []manifest.ManifestItem{item}, hc.SerializationType()), nil
}

type jsonResource struct {
	Identifier string `json:"identifier"`
	Algorithm  string `json:"algorithm"`
	Digest     string `json:"digest"`
}

type jsonManifest struct {
	Name          string         `json:"name,omitempty"`
	Serialization map[string]any `json:"serialization"`
	Resources     []jsonResource `json:"resources"`
}

func writeManifest(w io.Writer, m *manifest.Manifest, format string) error {
	switch format {
	case options.FormatText:
		return manifest.WriteChecksums(w, m)

	case options.FormatJSON:
		out := jsonManifest{
			Name:          m.Name(),
			Serialization: m.SerializationParameters(),
			Resources:     []jsonResource{},
		}
		for _, rd := range m.ResourceDescriptors() {
			out.Resources = append(out.Resources, jsonResource{
				Identifier: rd.Identifier,
				Algorithm:  rd.Digest.Algorithm(),
				Digest:     rd.Digest.Hex(),
			})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)

	case options.FormatInToto:
		data, err := manifest.MarshalStatement(m)
		if err != nil {
			return err
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("write statement: %w", err)
		}
		return nil

	case options.FormatETag:
		return writeETags(w, m)

	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// writeETags prints one "<hex>-<parts>  <path>" line per sharded file.
func writeETags(w io.Writer, m *manifest.Manifest) error {
	type part struct {
		start  int64
		digest digests.Digest
	}

	s := m.Serialization()
	parts := map[string][]part{}
	var paths []string
	for _, rd := range m.ResourceDescriptors() {
		item, err := s.NewItem(rd.Identifier, rd.Digest)
		if err != nil {
			return err
		}
		shard, ok := item.(*manifest.ShardedFileManifestItem)
		if !ok {
			return fmt.Errorf("%s is not a shard", rd.Identifier)
		}
		if _, seen := parts[shard.Path()]; !seen {
			paths = append(paths, shard.Path())
		}
		start, _ := shard.Range()
		parts[shard.Path()] = append(parts[shard.Path()], part{start: start, digest: rd.Digest})
	}

	for _, p := range paths {
		ps := parts[p]
		sort.Slice(ps, func(i, j int) bool { return ps[i].start < ps[j].start })

		ds := make([]digests.Digest, len(ps))
		for i, pt := range ps {
			ds[i] = pt.digest
		}
		combined, err := memory.CombineDigests(s.HashType(), ds)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s-%d  %s\n", combined.Hex(), len(ds), p); err != nil {
			return err
		}
	}
	return nil
}
