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

package options

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/karanabe/crypto/pkg/config"
)

// Output formats of the sum command.
const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatInToto = "in-toto"
	FormatETag   = "etag"
)

// ValidSumFormats lists the accepted --format values.
var ValidSumFormats = []string{FormatText, FormatJSON, FormatInToto, FormatETag}

// SumOptions are the flags of `hashsum sum`.
type SumOptions struct {
	AlgorithmFlags
	ReadFlags
	PathFlags
	Format    string
	ShardSize int64
}

func (o *SumOptions) AddFlags(cmd *cobra.Command) {
	AddAllFlags(cmd, &o.AlgorithmFlags, &o.ReadFlags, &o.PathFlags)

	cmd.Flags().StringVarP(&o.Format, "format", "f", FormatText,
		"output format (text, json, in-toto, etag)")
	cmd.Flags().Int64Var(&o.ShardSize, "shard-size", 0,
		"hash files in shards of this many bytes, 0 hashes whole files")
}

func (o *SumOptions) Validate() error {
	if o.Format == FormatETag && o.ShardSize <= 0 {
		return fmt.Errorf("--format %s needs a positive --shard-size", FormatETag)
	}
	for _, f := range ValidSumFormats {
		if o.Format == f {
			return nil
		}
	}
	return fmt.Errorf("unknown output format %q", o.Format)
}

// HashingConfig maps the flags onto a hashing configuration.
func (o *SumOptions) HashingConfig() *config.HashingConfig {
	return config.NewHashingConfig().
		UseShardSerialization(o.Algorithm, o.ShardSize, o.AllowSymlinks, nil).
		SetIgnoredPaths(o.IgnorePaths, o.IgnoreGitPaths).
		SetChunkSize(o.ChunkSize).
		SetWorkers(o.Workers)
}

// CheckOptions are the flags of `hashsum check`.
type CheckOptions struct {
	AlgorithmFlags
	ReadFlags
	Quiet         bool
	Status        bool
	IgnoreMissing bool
}

func (o *CheckOptions) AddFlags(cmd *cobra.Command) {
	AddAllFlags(cmd, &o.AlgorithmFlags, &o.ReadFlags)

	cmd.Flags().BoolVarP(&o.Quiet, "quiet", "q", false,
		"do not print OK for each verified file")
	cmd.Flags().BoolVar(&o.Status, "status", false,
		"print nothing, the exit code reports success")
	cmd.Flags().BoolVar(&o.IgnoreMissing, "ignore-missing", false,
		"do not fail or report status for missing files")
}
