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
	"strings"

	"github.com/spf13/cobra"

	"github.com/karanabe/crypto/pkg/config"
	hashengines "github.com/karanabe/crypto/pkg/hashing/engines"
)

// AlgorithmFlags selects the hash engine.
type AlgorithmFlags struct {
	Algorithm string
}

func (o *AlgorithmFlags) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.Algorithm, "algorithm", "a", EnvDefault("ALGORITHM", config.DefaultAlgorithm),
		fmt.Sprintf("hash algorithm (%s)", strings.Join(hashengines.SupportedAlgorithms(), ", ")))
	_ = cmd.RegisterFlagCompletionFunc("algorithm", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return hashengines.SupportedAlgorithms(), cobra.ShellCompDirectiveNoFileComp
	})
}

// ReadFlags tune how files are read and hashed.
type ReadFlags struct {
	ChunkSize int
	Workers   int
}

func (o *ReadFlags) AddFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&o.ChunkSize, "chunk-size", config.DefaultChunkSize,
		"read buffer size in bytes, 0 reads each file at once")
	cmd.Flags().IntVar(&o.Workers, "workers", 1,
		"number of files or shards hashed concurrently")
}

// PathFlags control which files a directory walk picks up.
type PathFlags struct {
	IgnorePaths    []string
	IgnoreGitPaths bool
	AllowSymlinks  bool
}

func (o *PathFlags) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&o.IgnorePaths, "ignore-paths", nil,
		"paths or globs to skip inside directories")
	cmd.Flags().BoolVar(&o.IgnoreGitPaths, "ignore-git-paths", false,
		"skip git metadata (.git, .gitignore, ...) inside directories")
	cmd.Flags().BoolVar(&o.AllowSymlinks, "allow-symlinks", false,
		"follow symlinks to regular files")
}
