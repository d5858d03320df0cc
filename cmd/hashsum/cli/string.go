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
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/karanabe/crypto/cmd/hashsum/cli/options"
	hashengines "github.com/karanabe/crypto/pkg/hashing/engines"
)

// String returns the `string` command, which hashes its arguments.
func String() *cobra.Command {
	o := &options.AlgorithmFlags{}

	cmd := &cobra.Command{
		Use:   "string [OPTIONS] TEXT...",
		Short: "Print the digest of each argument.",
		Long: `Print the digest of each TEXT argument, in the BSD tagged form
ALGORITHM ("TEXT") = DIGEST.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, text := range args {
				engine, err := hashengines.Create(o.Algorithm)
				if err != nil {
					return err
				}
				engine.Update([]byte(text))
				d, err := engine.Compute()
				if err != nil {
					return err
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) = %s\n",
					strings.ToUpper(o.Algorithm), strconv.Quote(text), d.Hex()); err != nil {
					return err
				}
			}
			return nil
		},
	}

	o.AddFlags(cmd)
	return cmd
}
