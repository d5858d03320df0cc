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

// Package cli wires the hashsum commands.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	cobracompletefig "github.com/withfig/autocomplete-tools/integrations/cobra"
	"sigs.k8s.io/release-utils/version"

	"github.com/karanabe/crypto/cmd/hashsum/cli/options"
	"github.com/karanabe/crypto/pkg/logging"
)

var (
	ro = &options.RootOptions{}
)

// New returns the root command.
func New() *cobra.Command {
	var out *os.File

	cmd := &cobra.Command{
		Use:               "hashsum",
		Short:             "Compute and check MD5, SHA-1 and other message digests.",
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := ro.Validate(); err != nil {
				return err
			}
			if ro.OutputFile != "" {
				var err error
				out, err = os.Create(ro.OutputFile)
				if err != nil {
					return fmt.Errorf("error creating output file %s: %w", ro.OutputFile, err)
				}
				cmd.SetOut(out)
			}
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if out == nil {
				return nil
			}
			err := out.Close()
			out = nil
			return err
		},
	}
	ro.AddFlags(cmd)

	cmd.AddCommand(Sum())
	cmd.AddCommand(String())
	cmd.AddCommand(Check())
	cmd.AddCommand(Algorithms())
	cmd.AddCommand(version.WithFont("starwars"))
	cmd.AddCommand(cobracompletefig.CreateCompletionSpecCommand())
	return cmd
}

// commandContext applies --timeout to the command context.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if ro.Timeout > 0 {
		return context.WithTimeout(ctx, ro.Timeout)
	}
	return context.WithCancel(ctx)
}

func newLogger(cmd *cobra.Command) logging.Logger {
	return ro.NewLogger(cmd.ErrOrStderr())
}
