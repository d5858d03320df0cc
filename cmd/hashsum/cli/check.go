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
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/karanabe/crypto/cmd/hashsum/cli/options"
	"github.com/karanabe/crypto/pkg/config"
	hashengines "github.com/karanabe/crypto/pkg/hashing/engines"
	"github.com/karanabe/crypto/pkg/manifest"
	"github.com/karanabe/crypto/pkg/tracing"
)

// Check returns the `check` command.
func Check() *cobra.Command {
	o := &options.CheckOptions{}

	long := `Read digests from CHECKSUM_FILE and verify them.

CHECKSUM_FILE is either a list in the md5sum/sha1sum layout, whose digests
must match --algorithm, or an in-toto Statement written by
"hashsum sum --format in-toto", which names its own algorithm. With no
CHECKSUM_FILE, or when it is -, standard input is read.

The exit code is 1 when any file fails the check and 2 when the list cannot
be read.`

	cmd := &cobra.Command{
		Use:   "check [OPTIONS] [CHECKSUM_FILE]",
		Short: "Verify files against a checksum list or in-toto statement.",
		Long:  long,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := stdinName
			if len(args) == 1 {
				source = args[0]
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			attrs := map[string]any{
				"hashsum.algorithm":      o.Algorithm,
				"hashsum.source":         source,
				"hashsum.ignore_missing": o.IgnoreMissing,
			}
			return withExitCode(tracing.Run(ctx, "Check", attrs, func(ctx context.Context) error {
				return runCheck(ctx, cmd, o, source)
			}))
		},
	}

	o.AddFlags(cmd)
	return cmd
}

func runCheck(ctx context.Context, cmd *cobra.Command, o *options.CheckOptions, source string) error {
	logger := newLogger(cmd)

	data, err := readSource(cmd.InOrStdin(), source)
	if err != nil {
		return err
	}
	expected, err := loadExpected(data, source, o.Algorithm)
	if err != nil {
		return err
	}

	hc := config.HashingConfigFor(expected.Serialization()).
		SetChunkSize(o.ChunkSize).
		SetWorkers(o.Workers).
		SetLogger(logger)
	report, checkErr := config.NewCheckConfig().
		SetHashingConfig(hc).
		SetIgnoreMissing(o.IgnoreMissing).
		SetLogger(logger).
		Check(ctx, expected)
	if report == nil {
		return checkErr
	}

	if !o.Status {
		if err := printReport(cmd.OutOrStdout(), expected, report, o.Quiet); err != nil {
			return err
		}
		printWarnings(cmd.ErrOrStderr(), report)
	}
	return checkErr
}

func readSource(stdin io.Reader, source string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if source == stdinName {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, manifest.NewCheckError(manifest.ErrKindIO, source, "cannot read checksum file", err)
	}
	return data, nil
}

// loadExpected parses data as an in-toto statement when it looks like JSON
// and as a checksum list otherwise.
func loadExpected(data []byte, source, algorithm string) (*manifest.Manifest, error) {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		return manifest.UnmarshalStatement(data)
	}

	engine, err := hashengines.Create(algorithm)
	if err != nil {
		return nil, manifest.NewCheckError(manifest.ErrKindInvalidFormat, "", "unknown algorithm", err)
	}
	entries, err := manifest.ParseChecksums(bytes.NewReader(data), algorithm, engine.DigestSize())
	if err != nil {
		return nil, err
	}
	return manifest.ManifestFromChecksums(source, entries, manifest.NewFileSerialization(algorithm, true, nil))
}

func printReport(w io.Writer, expected *manifest.Manifest, report *config.CheckReport, quiet bool) error {
	status := make(map[string]string)
	for _, id := range report.Missing {
		status[id] = "FAILED open or read"
	}
	for _, m := range report.Mismatches {
		status[m.Identifier] = "FAILED"
	}
	skipped := make(map[string]bool, len(report.Skipped))
	for _, id := range report.Skipped {
		skipped[id] = true
	}

	for _, rd := range expected.ResourceDescriptors() {
		s, failed := status[rd.Identifier]
		switch {
		case skipped[rd.Identifier]:
			continue
		case !failed && quiet:
			continue
		case !failed:
			s = "OK"
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", rd.Identifier, s); err != nil {
			return err
		}
	}
	for _, id := range report.Extra {
		if _, err := fmt.Fprintf(w, "%s: FAILED unexpected shard\n", id); err != nil {
			return err
		}
	}
	return nil
}

func printWarnings(w io.Writer, report *config.CheckReport) {
	if n := len(report.Missing); n > 0 {
		_, _ = fmt.Fprintf(w, "WARNING: %d listed %s could not be read\n", n, plural(n, "file", "files"))
	}
	if n := len(report.Mismatches) + len(report.Extra); n > 0 {
		_, _ = fmt.Fprintf(w, "WARNING: %d computed %s did NOT match\n", n, plural(n, "checksum", "checksums"))
	}
	if report.Verified == 0 && len(report.Skipped) > 0 {
		_, _ = fmt.Fprintln(w, "WARNING: no file was verified")
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
