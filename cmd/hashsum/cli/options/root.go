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

// Package options defines the flag groups of the hashsum CLI.
package options

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/karanabe/crypto/pkg/logging"
)

// EnvPrefix is the prefix of environment variables that supply flag defaults.
const EnvPrefix = "HASHSUM"

// DefaultTimeout bounds a single command.
const DefaultTimeout = 10 * time.Minute

var (
	// ValidLogLevels lists the accepted --log-level values.
	ValidLogLevels = []string{"debug", "info", "warn", "error", "silent"}

	// ValidLogFormats lists the accepted --log-format values.
	ValidLogFormats = []string{"text", "json"}
)

// FlagAdder is implemented by any flag group that can register itself on a
// command.
type FlagAdder interface {
	AddFlags(cmd *cobra.Command)
}

// AddAllFlags registers several flag groups at once.
func AddAllFlags(cmd *cobra.Command, groups ...FlagAdder) {
	for _, g := range groups {
		g.AddFlags(cmd)
	}
}

// RootOptions are the persistent flags shared by every subcommand.
type RootOptions struct {
	// OutputFile redirects command output from stdout to a file.
	OutputFile string
	LogLevel   string
	LogFormat  string
	// Timeout is the deadline for one command; 0 disables it.
	Timeout time.Duration
}

var _ FlagAdder = (*RootOptions)(nil)

func (o *RootOptions) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&o.OutputFile, "output-file", "",
		"write command output to a file instead of stdout")

	cmd.PersistentFlags().StringVar(&o.LogLevel, "log-level", EnvDefault("LOG_LEVEL", "warn"),
		fmt.Sprintf("minimum log level (%s)", strings.Join(ValidLogLevels, ", ")))

	cmd.PersistentFlags().StringVar(&o.LogFormat, "log-format", EnvDefault("LOG_FORMAT", "text"),
		fmt.Sprintf("log output format (%s)", strings.Join(ValidLogFormats, ", ")))

	cmd.PersistentFlags().DurationVarP(&o.Timeout, "timeout", "t", DefaultTimeout,
		"timeout for commands, 0 for none")
}

// Validate rejects unknown log levels and formats before any work starts.
func (o *RootOptions) Validate() error {
	if _, err := logging.ParseLevel(o.LogLevel); err != nil {
		return err
	}
	if _, err := logging.ParseFormat(o.LogFormat); err != nil {
		return err
	}
	if o.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative, got %s", o.Timeout)
	}
	return nil
}

// NewLogger builds the logger selected by the flags. Output goes to w, which
// is stderr in normal use.
func (o *RootOptions) NewLogger(w io.Writer) logging.Logger {
	level, _ := logging.ParseLevel(o.LogLevel)
	format, _ := logging.ParseFormat(o.LogFormat)
	return logging.New(logging.Options{
		Level:      level,
		Format:     format,
		Output:     w,
		TimeFormat: time.RFC3339,
	})
}

// EnvDefault returns $HASHSUM_<name> when set, else def.
func EnvDefault(name, def string) string {
	if v, ok := os.LookupEnv(EnvPrefix + "_" + name); ok && v != "" {
		return v
	}
	return def
}
