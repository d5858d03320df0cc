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

// Package logging is the leveled, structured logger used by the hashsum
// command and the hashing pipeline.
package logging

import (
	"fmt"
	"strings"
)

// Level is a log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError

	// LevelSilent suppresses all output.
	LevelSilent
)

var levelNames = map[Level]string{
	LevelDebug:  "debug",
	LevelInfo:   "info",
	LevelWarn:   "warn",
	LevelError:  "error",
	LevelSilent: "silent",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// ParseLevel accepts the names printed by Level.String plus a few aliases.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "silent", "none", "off":
		return LevelSilent, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// Format selects a Formatter.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// ParseFormat accepts "text" (or "plain") and "json".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "plain":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatText, fmt.Errorf("unknown log format %q", s)
	}
}

// Logger is a leveled printf-style logger carrying structured fields.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)

	// Enabled reports whether messages at level would be written.
	Enabled(level Level) bool

	// WithField returns a Logger that adds key=value to every entry.
	WithField(key string, value any) Logger

	// WithFields is WithField for several keys at once.
	WithFields(fields map[string]any) Logger
}

// EnsureLogger returns l, or a logger that discards everything when l is nil.
func EnsureLogger(l Logger) Logger {
	if l == nil {
		return Discard()
	}
	return l
}

// Discard returns a Logger that writes nothing.
func Discard() Logger {
	return discard{}
}

type discard struct{}

func (discard) Debug(string, ...any)               {}
func (discard) Info(string, ...any)                {}
func (discard) Warn(string, ...any)                {}
func (discard) Error(string, ...any)               {}
func (discard) Enabled(Level) bool                 { return false }
func (d discard) WithField(string, any) Logger     { return d }
func (d discard) WithFields(map[string]any) Logger { return d }
