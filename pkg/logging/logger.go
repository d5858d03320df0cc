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

package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var _ Logger = (*DefaultLogger)(nil)

// Options configures a DefaultLogger.
type Options struct {
	Level  Level
	Format Format

	// Formatter overrides Format when set.
	Formatter Formatter

	// Output defaults to os.Stderr; stdout carries digests.
	Output io.Writer

	// TimeFormat is used by both built-in formatters. An empty value omits
	// timestamps from text output.
	TimeFormat string
}

// DefaultLogger writes formatted entries to an io.Writer. Loggers derived
// through WithField share the writer and its lock.
type DefaultLogger struct {
	out       *syncWriter
	level     Level
	formatter Formatter
	fields    map[string]any
	now       func() time.Time
}

type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) write(p []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = s.w.Write(p)
}

// New returns a DefaultLogger configured by opts.
func New(opts Options) *DefaultLogger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	formatter := opts.Formatter
	if formatter == nil {
		if opts.Format == FormatJSON {
			formatter = &JSONFormatter{TimeFormat: opts.TimeFormat}
		} else {
			formatter = &TextFormatter{TimeFormat: opts.TimeFormat, ShowLevel: true}
		}
	}

	return &DefaultLogger{
		out:       &syncWriter{w: out},
		level:     opts.Level,
		formatter: formatter,
		now:       time.Now,
	}
}

// Level returns the minimum level written.
func (l *DefaultLogger) Level() Level {
	return l.level
}

func (l *DefaultLogger) Enabled(level Level) bool {
	return level >= l.level && level < LevelSilent
}

func (l *DefaultLogger) WithField(key string, value any) Logger {
	return l.WithFields(map[string]any{key: value})
}

func (l *DefaultLogger) WithFields(fields map[string]any) Logger {
	merged := make(map[string]any, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}

	child := *l
	child.fields = merged
	return &child
}

func (l *DefaultLogger) Debug(format string, args ...any) { l.log(LevelDebug, format, args) }
func (l *DefaultLogger) Info(format string, args ...any)  { l.log(LevelInfo, format, args) }
func (l *DefaultLogger) Warn(format string, args ...any)  { l.log(LevelWarn, format, args) }
func (l *DefaultLogger) Error(format string, args ...any) { l.log(LevelError, format, args) }

func (l *DefaultLogger) log(level Level, format string, args []any) {
	if !l.Enabled(level) {
		return
	}

	data, err := l.formatter.Format(Entry{
		Time:    l.now(),
		Level:   level,
		Message: fmt.Sprintf(format, args...),
		Fields:  l.fields,
	})
	if err != nil {
		data = []byte(fmt.Sprintf("logging: format entry: %v\n", err))
	}
	l.out.write(data)
}
