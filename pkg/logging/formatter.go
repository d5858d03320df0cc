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
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Entry is one log record handed to a Formatter.
type Entry struct {
	Time    time.Time
	Level   Level
	Message string
	Fields  map[string]any
}

// Formatter renders an Entry, including its trailing newline.
type Formatter interface {
	Format(e Entry) ([]byte, error)
}

// TextFormatter renders
//
//	[2006-01-02T15:04:05Z] [INFO] message key=value other=value
//
// with fields in key order.
type TextFormatter struct {
	TimeFormat string
	ShowLevel  bool
}

func (f *TextFormatter) Format(e Entry) ([]byte, error) {
	var sb strings.Builder

	if f.TimeFormat != "" {
		sb.WriteString(e.Time.Format(f.TimeFormat))
		sb.WriteByte(' ')
	}
	if f.ShowLevel {
		fmt.Fprintf(&sb, "[%s] ", strings.ToUpper(e.Level.String()))
	}
	sb.WriteString(e.Message)

	for _, k := range sortedKeys(e.Fields) {
		v := fmt.Sprint(e.Fields[k])
		if strings.ContainsAny(v, " \t\"=") {
			v = fmt.Sprintf("%q", v)
		}
		fmt.Fprintf(&sb, " %s=%s", k, v)
	}

	sb.WriteByte('\n')
	return []byte(sb.String()), nil
}

// JSONFormatter renders one JSON object per line. Fields are nested under
// "fields" so they cannot collide with the fixed keys.
type JSONFormatter struct {
	// TimeFormat defaults to time.RFC3339Nano.
	TimeFormat string
}

type jsonEntry struct {
	Time    string         `json:"time"`
	Level   string         `json:"level"`
	Message string         `json:"msg"`
	Fields  map[string]any `json:"fields,omitempty"`
}

func (f *JSONFormatter) Format(e Entry) ([]byte, error) {
	layout := f.TimeFormat
	if layout == "" {
		layout = time.RFC3339Nano
	}

	data, err := json.Marshal(jsonEntry{
		Time:    e.Time.Format(layout),
		Level:   e.Level.String(),
		Message: e.Message,
		Fields:  e.Fields,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal log entry: %w", err)
	}
	return append(data, '\n'), nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
