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

package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestCheckError(t *testing.T) {
	tests := []struct {
		name string
		err  *CheckError
		want string
	}{
		{"message only", NewCheckError(ErrKindMismatch, "", "digest differs", nil), "Mismatch: digest differs"},
		{"with path", NewCheckError(ErrKindMissingFile, "a.txt", "not found", nil), "MissingFile: not found (a.txt)"},
		{"with cause", NewCheckError(ErrKindIO, "", "read", errors.New("boom")), "IOError: read: boom"},
		{"everything", NewCheckError(ErrKindInvalidFormat, "line 3", "bad", errors.New("x")), "InvalidFormat: bad (line 3): x"},
		{"unknown kind", NewCheckError(ErrorKind(42), "", "huh", nil), "UnknownError: huh"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCheckError_Unwrap(t *testing.T) {
	err := fmt.Errorf("checking: %w", NewCheckError(ErrKindMissingFile, "a", "open", fs.ErrNotExist))

	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("errors.Is should see the cause")
	}
	if !IsKind(err, ErrKindMissingFile) {
		t.Error("IsKind should see through wrapping")
	}
	if IsKind(err, ErrKindMismatch) {
		t.Error("IsKind matched the wrong kind")
	}
	if IsKind(errors.New("plain"), ErrKindUnknown) {
		t.Error("IsKind matched a plain error")
	}
}
