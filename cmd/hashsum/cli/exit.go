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
	"errors"

	"github.com/karanabe/crypto/pkg/manifest"
)

// Exit codes, following md5sum: 1 for a failed check, 2 for trouble reading
// or parsing the input.
const (
	ExitCheckFailed = 1
	ExitBadInput    = 2
)

// ExitError carries the process exit code for an error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

func (e *ExitError) ExitCode() int { return e.Code }

// withExitCode picks the exit code from the kind of a *manifest.CheckError.
func withExitCode(err error) error {
	if err == nil {
		return nil
	}
	var ce *manifest.CheckError
	if !errors.As(err, &ce) {
		return err
	}
	switch ce.Kind {
	case manifest.ErrKindMismatch, manifest.ErrKindMissingFile:
		return &ExitError{Code: ExitCheckFailed, Err: err}
	default:
		return &ExitError{Code: ExitBadInput, Err: err}
	}
}
