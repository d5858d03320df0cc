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
)

// ErrorKind classifies a CheckError.
type ErrorKind int

const (
	ErrKindUnknown ErrorKind = iota

	// ErrKindMismatch means a recomputed digest differs from the recorded one.
	ErrKindMismatch

	// ErrKindMissingFile means a listed file could not be found.
	ErrKindMissingFile

	// ErrKindInvalidFormat means a checksum list or statement is malformed.
	ErrKindInvalidFormat

	// ErrKindIO covers read and write failures.
	ErrKindIO
)

func (k ErrorKind) String() string {
	switch k {
	case ErrKindMismatch:
		return "Mismatch"
	case ErrKindMissingFile:
		return "MissingFile"
	case ErrKindInvalidFormat:
		return "InvalidFormat"
	case ErrKindIO:
		return "IOError"
	default:
		return "UnknownError"
	}
}

// CheckError describes why a set of checksums failed to verify.
//
//	var ce *manifest.CheckError
//	if errors.As(err, &ce) && ce.Kind == manifest.ErrKindMismatch {
//		...
//	}
type CheckError struct {
	Kind ErrorKind

	// Path is the file or "file:line" location involved, if any.
	Path string

	Message string
	Cause   error
}

// NewCheckError returns a CheckError. path and cause may be empty.
func NewCheckError(kind ErrorKind, path, message string, cause error) *CheckError {
	return &CheckError{Kind: kind, Path: path, Message: message, Cause: cause}
}

func (e *CheckError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Path != "" {
		msg += " (" + e.Path + ")"
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *CheckError) Unwrap() error {
	return e.Cause
}

// IsKind reports whether err wraps a CheckError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ce *CheckError
	return errors.As(err, &ce) && ce.Kind == kind
}
