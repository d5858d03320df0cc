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
	"encoding/hex"
	"errors"
	"fmt"

	intoto "github.com/in-toto/attestation/go/v1"
	"google.golang.org/protobuf/encoding/protojson"
	structpb "google.golang.org/protobuf/types/known/structpb"

	"github.com/karanabe/crypto/pkg/hashing/digests"
)

const (
	// StatementType is the in-toto v1 statement type.
	StatementType = "https://in-toto.io/Statement/v1"

	// PredicateType identifies a checksum manifest predicate.
	PredicateType = "https://github.com/karanabe/crypto/checksums/v1"
)

// MarshalStatement renders m as an in-toto v1 Statement. Each resource is a
// subject whose digest map is keyed by the engine algorithm name; the
// predicate carries the manifest name and serialization parameters.
func MarshalStatement(m *Manifest) ([]byte, error) {
	if m.Len() == 0 {
		return nil, errors.New("cannot build a statement for an empty manifest")
	}
	if m.Serialization() == nil {
		return nil, errors.New("manifest has no serialization type")
	}
	hashType := m.Serialization().HashType()

	descs := m.ResourceDescriptors()
	subjects := make([]*intoto.ResourceDescriptor, 0, len(descs))
	for _, rd := range descs {
		subjects = append(subjects, &intoto.ResourceDescriptor{
			Name:   rd.Identifier,
			Digest: map[string]string{hashType: rd.Digest.Hex()},
		})
	}

	predicate, err := structpb.NewStruct(map[string]any{
		"name":          m.Name(),
		"serialization": toProtoValue(m.SerializationParameters()),
	})
	if err != nil {
		return nil, fmt.Errorf("build predicate: %w", err)
	}

	statement := &intoto.Statement{
		Type:          StatementType,
		Subject:       subjects,
		PredicateType: PredicateType,
		Predicate:     predicate,
	}
	return protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(statement)
}

// UnmarshalStatement reads a statement produced by MarshalStatement back
// into a manifest.
func UnmarshalStatement(data []byte) (*Manifest, error) {
	statement := &intoto.Statement{}
	if err := (protojson.UnmarshalOptions{DiscardUnknown: true}).Unmarshal(data, statement); err != nil {
		return nil, NewCheckError(ErrKindInvalidFormat, "", "parse statement", err)
	}
	if err := statement.Validate(); err != nil {
		return nil, NewCheckError(ErrKindInvalidFormat, "", "invalid statement", err)
	}
	if statement.GetPredicateType() != PredicateType {
		return nil, NewCheckError(ErrKindInvalidFormat, "",
			fmt.Sprintf("predicate type is %q, want %q", statement.GetPredicateType(), PredicateType), nil)
	}

	predicate := statement.GetPredicate().AsMap()
	name, _ := predicate["name"].(string)
	args, ok := predicate["serialization"].(map[string]any)
	if !ok {
		return nil, NewCheckError(ErrKindInvalidFormat, "", "predicate has no serialization object", nil)
	}
	serialization, err := SerializationTypeFromArgs(args)
	if err != nil {
		return nil, NewCheckError(ErrKindInvalidFormat, "", "invalid serialization", err)
	}

	items := make([]ManifestItem, 0, len(statement.GetSubject()))
	for _, subject := range statement.GetSubject() {
		value, ok := subject.GetDigest()[serialization.HashType()]
		if !ok {
			return nil, NewCheckError(ErrKindInvalidFormat, subject.GetName(),
				fmt.Sprintf("subject has no %s digest", serialization.HashType()), nil)
		}
		raw, err := hex.DecodeString(value)
		if err != nil {
			return nil, NewCheckError(ErrKindInvalidFormat, subject.GetName(), "invalid digest", err)
		}
		item, err := serialization.NewItem(subject.GetName(), digests.NewDigest(serialization.DigestName(), raw))
		if err != nil {
			return nil, NewCheckError(ErrKindInvalidFormat, subject.GetName(), "invalid subject name", err)
		}
		items = append(items, item)
	}
	return NewManifest(name, items, serialization), nil
}

// toProtoValue rewrites typed slices and maps into the []any / map[string]any
// shapes structpb accepts.
func toProtoValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, e := range val {
			out[k] = toProtoValue(e)
		}
		return out
	case []string:
		out := make([]any, len(val))
		for i, s := range val {
			out[i] = s
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = toProtoValue(e)
		}
		return out
	default:
		return val
	}
}
