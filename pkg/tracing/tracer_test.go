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

package tracing

import (
	"context"
	"errors"
	"testing"
)

type recordedSpan struct {
	name  string
	attrs map[string]any
	err   error
	ended bool
}

func (s *recordedSpan) SetAttribute(k string, v any) { s.attrs[k] = v }
func (s *recordedSpan) RecordError(err error)        { s.err = err }
func (s *recordedSpan) End()                         { s.ended = true }

type recordingTracer struct {
	spans []*recordedSpan
}

func (t *recordingTracer) Start(ctx context.Context, name string) (context.Context, Span) {
	s := &recordedSpan{name: name, attrs: map[string]any{}}
	t.spans = append(t.spans, s)
	return ctx, s
}

func TestRun_Noop(t *testing.T) {
	SetTracer(nil)
	if Enabled() {
		t.Fatal("Enabled() = true with the no-op tracer")
	}

	called := false
	err := Run(context.Background(), "noop", nil, func(context.Context) error {
		called = true
		return nil
	})
	if err != nil || !called {
		t.Errorf("Run() = %v, called = %v", err, called)
	}
}

func TestRun_RecordsSpan(t *testing.T) {
	rec := &recordingTracer{}
	SetTracer(rec)
	t.Cleanup(func() { SetTracer(nil) })

	if !Enabled() {
		t.Fatal("Enabled() = false with a tracer installed")
	}

	wantErr := errors.New("read failed")
	err := Run(context.Background(), "hash.file", map[string]any{"path": "a.txt", "bytes": int64(3)},
		func(context.Context) error { return wantErr })

	if !errors.Is(err, wantErr) {
		t.Errorf("Run() error = %v, want %v", err, wantErr)
	}
	if len(rec.spans) != 1 {
		t.Fatalf("recorded %d spans, want 1", len(rec.spans))
	}
	s := rec.spans[0]
	if s.name != "hash.file" || !s.ended || s.err != wantErr {
		t.Errorf("span = %+v", s)
	}
	if s.attrs["path"] != "a.txt" || s.attrs["bytes"] != int64(3) {
		t.Errorf("attrs = %v", s.attrs)
	}
}

func TestRun_SuccessDoesNotRecordError(t *testing.T) {
	rec := &recordingTracer{}
	SetTracer(rec)
	t.Cleanup(func() { SetTracer(nil) })

	if err := Run(context.Background(), "ok", nil, func(context.Context) error { return nil }); err != nil {
		t.Fatal(err)
	}
	if rec.spans[0].err != nil {
		t.Errorf("recorded error %v on success", rec.spans[0].err)
	}
}

func TestNoopTracer(t *testing.T) {
	ctx := context.WithValue(context.Background(), struct{}{}, 1)
	got, span := NoopTracer{}.Start(ctx, "x")
	if got != ctx {
		t.Error("NoopTracer changed the context")
	}
	span.SetAttribute("k", "v")
	span.RecordError(errors.New("x"))
	span.End()
}
