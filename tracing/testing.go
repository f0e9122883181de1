// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tracing

import (
	"context"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// TestingTracer returns a [Tracer] whose spans are captured by the returned
// recorder. The provider is shut down by t.Cleanup.
//
// Example:
//
//	tracer, spans := tracing.TestingTracer(t)
//	d := dispatch.MustNew(dispatch.WithTracer(tracer.Tracer()))
//	// ...
//	require.Len(t, spans.Ended(), 1)
func TestingTracer(t testing.TB, opts ...Option) (*Tracer, *tracetest.SpanRecorder) {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() {
		_ = provider.Shutdown(context.Background())
	})

	tr, err := New(append(opts, WithTracerProvider(provider))...)
	if err != nil {
		t.Fatalf("TestingTracer: %v", err)
	}

	return tr, recorder
}
