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

// Package tracing configures the OpenTelemetry tracer used by the decode
// dispatcher and the demo server.
//
// Three providers are supported:
//
//   - [NoopProvider]: spans are created but never exported (default)
//   - [StdoutProvider]: spans are pretty-printed to an io.Writer
//   - [OTLPHTTPProvider]: spans are exported over OTLP/HTTP
//
// Example:
//
//	t, err := tracing.New(
//	    tracing.WithServiceName("entityd"),
//	    tracing.WithOTLPHTTP("http://localhost:4318"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer t.Shutdown(context.Background())
//
//	d := dispatch.MustNew(dispatch.WithTracer(t.Tracer()))
package tracing
