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

// Package metrics records entity decoding measurements with OpenTelemetry.
//
// A [Recorder] owns the decode instruments and, unless a custom meter
// provider is supplied, the SDK meter provider exporting them. Three
// built-in providers are available:
//
//   - [PrometheusProvider]: pull-based, served by [Recorder.Handler]
//   - [OTLPProvider]: pushes to an OTLP/HTTP collector
//   - [StdoutProvider]: prints to standard output, for development
//
// Instruments:
//
//	entity_decodes_total               counter    media_type, outcome
//	entity_decode_duration_seconds     histogram  media_type, outcome
//	entity_body_size_bytes             histogram  media_type
//	entity_parameters_bound_total      counter    kind
//
// A nil *Recorder is valid and records nothing.
//
//	rec := metrics.MustNew(metrics.WithPrometheus(), metrics.WithServiceName("entityd"))
//	defer rec.Shutdown(context.Background())
//
//	h, _ := rec.Handler()
//	mux.Handle("GET /metrics", h)
package metrics
