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

package dispatch

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"rivaas.dev/entity/binding"
	"rivaas.dev/entity/bodyformat"
	"rivaas.dev/entity/metrics"
)

// Validator checks a bound complex value.
// *validation.Validator implements it.
type Validator interface {
	Validate(ctx context.Context, v any) error
}

// Option configures a [Dispatcher].
type Option func(*Dispatcher)

// WithRegistry sets the resolver registry. Default [bodyformat.Default].
func WithRegistry(r *bodyformat.Registry) Option {
	return func(d *Dispatcher) { d.registry = r }
}

// WithBinder sets the parameter binder. Default binding.MustNew().
func WithBinder(b *binding.Binder) Option {
	return func(d *Dispatcher) { d.binder = b }
}

// WithFallback sets the resolver used when no registered resolver supports
// the content type, instead of failing with an unsupported format error.
func WithFallback(r bodyformat.Resolver) Option {
	return func(d *Dispatcher) { d.fallback = r }
}

// WithLogger sets the logger. Default discards.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) { d.logger = logger }
}

// WithTracer records one "entity.decode" span per decode.
func WithTracer(tracer trace.Tracer) Option {
	return func(d *Dispatcher) { d.tracer = tracer }
}

// WithMetrics records decode metrics.
func WithMetrics(r *metrics.Recorder) Option {
	return func(d *Dispatcher) { d.metrics = r }
}

// WithValidator validates every bound complex value.
func WithValidator(v Validator) Option {
	return func(d *Dispatcher) { d.validator = v }
}

// WithMaxBodySize caps the number of body bytes read. Zero means no limit.
func WithMaxBodySize(n int64) Option {
	return func(d *Dispatcher) { d.maxBodySize = n }
}

// WithDefaultCharset sets the charset assumed when the Content-Type has
// none, e.g. "iso-8859-1". Default UTF-8.
func WithDefaultCharset(charset string) Option {
	return func(d *Dispatcher) { d.defaultCharset = charset }
}
