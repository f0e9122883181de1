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
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName is the name of the tracer handed out by [Tracer.Tracer].
const InstrumentationName = "rivaas.dev/entity"

// Provider selects the span exporter.
type Provider string

// Available providers.
const (
	NoopProvider     Provider = "noop"
	StdoutProvider   Provider = "stdout"
	OTLPHTTPProvider Provider = "otlp-http"
)

// Static errors.
var (
	ErrUnknownProvider   = errors.New("unknown tracing provider")
	ErrInvalidSampleRate = errors.New("sample rate must be between 0 and 1")
	ErrMissingEndpoint   = errors.New("OTLP provider requires an endpoint")
)

// ParseProvider parses a provider name. Empty means [NoopProvider].
func ParseProvider(s string) (Provider, error) {
	switch p := Provider(strings.ToLower(strings.TrimSpace(s))); p {
	case "", NoopProvider:
		return NoopProvider, nil
	case StdoutProvider, OTLPHTTPProvider:
		return p, nil
	case "otlp":
		return OTLPHTTPProvider, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, s)
	}
}

// Tracer owns a tracer provider and the tracer derived from it.
type Tracer struct {
	provider       Provider
	serviceName    string
	serviceVersion string
	sampleRate     float64
	endpoint       string
	output         io.Writer
	registerGlobal bool
	logger         *slog.Logger

	customProvider trace.TracerProvider
	sdkProvider    *sdktrace.TracerProvider
	tracer         trace.Tracer
}

// New creates a [Tracer].
func New(opts ...Option) (*Tracer, error) {
	t := &Tracer{
		provider:       NoopProvider,
		serviceName:    "entityd",
		serviceVersion: "unknown",
		sampleRate:     1.0,
		output:         os.Stdout,
		logger:         slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(t)
	}

	if t.sampleRate < 0 || t.sampleRate > 1 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, t.sampleRate)
	}
	if err := t.init(); err != nil {
		return nil, err
	}

	return t, nil
}

// MustNew creates a [Tracer] or panics.
func MustNew(opts ...Option) *Tracer {
	t, err := New(opts...)
	if err != nil {
		panic("tracing.MustNew: " + err.Error())
	}

	return t
}

func (t *Tracer) init() error {
	if t.customProvider != nil {
		t.tracer = t.customProvider.Tracer(InstrumentationName)
		if t.registerGlobal {
			otel.SetTracerProvider(t.customProvider)
		}

		return nil
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", t.serviceName),
			attribute.String("service.version", t.serviceVersion),
		)),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(t.sampleRate))),
	}

	switch t.provider {
	case NoopProvider:
	case StdoutProvider:
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(t.output), stdouttrace.WithPrettyPrint())
		if err != nil {
			return fmt.Errorf("failed to create stdout exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
	case OTLPHTTPProvider:
		if t.endpoint == "" {
			return ErrMissingEndpoint
		}
		exporter, err := otlptracehttp.New(context.Background(), otlpOptions(t.endpoint)...)
		if err != nil {
			return fmt.Errorf("failed to create OTLP HTTP exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProvider, t.provider)
	}

	t.sdkProvider = sdktrace.NewTracerProvider(opts...)
	t.tracer = t.sdkProvider.Tracer(InstrumentationName)
	if t.registerGlobal {
		otel.SetTracerProvider(t.sdkProvider)
	}
	t.logger.Info("tracing initialized", "provider", string(t.provider), "service", t.serviceName)

	return nil
}

// otlpOptions accepts either host:port or a full URL. An http scheme
// disables TLS.
func otlpOptions(endpoint string) []otlptracehttp.Option {
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return []otlptracehttp.Option{otlptracehttp.WithEndpoint(endpoint)}
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(u.Host)}
	if u.Path != "" && u.Path != "/" {
		opts = append(opts, otlptracehttp.WithURLPath(u.Path))
	}
	if u.Scheme == "http" {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	return opts
}

// Tracer returns the tracer for decode spans.
func (t *Tracer) Tracer() trace.Tracer {
	return t.tracer
}

// Provider returns the configured provider.
func (t *Tracer) Provider() Provider {
	return t.provider
}

// Shutdown flushes pending spans. Custom providers are left to their owner.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t == nil || t.sdkProvider == nil {
		return nil
	}
	if err := t.sdkProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("tracer provider shutdown: %w", err)
	}

	return nil
}

// TraceID returns the current trace ID, or "" without a valid span.
func TraceID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return ""
	}

	return sc.TraceID().String()
}

// SpanID returns the current span ID, or "" without a valid span.
func SpanID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return ""
	}

	return sc.SpanID().String()
}
