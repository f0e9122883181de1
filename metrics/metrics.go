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

package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

const meterName = "rivaas.dev/entity"

var (
	// DefaultDurationBuckets are histogram boundaries for decode duration in seconds.
	DefaultDurationBuckets = []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}

	// DefaultSizeBuckets are histogram boundaries for body size in bytes.
	// Covers 100B to 10MB.
	DefaultSizeBuckets = []float64{100, 1000, 10000, 100000, 1000000, 10000000}
)

var (
	// ErrNoHandler is returned by [Recorder.Handler] for providers other
	// than Prometheus.
	ErrNoHandler = errors.New("metrics handler is only available with the prometheus provider")

	// ErrUnknownProvider is returned for an unsupported [Provider].
	ErrUnknownProvider = errors.New("unsupported metrics provider")

	// ErrNilMeterProvider is returned when [WithMeterProvider] receives nil.
	ErrNilMeterProvider = errors.New("custom meter provider is nil")
)

// Provider represents the available metrics providers.
type Provider string

const (
	// PrometheusProvider uses the Prometheus exporter (default).
	PrometheusProvider Provider = "prometheus"
	// OTLPProvider uses the OTLP HTTP exporter.
	OTLPProvider Provider = "otlp"
	// StdoutProvider uses the stdout exporter.
	StdoutProvider Provider = "stdout"
)

// ParseProvider maps a configuration string to a [Provider].
func ParseProvider(s string) (Provider, error) {
	switch p := Provider(s); p {
	case PrometheusProvider, OTLPProvider, StdoutProvider:
		return p, nil
	case "":
		return PrometheusProvider, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, s)
	}
}

// Recorder holds the decode instruments. All methods are safe for
// concurrent use and for use on a nil receiver.
//
// By default the global OpenTelemetry meter provider is left untouched.
type Recorder struct {
	provider       Provider
	otlpEndpoint   string
	exportInterval time.Duration
	serviceName    string
	serviceVersion string
	registerGlobal bool
	logger         *slog.Logger

	durationBuckets []float64
	sizeBuckets     []float64

	meterProvider metric.MeterProvider
	sdkProvider   *sdkmetric.MeterProvider
	custom        bool
	handler       http.Handler

	decodes         metric.Int64Counter
	duration        metric.Float64Histogram
	bodySize        metric.Int64Histogram
	parametersBound metric.Int64Counter
}

// New creates a [Recorder] and initializes its provider.
func New(opts ...Option) (*Recorder, error) {
	r := &Recorder{
		provider:        PrometheusProvider,
		exportInterval:  30 * time.Second,
		serviceName:     "entityd",
		serviceVersion:  "unknown",
		logger:          slog.New(slog.DiscardHandler),
		durationBuckets: DefaultDurationBuckets,
		sizeBuckets:     DefaultSizeBuckets,
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := r.initProvider(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}
	if err := r.initInstruments(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	return r, nil
}

// MustNew creates a [Recorder] or panics.
func MustNew(opts ...Option) *Recorder {
	r, err := New(opts...)
	if err != nil {
		panic("metrics initialization failed: " + err.Error())
	}

	return r
}

func (r *Recorder) initProvider() error {
	if r.custom {
		if r.meterProvider == nil {
			return ErrNilMeterProvider
		}
		r.logger.Debug("using custom meter provider")

		return nil
	}

	var reader sdkmetric.Reader
	switch r.provider {
	case PrometheusProvider:
		registry := promclient.NewRegistry()
		exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
		if err != nil {
			return fmt.Errorf("failed to create Prometheus exporter: %w", err)
		}
		reader = exporter
		r.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	case OTLPProvider:
		exporter, err := otlpmetrichttp.New(context.Background(), otlpOptions(r.otlpEndpoint)...)
		if err != nil {
			return fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
		reader = sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(r.exportInterval))

	case StdoutProvider:
		exporter, err := stdoutmetric.New()
		if err != nil {
			return fmt.Errorf("failed to create stdout exporter: %w", err)
		}
		reader = sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(r.exportInterval))

	default:
		return fmt.Errorf("%w: %q", ErrUnknownProvider, r.provider)
	}

	r.sdkProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(reader),
		sdkmetric.WithResource(resource.NewSchemaless(
			attribute.String("service.name", r.serviceName),
			attribute.String("service.version", r.serviceVersion),
		)),
	)
	r.meterProvider = r.sdkProvider

	if r.registerGlobal {
		otel.SetMeterProvider(r.meterProvider)
	}
	r.logger.Debug("metrics provider initialized", "provider", string(r.provider))

	return nil
}

// otlpOptions turns an endpoint such as "http://collector:4318" into
// exporter options. Plain http endpoints are sent insecurely.
func otlpOptions(endpoint string) []otlpmetrichttp.Option {
	if endpoint == "" {
		return nil
	}

	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(endpoint)}
	}

	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(u.Host)}
	if u.Scheme == "http" {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	return opts
}

func (r *Recorder) initInstruments() error {
	meter := r.meterProvider.Meter(meterName)

	var err error
	if r.decodes, err = meter.Int64Counter(
		"entity_decodes_total",
		metric.WithDescription("Total number of entity body decodes"),
	); err != nil {
		return fmt.Errorf("failed to create decode counter: %w", err)
	}

	if r.duration, err = meter.Float64Histogram(
		"entity_decode_duration_seconds",
		metric.WithDescription("Duration of entity body decodes in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(r.durationBuckets...),
	); err != nil {
		return fmt.Errorf("failed to create decode duration histogram: %w", err)
	}

	if r.bodySize, err = meter.Int64Histogram(
		"entity_body_size_bytes",
		metric.WithDescription("Size of decoded entity bodies in bytes"),
		metric.WithUnit("By"),
		metric.WithExplicitBucketBoundaries(r.sizeBuckets...),
	); err != nil {
		return fmt.Errorf("failed to create body size histogram: %w", err)
	}

	if r.parametersBound, err = meter.Int64Counter(
		"entity_parameters_bound_total",
		metric.WithDescription("Total number of bound parameters by kind"),
	); err != nil {
		return fmt.Errorf("failed to create parameter counter: %w", err)
	}

	return nil
}

// Handler returns the Prometheus scrape handler.
func (r *Recorder) Handler() (http.Handler, error) {
	if r == nil || r.handler == nil {
		return nil, ErrNoHandler
	}

	return r.handler, nil
}

// Provider returns the configured provider.
func (r *Recorder) Provider() Provider {
	return r.provider
}

// ForceFlush exports pending measurements of push-based providers.
func (r *Recorder) ForceFlush(ctx context.Context) error {
	if r == nil || r.sdkProvider == nil {
		return nil
	}

	return r.sdkProvider.ForceFlush(ctx)
}

// Shutdown flushes and stops the meter provider the recorder created.
// Custom providers are left to their owner.
func (r *Recorder) Shutdown(ctx context.Context) error {
	if r == nil || r.sdkProvider == nil {
		return nil
	}
	if err := r.sdkProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("metrics shutdown: %w", err)
	}

	return nil
}
