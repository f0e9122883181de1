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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"rivaas.dev/entity/binding"
	"rivaas.dev/entity/config"
	"rivaas.dev/entity/dispatch"
	apperrors "rivaas.dev/entity/errors"
	"rivaas.dev/entity/logging"
	"rivaas.dev/entity/metrics"
	"rivaas.dev/entity/tracing"
	"rivaas.dev/entity/validation"
)

// service holds the components built from [config.Settings].
type service struct {
	settings   *config.Settings
	logger     *slog.Logger
	metrics    *metrics.Recorder
	tracer     *tracing.Tracer
	dispatcher *dispatch.Dispatcher
	formatter  apperrors.Formatter
}

func newService(s *config.Settings, out io.Writer) (*service, error) {
	logger, err := newLogger(s, out)
	if err != nil {
		return nil, err
	}

	recorder, err := newMetrics(s, logger)
	if err != nil {
		return nil, err
	}

	tracer, err := newTracer(s, out, logger)
	if err != nil {
		return nil, errors.Join(err, recorder.Shutdown(context.Background()))
	}

	dispatcher, err := newDispatcher(s, logger, recorder, tracer)
	if err != nil {
		return nil, errors.Join(err, recorder.Shutdown(context.Background()), tracer.Shutdown(context.Background()))
	}

	return &service{
		settings:   s,
		logger:     logger,
		metrics:    recorder,
		tracer:     tracer,
		dispatcher: dispatcher,
		formatter:  apperrors.New(s.Errors.Format, s.Errors.BaseURL),
	}, nil
}

func newLogger(s *config.Settings, out io.Writer) (*slog.Logger, error) {
	level, err := logging.ParseLevel(s.Logging.Level)
	if err != nil {
		return nil, err
	}
	handler, err := logging.ParseHandlerType(s.Logging.Format)
	if err != nil {
		return nil, err
	}

	cfg, err := logging.New(
		logging.WithHandlerType(handler),
		logging.WithOutput(out),
		logging.WithLevel(level),
		logging.WithServiceName(s.Service.Name),
		logging.WithServiceVersion(s.Service.Version),
		logging.WithEnvironment(s.Service.Environment),
	)
	if err != nil {
		return nil, err
	}

	return cfg.Logger(), nil
}

func newMetrics(s *config.Settings, logger *slog.Logger) (*metrics.Recorder, error) {
	provider, err := metrics.ParseProvider(s.Metrics.Provider)
	if err != nil {
		return nil, err
	}

	opts := []metrics.Option{
		metrics.WithProvider(provider),
		metrics.WithServiceName(s.Service.Name),
		metrics.WithServiceVersion(s.Service.Version),
		metrics.WithLogger(logger),
	}
	if provider == metrics.OTLPProvider {
		opts = append(opts, metrics.WithOTLP(s.Metrics.Endpoint))
	}
	if s.Metrics.ExportInterval > 0 {
		opts = append(opts, metrics.WithExportInterval(s.Metrics.ExportInterval))
	}

	return metrics.New(opts...)
}

func newTracer(s *config.Settings, out io.Writer, logger *slog.Logger) (*tracing.Tracer, error) {
	provider, err := tracing.ParseProvider(s.Tracing.Provider)
	if err != nil {
		return nil, err
	}

	opts := []tracing.Option{
		tracing.WithServiceName(s.Service.Name),
		tracing.WithServiceVersion(s.Service.Version),
		tracing.WithSampleRate(s.Tracing.SampleRate),
		tracing.WithLogger(logger),
	}
	switch provider {
	case tracing.StdoutProvider:
		opts = append(opts, tracing.WithStdout(out))
	case tracing.OTLPHTTPProvider:
		opts = append(opts, tracing.WithOTLPHTTP(s.Tracing.Endpoint))
	default:
		opts = append(opts, tracing.WithNoop())
	}

	return tracing.New(opts...)
}

func newDispatcher(s *config.Settings, logger *slog.Logger, recorder *metrics.Recorder, tracer *tracing.Tracer) (*dispatch.Dispatcher, error) {
	base64Policy, err := binding.ParseBase64Policy(s.Decoding.Base64)
	if err != nil {
		return nil, err
	}
	entries, err := binding.ParseComplexEntryPolicy(s.Decoding.ComplexEntries)
	if err != nil {
		return nil, err
	}

	binder, err := binding.New(
		binding.WithBase64Policy(base64Policy),
		binding.WithComplexEntryPolicy(entries),
		binding.WithTimeLayouts(s.Decoding.TimeLayouts...),
	)
	if err != nil {
		return nil, err
	}

	registry, err := buildRegistry(s.Decoding)
	if err != nil {
		return nil, err
	}

	validator, err := validation.New(validation.WithFieldNameTag("json"))
	if err != nil {
		return nil, err
	}

	return dispatch.New(
		dispatch.WithRegistry(registry),
		dispatch.WithBinder(binder),
		dispatch.WithLogger(logger),
		dispatch.WithMetrics(recorder),
		dispatch.WithTracer(tracer.Tracer()),
		dispatch.WithValidator(validator),
		dispatch.WithMaxBodySize(s.Decoding.MaxBodySize),
		dispatch.WithDefaultCharset(s.Decoding.DefaultCharset),
	)
}

// shutdown flushes telemetry.
func (svc *service) shutdown(ctx context.Context) error {
	var errs []error
	if err := svc.metrics.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("metrics: %w", err))
	}
	if err := svc.tracer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("tracing: %w", err))
	}

	return errors.Join(errs...)
}
