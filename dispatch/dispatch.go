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
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/text/encoding"

	"rivaas.dev/entity/binding"
	"rivaas.dev/entity/bodyformat"
	"rivaas.dev/entity/mediatype"
	"rivaas.dev/entity/metrics"
)

// Dispatcher turns entity bodies into ordered handler arguments.
type Dispatcher struct {
	registry       *bodyformat.Registry
	binder         *binding.Binder
	fallback       bodyformat.Resolver
	logger         *slog.Logger
	tracer         trace.Tracer
	metrics        *metrics.Recorder
	validator      Validator
	maxBodySize    int64
	defaultCharset string
	encoding       encoding.Encoding
}

// New creates a [Dispatcher].
func New(opts ...Option) (*Dispatcher, error) {
	d := &Dispatcher{}
	for _, opt := range opts {
		opt(d)
	}

	if d.registry == nil {
		d.registry = bodyformat.Default()
	}
	if d.binder == nil {
		b, err := binding.New()
		if err != nil {
			return nil, err
		}
		d.binder = b
	}
	if d.logger == nil {
		d.logger = slog.New(slog.DiscardHandler)
	}
	if d.tracer == nil {
		d.tracer = noop.NewTracerProvider().Tracer("rivaas.dev/entity")
	}
	if d.maxBodySize < 0 {
		return nil, fmt.Errorf("%w: max body size %d is negative", ErrInvalidOption, d.maxBodySize)
	}
	if d.defaultCharset != "" {
		enc, err := mediatype.Lookup(d.defaultCharset)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidOption, err)
		}
		d.encoding = enc
	}

	return d, nil
}

// MustNew creates a [Dispatcher] or panics.
func MustNew(opts ...Option) *Dispatcher {
	d, err := New(opts...)
	if err != nil {
		panic("dispatch.MustNew: " + err.Error())
	}

	return d
}

// Registry returns the resolver registry.
func (d *Dispatcher) Registry() *bodyformat.Registry {
	return d.registry
}

// DecodeRequest decodes the body of r for sig.
func (d *Dispatcher) DecodeRequest(r *http.Request, sig binding.Signature) ([]any, error) {
	return d.Decode(r.Context(), sig, r.Body, r.Header.Get("Content-Type"), r.ContentLength)
}

// Decode reads body as contentType and returns one value per parameter of
// sig, in declaration order. length is the declared body length, or -1
// when unknown. body is always closed.
func (d *Dispatcher) Decode(ctx context.Context, sig binding.Signature, body io.ReadCloser, contentType string, length int64) ([]any, error) {
	start := time.Now()

	closer := &onceCloser{ReadCloser: body}
	if body == nil {
		closer.ReadCloser = http.NoBody
	}
	defer closer.Close()

	ctx, span := d.tracer.Start(ctx, "entity.decode", trace.WithAttributes(
		attribute.Int("entity.parameters", len(sig)),
		attribute.Int64("entity.length", length),
	))
	defer span.End()

	args, mediaType, err := d.decode(ctx, sig, closer, contentType, length)
	d.finish(ctx, span, decodeResult{
		mediaType: mediaType,
		length:    length,
		elapsed:   time.Since(start),
		bound:     len(args),
		err:       err,
	})
	if err != nil {
		return nil, err
	}

	return args, nil
}

func (d *Dispatcher) decode(ctx context.Context, sig binding.Signature, body *onceCloser, contentType string, length int64) ([]any, string, error) {
	if err := sig.Validate(); err != nil {
		return nil, "", err
	}

	if strings.TrimSpace(contentType) == "" {
		empty, err := body.empty(length)
		if err != nil {
			return nil, "", fmt.Errorf("reading body: %w", err)
		}
		if !empty {
			return nil, "", &ContentTypeError{Err: ErrMissingContentType}
		}

		return d.check(sig, binding.NewParameterSet(0))
	}

	ct, err := mediatype.Parse(contentType)
	if err != nil {
		return nil, "", &ContentTypeError{Value: contentType, Err: err}
	}

	resolver, err := d.registry.Lookup(ct)
	if err != nil {
		if d.fallback == nil {
			return nil, ct.MediaType, err
		}
		d.logger.DebugContext(ctx, "using fallback resolver", "media_type", ct.MediaType)
		resolver = d.fallback
	}

	set, err := resolver.Resolve(ctx, &bodyformat.Request{
		Signature:   sig,
		Body:        body,
		Length:      length,
		ContentType: ct,
		Encoding:    d.encoding,
		Limit:       d.maxBodySize,
	}, d.binder)
	if err != nil {
		return nil, ct.MediaType, err
	}

	for _, e := range set.Entries() {
		d.metrics.RecordParameterBound(ctx, e.Type.Kind().String())
		if d.validator == nil || !e.Type.IsComplex() {
			continue
		}
		if err := d.validator.Validate(ctx, e.Value); err != nil {
			return nil, ct.MediaType, fmt.Errorf("parameter %q: %w", e.Name, err)
		}
	}

	args, _, err := d.check(sig, set)

	return args, ct.MediaType, err
}

// check enforces one bound value per formal parameter.
func (d *Dispatcher) check(sig binding.Signature, set *binding.ParameterSet) ([]any, string, error) {
	if set.Len() != len(sig) {
		entries := set.Entries()
		bound := make([]string, len(entries))
		for i, e := range entries {
			bound[i] = e.Name
		}

		return nil, "", &ParameterCountError{Signature: sig, Bound: bound}
	}

	return set.Values(), "", nil
}

type decodeResult struct {
	mediaType string
	length    int64
	elapsed   time.Duration
	bound     int
	err       error
}

func (d *Dispatcher) finish(ctx context.Context, span trace.Span, res decodeResult) {
	outcome := metrics.OutcomeOK
	if res.err != nil {
		outcome = errorCode(res.err)
	}

	if res.mediaType != "" {
		span.SetAttributes(attribute.String("entity.media_type", res.mediaType))
	}
	d.metrics.RecordDecode(ctx, metrics.Decode{
		MediaType: res.mediaType,
		Outcome:   outcome,
		Duration:  res.elapsed,
		BodySize:  res.length,
	})

	if res.err == nil {
		span.SetStatus(codes.Ok, "")
		d.logger.DebugContext(ctx, "entity body decoded",
			"media_type", res.mediaType,
			"parameters", res.bound,
			"duration", res.elapsed,
		)

		return
	}

	span.RecordError(res.err)
	span.SetStatus(codes.Error, outcome)

	level := slog.LevelWarn
	if statusOf(res.err) >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	d.logger.Log(ctx, level, "entity body decode failed",
		"media_type", res.mediaType,
		"code", outcome,
		"error", res.err,
	)
}

func errorCode(err error) string {
	var coded interface{ Code() string }
	if errors.As(err, &coded) {
		return coded.Code()
	}

	return "error"
}

func statusOf(err error) int {
	var typed interface{ HTTPStatus() int }
	if errors.As(err, &typed) {
		return typed.HTTPStatus()
	}

	return http.StatusInternalServerError
}

// onceCloser closes the wrapped body at most once, so resolvers and the
// dispatcher can both close it.
type onceCloser struct {
	io.ReadCloser
	peeked *bufio.Reader
	once   sync.Once
	err    error
}

func (c *onceCloser) Read(p []byte) (int, error) {
	if c.peeked != nil {
		return c.peeked.Read(p)
	}

	return c.ReadCloser.Read(p)
}

func (c *onceCloser) Close() error {
	c.once.Do(func() { c.err = c.ReadCloser.Close() })
	return c.err
}

// empty reports whether the body has no bytes. An unknown length is
// resolved by peeking one byte, which later reads still return.
func (c *onceCloser) empty(length int64) (bool, error) {
	if length >= 0 {
		return length == 0, nil
	}

	if c.peeked == nil {
		c.peeked = bufio.NewReaderSize(c.ReadCloser, 16)
	}
	_, err := c.peeked.Peek(1)
	switch {
	case errors.Is(err, io.EOF):
		return true, nil
	case err != nil:
		return false, err
	default:
		return false, nil
	}
}
