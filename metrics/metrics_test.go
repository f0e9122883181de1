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

//go:build !integration

package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestRecorder_RecordDecode(t *testing.T) {
	t.Parallel()

	r, reader := TestingRecorder(t)
	ctx := context.Background()

	r.RecordDecode(ctx, Decode{MediaType: "multipart/form-data", Duration: 2 * time.Millisecond, BodySize: 512})
	r.RecordDecode(ctx, Decode{MediaType: "multipart/form-data", Outcome: "parameter_count_mismatch", BodySize: -1})
	r.RecordParameterBound(ctx, "string")
	r.RecordParameterBound(ctx, "string")

	got := Collect(t, reader)

	decodes, ok := got["entity_decodes_total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, decodes.DataPoints, 2)
	for _, dp := range decodes.DataPoints {
		outcome, _ := dp.Attributes.Value(attribute.Key("outcome"))
		assert.Contains(t, []string{"ok", "parameter_count_mismatch"}, outcome.AsString())
		assert.EqualValues(t, 1, dp.Value)
	}

	sizes, ok := got["entity_body_size_bytes"].Data.(metricdata.Histogram[int64])
	require.True(t, ok)
	require.Len(t, sizes.DataPoints, 1)
	assert.EqualValues(t, 1, sizes.DataPoints[0].Count)
	assert.EqualValues(t, 512, sizes.DataPoints[0].Sum)

	durations, ok := got["entity_decode_duration_seconds"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	assert.Len(t, durations.DataPoints, 2)

	bound, ok := got["entity_parameters_bound_total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, bound.DataPoints, 1)
	assert.EqualValues(t, 2, bound.DataPoints[0].Value)
}

func TestRecorder_Nil(t *testing.T) {
	t.Parallel()

	var r *Recorder
	assert.NotPanics(t, func() {
		r.RecordDecode(context.Background(), Decode{})
		r.RecordParameterBound(context.Background(), "int")
	})
	_, err := r.Handler()
	require.ErrorIs(t, err, ErrNoHandler)
	require.NoError(t, r.Shutdown(context.Background()))
	require.NoError(t, r.ForceFlush(context.Background()))
}

func TestRecorder_Prometheus(t *testing.T) {
	t.Parallel()

	r, err := New(WithPrometheus(), WithServiceName("entityd-test"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Shutdown(context.Background()) })

	r.RecordDecode(context.Background(), Decode{MediaType: "application/json", Duration: time.Millisecond, BodySize: 10})

	h, err := r.Handler()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "entity_decodes_total")
	assert.Contains(t, string(body), `media_type="application/json"`)
}

func TestRecorder_Stdout(t *testing.T) {
	t.Parallel()

	r, err := New(WithStdout(), WithExportInterval(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, StdoutProvider, r.Provider())

	_, err = r.Handler()
	require.ErrorIs(t, err, ErrNoHandler)
	require.NoError(t, r.Shutdown(context.Background()))
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	_, err := New(WithProvider("statsd"))
	require.ErrorIs(t, err, ErrUnknownProvider)

	_, err = New(WithMeterProvider(nil))
	require.ErrorIs(t, err, ErrNilMeterProvider)

	assert.Panics(t, func() { MustNew(WithProvider("statsd")) })
}

func TestParseProvider(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Provider
		wantErr bool
	}{
		{in: "", want: PrometheusProvider},
		{in: "prometheus", want: PrometheusProvider},
		{in: "otlp", want: OTLPProvider},
		{in: "stdout", want: StdoutProvider},
		{in: "statsd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseProvider(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownProvider)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOTLPOptions(t *testing.T) {
	t.Parallel()

	assert.Empty(t, otlpOptions(""))
	assert.Len(t, otlpOptions("http://collector:4318/v1/metrics"), 2)
	assert.Len(t, otlpOptions("https://collector:4318"), 1)
	assert.Len(t, otlpOptions("collector:4318"), 1)
}
