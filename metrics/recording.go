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
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OutcomeOK is the outcome of a successful decode. Failed decodes use the
// error's code, such as "parameter_count_mismatch".
const OutcomeOK = "ok"

// Decode describes one finished decode.
type Decode struct {
	MediaType string
	Outcome   string
	Duration  time.Duration
	BodySize  int64 // declared length; negative when unknown
}

// RecordDecode records one finished decode.
func (r *Recorder) RecordDecode(ctx context.Context, d Decode) {
	if r == nil {
		return
	}

	outcome := d.Outcome
	if outcome == "" {
		outcome = OutcomeOK
	}
	mt := attribute.String("media_type", d.MediaType)
	attrs := metric.WithAttributes(mt, attribute.String("outcome", outcome))

	r.decodes.Add(ctx, 1, attrs)
	r.duration.Record(ctx, d.Duration.Seconds(), attrs)
	if d.BodySize >= 0 {
		r.bodySize.Record(ctx, d.BodySize, metric.WithAttributes(mt))
	}
}

// RecordParameterBound counts one bound parameter of the given kind.
func (r *Recorder) RecordParameterBound(ctx context.Context, kind string) {
	if r == nil {
		return
	}

	r.parametersBound.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}
