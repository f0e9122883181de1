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

// Package yaml resolves application/yaml entity bodies through
// gopkg.in/yaml.v3.
//
//	reg := bodyformat.Default().With(yaml.New())
package yaml

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"rivaas.dev/entity/bodyformat"
	"rivaas.dev/entity/mediatype"
)

// Option configures the YAML codec.
type Option func(*Codec)

// WithStrict rejects mapping keys that do not match a field of the target.
func WithStrict() Option {
	return func(c *Codec) { c.strict = true }
}

// Codec implements [bodyformat.Codec] for YAML.
type Codec struct {
	strict bool
}

// NewCodec creates a YAML codec.
func NewCodec(opts ...Option) *Codec {
	c := &Codec{}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// New returns a resolver for application/yaml and text/yaml bodies.
func New(opts ...Option) *bodyformat.Typed {
	return bodyformat.NewTyped("yaml", NewCodec(opts...),
		[]string{mediatype.YAML, mediatype.TextYAML},
		bodyformat.WithTranscoding(true),
	)
}

// Unmarshal implements [bodyformat.Codec].
func (c *Codec) Unmarshal(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(c.strict)

	return dec.Decode(v)
}

// Records implements [bodyformat.Codec].
func (c *Codec) Records(data []byte) ([]bodyformat.Record, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	return bodyformat.RecordsOf(doc), nil
}
