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

// Package toml resolves application/toml entity bodies through
// github.com/BurntSushi/toml.
package toml

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"

	"rivaas.dev/entity/bodyformat"
	"rivaas.dev/entity/mediatype"
)

// ErrUndecodedKeys is returned in strict mode when the document has keys
// the target does not declare.
var ErrUndecodedKeys = errors.New("toml: undecoded keys")

// Option configures the TOML codec.
type Option func(*Codec)

// WithStrict rejects keys that were not decoded into the target.
func WithStrict() Option {
	return func(c *Codec) { c.strict = true }
}

// Codec implements [bodyformat.Codec] for TOML.
type Codec struct {
	strict bool
}

// NewCodec creates a TOML codec.
func NewCodec(opts ...Option) *Codec {
	c := &Codec{}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// New returns a resolver for application/toml bodies.
func New(opts ...Option) *bodyformat.Typed {
	return bodyformat.NewTyped("toml", NewCodec(opts...),
		[]string{mediatype.TOML},
		bodyformat.WithTranscoding(true),
	)
}

// Unmarshal implements [bodyformat.Codec].
func (c *Codec) Unmarshal(data []byte, v any) error {
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(v)
	if err != nil {
		return err
	}
	if c.strict {
		if keys := md.Undecoded(); len(keys) > 0 {
			return fmt.Errorf("%w: %v", ErrUndecodedKeys, keys)
		}
	}

	return nil
}

// Records implements [bodyformat.Codec].
func (c *Codec) Records(data []byte) ([]bodyformat.Record, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	return bodyformat.RecordsOf(doc), nil
}
