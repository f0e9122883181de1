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

// Package msgpack resolves MessagePack entity bodies through
// github.com/vmihailenco/msgpack/v5.
package msgpack

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"

	"rivaas.dev/entity/bodyformat"
	"rivaas.dev/entity/mediatype"
)

// Option configures the MessagePack codec.
type Option func(*Codec)

// WithJSONTag reads field names from json struct tags for fields that carry
// no msgpack tag. An explicit msgpack tag still wins.
func WithJSONTag() Option {
	return func(c *Codec) { c.useJSONTag = true }
}

// WithDisallowUnknown rejects map keys without a matching struct field.
func WithDisallowUnknown() Option {
	return func(c *Codec) { c.disallowUnknown = true }
}

// Codec implements [bodyformat.Codec] for MessagePack.
type Codec struct {
	useJSONTag      bool
	disallowUnknown bool
}

// NewCodec creates a MessagePack codec.
func NewCodec(opts ...Option) *Codec {
	c := &Codec{}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// New returns a resolver for application/msgpack and application/x-msgpack.
func New(opts ...Option) *bodyformat.Typed {
	return bodyformat.NewTyped("msgpack", NewCodec(opts...),
		[]string{mediatype.MsgPack, mediatype.XMsgPack})
}

// Unmarshal implements [bodyformat.Codec].
func (c *Codec) Unmarshal(data []byte, v any) error {
	return c.decoder(data).Decode(v)
}

// Records implements [bodyformat.Codec]. Binary values surface as []byte
// and bind through base64.
func (c *Codec) Records(data []byte) ([]bodyformat.Record, error) {
	doc, err := c.decoder(data).DecodeInterface()
	if err != nil {
		return nil, err
	}

	return bodyformat.RecordsOf(doc), nil
}

func (c *Codec) decoder(data []byte) *msgpack.Decoder {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	if c.useJSONTag {
		dec.SetCustomStructTag("json")
	}
	dec.DisallowUnknownFields(c.disallowUnknown)

	return dec
}
