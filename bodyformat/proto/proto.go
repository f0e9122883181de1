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

// Package proto resolves Protocol Buffers entity bodies through
// google.golang.org/protobuf.
//
// Complex parameters must be declared with a constructor returning a
// [proto.Message]:
//
//	var User = binding.ObjectOf("User", func() any { return &pb.User{} })
//
// Simple parameters are read from a body encoding a
// google.protobuf.Struct, whose members become records.
package proto

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"rivaas.dev/entity/bodyformat"
	"rivaas.dev/entity/mediatype"
)

// ErrNotMessage is returned when a complex parameter's instance is not a
// proto.Message.
var ErrNotMessage = errors.New("proto: target is not a proto.Message")

// Option configures the Protocol Buffers codec.
type Option func(*Codec)

// WithAllowPartial accepts messages with missing required fields.
func WithAllowPartial() Option {
	return func(c *Codec) { c.opts.AllowPartial = true }
}

// WithDiscardUnknown drops unknown fields instead of keeping them.
func WithDiscardUnknown() Option {
	return func(c *Codec) { c.opts.DiscardUnknown = true }
}

// WithRecursionLimit sets the maximum nesting depth.
func WithRecursionLimit(limit int) Option {
	return func(c *Codec) { c.opts.RecursionLimit = limit }
}

// Codec implements [bodyformat.Codec] for Protocol Buffers.
type Codec struct {
	opts proto.UnmarshalOptions
}

// NewCodec creates a Protocol Buffers codec.
func NewCodec(opts ...Option) *Codec {
	c := &Codec{}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// New returns a resolver for application/protobuf and application/x-protobuf.
func New(opts ...Option) *bodyformat.Typed {
	return bodyformat.NewTyped("protobuf", NewCodec(opts...),
		[]string{mediatype.Protobuf, mediatype.XProtobuf})
}

// Unmarshal implements [bodyformat.Codec].
func (c *Codec) Unmarshal(data []byte, v any) error {
	m, ok := v.(proto.Message)
	if !ok {
		return fmt.Errorf("%w: got %T", ErrNotMessage, v)
	}

	return c.opts.Unmarshal(data, m)
}

// Records implements [bodyformat.Codec].
func (c *Codec) Records(data []byte) ([]bodyformat.Record, error) {
	var s structpb.Struct
	if err := c.opts.Unmarshal(data, &s); err != nil {
		return nil, err
	}

	return bodyformat.RecordsOf(s.AsMap()), nil
}
