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

package bodyformat

import (
	"context"
	"fmt"
	"slices"

	"rivaas.dev/entity/binding"
	"rivaas.dev/entity/mediatype"
)

// Codec decodes one typed body format.
type Codec interface {
	// Unmarshal decodes data into v, a pointer created by the binder.
	Unmarshal(data []byte, v any) error

	// Records walks data and returns its records in document order.
	Records(data []byte) ([]Record, error)
}

// Typed resolves bodies through a [Codec].
//
// Complex parameters are instantiated and decoded with Codec.Unmarshal.
// Simple parameters bind the matching field of every record that has one,
// matched case-insensitively.
type Typed struct {
	name       string
	mediaTypes []string
	codec      Codec
	transcode  bool
}

// TypedOption configures a [Typed] resolver.
type TypedOption func(*Typed)

// WithTranscoding converts bodies declaring a non UTF-8 charset to UTF-8
// before decoding. Formats that carry their own encoding declaration, such
// as XML, leave this off.
func WithTranscoding(enabled bool) TypedOption {
	return func(t *Typed) { t.transcode = enabled }
}

// NewTyped creates a resolver for mediaTypes backed by codec. name appears
// in error messages.
func NewTyped(name string, codec Codec, mediaTypes []string, opts ...TypedOption) *Typed {
	t := &Typed{
		name:       name,
		mediaTypes: slices.Clone(mediaTypes),
		codec:      codec,
	}
	for _, opt := range opts {
		opt(t)
	}

	return t
}

// NewXML creates the application/xml and text/xml resolver.
func NewXML() *Typed {
	return NewTyped("xml", XMLCodec{}, []string{mediatype.ApplicationXML, mediatype.TextXML})
}

// NewJSON creates the application/json resolver.
func NewJSON() *Typed {
	return NewTyped("json", JSONCodec{}, []string{mediatype.JSON}, WithTranscoding(true))
}

// Name returns the format name.
func (t *Typed) Name() string {
	return t.name
}

// MediaTypes implements [Resolver].
func (t *Typed) MediaTypes() []string {
	return slices.Clone(t.mediaTypes)
}

// Resolve implements [Resolver].
func (t *Typed) Resolve(_ context.Context, req *Request, b *binding.Binder) (*binding.ParameterSet, error) {
	defer req.close()

	data, err := req.read()
	if err != nil {
		return nil, bodyError(t.name, err)
	}
	if t.transcode {
		text, err := req.text(data)
		if err != nil {
			return nil, bodyError(t.name, err)
		}
		data = []byte(text)
	}

	var (
		records []Record
		walked  bool
	)
	set := binding.NewParameterSet(len(req.Signature))
	for _, p := range req.Signature {
		if p.Type.IsComplex() {
			obj, err := b.Instantiate(p)
			if err != nil {
				return nil, err
			}
			if err := t.codec.Unmarshal(data, obj); err != nil {
				return nil, bodyError(t.name, err)
			}
			b.AddObject(set, p, obj)

			continue
		}

		if !walked {
			if records, err = t.codec.Records(data); err != nil {
				return nil, bodyError(t.name, err)
			}
			walked = true
		}

		for _, rec := range records {
			v, ok := rec.Lookup(p.Name)
			if !ok {
				continue
			}
			s, err := Stringify(v)
			if err != nil {
				return nil, bodyError(t.name, fmt.Errorf("field %q: %w", p.Name, err))
			}
			if err := b.BindSimple(set, p, s); err != nil {
				return nil, err
			}
		}
	}

	return set, nil
}
