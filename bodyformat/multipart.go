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
	"net/url"
	"strings"

	"golang.org/x/text/encoding"

	"rivaas.dev/entity/binding"
	"rivaas.dev/entity/mediatype"
	"rivaas.dev/entity/multipart"
)

// Multipart resolves multipart/form-data bodies.
//
// Complex parameters match part names case-insensitively; file parts
// contribute their data as base64 text and form items their decoded text.
// Simple parameters bind every form item with a matching name. Parameters
// declared as bytes also accept file parts, bound to the raw file data.
type Multipart struct {
	strict bool
}

// MultipartOption configures a [Multipart] resolver.
type MultipartOption func(*Multipart)

// WithStrictFraming makes malformed framing a [*BodyError] instead of
// silently yielding the parts framed so far.
func WithStrictFraming(strict bool) MultipartOption {
	return func(m *Multipart) { m.strict = strict }
}

// NewMultipart creates a multipart resolver. Framing is lenient by default.
func NewMultipart(opts ...MultipartOption) *Multipart {
	m := &Multipart{}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// MediaTypes implements [Resolver].
func (*Multipart) MediaTypes() []string {
	return []string{mediatype.MultipartForm}
}

// Resolve implements [Resolver].
func (m *Multipart) Resolve(_ context.Context, req *Request, b *binding.Binder) (*binding.ParameterSet, error) {
	defer req.close()

	boundary := req.ContentType.Boundary()
	if boundary == "" {
		return nil, bodyError("multipart", ErrMissingBoundary)
	}

	data, err := req.read()
	if err != nil {
		return nil, bodyError("multipart", err)
	}
	enc, err := req.encoding()
	if err != nil {
		return nil, bodyError("multipart", err)
	}

	parts, err := multipart.Parse(data, req.declaredLength(data), boundary,
		multipart.WithEncoding(enc),
		multipart.WithLenientFraming(!m.strict),
	)
	if err != nil {
		return nil, bodyError("multipart", err)
	}

	var fields url.Values
	set := binding.NewParameterSet(len(req.Signature))
	for _, p := range req.Signature {
		if p.Type.IsComplex() {
			if fields == nil {
				if fields, err = partValues(parts, enc); err != nil {
					return nil, bodyError("multipart", err)
				}
			}
			if err := b.BindComplex(set, p, binding.NewFormGetter(fields, p.Name)); err != nil {
				return nil, err
			}

			continue
		}

		if err := bindSimpleParts(set, p, parts, enc, b); err != nil {
			return nil, err
		}
	}

	return set, nil
}

func bindSimpleParts(set *binding.ParameterSet, p binding.Parameter, parts []*multipart.Part, enc encoding.Encoding, b *binding.Binder) error {
	for _, part := range parts {
		if !strings.EqualFold(part.Name(), p.Name) {
			continue
		}

		if part.IsFile() {
			if !acceptsFile(p) {
				continue
			}
			if err := b.BindBytes(set, p, part.Bytes()); err != nil {
				return err
			}

			continue
		}

		text, err := part.Text(enc)
		if err != nil {
			return bodyError("multipart", err)
		}
		if err := b.BindSimple(set, p, text); err != nil {
			return err
		}
	}

	return nil
}

func acceptsFile(p binding.Parameter) bool {
	switch p.Type.Kind() {
	case binding.KindBytes, binding.KindAny:
		return true
	default:
		return false
	}
}

// partValues flattens parts into form values: base64 data for files and
// decoded text for form items. Parts without their own charset use enc.
func partValues(parts []*multipart.Part, enc encoding.Encoding) (url.Values, error) {
	values := make(url.Values, len(parts))
	for _, part := range parts {
		if part.IsFile() {
			values.Add(part.Name(), part.Base64())
			continue
		}

		text, err := part.Text(enc)
		if err != nil {
			return nil, err
		}
		values.Add(part.Name(), text)
	}

	return values, nil
}
