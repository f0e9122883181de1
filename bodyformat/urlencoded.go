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

	"rivaas.dev/entity/binding"
	"rivaas.dev/entity/mediatype"
)

// URLEncoded resolves application/x-www-form-urlencoded bodies.
//
// Complex parameters match form keys case-insensitively, as "field" or
// "param.field". Simple parameters look up their exact name and bind the
// first value; a missing key binds nothing.
type URLEncoded struct{}

// NewURLEncoded creates a url-encoded resolver.
func NewURLEncoded() *URLEncoded {
	return &URLEncoded{}
}

// MediaTypes implements [Resolver].
func (*URLEncoded) MediaTypes() []string {
	return []string{mediatype.FormURLEncoded}
}

// Resolve implements [Resolver].
func (*URLEncoded) Resolve(_ context.Context, req *Request, b *binding.Binder) (*binding.ParameterSet, error) {
	defer req.close()

	data, err := req.read()
	if err != nil {
		return nil, bodyError("urlencoded", err)
	}
	text, err := req.text(data)
	if err != nil {
		return nil, bodyError("urlencoded", err)
	}
	values, err := url.ParseQuery(text)
	if err != nil {
		return nil, bodyError("urlencoded", err)
	}

	set := binding.NewParameterSet(len(req.Signature))
	for _, p := range req.Signature {
		if p.Type.IsComplex() {
			if err := b.BindComplex(set, p, binding.NewFormGetter(values, p.Name)); err != nil {
				return nil, err
			}

			continue
		}

		vs, ok := values[p.Name]
		if !ok || len(vs) == 0 {
			continue
		}
		if err := b.BindSimple(set, p, vs[0]); err != nil {
			return nil, err
		}
	}

	return set, nil
}
