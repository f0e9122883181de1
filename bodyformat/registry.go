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
	"slices"

	"rivaas.dev/entity/binding"
	"rivaas.dev/entity/mediatype"
)

// Resolver converts one family of entity bodies into a parameter set.
//
// Implementations must close req.Body on every return path and must not
// retain it. A Resolver is shared across requests and must be safe for
// concurrent use.
type Resolver interface {
	// MediaTypes lists the lower-case media types the resolver accepts.
	MediaTypes() []string

	// Resolve reads the body and binds every parameter of req.Signature.
	Resolve(ctx context.Context, req *Request, b *binding.Binder) (*binding.ParameterSet, error)
}

// Supports reports whether r lists the media type of ct.
func Supports(r Resolver, ct mediatype.ContentType) bool {
	return slices.Contains(r.MediaTypes(), ct.MediaType)
}

// Registry is an ordered list of resolvers. It is built once at startup and
// only read afterwards.
type Registry struct {
	resolvers []Resolver
}

// NewRegistry creates a registry probing resolvers in the given order.
func NewRegistry(resolvers ...Resolver) *Registry {
	return &Registry{resolvers: slices.Clone(resolvers)}
}

// Default returns a registry with the url-encoded, multipart, XML and JSON
// resolvers, in that order.
func Default() *Registry {
	return NewRegistry(NewURLEncoded(), NewMultipart(), NewXML(), NewJSON())
}

// With returns a copy of the registry with resolvers appended.
func (r *Registry) With(resolvers ...Resolver) *Registry {
	return &Registry{resolvers: append(slices.Clone(r.resolvers), resolvers...)}
}

// Resolvers returns the registered resolvers in probe order.
func (r *Registry) Resolvers() []Resolver {
	return slices.Clone(r.resolvers)
}

// MediaTypes returns every supported media type in probe order.
func (r *Registry) MediaTypes() []string {
	var out []string
	for _, res := range r.resolvers {
		for _, mt := range res.MediaTypes() {
			if !slices.Contains(out, mt) {
				out = append(out, mt)
			}
		}
	}

	return out
}

// Lookup returns the first resolver supporting ct.
// It fails with [*UnsupportedFormatError] when none does.
func (r *Registry) Lookup(ct mediatype.ContentType) (Resolver, error) {
	for _, res := range r.resolvers {
		if Supports(res, ct) {
			return res, nil
		}
	}

	return nil, &UnsupportedFormatError{MediaType: ct.MediaType, Supported: r.MediaTypes()}
}
