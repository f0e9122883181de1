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

// Package dispatch decodes HTTP entity bodies into handler arguments.
//
// A [Dispatcher] inspects the Content-Type, selects the first resolver of
// its [bodyformat.Registry] that supports it, binds every formal parameter
// and checks that exactly one value was produced per parameter:
//
//	sig := binding.Signature{
//	    binding.Param("name", binding.String),
//	    binding.Param("age", binding.Int),
//	}
//
//	d := dispatch.MustNew(dispatch.WithLogger(logger))
//	args, err := d.DecodeRequest(r, sig) // []any{"ada", 36}
//
// The entity body is closed on every return path, including resolver and
// binder failures. Errors carry HTTPStatus, Code and Details methods for
// rivaas.dev/entity/errors:
//
//   - missing Content-Type on a non-empty body: [*ContentTypeError], 400
//   - no resolver for the media type: [*bodyformat.UnsupportedFormatError], 500
//   - wrong number of bound values: [*ParameterCountError], 400
//
// A Dispatcher is immutable after construction and safe for concurrent use.
package dispatch
