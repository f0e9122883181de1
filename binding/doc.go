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

// Package binding turns decoded entity-body values into typed handler
// arguments.
//
// A handler declares its formal parameters as a [Signature]. Body decoders
// look up a raw string (or raw bytes) for each parameter and hand it to a
// [Binder], which appends the typed value to a [ParameterSet] in declaration
// order.
//
// # Types
//
// Simple types are predeclared: [String], [Bool], [Byte], [Int32], [Int64],
// [Int], [Float64], [Time], [UUID], [Bytes] and [Any]. Complex types are
// declared with a schema instead of reflection:
//
//	type user struct {
//	    Name   string
//	    Age    int
//	    Avatar []byte
//	}
//
//	var User = binding.Object[user]("User",
//	    binding.Prop("name", func(u *user, v string) { u.Name = v }),
//	    binding.Prop("age", func(u *user, v int) { u.Age = v }),
//	    binding.Prop("avatar", func(u *user, v []byte) { u.Avatar = v }),
//	)
//
//	sig := binding.Signature{
//	    binding.Param("user", User),
//	    binding.Param("notify", binding.Bool),
//	}
//
// A complex type declared with [ObjectOf] and a nil constructor cannot be
// instantiated. Binding it fails with [ErrUnsupportedParameterType].
//
// # Coercion
//
// Simple values are converted to the declared kind: generous booleans
// (true/false, 1/0, yes/no, on/off), invariant-format numbers, RFC3339 and
// other common time layouts, and UUIDs. [Any] runs the ordered [Parser]
// list (bool, byte, int32, int64, float64, time, uuid) and keeps the first
// match, falling back to the string itself.
//
// # Policies
//
// Two legacy behaviors are explicit options:
//
//   - [Base64Policy]: with [Base64Any] (default) any valid base64 simple
//     value is stored as decoded bytes, even for non-bytes parameters.
//   - [ComplexEntryPolicy]: with [CollapseEntries] (default) a complex
//     parameter adds one entry; [EntryPerField] adds one per matched field.
//
// # Errors
//
// Conversion failures are [*BindError] (HTTP 400). Unbindable parameter
// types are [*UnsupportedTypeError] (HTTP 500). Both implement the
// HTTPStatus and Code methods understood by rivaas.dev/entity/errors.
package binding
