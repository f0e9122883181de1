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

// Package bodyformat converts HTTP entity bodies into bound parameter sets.
//
// A [Resolver] handles one family of media types. A [Registry] holds an
// explicit, ordered list of resolvers and selects the first whose media
// types contain the request's content type:
//
//	reg := bodyformat.Default() // url-encoded, multipart, XML, JSON
//	res, err := reg.Lookup(ct)
//	if err != nil {
//	    return err // *UnsupportedFormatError
//	}
//	set, err := res.Resolve(ctx, req, binder)
//
// Three resolver kinds are provided:
//
//   - [URLEncoded] for application/x-www-form-urlencoded
//   - [Multipart] for multipart/form-data
//   - [Typed] for codec-driven bodies such as XML and JSON
//
// Additional typed formats live in the yaml, toml, msgpack and proto
// subpackages. Every resolver closes the request body before returning,
// on success and on failure.
package bodyformat
