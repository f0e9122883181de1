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

// Package errors renders entity decoding errors as HTTP responses.
//
// The decoding packages never write responses themselves. Their errors
// implement optional interfaces that a [Formatter] reads:
//
//   - [ErrorType]: HTTPStatus() int, e.g. 400 for a parameter count mismatch
//   - [ErrorCode]: Code() string, e.g. "unsupported_body_format"
//   - [ErrorDetails]: Details() any, e.g. expected and actual parameters
//
// Two formats are provided: [RFC9457] problem details
// (application/problem+json) and [Simple] JSON objects.
//
//	formatter := errors.NewRFC9457("https://api.example.com/problems")
//
//	args, err := dispatcher.DecodeRequest(r, sig)
//	if err != nil {
//	    _ = errors.Write(w, r, formatter, err)
//	    return
//	}
//
// Errors without an HTTPStatus method map to 500.
package errors
