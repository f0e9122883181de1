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

// Package multipart scans multipart/form-data bodies that are already held
// in memory.
//
// Unlike [mime/multipart], the scanner works directly over a byte slice with
// explicit line and boundary state. Parts reference the buffer by offset
// until they are yielded, at which point their data is copied so every
// [Part] owns its bytes.
//
// # Scanning
//
//	sc := multipart.NewScanner(body, len(body), ct.Boundary())
//	for sc.Scan() {
//	    p := sc.Part()
//	    fmt.Println(p.Name(), p.IsFile(), p.Len())
//	}
//	if err := sc.Err(); err != nil {
//	    // only reported with WithLenientFraming(false)
//	}
//
// The same sequence is available as an iterator:
//
//	for p := range multipart.NewScanner(body, len(body), boundary).Parts() {
//	    ...
//	}
//
// # Framing Policy
//
// By default framing is lenient: a body without an opening boundary, a part
// whose headers never end, or a part without a closing boundary ends the
// scan without an error, and only the parts framed so far are yielded.
// [WithLenientFraming](false) keeps the same partial results but makes
// [Scanner.Err] return a [*FramingError].
//
// # Boundaries
//
// A line is a boundary line when it is byte-for-byte equal to the delimiter
// ("--" followed by the boundary token), or to the delimiter followed by
// "--" for the final boundary. A trailing carriage return is not part of the
// line. Comparison is case-sensitive.
package multipart
