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
	"fmt"
	"io"

	"golang.org/x/text/encoding"

	"rivaas.dev/entity/binding"
	"rivaas.dev/entity/mediatype"
)

// Request is the input to a [Resolver]: the target signature and the
// entity body with its negotiated content type.
type Request struct {
	// Signature lists the formal parameters in declaration order.
	Signature binding.Signature

	// Body is the entity body. Resolvers close it before returning.
	Body io.ReadCloser

	// Length is the declared entity length, or -1 when unknown.
	Length int64

	// ContentType is the parsed Content-Type header.
	ContentType mediatype.ContentType

	// Encoding is the text encoding used when the content type declares
	// no charset. Nil means UTF-8.
	Encoding encoding.Encoding

	// Limit caps the number of body bytes read. Zero means no limit.
	Limit int64
}

// close closes the body if there is one. Close errors are ignored: the body
// has been read to completion or abandoned.
func (r *Request) close() {
	if r.Body != nil {
		_ = r.Body.Close()
	}
}

// read buffers the whole body, honoring Limit.
func (r *Request) read() ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}

	src := io.Reader(r.Body)
	if r.Limit > 0 {
		src = io.LimitReader(r.Body, r.Limit+1)
	}

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	if r.Limit > 0 && int64(len(data)) > r.Limit {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, r.Limit)
	}

	return data, nil
}

// encoding resolves the text encoding from the charset parameter, falling
// back to r.Encoding.
func (r *Request) encoding() (encoding.Encoding, error) {
	return r.ContentType.Encoding(r.Encoding)
}

// text decodes data with the request's text encoding.
func (r *Request) text(data []byte) (string, error) {
	enc, err := r.encoding()
	if err != nil {
		return "", err
	}

	return mediatype.Decode(enc, data)
}

// declaredLength returns the length to scan within data.
func (r *Request) declaredLength(data []byte) int {
	if r.Length < 0 || r.Length > int64(len(data)) {
		return len(data)
	}

	return int(r.Length)
}
