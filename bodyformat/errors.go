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
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Static errors for body decoding.
var (
	// ErrUnsupportedBodyFormat is returned when no resolver claims the content type.
	ErrUnsupportedBodyFormat = errors.New("unsupported body format")

	// ErrBodyTooLarge is returned when the body exceeds the configured limit.
	ErrBodyTooLarge = errors.New("request body too large")

	// ErrMissingBoundary is returned for a multipart content type without a
	// boundary parameter.
	ErrMissingBoundary = errors.New("multipart content type has no boundary parameter")

	// ErrNotScalar is returned when a record field holds a nested value.
	ErrNotScalar = errors.New("value is not a scalar")
)

// UnsupportedFormatError reports a content type no registered resolver
// supports. It maps to HTTP 500: the endpoint cannot accept the format.
type UnsupportedFormatError struct {
	MediaType string
	Supported []string
}

// Error implements error.
func (e *UnsupportedFormatError) Error() string {
	mt := e.MediaType
	if mt == "" {
		mt = "(none)"
	}
	if len(e.Supported) == 0 {
		return fmt.Sprintf("unsupported body format %s: no resolvers registered", mt)
	}

	return fmt.Sprintf("unsupported body format %s: supported formats are %s", mt, strings.Join(e.Supported, ", "))
}

// Unwrap returns [ErrUnsupportedBodyFormat].
func (e *UnsupportedFormatError) Unwrap() error {
	return ErrUnsupportedBodyFormat
}

// HTTPStatus implements the errors.ErrorType interface.
func (e *UnsupportedFormatError) HTTPStatus() int {
	return http.StatusInternalServerError
}

// Code implements the errors.ErrorCode interface.
func (e *UnsupportedFormatError) Code() string {
	return "unsupported_body_format"
}

// Details implements the errors.ErrorDetails interface.
func (e *UnsupportedFormatError) Details() any {
	return map[string]any{
		"media_type": e.MediaType,
		"supported":  e.Supported,
	}
}

// BodyError reports a body that could not be read or decoded.
type BodyError struct {
	Format string // resolver name, e.g. "multipart"
	Err    error
}

// Error implements error.
func (e *BodyError) Error() string {
	return fmt.Sprintf("decoding %s body: %v", e.Format, e.Err)
}

// Unwrap returns the underlying error.
func (e *BodyError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns 413 for oversized bodies and 400 otherwise.
func (e *BodyError) HTTPStatus() int {
	if errors.Is(e.Err, ErrBodyTooLarge) {
		return http.StatusRequestEntityTooLarge
	}

	return http.StatusBadRequest
}

// Code implements the errors.ErrorCode interface.
func (e *BodyError) Code() string {
	if errors.Is(e.Err, ErrBodyTooLarge) {
		return "body_too_large"
	}

	return "malformed_body"
}

func bodyError(format string, err error) error {
	if err == nil {
		return nil
	}

	return &BodyError{Format: format, Err: err}
}
