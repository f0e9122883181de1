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

package dispatch

import (
	"errors"
	"fmt"
	"net/http"

	"rivaas.dev/entity/binding"
	"rivaas.dev/entity/mediatype"
)

// Static errors.
var (
	// ErrMissingContentType is returned for a non-empty body without a
	// Content-Type header.
	ErrMissingContentType = errors.New("missing Content-Type header for non-empty body")

	// ErrInvalidContentType is returned when the Content-Type header cannot be parsed.
	ErrInvalidContentType = mediatype.ErrInvalidContentType

	// ErrParameterCount is returned when binding produced more or fewer
	// values than the signature declares.
	ErrParameterCount = errors.New("parameter count mismatch")

	// ErrInvalidOption is returned by [New] for unusable options.
	ErrInvalidOption = errors.New("invalid dispatcher option")
)

// ContentTypeError reports a missing or malformed Content-Type header.
type ContentTypeError struct {
	Value string // raw header value, empty when missing
	Err   error
}

// Error implements error.
func (e *ContentTypeError) Error() string {
	if errors.Is(e.Err, ErrMissingContentType) {
		return e.Err.Error()
	}

	return fmt.Sprintf("invalid Content-Type %q: %v", e.Value, e.Err)
}

// Unwrap returns the underlying error.
func (e *ContentTypeError) Unwrap() error {
	return e.Err
}

// HTTPStatus implements the errors.ErrorType interface.
func (e *ContentTypeError) HTTPStatus() int {
	return http.StatusBadRequest
}

// Code implements the errors.ErrorCode interface.
func (e *ContentTypeError) Code() string {
	if errors.Is(e.Err, ErrMissingContentType) {
		return "missing_content_type"
	}

	return "invalid_content_type"
}

// ParameterCountError reports a mismatch between the declared parameters
// and the values bound for them.
type ParameterCountError struct {
	Signature binding.Signature
	Bound     []string // names of the bound entries, in order
}

// Expected returns the number of declared parameters.
func (e *ParameterCountError) Expected() int {
	return len(e.Signature)
}

// Actual returns the number of bound values.
func (e *ParameterCountError) Actual() int {
	return len(e.Bound)
}

// Error implements error.
func (e *ParameterCountError) Error() string {
	return fmt.Sprintf("parameter count mismatch: expected %d parameters %s, got %d",
		e.Expected(), e.Signature, e.Actual())
}

// Unwrap returns [ErrParameterCount].
func (e *ParameterCountError) Unwrap() error {
	return ErrParameterCount
}

// HTTPStatus implements the errors.ErrorType interface.
func (e *ParameterCountError) HTTPStatus() int {
	return http.StatusBadRequest
}

// Code implements the errors.ErrorCode interface.
func (e *ParameterCountError) Code() string {
	return "parameter_count_mismatch"
}

// Details implements the errors.ErrorDetails interface.
func (e *ParameterCountError) Details() any {
	bound := e.Bound
	if bound == nil {
		bound = []string{}
	}

	return map[string]any{
		"expected":   e.Expected(),
		"actual":     e.Actual(),
		"parameters": e.Signature.String(),
		"bound":      bound,
	}
}
