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

package validation

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrValidation is a sentinel error for validation failures.
// Use errors.Is(err, ErrValidation) to check if an error is a validation error.
var ErrValidation = errors.New("validation")

// FieldError represents a single validation error for a specific field.
type FieldError struct {
	Path    string         `json:"path"`           // dotted path, e.g. "address.city"
	Code    string         `json:"code"`           // stable code, e.g. "tag.required"
	Message string         `json:"message"`        // human-readable message
	Meta    map[string]any `json:"meta,omitempty"` // tag, param
}

// Error returns "path: message", or the message alone for an empty path.
func (e FieldError) Error() string {
	if e.Path == "" {
		return e.Message
	}

	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Error represents validation errors for one or more fields.
//
//nolint:recvcheck // value receivers for the error interface, pointer for Add
type Error struct {
	Fields []FieldError `json:"errors"`
}

// Error returns a formatted error message.
func (v Error) Error() string {
	switch len(v.Fields) {
	case 0:
		return "validation failed"
	case 1:
		return v.Fields[0].Error()
	}

	msgs := make([]string, 0, len(v.Fields))
	for _, f := range v.Fields {
		msgs = append(msgs, f.Error())
	}

	return "validation failed: " + strings.Join(msgs, "; ")
}

// Unwrap returns [ErrValidation].
func (v Error) Unwrap() error {
	return ErrValidation
}

// HTTPStatus implements rivaas.dev/entity/errors.ErrorType.
func (v Error) HTTPStatus() int {
	return http.StatusUnprocessableEntity
}

// Details implements rivaas.dev/entity/errors.ErrorDetails.
func (v Error) Details() any {
	return v.Fields
}

// Code implements rivaas.dev/entity/errors.ErrorCode.
func (v Error) Code() string {
	return "validation_error"
}

// Add appends a [FieldError].
func (v *Error) Add(path, code, message string, meta map[string]any) {
	v.Fields = append(v.Fields, FieldError{Path: path, Code: code, Message: message, Meta: meta})
}

// AddError appends err, flattening nested [Error] values.
func (v *Error) AddError(err error) {
	if err == nil {
		return
	}

	var fe FieldError
	if errors.As(err, &fe) {
		v.Fields = append(v.Fields, fe)
		return
	}
	var ve Error
	if errors.As(err, &ve) {
		v.Fields = append(v.Fields, ve.Fields...)
		return
	}

	v.Add("", "validation_error", err.Error(), nil)
}

// HasErrors returns true if there are any errors.
func (v Error) HasErrors() bool {
	return len(v.Fields) > 0
}

// Has reports whether path has an error.
func (v Error) Has(path string) bool {
	for _, f := range v.Fields {
		if f.Path == path {
			return true
		}
	}

	return false
}
