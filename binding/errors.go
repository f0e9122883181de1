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

package binding

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Static errors for binding operations.
var (
	ErrUnsupportedParameterType = errors.New("unsupported parameter type")
	ErrUnsupportedType          = errors.New("unsupported type")
	ErrInvalidSignature         = errors.New("invalid signature")
	ErrInvalidOption            = errors.New("invalid binder option")
	ErrFieldTarget              = errors.New("field setter type mismatch")
	ErrInvalidBooleanValue      = errors.New("invalid boolean value")
	ErrEmptyTimeValue           = errors.New("empty time value")
	ErrUnableToParseTime        = errors.New("unable to parse time")
	ErrInvalidUUIDFormat        = errors.New("invalid UUID format")
)

// BindError reports a value that could not be converted to the declared
// kind of a parameter or of one of its fields.
//
// Use [errors.As] to inspect it:
//
//	var bindErr *binding.BindError
//	if errors.As(err, &bindErr) {
//	    fmt.Println(bindErr.Parameter, bindErr.Field)
//	}
type BindError struct {
	Parameter string // Formal parameter name
	Field     string // Field of a complex parameter, empty for simple ones
	Value     string // The value that failed conversion
	Kind      Kind   // Expected kind
	Err       error  // Underlying error
}

// Error returns a formatted error message with contextual hints.
func (e *BindError) Error() string {
	target := fmt.Sprintf("parameter %q", e.Parameter)
	if e.Field != "" {
		target = fmt.Sprintf("field %q of parameter %q", e.Field, e.Parameter)
	}

	msg := fmt.Sprintf("binding %s: failed to convert %q to %s: %v", target, e.Value, e.Kind, e.Err)
	if hint := e.hint(); hint != "" {
		msg += " (hint: " + hint + ")"
	}

	return msg
}

// hint suggests a fix for common mistakes.
func (e *BindError) hint() string {
	switch e.Kind {
	case KindByte, KindInt32, KindInt64, KindInt:
		if strings.Contains(e.Value, ".") {
			return "use float64 for decimal values"
		}
	case KindTime:
		return "use RFC3339 format (2006-01-02T15:04:05Z07:00) or configure layouts with WithTimeLayouts"
	case KindBool:
		return "accepted values: true/false, yes/no, 1/0, on/off"
	case KindUUID:
		return "use the canonical 8-4-4-4-12 hex form"
	}

	return ""
}

// Unwrap returns the underlying error.
func (e *BindError) Unwrap() error {
	return e.Err
}

// HTTPStatus implements rivaas.dev/entity/errors.ErrorType.
func (e *BindError) HTTPStatus() int {
	return http.StatusBadRequest
}

// Code implements rivaas.dev/entity/errors.ErrorCode.
func (e *BindError) Code() string {
	return "binding_error"
}

// UnsupportedTypeError reports a parameter whose declared type can never be
// bound, such as a complex type without a constructor. It indicates a
// programming error in the handler signature, not bad input.
type UnsupportedTypeError struct {
	Parameter string
	Type      string
	Reason    string
}

func newUnsupportedTypeError(p Parameter, reason string) *UnsupportedTypeError {
	return &UnsupportedTypeError{Parameter: p.Name, Type: p.Type.String(), Reason: reason}
}

// Error implements error.
func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("%v: parameter %q of type %s: %s", ErrUnsupportedParameterType, e.Parameter, e.Type, e.Reason)
}

// Unwrap returns [ErrUnsupportedParameterType].
func (e *UnsupportedTypeError) Unwrap() error {
	return ErrUnsupportedParameterType
}

// HTTPStatus implements rivaas.dev/entity/errors.ErrorType.
func (e *UnsupportedTypeError) HTTPStatus() int {
	return http.StatusInternalServerError
}

// Code implements rivaas.dev/entity/errors.ErrorCode.
func (e *UnsupportedTypeError) Code() string {
	return "unsupported_parameter_type"
}
