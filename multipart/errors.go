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

package multipart

import (
	"errors"
	"fmt"
)

// Static errors reported by the scanner. Framing errors are reported in
// strict mode only; boundary errors in both modes.
var (
	ErrEmptyBoundary       = errors.New("multipart: empty boundary")
	ErrUnencodableBoundary = errors.New("multipart: boundary not representable in header encoding")
	ErrMissingBoundary     = errors.New("multipart: no opening boundary found")
	ErrTruncated           = errors.New("multipart: truncated part")
)

// FramingError describes where a strict scan stopped.
type FramingError struct {
	Offset int    // byte offset of the line that could not be framed
	Reason string // what was expected at Offset
	Err    error  // ErrMissingBoundary or ErrTruncated
}

// Error implements error.
func (e *FramingError) Error() string {
	return fmt.Sprintf("%v at offset %d: %s", e.Err, e.Offset, e.Reason)
}

// Unwrap returns the underlying sentinel.
func (e *FramingError) Unwrap() error {
	return e.Err
}
