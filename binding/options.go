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
	"fmt"
	"strings"
	"time"
)

// Base64Policy controls when simple values that decode as base64 are
// stored as raw bytes.
type Base64Policy int

const (
	// Base64Any decodes any non-empty valid base64 value to bytes,
	// whatever the declared type. This matches the legacy behavior and is
	// the default: "dHJ1ZQ==" bound to a bool parameter yields bytes.
	Base64Any Base64Policy = iota

	// Base64BytesOnly decodes base64 only for parameters declared as bytes.
	Base64BytesOnly
)

// String returns the policy name used in configuration.
func (p Base64Policy) String() string {
	switch p {
	case Base64Any:
		return "any"
	case Base64BytesOnly:
		return "bytes-only"
	default:
		return fmt.Sprintf("Base64Policy(%d)", int(p))
	}
}

// ParseBase64Policy parses "any" or "bytes-only".
func ParseBase64Policy(s string) (Base64Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any":
		return Base64Any, nil
	case "bytes-only", "bytes":
		return Base64BytesOnly, nil
	default:
		return 0, fmt.Errorf("%w: base64 policy %q", ErrInvalidOption, s)
	}
}

// ComplexEntryPolicy controls how many entries a complex parameter adds to
// the [ParameterSet].
type ComplexEntryPolicy int

const (
	// CollapseEntries adds exactly one entry per complex parameter, even
	// when no field matched. This is the default.
	CollapseEntries ComplexEntryPolicy = iota

	// EntryPerField adds one entry per matched field, each pointing to the
	// same instance. Kept for parity with legacy handlers.
	EntryPerField
)

// String returns the policy name used in configuration.
func (p ComplexEntryPolicy) String() string {
	switch p {
	case CollapseEntries:
		return "collapse"
	case EntryPerField:
		return "per-field"
	default:
		return fmt.Sprintf("ComplexEntryPolicy(%d)", int(p))
	}
}

// ParseComplexEntryPolicy parses "collapse" or "per-field".
func ParseComplexEntryPolicy(s string) (ComplexEntryPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "collapse":
		return CollapseEntries, nil
	case "per-field", "legacy":
		return EntryPerField, nil
	default:
		return 0, fmt.Errorf("%w: complex entry policy %q", ErrInvalidOption, s)
	}
}

// Events provides hooks for observability without coupling.
type Events struct {
	// ParameterBound is called after a simple or complex parameter was added
	// to the set.
	ParameterBound func(name string, kind Kind)

	// FieldBound is called after a field of a complex parameter was set.
	FieldBound func(param, field string)
}

// Options configures a [Binder].
type Options struct {
	TimeLayouts    []string           // Tried after the built-in layouts
	Base64         Base64Policy       // When to decode base64 values
	ComplexEntries ComplexEntryPolicy // Entries per complex parameter
	Parsers        []Parser           // Inference order for KindAny, nil means defaults
	Events         Events             // Observability hooks
}

// Option configures binding behavior.
type Option func(*Options)

// WithTimeLayouts adds time layouts tried after the built-in ones.
// Layouts use Go's reference time: Mon Jan 2 15:04:05 MST 2006.
//
// Example:
//
//	binder := binding.MustNew(binding.WithTimeLayouts("01/02/2006"))
func WithTimeLayouts(layouts ...string) Option {
	return func(o *Options) {
		o.TimeLayouts = append(o.TimeLayouts, layouts...)
	}
}

// WithBase64Policy sets when base64 values are decoded to bytes.
func WithBase64Policy(p Base64Policy) Option {
	return func(o *Options) {
		o.Base64 = p
	}
}

// WithComplexEntryPolicy sets how many entries a complex parameter adds.
func WithComplexEntryPolicy(p ComplexEntryPolicy) Option {
	return func(o *Options) {
		o.ComplexEntries = p
	}
}

// WithParsers replaces the ordered inference parsers used for [KindAny].
func WithParsers(parsers ...Parser) Option {
	return func(o *Options) {
		o.Parsers = parsers
	}
}

// WithEvents sets observability hooks.
func WithEvents(events Events) Option {
	return func(o *Options) {
		o.Events = events
	}
}

func defaultOptions() *Options {
	return &Options{
		Base64:         Base64Any,
		ComplexEntries: CollapseEntries,
	}
}

func (o *Options) validate() error {
	if o.Base64 != Base64Any && o.Base64 != Base64BytesOnly {
		return fmt.Errorf("%w: %v", ErrInvalidOption, o.Base64)
	}
	if o.ComplexEntries != CollapseEntries && o.ComplexEntries != EntryPerField {
		return fmt.Errorf("%w: %v", ErrInvalidOption, o.ComplexEntries)
	}
	for _, l := range o.TimeLayouts {
		if l == "" {
			return fmt.Errorf("%w: empty time layout", ErrInvalidOption)
		}
	}
	for i, p := range o.Parsers {
		if p.Parse == nil {
			return fmt.Errorf("%w: parser %d (%s) has no Parse func", ErrInvalidOption, i, p.Kind)
		}
	}

	return nil
}

// defaultTimeLayouts are tried before Options.TimeLayouts.
var defaultTimeLayouts = []string{
	time.RFC3339,          // 2024-01-15T10:30:00Z
	time.RFC3339Nano,      // with nanoseconds
	"2006-01-02",          // date only
	"2006-01-02 15:04:05", // date and time
	"2006-01-02T15:04:05", // without zone
	time.RFC1123,
	time.RFC1123Z,
	time.RFC850,
	time.RFC822,
	time.RFC822Z,
}
