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
)

// Binder coerces decoded values into typed parameter values.
//
// Use [New] or [MustNew] to create a configured Binder. A Binder holds no
// per-request state and is safe for concurrent use by multiple goroutines.
//
// Example:
//
//	binder := binding.MustNew(
//	    binding.WithTimeLayouts("02/01/2006"),
//	    binding.WithBase64Policy(binding.Base64BytesOnly),
//	)
//
//	set := binding.NewParameterSet(len(sig))
//	err := binder.BindSimple(set, binding.Param("age", binding.Int), "30")
type Binder struct {
	opts    *Options
	parsers []Parser
}

// New creates a [Binder] with the given options.
// Returns an error if configuration is invalid.
func New(opts ...Option) (*Binder, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	parsers := o.Parsers
	if parsers == nil {
		parsers = DefaultParsers(o.TimeLayouts...)
	}

	return &Binder{opts: o, parsers: parsers}, nil
}

// MustNew creates a [Binder] with the given options.
// Panics if configuration is invalid.
func MustNew(opts ...Option) *Binder {
	b, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("binding.MustNew: %v", err))
	}

	return b
}

// Options returns a copy of the binder's options.
func (b *Binder) Options() Options {
	return *b.opts
}

// Infer converts raw with the binder's ordered parsers.
func (b *Binder) Infer(raw string) (any, Kind) {
	return Infer(raw, b.parsers)
}

// Convert turns raw into the Go value of kind.
func (b *Binder) Convert(raw string, kind Kind) (any, error) {
	return b.convert(raw, kind)
}

// BindSimple binds one raw string to a simple parameter and appends the
// result to set.
//
// Under [Base64Any] a non-empty value that is valid base64 is stored as the
// decoded bytes, typed [Bytes], whatever the declared type. Otherwise the
// value is converted to the declared kind.
func (b *Binder) BindSimple(set *ParameterSet, p Parameter, raw string) error {
	if !p.Type.Kind().IsSimple() {
		return newUnsupportedTypeError(p, "not a simple type")
	}

	if b.decodesBase64(p.Type.Kind()) {
		if data, ok := decodeBase64(raw); ok {
			set.Add(p.Name, Bytes, data)
			b.parameterBound(p.Name, KindBytes)

			return nil
		}
	}

	v, err := b.convert(raw, p.Type.Kind())
	if err != nil {
		return &BindError{Parameter: p.Name, Value: raw, Kind: p.Type.Kind(), Err: err}
	}

	set.Add(p.Name, p.Type, v)
	b.parameterBound(p.Name, p.Type.Kind())

	return nil
}

// BindBytes binds raw bytes, such as an uploaded file, to a parameter
// declared as [Bytes] or [Any]. The bytes are stored as given.
func (b *Binder) BindBytes(set *ParameterSet, p Parameter, data []byte) error {
	switch p.Type.Kind() {
	case KindBytes, KindAny:
	default:
		return newUnsupportedTypeError(p, "raw bytes require a bytes parameter")
	}

	set.Add(p.Name, Bytes, data)
	b.parameterBound(p.Name, KindBytes)

	return nil
}

// Instantiate creates a zero instance of a complex parameter's type.
// It fails with [*UnsupportedTypeError] when the type has no constructor.
func (b *Binder) Instantiate(p Parameter) (any, error) {
	if !p.Type.IsComplex() {
		return nil, newUnsupportedTypeError(p, "not a complex type")
	}
	if !p.Type.HasConstructor() {
		return nil, newUnsupportedTypeError(p, "no parameterless constructor")
	}

	obj := p.Type.schema.newFn()
	if obj == nil {
		return nil, newUnsupportedTypeError(p, "constructor returned nil")
	}

	return obj, nil
}

// BindComplex creates an instance of a complex parameter and sets every
// field src has a value for. Bytes fields receive decoded bytes when the
// value is valid base64; all other fields are converted to their kind.
//
// Entries are added according to the [ComplexEntryPolicy].
func (b *Binder) BindComplex(set *ParameterSet, p Parameter, src ValueGetter) error {
	obj, err := b.Instantiate(p)
	if err != nil {
		return err
	}

	for _, f := range p.Type.Fields() {
		if !src.Has(f.Name()) {
			continue
		}

		raw := src.Get(f.Name())
		v, err := b.fieldValue(f, raw)
		if err != nil {
			return &BindError{Parameter: p.Name, Field: f.Name(), Value: raw, Kind: f.Kind(), Err: err}
		}
		if err := f.Set(obj, v); err != nil {
			return &BindError{Parameter: p.Name, Field: f.Name(), Value: raw, Kind: f.Kind(), Err: err}
		}
		if b.opts.Events.FieldBound != nil {
			b.opts.Events.FieldBound(p.Name, f.Name())
		}

		if b.opts.ComplexEntries == EntryPerField {
			set.Add(p.Name, p.Type, obj)
		}
	}

	if b.opts.ComplexEntries == CollapseEntries {
		set.Add(p.Name, p.Type, obj)
	}
	b.parameterBound(p.Name, KindObject)

	return nil
}

// AddObject appends an already populated complex value, as produced by a
// typed body decoder.
func (b *Binder) AddObject(set *ParameterSet, p Parameter, obj any) {
	set.Add(p.Name, p.Type, obj)
	b.parameterBound(p.Name, KindObject)
}

func (b *Binder) fieldValue(f Field, raw string) (any, error) {
	if f.Kind() == KindBytes {
		if data, ok := decodeBase64(raw); ok {
			return data, nil
		}
	}

	return b.convert(raw, f.Kind())
}

func (b *Binder) decodesBase64(k Kind) bool {
	switch b.opts.Base64 {
	case Base64Any:
		return true
	case Base64BytesOnly:
		return k == KindBytes
	default:
		return false
	}
}

func (b *Binder) parameterBound(name string, k Kind) {
	if b.opts.Events.ParameterBound != nil {
		b.opts.Events.ParameterBound(name, k)
	}
}
