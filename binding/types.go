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
	"time"

	"github.com/google/uuid"
)

// Kind classifies the values a parameter or field accepts.
type Kind int

const (
	// KindInvalid is the zero Kind.
	KindInvalid Kind = iota

	KindString  // string
	KindBool    // bool
	KindByte    // uint8
	KindInt32   // int32
	KindInt64   // int64
	KindInt     // int
	KindFloat64 // float64
	KindTime    // time.Time
	KindUUID    // uuid.UUID
	KindBytes   // []byte

	// KindAny holds whatever the inference parsers produce for the raw value.
	KindAny

	// KindObject is a complex type populated field by field.
	KindObject
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindByte:
		return "byte"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindInt:
		return "int"
	case KindFloat64:
		return "float64"
	case KindTime:
		return "time"
	case KindUUID:
		return "uuid"
	case KindBytes:
		return "bytes"
	case KindAny:
		return "any"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// IsSimple reports whether values of this kind are bound from a single
// string.
func (k Kind) IsSimple() bool {
	return k > KindInvalid && k < KindObject
}

// Type describes a parameter type. Simple types are the predeclared values
// below; complex types are built with [Object] or [ObjectOf].
type Type struct {
	name   string
	kind   Kind
	schema *schema
}

type schema struct {
	newFn  func() any
	fields []Field
}

// Predeclared simple types.
var (
	String  = Type{name: "string", kind: KindString}
	Bool    = Type{name: "bool", kind: KindBool}
	Byte    = Type{name: "byte", kind: KindByte}
	Int32   = Type{name: "int32", kind: KindInt32}
	Int64   = Type{name: "int64", kind: KindInt64}
	Int     = Type{name: "int", kind: KindInt}
	Float64 = Type{name: "float64", kind: KindFloat64}
	Time    = Type{name: "time", kind: KindTime}
	UUID    = Type{name: "uuid", kind: KindUUID}
	Bytes   = Type{name: "bytes", kind: KindBytes}
	Any     = Type{name: "any", kind: KindAny}
)

// Object declares a complex type whose instances are created with new(T)
// and populated through fields.
//
//	var Profile = binding.Object[profile]("Profile",
//	    binding.Prop("Name", func(p *profile, v string) { p.Name = v }),
//	    binding.Prop("Age", func(p *profile, v int) { p.Age = v }),
//	)
func Object[T any](name string, fields ...Field) Type {
	return ObjectOf(name, func() any { return new(T) }, fields...)
}

// ObjectOf declares a complex type with an explicit constructor. A nil
// newFn declares a type that cannot be instantiated; binding a parameter of
// that type fails with [ErrUnsupportedParameterType].
func ObjectOf(name string, newFn func() any, fields ...Field) Type {
	return Type{
		name: name,
		kind: KindObject,
		schema: &schema{
			newFn:  newFn,
			fields: fields,
		},
	}
}

// Name returns the type name used in diagnostics.
func (t Type) Name() string { return t.name }

// Kind returns the type's kind.
func (t Type) Kind() Kind { return t.kind }

// IsComplex reports whether the type is populated field by field.
func (t Type) IsComplex() bool { return t.kind == KindObject }

// IsZero reports whether t is the zero Type.
func (t Type) IsZero() bool { return t.kind == KindInvalid }

// HasConstructor reports whether instances of a complex type can be created.
func (t Type) HasConstructor() bool {
	return t.schema != nil && t.schema.newFn != nil
}

// Fields returns the settable fields of a complex type.
func (t Type) Fields() []Field {
	if t.schema == nil {
		return nil
	}

	return t.schema.fields
}

// String returns the type name.
func (t Type) String() string {
	if t.name == "" {
		return t.kind.String()
	}

	return t.name
}

// Scalar lists the Go types a [Field] setter may receive.
type Scalar interface {
	string | bool | uint8 | int32 | int64 | int | float64 | time.Time | uuid.UUID | []byte
}

// Field is one settable property of a complex type.
type Field struct {
	name string
	kind Kind
	set  func(obj, value any) error
}

// Prop declares a field of T named name whose values are converted to V
// before set is called.
func Prop[T any, V Scalar](name string, set func(*T, V)) Field {
	return Field{
		name: name,
		kind: kindOf[V](),
		set: func(obj, value any) error {
			target, ok := obj.(*T)
			if !ok {
				return fmt.Errorf("%w: field %q expects *%T, got %T", ErrFieldTarget, name, *new(T), obj)
			}
			v, ok := value.(V)
			if !ok {
				return fmt.Errorf("%w: field %q expects %T, got %T", ErrFieldTarget, name, *new(V), value)
			}
			set(target, v)

			return nil
		},
	}
}

// Name returns the field name matched against the source.
func (f Field) Name() string { return f.name }

// Kind returns the kind the field value is converted to.
func (f Field) Kind() Kind { return f.kind }

// Set assigns value to obj through the field setter.
func (f Field) Set(obj, value any) error {
	if f.set == nil {
		return fmt.Errorf("%w: field %q has no setter", ErrFieldTarget, f.name)
	}

	return f.set(obj, value)
}

func kindOf[V Scalar]() Kind {
	var zero V
	switch any(zero).(type) {
	case string:
		return KindString
	case bool:
		return KindBool
	case uint8:
		return KindByte
	case int32:
		return KindInt32
	case int64:
		return KindInt64
	case int:
		return KindInt
	case float64:
		return KindFloat64
	case time.Time:
		return KindTime
	case uuid.UUID:
		return KindUUID
	case []byte:
		return KindBytes
	default:
		return KindInvalid
	}
}
