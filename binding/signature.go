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
)

// Parameter is a formal handler parameter.
type Parameter struct {
	Name string
	Type Type
}

// Param is shorthand for a [Parameter] literal.
func Param(name string, t Type) Parameter {
	return Parameter{Name: name, Type: t}
}

// String formats the parameter as "name type".
func (p Parameter) String() string {
	return p.Name + " " + p.Type.String()
}

// Signature is the ordered list of a handler's formal parameters.
type Signature []Parameter

// Names returns the parameter names in declaration order.
func (s Signature) Names() []string {
	names := make([]string, len(s))
	for i, p := range s {
		names[i] = p.Name
	}

	return names
}

// String formats the signature as a parameter list, e.g. "(name string, age int)".
func (s Signature) String() string {
	parts := make([]string, len(s))
	for i, p := range s {
		parts[i] = p.String()
	}

	return "(" + strings.Join(parts, ", ") + ")"
}

// Validate checks that every parameter can be bound: names are non-empty
// and unique, types are set, and complex types have a constructor.
// Call it when registering a handler so configuration errors surface at
// startup instead of on the first request.
func (s Signature) Validate() error {
	seen := make(map[string]struct{}, len(s))
	for i, p := range s {
		if p.Name == "" {
			return fmt.Errorf("%w: parameter %d has no name", ErrInvalidSignature, i)
		}

		key := strings.ToLower(p.Name)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: duplicate parameter %q", ErrInvalidSignature, p.Name)
		}
		seen[key] = struct{}{}

		if p.Type.IsZero() {
			return fmt.Errorf("%w: parameter %q has no type", ErrInvalidSignature, p.Name)
		}
		if p.Type.IsComplex() && !p.Type.HasConstructor() {
			return newUnsupportedTypeError(p, "no parameterless constructor")
		}
	}

	return nil
}
