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

// Package validation checks bound complex parameter values.
//
// A [Validator] runs, in order, the value's own ValidateContext or Validate
// method when it has one, then the struct tag rules of
// github.com/go-playground/validator/v10. Failures are reported as an
// [Error] listing one [FieldError] per failed rule.
//
//	type signup struct {
//	    Email string `json:"email" validate:"required,email"`
//	    Age   int    `json:"age" validate:"gte=18"`
//	}
//
//	v := validation.MustNew(validation.WithFieldNameTag("json"))
//	err := v.Validate(ctx, &signup{Age: 12})
//	// email: is required; age: must be greater than or equal to 18
//
// Values that are not structs or pointers to structs pass unchanged.
package validation
