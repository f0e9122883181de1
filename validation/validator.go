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
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidatorInterface is implemented by values with their own Validate method.
type ValidatorInterface interface {
	Validate() error
}

// ValidatorWithContext is preferred over [ValidatorInterface] when present.
type ValidatorWithContext interface {
	ValidateContext(context.Context) error
}

// Validator validates bound values. It is safe for concurrent use once
// created.
type Validator struct {
	validate *validator.Validate
	messages map[string]string
}

// New creates a [Validator].
func New(opts ...Option) (*Validator, error) {
	cfg := &config{tagName: "validate"}
	for _, opt := range opts {
		opt(cfg)
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName(cfg.tagName)
	if cfg.fieldNameTag != "" {
		tag := cfg.fieldNameTag
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}

			return name
		})
	}
	for _, ct := range cfg.customTags {
		if err := v.RegisterValidation(ct.name, ct.fn); err != nil {
			return nil, fmt.Errorf("registering tag %q: %w", ct.name, err)
		}
	}

	messages := make(map[string]string, len(defaultMessages)+len(cfg.messages))
	for k, m := range defaultMessages {
		messages[k] = m
	}
	for k, m := range cfg.messages {
		messages[k] = m
	}

	return &Validator{validate: v, messages: messages}, nil
}

// MustNew creates a [Validator] or panics.
func MustNew(opts ...Option) *Validator {
	v, err := New(opts...)
	if err != nil {
		panic("validation.MustNew: " + err.Error())
	}

	return v
}

// Validate checks value. A nil error means the value is valid or is not a
// struct.
func (v *Validator) Validate(ctx context.Context, value any) error {
	if value == nil {
		return nil
	}

	var result Error
	switch x := value.(type) {
	case ValidatorWithContext:
		result.AddError(x.ValidateContext(ctx))
	case ValidatorInterface:
		result.AddError(x.Validate())
	}

	if isStruct(value) {
		if err := v.validate.StructCtx(ctx, value); err != nil {
			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) {
				return fmt.Errorf("%w: %w", ErrValidation, err)
			}
			for _, fe := range verrs {
				result.Fields = append(result.Fields, v.fieldError(fe))
			}
		}
	}

	if result.HasErrors() {
		return result
	}

	return nil
}

func (v *Validator) fieldError(fe validator.FieldError) FieldError {
	path := fe.Namespace()
	if _, rest, ok := strings.Cut(path, "."); ok {
		path = rest
	}

	msg, ok := v.messages[fe.Tag()]
	if !ok {
		msg = "failed " + fe.Tag() + " validation"
	} else if strings.Contains(msg, "%s") {
		msg = fmt.Sprintf(msg, fe.Param())
	}

	meta := map[string]any{"tag": fe.Tag()}
	if fe.Param() != "" {
		meta["param"] = fe.Param()
	}

	return FieldError{Path: path, Code: "tag." + fe.Tag(), Message: msg, Meta: meta}
}

func isStruct(value any) bool {
	t := reflect.TypeOf(value)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t.Kind() == reflect.Struct
}

var defaultMessages = map[string]string{
	"required": "is required",
	"email":    "must be a valid email address",
	"uuid":     "must be a valid UUID",
	"url":      "must be a valid URL",
	"min":      "must be at least %s",
	"max":      "must be at most %s",
	"len":      "must have length %s",
	"gte":      "must be greater than or equal to %s",
	"lte":      "must be less than or equal to %s",
	"gt":       "must be greater than %s",
	"lt":       "must be less than %s",
	"oneof":    "must be one of [%s]",
}
