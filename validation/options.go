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

import "github.com/go-playground/validator/v10"

type customTag struct {
	name string
	fn   validator.Func
}

type config struct {
	tagName      string
	fieldNameTag string
	customTags   []customTag
	messages     map[string]string
}

// Option configures a [Validator].
type Option func(*config)

// WithTagName changes the struct tag holding rules. Default "validate".
func WithTagName(name string) Option {
	return func(c *config) { c.tagName = name }
}

// WithFieldNameTag reports field paths using the name from another struct
// tag, such as "json" or "form".
func WithFieldNameTag(tag string) Option {
	return func(c *config) { c.fieldNameTag = tag }
}

// WithCustomTag registers a custom validation rule.
//
//	validation.WithCustomTag("slug", func(fl validator.FieldLevel) bool {
//	    return slugPattern.MatchString(fl.Field().String())
//	})
func WithCustomTag(name string, fn validator.Func) Option {
	return func(c *config) { c.customTags = append(c.customTags, customTag{name: name, fn: fn}) }
}

// WithMessages overrides messages per tag. A "%s" verb receives the tag
// parameter.
func WithMessages(messages map[string]string) Option {
	return func(c *config) {
		if c.messages == nil {
			c.messages = make(map[string]string, len(messages))
		}
		for k, v := range messages {
			c.messages[k] = v
		}
	}
}
