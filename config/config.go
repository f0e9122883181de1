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

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/go-viper/mapstructure/v2"
)

// Option configures [Load].
type Option func(*loader) error

type loader struct {
	sources []Source
}

// WithSource adds a custom source.
func WithSource(src Source) Option {
	return func(l *loader) error {
		l.sources = append(l.sources, src)
		return nil
	}
}

// WithFile adds a configuration file, its format detected by extension.
// A missing file is an error.
func WithFile(path string) Option {
	return func(l *loader) error {
		format, err := detectFormat(path)
		if err != nil {
			return NewError("file:"+path, "load", err)
		}
		l.sources = append(l.sources, fileSource{path: path, format: format})

		return nil
	}
}

// WithOptionalFile is like [WithFile] but skips the file when it does not
// exist, or when path is empty.
func WithOptionalFile(path string) Option {
	return func(l *loader) error {
		if path == "" {
			return nil
		}
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return nil
		}

		return WithFile(path)(l)
	}
}

// WithContent adds an in-memory document.
func WithContent(data []byte, format Format) Option {
	return func(l *loader) error {
		l.sources = append(l.sources, contentSource{data: data, format: format})
		return nil
	}
}

// WithEnv adds the process environment filtered by prefix, e.g. "ENTITY_".
func WithEnv(prefix string) Option {
	return WithEnviron(prefix, os.Environ)
}

// WithEnviron is like [WithEnv] with an explicit environment list.
func WithEnviron(prefix string, environ func() []string) Option {
	return func(l *loader) error {
		l.sources = append(l.sources, envSource{prefix: prefix, environ: environ})
		return nil
	}
}

// Load builds [Settings] from defaults and the given sources.
//
// Errors:
//   - [*Error] with Operation "load" if a source cannot be read
//   - [*Error] with Source "json-schema" if the merged values are rejected
//   - [*Error] with Operation "decode" if a value has the wrong type
//   - [*Error] with Source "settings" if [Settings.Validate] fails
func Load(ctx context.Context, opts ...Option) (*Settings, error) {
	l := &loader{}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}

	values := make(map[string]any)
	for _, src := range l.sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		layer, err := src.Load(ctx)
		if err != nil {
			return nil, NewError(src.Name(), "load", err)
		}
		if err = mergo.Map(&values, normalizeKeys(layer), mergo.WithOverride); err != nil {
			return nil, NewError(src.Name(), "merge", err)
		}
	}

	if err := validateSchema(values); err != nil {
		return nil, NewError("json-schema", "validate", err)
	}

	settings := Defaults()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "config",
		WeaklyTypedInput: true,
		ZeroFields:       true,
		Result:           &settings,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return nil, NewError("settings", "decode", err)
	}
	if err = dec.Decode(values); err != nil {
		return nil, NewError("settings", "decode", err)
	}

	if err = settings.Validate(); err != nil {
		return nil, NewError("settings", "validate", err)
	}

	return &settings, nil
}

// MustLoad is like [Load] but panics on error.
func MustLoad(ctx context.Context, opts ...Option) *Settings {
	s, err := Load(ctx, opts...)
	if err != nil {
		panic(err)
	}

	return s
}

// normalizeKeys lowercases keys recursively so sources merge
// case-insensitively. Nested maps of other key types are converted.
func normalizeKeys(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[strings.ToLower(k)] = normalizeValue(v)
	}

	return out
}

func normalizeValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return normalizeKeys(x)
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, val := range x {
			m[fmt.Sprint(k)] = val
		}

		return normalizeKeys(m)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = normalizeValue(e)
		}

		return out
	case time.Duration:
		return x.String()
	default:
		return v
	}
}
