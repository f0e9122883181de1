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
	"net/url"
	"strings"
)

// ValueGetter supplies field values to [Binder.BindComplex].
//
// Implementers must distinguish between "key present with empty value" and
// "key not present": Has reports presence, Get returns the first value.
type ValueGetter interface {
	// Get returns the first value for the given key, or "" if not present.
	Get(key string) string

	// Has returns true if the key is present, even if its value is empty.
	Has(key string) bool
}

// GetterFunc is a function adapter that implements [ValueGetter].
//
// Example:
//
//	getter := binding.GetterFunc(func(key string) (string, bool) {
//	    v, ok := myMap[key]
//	    return v, ok
//	})
type GetterFunc func(key string) (value string, has bool)

// Get returns the value for the key.
func (f GetterFunc) Get(key string) string {
	v, _ := f(key)
	return v
}

// Has returns whether the key exists.
func (f GetterFunc) Has(key string) bool {
	_, has := f(key)
	return has
}

// Lookup builds a [ValueGetter] from a presence predicate and a resolver.
func Lookup(has func(string) bool, get func(string) string) ValueGetter {
	return GetterFunc(func(key string) (string, bool) {
		if !has(key) {
			return "", false
		}
		return get(key), true
	})
}

// FormGetter implements [ValueGetter] over url.Values with case-insensitive
// keys. When a prefix is set, "prefix.key" matches as well as "key".
type FormGetter struct {
	values url.Values
	prefix string
	folded map[string][]string
}

// NewFormGetter creates a [FormGetter]. prefix may be empty.
func NewFormGetter(values url.Values, prefix string) *FormGetter {
	folded := make(map[string][]string, len(values))
	for k, v := range values {
		key := strings.ToLower(k)
		folded[key] = append(folded[key], v...)
	}

	return &FormGetter{values: values, prefix: strings.ToLower(prefix), folded: folded}
}

// Get returns the first value for key, preferring the unprefixed form.
func (g *FormGetter) Get(key string) string {
	if v := g.lookup(key); len(v) > 0 {
		return v[0]
	}

	return ""
}

// Has returns whether key, or prefix.key, is present.
func (g *FormGetter) Has(key string) bool {
	return g.lookup(key) != nil
}

func (g *FormGetter) lookup(key string) []string {
	key = strings.ToLower(key)
	if v, ok := g.folded[key]; ok {
		return v
	}
	if g.prefix != "" {
		if v, ok := g.folded[g.prefix+"."+key]; ok {
			return v
		}
	}

	return nil
}

// MapGetter implements [ValueGetter] over a string map with
// case-insensitive keys.
type MapGetter map[string]string

// Get returns the value for key, ignoring case.
func (m MapGetter) Get(key string) string {
	v, _ := m.find(key)
	return v
}

// Has reports whether key is present, ignoring case.
func (m MapGetter) Has(key string) bool {
	_, ok := m.find(key)
	return ok
}

func (m MapGetter) find(key string) (string, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}

	return "", false
}
