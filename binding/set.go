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

import "iter"

// Entry is one bound value.
type Entry struct {
	Name  string // parameter name
	Type  Type   // declared type, or Bytes when a base64 value was decoded
	Value any
}

// ParameterSet is the ordered output of binding. Entries keep insertion
// order, which resolvers drive from the signature's declaration order.
type ParameterSet struct {
	entries []Entry
}

// NewParameterSet returns an empty set with room for n entries.
func NewParameterSet(n int) *ParameterSet {
	return &ParameterSet{entries: make([]Entry, 0, n)}
}

// Add appends an entry.
func (s *ParameterSet) Add(name string, t Type, value any) {
	s.entries = append(s.entries, Entry{Name: name, Type: t, Value: value})
}

// Len returns the number of entries.
func (s *ParameterSet) Len() int {
	if s == nil {
		return 0
	}

	return len(s.entries)
}

// Entries returns a copy of the entries.
func (s *ParameterSet) Entries() []Entry {
	if s == nil {
		return nil
	}

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)

	return out
}

// Values returns the entry values in order, ready to pass to a handler.
func (s *ParameterSet) Values() []any {
	if s == nil {
		return nil
	}

	out := make([]any, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Value
	}

	return out
}

// Lookup returns the first entry for name.
func (s *ParameterSet) Lookup(name string) (Entry, bool) {
	if s == nil {
		return Entry{}, false
	}
	for _, e := range s.entries {
		if e.Name == name {
			return e, true
		}
	}

	return Entry{}, false
}

// All iterates over name/value pairs in order.
func (s *ParameterSet) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if s == nil {
			return
		}
		for _, e := range s.entries {
			if !yield(e.Name, e.Value) {
				return
			}
		}
	}
}
