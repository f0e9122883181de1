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

package bodyformat

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Field is one named scalar inside a [Record].
type Field struct {
	Name  string
	Value any
}

// Record is an ordered set of scalar fields, such as the leaf members of
// one JSON object or the leaf children of one XML element.
type Record []Field

// Lookup returns the first field whose name equals name, ignoring case.
func (r Record) Lookup(name string) (any, bool) {
	for _, f := range r {
		if strings.EqualFold(f.Name, name) {
			return f.Value, true
		}
	}

	return nil, false
}

// RecordsOf flattens a decoded document into records. Every map becomes a
// record of its scalar members, followed by the records of its nested maps
// and lists. Map keys are visited in sorted order.
func RecordsOf(v any) []Record {
	var out []Record
	collect(v, &out)

	return out
}

func collect(v any, out *[]Record) {
	switch x := v.(type) {
	case map[string]any:
		collectMap(x, out)
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, val := range x {
			m[fmt.Sprint(k)] = val
		}
		collectMap(m, out)
	case []map[string]any:
		for _, m := range x {
			collectMap(m, out)
		}
	case []any:
		for _, elem := range x {
			collect(elem, out)
		}
	}
}

func collectMap(m map[string]any, out *[]Record) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var (
		rec    Record
		nested []any
	)
	for _, k := range keys {
		if isNested(m[k]) {
			nested = append(nested, m[k])
			continue
		}
		rec = append(rec, Field{Name: k, Value: m[k]})
	}
	if len(rec) > 0 {
		*out = append(*out, rec)
	}
	for _, n := range nested {
		collect(n, out)
	}
}

func isNested(v any) bool {
	switch v.(type) {
	case map[string]any, map[any]any, []any, []map[string]any:
		return true
	default:
		return false
	}
}

// Stringify renders a scalar record value as the text the binder converts.
// Byte slices become standard base64 and times RFC 3339.
func Stringify(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case json.Number:
		return x.String(), nil
	case []byte:
		return base64.StdEncoding.EncodeToString(x), nil
	case time.Time:
		return x.Format(time.RFC3339Nano), nil
	}
	if isNested(v) {
		return "", ErrNotScalar
	}

	s, err := cast.ToStringE(v)
	if err != nil {
		return "", fmt.Errorf("%w: %T", ErrNotScalar, v)
	}

	return s, nil
}
