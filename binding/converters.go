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
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Parser converts a raw string to a value of Kind. Parse returns false when
// the string is not in the parser's format.
type Parser struct {
	Kind  Kind
	Parse func(string) (any, bool)
}

// BoolParser accepts exactly "true" or "false", ignoring case.
func BoolParser() Parser {
	return Parser{Kind: KindBool, Parse: func(s string) (any, bool) {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
		return nil, false
	}}
}

// ByteParser accepts decimal integers in [0, 255].
func ByteParser() Parser {
	return Parser{Kind: KindByte, Parse: func(s string) (any, bool) {
		u, err := strconv.ParseUint(strings.TrimSpace(s), 10, 8)
		if err != nil {
			return nil, false
		}
		return uint8(u), true
	}}
}

// Int32Parser accepts decimal integers that fit in 32 bits.
func Int32Parser() Parser {
	return Parser{Kind: KindInt32, Parse: func(s string) (any, bool) {
		i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
		if err != nil {
			return nil, false
		}
		return int32(i), true
	}}
}

// Int64Parser accepts decimal integers that fit in 64 bits.
func Int64Parser() Parser {
	return Parser{Kind: KindInt64, Parse: func(s string) (any, bool) {
		i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return nil, false
		}
		return i, true
	}}
}

// Float64Parser accepts anything strconv.ParseFloat does.
func Float64Parser() Parser {
	return Parser{Kind: KindFloat64, Parse: func(s string) (any, bool) {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, false
		}
		return f, true
	}}
}

// TimeParser accepts the built-in layouts followed by layouts.
func TimeParser(layouts ...string) Parser {
	return Parser{Kind: KindTime, Parse: func(s string) (any, bool) {
		t, err := parseTime(s, layouts)
		if err != nil {
			return nil, false
		}
		return t, true
	}}
}

// UUIDParser accepts the forms understood by uuid.Parse.
func UUIDParser() Parser {
	return Parser{Kind: KindUUID, Parse: func(s string) (any, bool) {
		id, err := uuid.Parse(strings.TrimSpace(s))
		if err != nil {
			return nil, false
		}
		return id, true
	}}
}

// DefaultParsers returns the inference order: bool, byte, int32, int64,
// float64, time, uuid. Strings that match none stay strings.
func DefaultParsers(timeLayouts ...string) []Parser {
	return []Parser{
		BoolParser(),
		ByteParser(),
		Int32Parser(),
		Int64Parser(),
		Float64Parser(),
		TimeParser(timeLayouts...),
		UUIDParser(),
	}
}

// Infer runs the parsers in order and returns the first match, or raw
// itself as a string.
func Infer(raw string, parsers []Parser) (any, Kind) {
	for _, p := range parsers {
		if v, ok := p.Parse(raw); ok {
			return v, p.Kind
		}
	}

	return raw, KindString
}
