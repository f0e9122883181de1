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
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// convert turns raw into the Go value of kind. Numbers use the invariant
// format accepted by strconv; surrounding whitespace is ignored for every
// kind except strings and bytes.
func (b *Binder) convert(raw string, kind Kind) (any, error) {
	switch kind {
	case KindString:
		return raw, nil

	case KindBytes:
		return []byte(raw), nil

	case KindBool:
		return parseBoolGenerous(raw)

	case KindByte:
		u, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid byte: %w", err)
		}
		return uint8(u), nil

	case KindInt32:
		i, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid integer: %w", err)
		}
		return int32(i), nil

	case KindInt64:
		i, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer: %w", err)
		}
		return i, nil

	case KindInt:
		i, err := strconv.ParseInt(strings.TrimSpace(raw), 10, strconv.IntSize)
		if err != nil {
			return nil, fmt.Errorf("invalid integer: %w", err)
		}
		return int(i), nil

	case KindFloat64:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float: %w", err)
		}
		return f, nil

	case KindTime:
		return parseTime(raw, b.opts.TimeLayouts)

	case KindUUID:
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidUUIDFormat, err)
		}
		return id, nil

	case KindAny:
		v, _ := b.Infer(raw)
		return v, nil

	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedType, kind)
	}
}

// parseBoolGenerous parses various boolean string representations.
// It supports: true/false, 1/0, yes/no, on/off, t/f, y/n (case-insensitive).
func parseBoolGenerous(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on", "t", "y":
		return true, nil
	case "false", "0", "no", "off", "f", "n", "":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrInvalidBooleanValue, s)
	}
}

// parseTime tries the built-in layouts, then the configured ones.
func parseTime(value string, layouts []string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrEmptyTimeValue
	}

	for _, layout := range defaultTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w %q (tried RFC3339, date-only, and other common formats)", ErrUnableToParseTime, value)
}

// decodeBase64 reports whether s is non-empty, padded standard base64 and
// returns the decoded bytes.
func decodeBase64(s string) ([]byte, bool) {
	if s == "" || len(s)%4 != 0 {
		return nil, false
	}

	data, err := base64.StdEncoding.Strict().DecodeString(s)
	if err != nil {
		return nil, false
	}

	return data, true
}
