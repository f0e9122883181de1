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

// Package mediatype parses Content-Type values and resolves their charset
// parameter to a text encoding.
package mediatype

import (
	"errors"
	"fmt"
	"mime"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// Media types understood by the entity decoders.
const (
	FormURLEncoded = "application/x-www-form-urlencoded"
	MultipartForm  = "multipart/form-data"
	ApplicationXML = "application/xml"
	TextXML        = "text/xml"
	JSON           = "application/json"
	YAML           = "application/yaml"
	TextYAML       = "text/yaml"
	TOML           = "application/toml"
	MsgPack        = "application/msgpack"
	XMsgPack       = "application/x-msgpack"
	Protobuf       = "application/protobuf"
	XProtobuf      = "application/x-protobuf"
	OctetStream    = "application/octet-stream"
)

// Static errors for content type handling.
var (
	ErrInvalidContentType = errors.New("invalid content type")
	ErrUnknownCharset     = errors.New("unknown charset")
)

// ContentType is a parsed Content-Type header value.
// MediaType is always lower case; parameter names are lower case as
// returned by [mime.ParseMediaType].
type ContentType struct {
	MediaType string
	Params    map[string]string
}

// Parse parses a Content-Type header value.
func Parse(s string) (ContentType, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ContentType{}, fmt.Errorf("%w: empty value", ErrInvalidContentType)
	}

	mt, params, err := mime.ParseMediaType(s)
	if err != nil {
		return ContentType{}, fmt.Errorf("%w: %q: %w", ErrInvalidContentType, s, err)
	}

	return ContentType{MediaType: strings.ToLower(mt), Params: params}, nil
}

// MustParse is like [Parse] but panics on error.
// Intended for constants in tests and static wiring.
func MustParse(s string) ContentType {
	ct, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return ct
}

// Is reports whether the media type equals mediaType, ignoring case.
func (c ContentType) Is(mediaType string) bool {
	return strings.EqualFold(c.MediaType, mediaType)
}

// IsZero reports whether c carries no media type.
func (c ContentType) IsZero() bool {
	return c.MediaType == ""
}

// Param returns the named parameter, or "" if absent.
func (c ContentType) Param(name string) string {
	if c.Params == nil {
		return ""
	}

	return c.Params[strings.ToLower(name)]
}

// Charset returns the charset parameter.
func (c ContentType) Charset() string {
	return c.Param("charset")
}

// Boundary returns the multipart boundary parameter.
func (c ContentType) Boundary() string {
	return c.Param("boundary")
}

// Encoding resolves the charset parameter. When the content type declares no
// charset, fallback is returned; a nil fallback means UTF-8.
func (c ContentType) Encoding(fallback encoding.Encoding) (encoding.Encoding, error) {
	if cs := c.Charset(); cs != "" {
		return Lookup(cs)
	}
	if fallback == nil {
		return unicode.UTF8, nil
	}

	return fallback, nil
}

// String formats the content type back into header form.
func (c ContentType) String() string {
	if c.MediaType == "" {
		return ""
	}
	if len(c.Params) == 0 {
		return c.MediaType
	}

	return mime.FormatMediaType(c.MediaType, c.Params)
}

// Lookup returns the encoding registered for a charset label such as
// "utf-8", "latin1" or "windows-1252".
func Lookup(charset string) (encoding.Encoding, error) {
	charset = strings.TrimSpace(charset)
	if charset == "" {
		return unicode.UTF8, nil
	}

	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCharset, charset)
	}

	return enc, nil
}

// Decode converts data from enc to a Go string. A nil or UTF-8 encoding
// returns the bytes unchanged.
func Decode(enc encoding.Encoding, data []byte) (string, error) {
	if enc == nil || enc == unicode.UTF8 || enc == encoding.Nop {
		return string(data), nil
	}

	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}

	return string(out), nil
}

// Encode converts s into enc. A nil or UTF-8 encoding returns the bytes of s.
func Encode(enc encoding.Encoding, s string) ([]byte, error) {
	if enc == nil || enc == unicode.UTF8 || enc == encoding.Nop {
		return []byte(s), nil
	}

	return enc.NewEncoder().Bytes([]byte(s))
}
