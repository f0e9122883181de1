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

package multipart

import (
	"bytes"
	"fmt"
	"iter"
	"strings"

	"golang.org/x/text/encoding"

	"rivaas.dev/entity/mediatype"
)

// Option configures a [Scanner].
type Option func(*Scanner)

// WithEncoding sets the text encoding of part headers and of a string
// boundary. Part data is never decoded. Default: UTF-8.
func WithEncoding(enc encoding.Encoding) Option {
	return func(s *Scanner) {
		if enc != nil {
			s.enc = enc
		}
	}
}

// WithLenientFraming selects the framing policy. When lenient (the default)
// malformed framing ends the scan silently; otherwise [Scanner.Err] reports
// a [*FramingError].
func WithLenientFraming(lenient bool) Option {
	return func(s *Scanner) {
		s.lenient = lenient
	}
}

// Scanner yields the parts of an in-memory multipart/form-data body.
// It is lazy and not restartable: each call to [Scanner.Scan] advances to
// the next named part. A Scanner is not safe for concurrent use.
type Scanner struct {
	data    []byte
	delim   []byte
	enc     encoding.Encoding
	lenient bool

	pos     int
	started bool
	done    bool
	part    *Part
	err     error
}

// NewScanner returns a scanner over the first length bytes of data.
// The delimiter is "--" followed by boundary, encoded with the header
// encoding. A negative length or one beyond len(data) means all of data.
// A boundary the header encoding cannot represent yields no parts and
// [Scanner.Err] reports [ErrUnencodableBoundary].
func NewScanner(data []byte, length int, boundary string, opts ...Option) *Scanner {
	s := newScanner(data, length, opts)
	if boundary == "" {
		s.fail(ErrEmptyBoundary)
		return s
	}

	delim, err := mediatype.Encode(s.enc, "--"+boundary)
	if err != nil {
		s.fail(fmt.Errorf("%w: %w", ErrUnencodableBoundary, err))
		return s
	}
	s.delim = delim

	return s
}

// NewScannerBytes is like [NewScanner] but takes the complete delimiter,
// including its leading dashes, as raw bytes.
func NewScannerBytes(data []byte, length int, delimiter []byte, opts ...Option) *Scanner {
	s := newScanner(data, length, opts)
	if len(delimiter) == 0 {
		s.fail(ErrEmptyBoundary)
		return s
	}
	s.delim = bytes.Clone(delimiter)

	return s
}

func newScanner(data []byte, length int, opts []Option) *Scanner {
	if length < 0 || length > len(data) {
		length = len(data)
	}

	s := &Scanner{
		data:    data[:length],
		enc:     encoding.Nop,
		lenient: true,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Parse scans every part of data and returns them in source order.
// The error is non-nil only in strict mode or for an empty boundary.
func Parse(data []byte, length int, boundary string, opts ...Option) ([]*Part, error) {
	sc := NewScanner(data, length, boundary, opts...)

	var parts []*Part
	for sc.Scan() {
		parts = append(parts, sc.Part())
	}

	return parts, sc.Err()
}

// Scan advances to the next named part. It returns false when the final
// boundary has been consumed, the data is exhausted, or framing failed.
func (s *Scanner) Scan() bool {
	s.part = nil
	if s.done {
		return false
	}

	if !s.started {
		if !s.skipPreamble() {
			return false
		}
	}

	for !s.done {
		p, ok := s.next()
		if !ok {
			return false
		}
		if p != nil {
			s.part = p
			return true
		}
	}

	return false
}

// Part returns the part produced by the last successful call to Scan.
func (s *Scanner) Part() *Part {
	return s.part
}

// Err returns the framing error that ended the scan, if any.
// In lenient mode framing problems are not reported.
func (s *Scanner) Err() error {
	return s.err
}

// Parts returns the remaining parts as an iterator.
func (s *Scanner) Parts() iter.Seq[*Part] {
	return func(yield func(*Part) bool) {
		for s.Scan() {
			if !yield(s.part) {
				return
			}
		}
	}
}

// skipPreamble moves past everything up to and including the first
// boundary line.
func (s *Scanner) skipPreamble() bool {
	for {
		start, end, ok := s.nextLine()
		if !ok {
			s.frameError(start, "opening boundary", ErrMissingBoundary)
			return false
		}

		isBoundary, final := s.matchBoundary(s.data[start:end])
		if !isBoundary {
			continue
		}

		s.started = true
		if final {
			s.done = true
			return false
		}

		return true
	}
}

// next reads one part positioned just after a boundary line.
// It returns (nil, true) for a part without a name.
func (s *Scanner) next() (*Part, bool) {
	p := &Part{}

	// Headers run until the first blank line.
	for {
		start, end, ok := s.nextLine()
		if !ok {
			s.frameError(start, "blank line after part headers", ErrTruncated)
			return nil, false
		}
		if start == end {
			break
		}
		s.parseHeader(p, s.data[start:end])
	}

	dataStart := s.pos
	for {
		start, end, ok := s.nextLine()
		if !ok {
			s.frameError(dataStart, "closing boundary", ErrTruncated)
			return nil, false
		}

		isBoundary, final := s.matchBoundary(s.data[start:end])
		if !isBoundary {
			continue
		}

		dataEnd := trimLineEnd(s.data, dataStart, start)
		p.data = bytes.Clone(s.data[dataStart:dataEnd])
		if p.data == nil {
			p.data = []byte{}
		}
		if final {
			s.done = true
		}

		break
	}

	if p.name == "" {
		return nil, true
	}

	return p, true
}

// nextLine returns the logical bounds of the line at the current position
// and advances past its terminator. The logical end excludes LF and a CR
// directly before it. ok is false once the data is exhausted.
func (s *Scanner) nextLine() (start, end int, ok bool) {
	start = s.pos
	if start >= len(s.data) {
		return start, start, false
	}

	i := bytes.IndexByte(s.data[start:], '\n')
	if i < 0 {
		end = len(s.data)
		s.pos = end
	} else {
		end = start + i
		s.pos = end + 1
	}
	if end > start && s.data[end-1] == '\r' {
		end--
	}

	return start, end, true
}

// matchBoundary compares a logical line against the delimiter.
func (s *Scanner) matchBoundary(line []byte) (isBoundary, final bool) {
	n := len(s.delim)
	switch len(line) {
	case n:
		return bytes.Equal(line, s.delim), false
	case n + 2:
		if bytes.Equal(line[:n], s.delim) && line[n] == '-' && line[n+1] == '-' {
			return true, true
		}
	}

	return false, false
}

func (s *Scanner) parseHeader(p *Part, line []byte) {
	text, err := mediatype.Decode(s.enc, line)
	if err != nil {
		text = string(line)
	}

	key, value, ok := strings.Cut(text, ":")
	if !ok {
		return
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)

	switch {
	case strings.EqualFold(key, "Content-Disposition"):
		if name, found := dispositionParam(value, "name"); found {
			p.name = name
		}
		if fileName, found := dispositionParam(value, "filename"); found {
			p.fileName = fileName
			p.isFile = true
		}
	case strings.EqualFold(key, "Content-Type"):
		if ct, err := mediatype.Parse(value); err == nil {
			p.contentType = ct
			p.hasContentType = true
		}
	}
}

func (s *Scanner) fail(err error) {
	s.done = true
	s.err = err
}

func (s *Scanner) frameError(offset int, reason string, sentinel error) {
	s.done = true
	if s.lenient {
		return
	}
	s.err = &FramingError{Offset: offset, Reason: reason, Err: sentinel}
}

// trimLineEnd strips the single line terminator that precedes a boundary
// line starting at end.
func trimLineEnd(data []byte, start, end int) int {
	if end > start && data[end-1] == '\n' {
		end--
		if end > start && data[end-1] == '\r' {
			end--
		}
	}

	return end
}

// dispositionParam finds key=value in a Content-Disposition value. The key
// must start the value or follow ';' or whitespace, so "name" never matches
// inside "filename". Quoted values run to the next quote.
func dispositionParam(header, key string) (string, bool) {
	lower := strings.ToLower(header)
	needle := key + "="

	for from := 0; from < len(lower); {
		i := strings.Index(lower[from:], needle)
		if i < 0 {
			return "", false
		}
		i += from
		from = i + len(needle)

		if i > 0 {
			switch lower[i-1] {
			case ';', ' ', '\t':
			default:
				continue
			}
		}

		rest := strings.TrimLeft(header[i+len(needle):], " \t")
		if strings.HasPrefix(rest, `"`) {
			rest = rest[1:]
			if j := strings.IndexByte(rest, '"'); j >= 0 {
				return rest[:j], true
			}

			return rest, true
		}

		if j := strings.IndexByte(rest, ';'); j >= 0 {
			rest = rest[:j]
		}

		return strings.TrimSpace(rest), true
	}

	return "", false
}
