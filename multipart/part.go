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
	"encoding/base64"
	"io"

	"golang.org/x/text/encoding"

	"rivaas.dev/entity/mediatype"
)

// Part is one decoded multipart/form-data segment. It is immutable and owns
// its data. Exactly one of [Part.IsFile] and [Part.IsFormItem] is true.
type Part struct {
	name           string
	fileName       string
	isFile         bool
	contentType    mediatype.ContentType
	hasContentType bool
	data           []byte
}

// NewFormItem builds a form-field part. data is copied.
func NewFormItem(name string, data []byte) *Part {
	return &Part{name: name, data: bytes.Clone(data)}
}

// NewFilePart builds a file part. contentType may be empty. data is copied.
func NewFilePart(name, fileName, contentType string, data []byte) *Part {
	p := &Part{name: name, fileName: fileName, isFile: true, data: bytes.Clone(data)}
	if ct, err := mediatype.Parse(contentType); err == nil {
		p.contentType = ct
		p.hasContentType = true
	}

	return p
}

// Name returns the form field name from Content-Disposition.
func (p *Part) Name() string {
	return p.name
}

// FileName returns the client supplied file name and whether one was sent.
func (p *Part) FileName() (string, bool) {
	return p.fileName, p.isFile
}

// IsFile reports whether the part carried a filename attribute.
func (p *Part) IsFile() bool {
	return p.isFile
}

// IsFormItem reports whether the part is a plain form field.
func (p *Part) IsFormItem() bool {
	return !p.isFile
}

// ContentType returns the part's own Content-Type, if it declared one.
func (p *Part) ContentType() (mediatype.ContentType, bool) {
	return p.contentType, p.hasContentType
}

// Len returns the size of the part data in bytes.
func (p *Part) Len() int {
	return len(p.data)
}

// Bytes returns a copy of the part data.
func (p *Part) Bytes() []byte {
	return bytes.Clone(p.data)
}

// Reader returns a reader over the part data.
func (p *Part) Reader() io.Reader {
	return bytes.NewReader(p.data)
}

// Text decodes the data as text. A charset declared on the part wins over
// fallback; a nil fallback means UTF-8.
func (p *Part) Text(fallback encoding.Encoding) (string, error) {
	enc := fallback
	if p.hasContentType && p.contentType.Charset() != "" {
		var err error
		if enc, err = mediatype.Lookup(p.contentType.Charset()); err != nil {
			return "", err
		}
	}

	return mediatype.Decode(enc, p.data)
}

// Base64 returns the data encoded with standard base64.
func (p *Part) Base64() string {
	return base64.StdEncoding.EncodeToString(p.data)
}

// File returns the part as an uploaded file, or nil for a form item.
func (p *Part) File() *File {
	if !p.isFile {
		return nil
	}

	ct := ""
	if p.hasContentType {
		ct = p.contentType.MediaType
	}

	return newFile(p.fileName, ct, p.data)
}
