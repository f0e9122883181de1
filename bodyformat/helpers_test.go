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

//go:build !integration

package bodyformat_test

import (
	"bytes"
	"io"
	mimemultipart "mime/multipart"
	"net/textproto"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"rivaas.dev/entity/binding"
	"rivaas.dev/entity/bodyformat"
	"rivaas.dev/entity/mediatype"
)

// trackingBody records how often Close was called.
type trackingBody struct {
	io.Reader
	closed atomic.Int32
}

func (b *trackingBody) Close() error {
	b.closed.Add(1)
	return nil
}

func newBody(data []byte) *trackingBody {
	return &trackingBody{Reader: bytes.NewReader(data)}
}

// failingBody fails every read.
type failingBody struct {
	closed atomic.Int32
}

func (b *failingBody) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func (b *failingBody) Close() error {
	b.closed.Add(1)
	return nil
}

type profile struct {
	Name   string `xml:"name" json:"name" yaml:"name" toml:"name" msgpack:"name"`
	Age    int    `xml:"age" json:"age" yaml:"age" toml:"age" msgpack:"age"`
	Avatar []byte `xml:"-" json:"avatar,omitempty" yaml:"-" toml:"-" msgpack:"avatar,omitempty"`
}

var profileType = binding.Object[profile]("Profile",
	binding.Prop("name", func(p *profile, v string) { p.Name = v }),
	binding.Prop("age", func(p *profile, v int) { p.Age = v }),
	binding.Prop("avatar", func(p *profile, v []byte) { p.Avatar = v }),
)

// noCtorType is a complex type that cannot be instantiated.
var noCtorType = binding.ObjectOf("Sealed", nil)

func newRequest(t *testing.T, contentType string, body io.ReadCloser, sig ...binding.Parameter) *bodyformat.Request {
	t.Helper()

	ct, err := mediatype.Parse(contentType)
	require.NoError(t, err)

	return &bodyformat.Request{
		Signature:   sig,
		Body:        body,
		Length:      -1,
		ContentType: ct,
	}
}

// formPart is one part written by buildMultipart.
type formPart struct {
	name     string
	fileName string
	mimeType string
	data     []byte
}

// buildMultipart encodes parts with the standard library writer.
func buildMultipart(t *testing.T, parts ...formPart) ([]byte, string) {
	t.Helper()

	var buf bytes.Buffer
	w := mimemultipart.NewWriter(&buf)
	for _, p := range parts {
		h := make(textproto.MIMEHeader)
		if p.fileName != "" {
			h.Set("Content-Disposition", `form-data; name="`+p.name+`"; filename="`+p.fileName+`"`)
		} else {
			h.Set("Content-Disposition", `form-data; name="`+p.name+`"`)
		}
		if p.mimeType != "" {
			h.Set("Content-Type", p.mimeType)
		}
		pw, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = pw.Write(p.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	return buf.Bytes(), w.FormDataContentType()
}

func values(set *binding.ParameterSet) []any {
	return set.Values()
}

func trimFinal(body []byte) []byte {
	s := string(body)
	i := strings.LastIndex(s, "\r\n--")
	return []byte(s[:i])
}
