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

package dispatch_test

import (
	"bytes"
	"io"
	mimemultipart "mime/multipart"
	"net/textproto"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"rivaas.dev/entity/binding"
)

type trackingBody struct {
	io.Reader
	closed atomic.Int32
}

func (b *trackingBody) Close() error {
	b.closed.Add(1)
	return nil
}

func newBody(s string) *trackingBody {
	return &trackingBody{Reader: bytes.NewReader([]byte(s))}
}

type profile struct {
	Name string `json:"name" validate:"required"`
	Age  int    `json:"age" validate:"gte=0,lte=150"`
}

var profileType = binding.Object[profile]("Profile",
	binding.Prop("name", func(p *profile, v string) { p.Name = v }),
	binding.Prop("age", func(p *profile, v int) { p.Age = v }),
)

var userSig = binding.Signature{
	binding.Param("name", binding.String),
	binding.Param("age", binding.Int),
}

type part struct {
	name, fileName, mimeType string
	data                     []byte
}

func multipartBody(t *testing.T, parts ...part) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	w := mimemultipart.NewWriter(&buf)
	for _, p := range parts {
		h := make(textproto.MIMEHeader)
		disposition := `form-data; name="` + p.name + `"`
		if p.fileName != "" {
			disposition += `; filename="` + p.fileName + `"`
		}
		h.Set("Content-Disposition", disposition)
		if p.mimeType != "" {
			h.Set("Content-Type", p.mimeType)
		}
		pw, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = pw.Write(p.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	return buf.String(), w.FormDataContentType()
}
