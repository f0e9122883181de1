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

package multipart_test

import (
	"encoding/base64"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"rivaas.dev/entity/mediatype"
	"rivaas.dev/entity/multipart"
)

func TestPart_FormItem(t *testing.T) {
	t.Parallel()

	src := []byte("hello")
	p := multipart.NewFormItem("greeting", src)
	src[0] = 'J'

	assert.Equal(t, "greeting", p.Name())
	assert.True(t, p.IsFormItem())
	assert.False(t, p.IsFile())
	assert.Nil(t, p.File())
	assert.Equal(t, 5, p.Len())

	text, err := p.Text(nil)
	require.NoError(t, err)
	assert.Equal(t, "hello", text)

	b := p.Bytes()
	b[0] = 'x'
	assert.Equal(t, "hello", string(p.Bytes()), "Bytes must return a copy")

	data, err := io.ReadAll(p.Reader())
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestPart_Text(t *testing.T) {
	t.Parallel()

	latin := []byte{'c', 'a', 'f', 0xE9}

	t.Run("fallback encoding", func(t *testing.T) {
		t.Parallel()

		text, err := multipart.NewFormItem("x", latin).Text(charmap.ISO8859_1)
		require.NoError(t, err)
		assert.Equal(t, "café", text)
	})

	t.Run("declared charset wins over fallback", func(t *testing.T) {
		t.Parallel()

		p := multipart.NewFilePart("x", "x.txt", "text/plain; charset=windows-1252", latin)
		text, err := p.Text(nil)
		require.NoError(t, err)
		assert.Equal(t, "café", text)
	})

	t.Run("unknown charset", func(t *testing.T) {
		t.Parallel()

		p := multipart.NewFilePart("x", "x.txt", "text/plain; charset=nope", latin)
		_, err := p.Text(nil)
		require.ErrorIs(t, err, mediatype.ErrUnknownCharset)
	})
}

func TestPart_Base64(t *testing.T) {
	t.Parallel()

	raw := []byte{0x00, 0x01, 0xfe, 0xff}
	p := multipart.NewFilePart("blob", "b.bin", "", raw)

	decoded, err := base64.StdEncoding.DecodeString(p.Base64())
	require.NoError(t, err)
	assert.Equal(t, raw, decoded)

	_, ok := p.ContentType()
	assert.False(t, ok)
}

func TestPart_File(t *testing.T) {
	t.Parallel()

	t.Run("metadata", func(t *testing.T) {
		t.Parallel()

		f := multipart.NewFilePart("upload", "test.txt", "text/plain", []byte("content")).File()
		require.NotNil(t, f)
		assert.Equal(t, "test.txt", f.Name)
		assert.Equal(t, "text/plain", f.ContentType)
		assert.Equal(t, int64(7), f.Size)
	})

	t.Run("default content type", func(t *testing.T) {
		t.Parallel()

		f := multipart.NewFilePart("upload", "blob", "", []byte{1}).File()
		assert.Equal(t, "application/octet-stream", f.ContentType)
	})

	t.Run("path traversal is sanitized", func(t *testing.T) {
		t.Parallel()

		f := multipart.NewFilePart("upload", "../../etc/passwd", "", nil).File()
		assert.Equal(t, "passwd", f.Name)
		assert.NotContains(t, f.Name, "/")
	})

	t.Run("backslashes are sanitized", func(t *testing.T) {
		t.Parallel()

		f := multipart.NewFilePart("upload", `C:\Users\me\photo.jpg`, "", nil).File()
		assert.NotContains(t, f.Name, `\`)
		assert.Equal(t, "C:_Users_me_photo.jpg", f.Name)
	})

	t.Run("open and bytes", func(t *testing.T) {
		t.Parallel()

		f := multipart.NewFilePart("upload", "a.txt", "", []byte("abc")).File()

		rc, err := f.Open()
		require.NoError(t, err)
		defer func() { _ = rc.Close() }()

		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "abc", string(data))

		b, err := f.Bytes()
		require.NoError(t, err)
		assert.Equal(t, "abc", string(b))
	})
}

func TestFile_Save(t *testing.T) {
	t.Parallel()

	content := []byte("saved content")
	f := multipart.NewFilePart("upload", "s.txt", "", content).File()

	t.Run("nested directories are created", func(t *testing.T) {
		t.Parallel()

		dst := filepath.Join(t.TempDir(), "a", "b", "c", "s.txt")
		require.NoError(t, f.Save(dst))

		got, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.Equal(t, content, got)
	})

	t.Run("path is cleaned", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, f.Save(dir+"/x/../s.txt"))

		_, err := os.Stat(filepath.Join(dir, "s.txt"))
		assert.NoError(t, err)
	})
}

func TestFile_Ext(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filename string
		expected string
	}{
		{name: "simple extension", filename: "photo.jpg", expected: ".jpg"},
		{name: "multiple extensions", filename: "archive.tar.gz", expected: ".gz"},
		{name: "no extension", filename: "README", expected: ""},
		{name: "dot file", filename: ".gitignore", expected: ".gitignore"},
		{name: "uppercase extension", filename: "document.PDF", expected: ".PDF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := multipart.NewFilePart("file", tt.filename, "", []byte("content")).File()
			assert.Equal(t, tt.expected, f.Ext())
		})
	}
}
