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
	"io"
	"os"
	"path/filepath"
	"strings"

	"rivaas.dev/entity/mediatype"
)

// File is an uploaded file taken from a file part.
type File struct {
	// Name is the sanitized file name: no directory components, backslashes
	// replaced by underscores.
	Name string

	// ContentType is the declared media type, application/octet-stream when
	// the part had none.
	ContentType string

	// Size is the length of the content in bytes.
	Size int64

	data []byte
}

func newFile(fileName, contentType string, data []byte) *File {
	if contentType == "" {
		contentType = mediatype.OctetStream
	}

	return &File{
		Name:        sanitizeFileName(fileName),
		ContentType: contentType,
		Size:        int64(len(data)),
		data:        data,
	}
}

// Bytes returns a copy of the file content.
func (f *File) Bytes() ([]byte, error) {
	return bytes.Clone(f.data), nil
}

// Open returns a reader over the file content.
func (f *File) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

// Ext returns the extension of the sanitized name, including the dot.
func (f *File) Ext() string {
	return filepath.Ext(f.Name)
}

// Save writes the content to dst, creating parent directories as needed.
func (f *File) Save(dst string) error {
	dst = filepath.Clean(dst)

	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return fmt.Errorf("create directory for %q: %w", dst, err)
	}
	if err := os.WriteFile(dst, f.data, 0o600); err != nil {
		return fmt.Errorf("save %q: %w", dst, err)
	}

	return nil
}

func sanitizeFileName(name string) string {
	name = strings.ReplaceAll(name, "\\", "_")
	name = filepath.Base(filepath.Clean("/" + name))
	if name == "/" || name == "." || name == ".." {
		return ""
	}

	return name
}
