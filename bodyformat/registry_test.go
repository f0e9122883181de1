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
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/entity/bodyformat"
	"rivaas.dev/entity/mediatype"
)

func TestRegistry_Lookup(t *testing.T) {
	t.Parallel()

	reg := bodyformat.Default()

	tests := []struct {
		contentType string
		want        string
	}{
		{"application/x-www-form-urlencoded", mediatype.FormURLEncoded},
		{"application/x-www-form-urlencoded; charset=utf-8", mediatype.FormURLEncoded},
		{"multipart/form-data; boundary=xyz", mediatype.MultipartForm},
		{"application/xml", mediatype.ApplicationXML},
		{"Text/XML; charset=iso-8859-1", mediatype.ApplicationXML},
		{"application/json", mediatype.JSON},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			t.Parallel()

			res, err := reg.Lookup(mediatype.MustParse(tt.contentType))
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.MediaTypes()[0])
		})
	}
}

func TestRegistry_Unsupported(t *testing.T) {
	t.Parallel()

	res, err := bodyformat.Default().Lookup(mediatype.MustParse("application/octet-stream"))
	assert.Nil(t, res)
	require.ErrorIs(t, err, bodyformat.ErrUnsupportedBodyFormat)

	var ufe *bodyformat.UnsupportedFormatError
	require.ErrorAs(t, err, &ufe)
	assert.Equal(t, "application/octet-stream", ufe.MediaType)
	assert.Equal(t, http.StatusInternalServerError, ufe.HTTPStatus())
	assert.Equal(t, "unsupported_body_format", ufe.Code())
	assert.Contains(t, ufe.Supported, mediatype.MultipartForm)
	assert.Contains(t, err.Error(), "application/octet-stream")

	_, err = bodyformat.NewRegistry().Lookup(mediatype.MustParse("application/json"))
	require.ErrorIs(t, err, bodyformat.ErrUnsupportedBodyFormat)
	assert.Contains(t, err.Error(), "no resolvers registered")
}

func TestRegistry_OrderFirstMatchWins(t *testing.T) {
	t.Parallel()

	first := bodyformat.NewTyped("first", bodyformat.JSONCodec{}, []string{mediatype.JSON})
	second := bodyformat.NewTyped("second", bodyformat.JSONCodec{}, []string{mediatype.JSON})

	reg := bodyformat.NewRegistry(first).With(second)
	res, err := reg.Lookup(mediatype.MustParse("application/json"))
	require.NoError(t, err)
	assert.Same(t, first, res)
	assert.Len(t, reg.Resolvers(), 2)
	assert.Equal(t, []string{mediatype.JSON}, reg.MediaTypes())
}

func TestRegistry_MediaTypes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{
		mediatype.FormURLEncoded,
		mediatype.MultipartForm,
		mediatype.ApplicationXML,
		mediatype.TextXML,
		mediatype.JSON,
	}, bodyformat.Default().MediaTypes())
}

func TestBodyError(t *testing.T) {
	t.Parallel()

	err := &bodyformat.BodyError{Format: "json", Err: errors.New("unexpected end")}
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus())
	assert.Equal(t, "malformed_body", err.Code())
	assert.Equal(t, "decoding json body: unexpected end", err.Error())

	tooLarge := &bodyformat.BodyError{Format: "xml", Err: bodyformat.ErrBodyTooLarge}
	assert.Equal(t, http.StatusRequestEntityTooLarge, tooLarge.HTTPStatus())
	assert.Equal(t, "body_too_large", tooLarge.Code())
	require.ErrorIs(t, tooLarge, bodyformat.ErrBodyTooLarge)
}
