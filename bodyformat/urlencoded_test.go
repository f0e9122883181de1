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
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/entity/binding"
	"rivaas.dev/entity/bodyformat"
)

const formType = "application/x-www-form-urlencoded"

func TestURLEncoded_SimpleParameters(t *testing.T) {
	t.Parallel()

	body := newBody([]byte("name=Alice&age=30"))
	req := newRequest(t, formType, body,
		binding.Param("name", binding.String),
		binding.Param("age", binding.Int),
	)

	set, err := bodyformat.NewURLEncoded().Resolve(context.Background(), req, binding.MustNew())
	require.NoError(t, err)
	assert.Equal(t, []any{"Alice", 30}, values(set))
	assert.EqualValues(t, 1, body.closed.Load())
}

func TestURLEncoded_SimpleLookupIsCaseSensitive(t *testing.T) {
	t.Parallel()

	req := newRequest(t, formType, newBody([]byte("Name=Alice&age=30")),
		binding.Param("name", binding.String),
		binding.Param("age", binding.Int),
	)

	set, err := bodyformat.NewURLEncoded().Resolve(context.Background(), req, binding.MustNew())
	require.NoError(t, err)
	assert.Equal(t, []any{30}, values(set))
}

func TestURLEncoded_RoundTrip(t *testing.T) {
	t.Parallel()

	// Every value is chosen so that it is not valid base64.
	body := "s=hello+world%21&b=false&i32=-2147483648&i64=-9223372036854775808" +
		"&f=3.25&when=2024-03-01T10%3A30%3A00Z&id=6ba7b810-9dad-11d1-80b4-00c04fd430c8"
	req := newRequest(t, formType, newBody([]byte(body)),
		binding.Param("s", binding.String),
		binding.Param("b", binding.Bool),
		binding.Param("i32", binding.Int32),
		binding.Param("i64", binding.Int64),
		binding.Param("f", binding.Float64),
		binding.Param("when", binding.Time),
		binding.Param("id", binding.UUID),
	)

	set, err := bodyformat.NewURLEncoded().Resolve(context.Background(), req, binding.MustNew())
	require.NoError(t, err)
	require.Equal(t, 7, set.Len())

	got := values(set)
	assert.Equal(t, "hello world!", got[0])
	assert.Equal(t, false, got[1])
	assert.Equal(t, int32(-2147483648), got[2])
	assert.Equal(t, int64(-9223372036854775808), got[3])
	assert.InDelta(t, 3.25, got[4], 0)
	assert.True(t, time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC).Equal(got[5].(time.Time)))
	assert.Equal(t, uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"), got[6])
}

func TestURLEncoded_Base64Quirk(t *testing.T) {
	t.Parallel()

	// "dGVzdA==" is base64 for "test".
	sig := []binding.Parameter{binding.Param("note", binding.String)}

	set, err := bodyformat.NewURLEncoded().Resolve(context.Background(),
		newRequest(t, formType, newBody([]byte("note=dGVzdA%3D%3D")), sig...), binding.MustNew())
	require.NoError(t, err)
	assert.Equal(t, []any{[]byte("test")}, values(set))

	set, err = bodyformat.NewURLEncoded().Resolve(context.Background(),
		newRequest(t, formType, newBody([]byte("note=dGVzdA%3D%3D")), sig...),
		binding.MustNew(binding.WithBase64Policy(binding.Base64BytesOnly)))
	require.NoError(t, err)
	assert.Equal(t, []any{"dGVzdA=="}, values(set))
}

func TestURLEncoded_Complex(t *testing.T) {
	t.Parallel()

	body := newBody([]byte("NAME=Ada+Lovelace&profile.age=36&avatar=aGk%3D"))
	req := newRequest(t, formType, body, binding.Param("profile", profileType))

	set, err := bodyformat.NewURLEncoded().Resolve(context.Background(), req, binding.MustNew())
	require.NoError(t, err)
	require.Equal(t, 1, set.Len())
	assert.EqualValues(t, 1, body.closed.Load())

	p := set.Values()[0].(*profile)
	assert.Equal(t, "Ada Lovelace", p.Name)
	assert.Equal(t, 36, p.Age)
	assert.Equal(t, []byte("hi"), p.Avatar)
}

func TestURLEncoded_LegacyEntryPerField(t *testing.T) {
	t.Parallel()

	req := newRequest(t, formType, newBody([]byte("name=Ada+Lovelace&age=36")),
		binding.Param("profile", profileType),
	)

	b := binding.MustNew(binding.WithComplexEntryPolicy(binding.EntryPerField))
	set, err := bodyformat.NewURLEncoded().Resolve(context.Background(), req, b)
	require.NoError(t, err)
	require.Equal(t, 2, set.Len())
	assert.Same(t, set.Values()[0], set.Values()[1])
}

func TestURLEncoded_Charset(t *testing.T) {
	t.Parallel()

	// "Jos\xe9" is "José" in ISO-8859-1.
	req := newRequest(t, formType+"; charset=iso-8859-1", newBody([]byte("name=Jos\xe9")),
		binding.Param("name", binding.String),
	)

	set, err := bodyformat.NewURLEncoded().Resolve(context.Background(), req, binding.MustNew())
	require.NoError(t, err)
	assert.Equal(t, []any{"José"}, values(set))
}

func TestURLEncoded_Errors(t *testing.T) {
	t.Parallel()

	t.Run("no constructor", func(t *testing.T) {
		t.Parallel()

		body := newBody([]byte("x=1"))
		_, err := bodyformat.NewURLEncoded().Resolve(context.Background(),
			newRequest(t, formType, body, binding.Param("sealed", noCtorType)), binding.MustNew())

		var ute *binding.UnsupportedTypeError
		require.ErrorAs(t, err, &ute)
		assert.Equal(t, "sealed", ute.Parameter)
		assert.Contains(t, err.Error(), "Sealed")
		assert.EqualValues(t, 1, body.closed.Load())
	})

	t.Run("bad escape", func(t *testing.T) {
		t.Parallel()

		body := newBody([]byte("name=%zz"))
		_, err := bodyformat.NewURLEncoded().Resolve(context.Background(),
			newRequest(t, formType, body, binding.Param("name", binding.String)), binding.MustNew())

		var be *bodyformat.BodyError
		require.ErrorAs(t, err, &be)
		assert.Equal(t, http.StatusBadRequest, be.HTTPStatus())
		assert.EqualValues(t, 1, body.closed.Load())
	})

	t.Run("conversion failure", func(t *testing.T) {
		t.Parallel()

		body := newBody([]byte("age=thirty"))
		_, err := bodyformat.NewURLEncoded().Resolve(context.Background(),
			newRequest(t, formType, body, binding.Param("age", binding.Int)), binding.MustNew())

		var bind *binding.BindError
		require.ErrorAs(t, err, &bind)
		assert.Equal(t, "age", bind.Parameter)
		assert.EqualValues(t, 1, body.closed.Load())
	})

	t.Run("body too large", func(t *testing.T) {
		t.Parallel()

		body := newBody([]byte("name=Alice&age=30"))
		req := newRequest(t, formType, body, binding.Param("name", binding.String))
		req.Limit = 4

		_, err := bodyformat.NewURLEncoded().Resolve(context.Background(), req, binding.MustNew())
		require.ErrorIs(t, err, bodyformat.ErrBodyTooLarge)

		var be *bodyformat.BodyError
		require.ErrorAs(t, err, &be)
		assert.Equal(t, http.StatusRequestEntityTooLarge, be.HTTPStatus())
		assert.EqualValues(t, 1, body.closed.Load())
	})

	t.Run("read failure", func(t *testing.T) {
		t.Parallel()

		body := &failingBody{}
		_, err := bodyformat.NewURLEncoded().Resolve(context.Background(),
			newRequest(t, formType, body, binding.Param("name", binding.String)), binding.MustNew())

		var be *bodyformat.BodyError
		require.ErrorAs(t, err, &be)
		assert.Equal(t, "urlencoded", be.Format)
		assert.Equal(t, http.StatusBadRequest, be.HTTPStatus())
		assert.EqualValues(t, 1, body.closed.Load())
	})
}
