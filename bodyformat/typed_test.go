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
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/entity/binding"
	"rivaas.dev/entity/bodyformat"
)

const profileXML = `<?xml version="1.0"?>
<profile><name>Ada Lovelace</name><age>36</age></profile>`

func TestXML_Complex(t *testing.T) {
	t.Parallel()

	body := newBody([]byte(profileXML))
	req := newRequest(t, "application/xml", body, binding.Param("profile", profileType))

	set, err := bodyformat.NewXML().Resolve(context.Background(), req, binding.MustNew())
	require.NoError(t, err)
	require.Equal(t, 1, set.Len())
	assert.Equal(t, &profile{Name: "Ada Lovelace", Age: 36}, set.Values()[0])
	assert.EqualValues(t, 1, body.closed.Load())
}

func TestXML_Simple(t *testing.T) {
	t.Parallel()

	body := newBody([]byte(profileXML))
	req := newRequest(t, "text/xml", body,
		binding.Param("Name", binding.String),
		binding.Param("age", binding.Int),
	)

	set, err := bodyformat.NewXML().Resolve(context.Background(), req, binding.MustNew())
	require.NoError(t, err)
	assert.Equal(t, []any{"Ada Lovelace", 36}, values(set))
	assert.EqualValues(t, 1, body.closed.Load())
}

func TestXML_PrologCharset(t *testing.T) {
	t.Parallel()

	doc := []byte("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><p><name>Jos\xe9</name></p>")
	req := newRequest(t, "application/xml", newBody(doc), binding.Param("name", binding.String))

	set, err := bodyformat.NewXML().Resolve(context.Background(), req, binding.MustNew())
	require.NoError(t, err)
	assert.Equal(t, []any{"José"}, values(set))
}

func TestXMLCodec_Records(t *testing.T) {
	t.Parallel()

	doc := `<users>
  <user id="7"><name>ada</name><age>36</age></user>
  <user id="8"><name>bob</name></user>
  <note lang="en">hi</note>
</users>`

	records, err := bodyformat.XMLCodec{}.Records([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, []bodyformat.Record{
		{{Name: "id", Value: "7"}, {Name: "name", Value: "ada"}, {Name: "age", Value: "36"}},
		{{Name: "id", Value: "8"}, {Name: "name", Value: "bob"}},
		{{Name: "lang", Value: "en"}},
		{{Name: "note", Value: "hi"}},
	}, records)

	_, err = bodyformat.XMLCodec{}.Records([]byte("<a><b>"))
	require.Error(t, err)
}

func TestXML_Errors(t *testing.T) {
	t.Parallel()

	t.Run("no constructor", func(t *testing.T) {
		t.Parallel()

		body := newBody([]byte(profileXML))
		_, err := bodyformat.NewXML().Resolve(context.Background(),
			newRequest(t, "application/xml", body, binding.Param("sealed", noCtorType)), binding.MustNew())
		require.ErrorIs(t, err, binding.ErrUnsupportedParameterType)
		assert.EqualValues(t, 1, body.closed.Load())
	})

	t.Run("read failure", func(t *testing.T) {
		t.Parallel()

		body := &failingBody{}
		_, err := bodyformat.NewXML().Resolve(context.Background(),
			newRequest(t, "application/xml", body, binding.Param("name", binding.String)), binding.MustNew())

		var be *bodyformat.BodyError
		require.ErrorAs(t, err, &be)
		assert.Equal(t, "xml", be.Format)
		assert.Equal(t, "malformed_body", be.Code())
		assert.EqualValues(t, 1, body.closed.Load())
	})

	t.Run("malformed", func(t *testing.T) {
		t.Parallel()

		body := newBody([]byte("<profile><name>"))
		_, err := bodyformat.NewXML().Resolve(context.Background(),
			newRequest(t, "application/xml", body, binding.Param("profile", profileType)), binding.MustNew())

		var be *bodyformat.BodyError
		require.ErrorAs(t, err, &be)
		assert.Equal(t, "xml", be.Format)
		assert.EqualValues(t, 1, body.closed.Load())
	})
}

func TestJSON_ComplexAndSimple(t *testing.T) {
	t.Parallel()

	doc := []byte(`{"name":"Ada Lovelace","age":36,"id":9007199254740993}`)

	body := newBody(doc)
	set, err := bodyformat.NewJSON().Resolve(context.Background(),
		newRequest(t, "application/json", body, binding.Param("profile", profileType)), binding.MustNew())
	require.NoError(t, err)
	assert.Equal(t, &profile{Name: "Ada Lovelace", Age: 36}, set.Values()[0])
	assert.EqualValues(t, 1, body.closed.Load())

	body = newBody(doc)
	set, err = bodyformat.NewJSON().Resolve(context.Background(),
		newRequest(t, "application/json", body,
			binding.Param("name", binding.String),
			binding.Param("id", binding.Int64),
		), binding.MustNew(binding.WithBase64Policy(binding.Base64BytesOnly)))
	require.NoError(t, err)
	assert.Equal(t, []any{"Ada Lovelace", int64(9007199254740993)}, values(set))
	assert.EqualValues(t, 1, body.closed.Load())
}

func TestJSON_EachRecordBinds(t *testing.T) {
	t.Parallel()

	doc := []byte(`[{"name":"ada"},{"name":"bob"},{"other":1}]`)
	set, err := bodyformat.NewJSON().Resolve(context.Background(),
		newRequest(t, "application/json", newBody(doc), binding.Param("name", binding.String)), binding.MustNew())
	require.NoError(t, err)
	assert.Equal(t, []any{"ada", "bob"}, values(set))
}

func TestJSON_Malformed(t *testing.T) {
	t.Parallel()

	body := newBody([]byte(`{"name":`))
	_, err := bodyformat.NewJSON().Resolve(context.Background(),
		newRequest(t, "application/json", body, binding.Param("name", binding.String)), binding.MustNew())

	var be *bodyformat.BodyError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "malformed_body", be.Code())
	assert.EqualValues(t, 1, body.closed.Load())
}

func TestJSON_ReadFailure(t *testing.T) {
	t.Parallel()

	body := &failingBody{}
	_, err := bodyformat.NewJSON().Resolve(context.Background(),
		newRequest(t, "application/json", body, binding.Param("profile", profileType)), binding.MustNew())

	var be *bodyformat.BodyError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "json", be.Format)
	assert.EqualValues(t, 1, body.closed.Load())
}

func TestRecordsOf(t *testing.T) {
	t.Parallel()

	doc := map[string]any{
		"b": 1,
		"a": "x",
		"child": map[string]any{
			"z": true,
		},
		"list": []any{
			map[string]any{"k": "v1"},
			"scalar",
			map[any]any{"k": "v2"},
		},
	}

	assert.Equal(t, []bodyformat.Record{
		{{Name: "a", Value: "x"}, {Name: "b", Value: 1}},
		{{Name: "z", Value: true}},
		{{Name: "k", Value: "v1"}},
		{{Name: "k", Value: "v2"}},
	}, bodyformat.RecordsOf(doc))

	assert.Empty(t, bodyformat.RecordsOf("scalar"))
}

func TestRecord_Lookup(t *testing.T) {
	t.Parallel()

	rec := bodyformat.Record{{Name: "Name", Value: "ada"}, {Name: "name", Value: "bob"}}
	v, ok := rec.Lookup("NAME")
	assert.True(t, ok)
	assert.Equal(t, "ada", v)

	_, ok = rec.Lookup("age")
	assert.False(t, ok)
}

func TestStringify(t *testing.T) {
	t.Parallel()

	when := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		in      any
		want    string
		wantErr bool
	}{
		{name: "nil", in: nil, want: ""},
		{name: "string", in: "x", want: "x"},
		{name: "int", in: 36, want: "36"},
		{name: "uint8", in: uint8(7), want: "7"},
		{name: "float", in: 3.25, want: "3.25"},
		{name: "bool", in: true, want: "true"},
		{name: "json number", in: json.Number("9007199254740993"), want: "9007199254740993"},
		{name: "bytes", in: []byte("hi"), want: "aGk="},
		{name: "time", in: when, want: "2024-03-01T10:30:00Z"},
		{name: "map", in: map[string]any{}, wantErr: true},
		{name: "list", in: []any{1}, wantErr: true},
		{name: "struct", in: struct{}{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := bodyformat.Stringify(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, bodyformat.ErrNotScalar)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
