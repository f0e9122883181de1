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

package msgpack_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vmsgpack "github.com/vmihailenco/msgpack/v5"

	"rivaas.dev/entity/binding"
	"rivaas.dev/entity/bodyformat"
	"rivaas.dev/entity/bodyformat/msgpack"
	"rivaas.dev/entity/mediatype"
)

type profile struct {
	Name   string `msgpack:"name"`
	Age    int    `msgpack:"age"`
	Avatar []byte `msgpack:"avatar"`
}

var profileType = binding.Object[profile]("Profile")

// account carries json tags only.
type account struct {
	FullName string `json:"full_name"`
	Years    int    `json:"years"`
}

var accountType = binding.Object[account]("Account")

// trackingBody counts Close calls.
type trackingBody struct {
	io.Reader
	closed atomic.Int32
}

func (b *trackingBody) Close() error {
	b.closed.Add(1)
	return nil
}

func closes(req *bodyformat.Request) int32 {
	return req.Body.(*trackingBody).closed.Load()
}

func request(t *testing.T, body []byte, sig ...binding.Parameter) *bodyformat.Request {
	t.Helper()

	return &bodyformat.Request{
		Signature:   sig,
		Body:        &trackingBody{Reader: bytes.NewReader(body)},
		Length:      -1,
		ContentType: mediatype.MustParse("application/x-msgpack"),
	}
}

func encode(t *testing.T, v any) []byte {
	t.Helper()

	data, err := vmsgpack.Marshal(v)
	require.NoError(t, err)

	return data
}

func TestMsgPack_Complex(t *testing.T) {
	t.Parallel()

	body := encode(t, &profile{Name: "Ada Lovelace", Age: 36, Avatar: []byte{1, 2}})
	req := request(t, body, binding.Param("p", profileType))
	set, err := msgpack.New().Resolve(context.Background(), req, binding.MustNew())
	require.NoError(t, err)
	assert.Equal(t, []any{&profile{Name: "Ada Lovelace", Age: 36, Avatar: []byte{1, 2}}}, set.Values())
	assert.EqualValues(t, 1, closes(req))
}

func TestMsgPack_Simple(t *testing.T) {
	t.Parallel()

	body := encode(t, map[string]any{"name": "Ada Lovelace", "age": 36, "avatar": []byte("hi")})
	set, err := msgpack.New().Resolve(context.Background(), request(t, body,
		binding.Param("name", binding.String),
		binding.Param("age", binding.Int),
		binding.Param("avatar", binding.Bytes),
	), binding.MustNew())
	require.NoError(t, err)
	assert.Equal(t, []any{"Ada Lovelace", 36, []byte("hi")}, set.Values())
}

func TestMsgPack_JSONTag(t *testing.T) {
	t.Parallel()

	body := encode(t, map[string]any{"full_name": "Ada Lovelace", "years": 36})

	set, err := msgpack.New(msgpack.WithJSONTag()).Resolve(context.Background(),
		request(t, body, binding.Param("a", accountType)), binding.MustNew())
	require.NoError(t, err)
	assert.Equal(t, []any{&account{FullName: "Ada Lovelace", Years: 36}}, set.Values())

	// Without the option the field names are used as keys.
	set, err = msgpack.New().Resolve(context.Background(),
		request(t, body, binding.Param("a", accountType)), binding.MustNew())
	require.NoError(t, err)
	assert.Equal(t, []any{&account{}}, set.Values())
}

func TestMsgPack_DisallowUnknown(t *testing.T) {
	t.Parallel()

	body := encode(t, map[string]any{"name": "Ada Lovelace", "nickname": "countess"})
	req := request(t, body, binding.Param("p", profileType))
	_, err := msgpack.New(msgpack.WithDisallowUnknown()).Resolve(context.Background(), req, binding.MustNew())

	var be *bodyformat.BodyError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "msgpack", be.Format)
	assert.EqualValues(t, 1, closes(req))
}

func TestMsgPack_ReadFailure(t *testing.T) {
	t.Parallel()

	req := request(t, nil, binding.Param("name", binding.String))
	req.Body = &trackingBody{Reader: iotest.ErrReader(errors.New("connection reset"))}

	_, err := msgpack.New().Resolve(context.Background(), req, binding.MustNew())
	var be *bodyformat.BodyError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "msgpack", be.Format)
	assert.EqualValues(t, 1, closes(req))
}
