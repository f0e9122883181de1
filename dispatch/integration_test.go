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

//go:build integration

package dispatch_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	mimemultipart "mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync/atomic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"rivaas.dev/entity/binding"
	"rivaas.dev/entity/dispatch"
	"rivaas.dev/entity/errors"
)

// closeCounter counts Close calls on request bodies seen by the server.
type closeCounter struct {
	io.ReadCloser
	closed *atomic.Int32
}

func (c closeCounter) Close() error {
	c.closed.Add(1)
	return c.ReadCloser.Close()
}

var _ = Describe("Entity body decoding", func() {
	var (
		server   *httptest.Server
		closed   atomic.Int32
		received []any
	)

	post := func(path, contentType string, body []byte) (*http.Response, map[string]any) {
		req, err := http.NewRequest(http.MethodPost, server.URL+path, bytes.NewReader(body))
		Expect(err).NotTo(HaveOccurred())
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}

		resp, err := http.DefaultClient.Do(req)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(resp.Body.Close)

		var problem map[string]any
		if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/problem+json") {
			Expect(json.NewDecoder(resp.Body).Decode(&problem)).To(Succeed())
		}

		return resp, problem
	}

	BeforeEach(func() {
		closed.Store(0)
		received = nil

		d := dispatch.MustNew()
		formatter := errors.NewRFC9457("https://errors.example.com")
		capture := func(w http.ResponseWriter, _ *http.Request, args []any) {
			received = args
			w.WriteHeader(http.StatusNoContent)
		}

		users, err := d.Handler(binding.Signature{
			binding.Param("name", binding.String),
			binding.Param("age", binding.Int),
		}, capture, formatter)
		Expect(err).NotTo(HaveOccurred())

		uploads, err := d.Handler(binding.Signature{
			binding.Param("name", binding.String),
			binding.Param("avatar", binding.Bytes),
		}, capture, formatter)
		Expect(err).NotTo(HaveOccurred())

		mux := http.NewServeMux()
		mux.Handle("POST /users", users)
		mux.Handle("POST /uploads", uploads)

		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = closeCounter{ReadCloser: r.Body, closed: &closed}
			mux.ServeHTTP(w, r)
		}))
		DeferCleanup(server.Close)
	})

	Describe("url-encoded form", func() {
		It("binds simple parameters in declaration order", func() {
			resp, _ := post("/users", "application/x-www-form-urlencoded", []byte("age=36&name=Ada"))

			Expect(resp.StatusCode).To(Equal(http.StatusNoContent))
			Expect(received).To(Equal([]any{"Ada", 36}))
			Expect(closed.Load()).To(BeEquivalentTo(1))
		})

		It("reports a missing field as a parameter count mismatch", func() {
			resp, problem := post("/users", "application/x-www-form-urlencoded", []byte("name=Ada"))

			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
			Expect(problem).To(HaveKeyWithValue("code", "parameter_count_mismatch"))
			Expect(problem["detail"]).To(ContainSubstring("(name string, age int)"))
			Expect(problem["errors"]).To(HaveKeyWithValue("expected", BeNumerically("==", 2)))
			Expect(problem["errors"]).To(HaveKeyWithValue("actual", BeNumerically("==", 1)))
			Expect(closed.Load()).To(BeEquivalentTo(1))
		})
	})

	Describe("multipart form", func() {
		var png []byte

		build := func() ([]byte, string) {
			var buf bytes.Buffer
			w := mimemultipart.NewWriter(&buf)
			Expect(w.WriteField("name", "Ada")).To(Succeed())

			h := make(textproto.MIMEHeader)
			h.Set("Content-Disposition", `form-data; name="avatar"; filename="a.png"`)
			h.Set("Content-Type", "image/png")
			pw, err := w.CreatePart(h)
			Expect(err).NotTo(HaveOccurred())
			_, err = pw.Write(png)
			Expect(err).NotTo(HaveOccurred())
			Expect(w.Close()).To(Succeed())

			return buf.Bytes(), w.FormDataContentType()
		}

		BeforeEach(func() {
			png = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0x00, 0x00, 0xff, 0xfe}
		})

		It("binds a form item and binary file byte for byte", func() {
			body, ct := build()
			resp, _ := post("/uploads", ct, body)

			Expect(resp.StatusCode).To(Equal(http.StatusNoContent))
			Expect(received).To(HaveLen(2))
			Expect(received[0]).To(Equal("Ada"))
			Expect(received[1]).To(Equal(png))
			Expect(closed.Load()).To(BeEquivalentTo(1))
		})

		It("degrades a truncated body into a parameter count mismatch", func() {
			body, ct := build()
			truncated := body[:bytes.LastIndex(body, []byte("\r\n--"))]

			resp, problem := post("/uploads", ct, truncated)

			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
			Expect(problem).To(HaveKeyWithValue("code", "parameter_count_mismatch"))
			Expect(received).To(BeNil())
			Expect(closed.Load()).To(BeEquivalentTo(1))
		})
	})

	Describe("unsupported content", func() {
		It("fails before binding when no resolver supports the media type", func() {
			resp, problem := post("/users", "application/octet-stream", []byte{0, 1, 2})

			Expect(resp.StatusCode).To(Equal(http.StatusInternalServerError))
			Expect(problem).To(HaveKeyWithValue("code", "unsupported_body_format"))
			Expect(problem).To(HaveKeyWithValue("type", "https://errors.example.com/unsupported_body_format"))
			Expect(received).To(BeNil())
			Expect(closed.Load()).To(BeEquivalentTo(1))
		})

		It("rejects a body without Content-Type", func() {
			resp, problem := post("/users", "", []byte("name=Ada&age=36"))

			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
			Expect(problem).To(HaveKeyWithValue("code", "missing_content_type"))
		})
	})

	DescribeTable("typed bodies",
		func(contentType, body string) {
			resp, _ := post("/users", contentType, []byte(body))

			Expect(resp.StatusCode).To(Equal(http.StatusNoContent), fmt.Sprintf("content type %s", contentType))
			Expect(received).To(Equal([]any{"Ada", 36}))
		},
		Entry("XML", "application/xml", "<user><name>Ada</name><age>36</age></user>"),
		Entry("JSON", "application/json", `{"name":"Ada","age":36}`),
	)
})
