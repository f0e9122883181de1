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

package main

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"

	"rivaas.dev/entity/binding"
	"rivaas.dev/entity/dispatch"
	"rivaas.dev/entity/metrics"
)

// profile is the complex body of POST /profiles.
type profile struct {
	Name  string `json:"name" xml:"name" yaml:"name" toml:"name" validate:"required,max=100"`
	Email string `json:"email" xml:"email" yaml:"email" toml:"email" validate:"omitempty,email"`
	Age   int    `json:"age" xml:"age" yaml:"age" toml:"age" validate:"gte=0,lte=150"`
}

var profileType = binding.Object[profile]("Profile",
	binding.Prop("name", func(p *profile, v string) { p.Name = v }),
	binding.Prop("email", func(p *profile, v string) { p.Email = v }),
	binding.Prop("age", func(p *profile, v int) { p.Age = v }),
)

var (
	usersSig = binding.Signature{
		binding.Param("name", binding.String),
		binding.Param("age", binding.Int),
	}
	uploadsSig = binding.Signature{
		binding.Param("name", binding.String),
		binding.Param("avatar", binding.Bytes),
	}
	profilesSig = binding.Signature{
		binding.Param("profile", profileType),
	}
)

func (svc *service) routes() (http.Handler, error) {
	mux := http.NewServeMux()

	endpoints := []struct {
		pattern string
		sig     binding.Signature
		fn      dispatch.HandlerFunc
	}{
		{"POST /users", usersSig, createUser},
		{"POST /uploads", uploadsSig, createUpload},
		{"POST /profiles", profilesSig, createProfile},
	}
	for _, e := range endpoints {
		h, err := svc.dispatcher.Handler(e.sig, e.fn, svc.formatter)
		if err != nil {
			return nil, err
		}
		mux.Handle(e.pattern, h)
	}

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  "ok",
			"formats": svc.dispatcher.Registry().MediaTypes(),
		})
	})

	h, err := svc.metrics.Handler()
	switch {
	case err == nil:
		mux.Handle("GET /metrics", h)
	case !errors.Is(err, metrics.ErrNoHandler):
		return nil, err
	}

	return mux, nil
}

func createUser(w http.ResponseWriter, _ *http.Request, args []any) {
	writeJSON(w, http.StatusCreated, map[string]any{
		"name": args[0],
		"age":  args[1],
	})
}

func createUpload(w http.ResponseWriter, _ *http.Request, args []any) {
	data, _ := args[1].([]byte)
	sum := sha256.Sum256(data)
	writeJSON(w, http.StatusCreated, map[string]any{
		"name":   args[0],
		"size":   len(data),
		"sha256": hex.EncodeToString(sum[:]),
		"avatar": base64.StdEncoding.EncodeToString(data),
	})
}

func createProfile(w http.ResponseWriter, _ *http.Request, args []any) {
	writeJSON(w, http.StatusCreated, args[0])
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
