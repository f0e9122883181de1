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

package dispatch

import (
	"net/http"

	"rivaas.dev/entity/binding"
	"rivaas.dev/entity/errors"
)

// HandlerFunc receives the decoded arguments of a request.
type HandlerFunc func(w http.ResponseWriter, r *http.Request, args []any)

// Handler adapts fn to an [http.Handler] that decodes each request body for
// sig. Decode errors are written with f. The signature is validated once,
// so an unbindable parameter type fails here instead of per request.
//
// Example:
//
//	h, err := d.Handler(sig, func(w http.ResponseWriter, r *http.Request, args []any) {
//	    name, age := args[0].(string), args[1].(int)
//	    // ...
//	}, errors.NewRFC9457(""))
func (d *Dispatcher) Handler(sig binding.Signature, fn HandlerFunc, f errors.Formatter) (http.Handler, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	if f == nil {
		f = errors.NewRFC9457("")
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		args, err := d.DecodeRequest(r, sig)
		if err != nil {
			if werr := errors.Write(w, r, f, err); werr != nil {
				d.logger.WarnContext(r.Context(), "failed to write error response", "error", werr)
			}

			return
		}

		fn(w, r, args)
	}), nil
}
