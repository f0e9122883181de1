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

// Package logging builds the structured slog loggers used by the entity
// decoding packages.
//
// A [Config] owns one *slog.Logger with a JSON or text handler. Every entry
// carries the service name, version and environment, and the values of
// sensitive keys (password, token, secret, api_key, authorization) are
// replaced before they reach the handler.
//
//	log := logging.MustNew(
//	    logging.WithJSONHandler(),
//	    logging.WithServiceName("entityd"),
//	    logging.WithLevel(logging.LevelDebug),
//	)
//
//	d := dispatch.MustNew(dispatch.WithLogger(log.Logger()))
//
// Tests use [NewTestLogger] and [ParseJSONLogEntries] to assert on output.
package logging
