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

// Package config loads the settings of the entity decoding server.
//
// Settings are layered, later layers overriding earlier ones:
//
//  1. built-in defaults ([Defaults])
//  2. a configuration file, YAML, TOML or JSON by extension ([WithFile])
//  3. environment variables ([WithEnv])
//
// Environment variables are named PREFIX_SECTION_KEY. The first underscore
// after the prefix separates the section, so ENTITY_DECODING_MAX_BODY_SIZE
// sets decoding.max_body_size. Lists are comma separated.
//
// The merged values are checked against an embedded JSON schema, which
// rejects unknown keys and enumerated values out of range, then decoded
// into [Settings] and checked by [Settings.Validate].
//
// Example:
//
//	s, err := config.Load(ctx,
//	    config.WithFile("entityd.yaml"),
//	    config.WithEnv("ENTITY_"),
//	)
//	if err != nil {
//	    var cerr *config.Error
//	    if errors.As(err, &cerr) {
//	        log.Fatalf("%s: %v", cerr.Source, cerr.Err)
//	    }
//	}
package config
