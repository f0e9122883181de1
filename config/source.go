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

package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
)

// Source produces one layer of raw settings.
type Source interface {
	// Name identifies the source in errors, e.g. "file:entityd.yaml".
	Name() string

	// Load returns the layer's values keyed by section, then key.
	Load(ctx context.Context) (map[string]any, error)
}

// Format is the encoding of a configuration document.
type Format string

// Supported document formats.
const (
	YAML Format = "yaml"
	TOML Format = "toml"
	JSON Format = "json"
)

// detectFormat maps a file extension to a [Format].
func detectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	case ".json":
		return JSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

func decode(format Format, data []byte) (map[string]any, error) {
	out := make(map[string]any)

	var err error
	switch format {
	case YAML:
		err = yaml.Unmarshal(data, &out)
	case TOML:
		err = toml.Unmarshal(data, &out)
	case JSON:
		err = json.Unmarshal(data, &out)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}

	return out, nil
}

type fileSource struct {
	path   string
	format Format
}

func (f fileSource) Name() string { return "file:" + f.path }

func (f fileSource) Load(_ context.Context) (map[string]any, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, err
	}

	return decode(f.format, data)
}

type contentSource struct {
	data   []byte
	format Format
}

func (c contentSource) Name() string { return "content:" + string(c.format) }

func (c contentSource) Load(_ context.Context) (map[string]any, error) {
	return decode(c.format, c.data)
}

// envSource reads PREFIX_SECTION_KEY variables.
type envSource struct {
	prefix  string
	environ func() []string
}

func (e envSource) Name() string { return "env" }

func (e envSource) Load(_ context.Context) (map[string]any, error) {
	out := make(map[string]any)

	for _, kv := range e.environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, e.prefix) {
			continue
		}

		section, name, ok := strings.Cut(strings.ToLower(strings.TrimPrefix(key, e.prefix)), "_")
		if !ok || section == "" || name == "" {
			continue
		}

		m, _ := out[section].(map[string]any)
		if m == nil {
			m = make(map[string]any)
			out[section] = m
		}
		m[name] = value
	}

	return out, nil
}
