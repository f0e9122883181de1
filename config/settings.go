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
	"errors"
	"fmt"
	"slices"
	"time"

	"rivaas.dev/entity/mediatype"
)

// Format names accepted in decoding.formats.
const (
	FormatURLEncoded = "urlencoded"
	FormatMultipart  = "multipart"
	FormatXML        = "xml"
	FormatJSON       = "json"
	FormatYAML       = "yaml"
	FormatTOML       = "toml"
	FormatMsgPack    = "msgpack"
	FormatProtobuf   = "protobuf"
)

// Formats lists every known body format in registry order.
var Formats = []string{
	FormatURLEncoded, FormatMultipart, FormatXML, FormatJSON,
	FormatYAML, FormatTOML, FormatMsgPack, FormatProtobuf,
}

// Settings is the complete server configuration.
type Settings struct {
	Service  ServiceSettings  `config:"service"`
	Server   ServerSettings   `config:"server"`
	Decoding DecodingSettings `config:"decoding"`
	Logging  LoggingSettings  `config:"logging"`
	Metrics  MetricsSettings  `config:"metrics"`
	Tracing  TracingSettings  `config:"tracing"`
	Errors   ErrorSettings    `config:"errors"`
}

// ServiceSettings identifies the service in logs and telemetry.
type ServiceSettings struct {
	Name        string `config:"name"`
	Version     string `config:"version"`
	Environment string `config:"environment"`
}

// ServerSettings configures the HTTP listener.
type ServerSettings struct {
	Addr            string        `config:"addr"`
	ReadTimeout     time.Duration `config:"read_timeout"`
	WriteTimeout    time.Duration `config:"write_timeout"`
	ShutdownTimeout time.Duration `config:"shutdown_timeout"`
}

// DecodingSettings configures resolvers and the binder.
type DecodingSettings struct {
	Formats        []string `config:"formats"`
	MaxBodySize    int64    `config:"max_body_size"`
	DefaultCharset string   `config:"default_charset"`
	Base64         string   `config:"base64"`          // "any" or "bytes-only"
	ComplexEntries string   `config:"complex_entries"` // "collapse" or "per-field"
	StrictFraming  bool     `config:"strict_framing"`
	TimeLayouts    []string `config:"time_layouts"`
}

// LoggingSettings configures the logger.
type LoggingSettings struct {
	Level  string `config:"level"`
	Format string `config:"format"` // "json" or "text"
}

// MetricsSettings configures the metrics exporter.
type MetricsSettings struct {
	Provider       string        `config:"provider"` // "prometheus", "otlp" or "stdout"
	Endpoint       string        `config:"endpoint"`
	ExportInterval time.Duration `config:"export_interval"`
}

// TracingSettings configures the span exporter.
type TracingSettings struct {
	Provider   string  `config:"provider"` // "noop", "stdout" or "otlp-http"
	Endpoint   string  `config:"endpoint"`
	SampleRate float64 `config:"sample_rate"`
}

// ErrorSettings configures how decode errors are rendered.
type ErrorSettings struct {
	Format  string `config:"format"` // "rfc9457" or "simple"
	BaseURL string `config:"base_url"`
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Service: ServiceSettings{
			Name:        "entityd",
			Version:     "dev",
			Environment: "development",
		},
		Server: ServerSettings{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Decoding: DecodingSettings{
			Formats:        []string{FormatURLEncoded, FormatMultipart, FormatXML, FormatJSON},
			MaxBodySize:    10 << 20,
			Base64:         "any",
			ComplexEntries: "collapse",
		},
		Logging: LoggingSettings{Level: "info", Format: "json"},
		Metrics: MetricsSettings{Provider: "prometheus", ExportInterval: 30 * time.Second},
		Tracing: TracingSettings{Provider: "noop", SampleRate: 1.0},
		Errors:  ErrorSettings{Format: "rfc9457"},
	}
}

// Validate checks constraints the schema cannot express.
func (s *Settings) Validate() error {
	var errs []error

	if s.Server.Addr == "" {
		errs = append(errs, fmt.Errorf("%w: server.addr is empty", ErrInvalidSetting))
	}
	if s.Server.ShutdownTimeout < 0 {
		errs = append(errs, fmt.Errorf("%w: server.shutdown_timeout is negative", ErrInvalidSetting))
	}
	if len(s.Decoding.Formats) == 0 {
		errs = append(errs, fmt.Errorf("%w: decoding.formats is empty", ErrInvalidSetting))
	}
	for _, f := range s.Decoding.Formats {
		if !slices.Contains(Formats, f) {
			errs = append(errs, fmt.Errorf("%w: decoding.formats: unknown format %q", ErrInvalidSetting, f))
		}
	}
	if s.Decoding.MaxBodySize < 0 {
		errs = append(errs, fmt.Errorf("%w: decoding.max_body_size is negative", ErrInvalidSetting))
	}
	if s.Decoding.DefaultCharset != "" {
		if _, err := mediatype.Lookup(s.Decoding.DefaultCharset); err != nil {
			errs = append(errs, fmt.Errorf("%w: decoding.default_charset: %w", ErrInvalidSetting, err))
		}
	}
	if s.Metrics.Provider == "otlp" && s.Metrics.Endpoint == "" {
		errs = append(errs, fmt.Errorf("%w: metrics.endpoint is required for otlp", ErrInvalidSetting))
	}
	if (s.Tracing.Provider == "otlp" || s.Tracing.Provider == "otlp-http") && s.Tracing.Endpoint == "" {
		errs = append(errs, fmt.Errorf("%w: tracing.endpoint is required for otlp", ErrInvalidSetting))
	}
	if s.Tracing.SampleRate < 0 || s.Tracing.SampleRate > 1 {
		errs = append(errs, fmt.Errorf("%w: tracing.sample_rate must be between 0 and 1", ErrInvalidSetting))
	}

	return errors.Join(errs...)
}
