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

package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// HandlerType represents the type of logging handler.
type HandlerType string

const (
	// JSONHandler outputs structured JSON logs.
	JSONHandler HandlerType = "json"
	// TextHandler outputs key=value text logs.
	TextHandler HandlerType = "text"
)

// Level represents log level.
type Level = slog.Level

const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Logger is the structured logging surface the decoding packages accept.
// *slog.Logger and *Config both satisfy it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// redactedKeys are replaced with a placeholder before reaching any handler.
var redactedKeys = map[string]struct{}{
	"password":      {},
	"token":         {},
	"secret":        {},
	"api_key":       {},
	"authorization": {},
}

const redacted = "***REDACTED***"

// Config holds the logging configuration and the logger built from it.
// All methods are safe for concurrent use.
type Config struct {
	handlerType HandlerType
	output      io.Writer
	level       *slog.LevelVar

	serviceName    string
	serviceVersion string
	environment    string

	addSource   bool
	replaceAttr func(groups []string, a slog.Attr) slog.Attr

	customLogger   *slog.Logger
	useCustom      bool
	registerGlobal bool

	logger *slog.Logger
}

// Option is a functional option for configuring the logger.
type Option func(*Config)

func defaultConfig() *Config {
	level := new(slog.LevelVar)
	level.Set(LevelInfo)

	return &Config{
		handlerType:    JSONHandler,
		output:         os.Stdout,
		level:          level,
		serviceName:    "entityd",
		serviceVersion: "unknown",
		environment:    "development",
	}
}

// New creates a new logging configuration.
//
// By default the global slog logger is left untouched. Use
// [WithGlobalLogger] to register the result with [slog.SetDefault].
func New(opts ...Option) (*Config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg.logger = cfg.build()
	if cfg.registerGlobal {
		slog.SetDefault(cfg.logger)
	}

	return cfg, nil
}

// MustNew creates a new logging configuration or panics on error.
func MustNew(opts ...Option) *Config {
	cfg, err := New(opts...)
	if err != nil {
		panic("logging initialization failed: " + err.Error())
	}

	return cfg
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.useCustom {
		if c.customLogger == nil {
			return ErrNilLogger
		}

		return nil
	}
	if c.output == nil {
		return ErrNilOutput
	}
	switch c.handlerType {
	case JSONHandler, TextHandler:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidHandler, c.handlerType)
	}

	return nil
}

func (c *Config) build() *slog.Logger {
	if c.useCustom {
		return c.customLogger
	}

	opts := &slog.HandlerOptions{
		Level:       c.level,
		AddSource:   c.addSource,
		ReplaceAttr: c.buildReplaceAttr(),
	}

	var handler slog.Handler
	if c.handlerType == TextHandler {
		handler = slog.NewTextHandler(c.output, opts)
	} else {
		handler = slog.NewJSONHandler(c.output, opts)
	}

	var attrs []any
	if c.serviceName != "" {
		attrs = append(attrs, "service", c.serviceName)
	}
	if c.serviceVersion != "" {
		attrs = append(attrs, "version", c.serviceVersion)
	}
	if c.environment != "" {
		attrs = append(attrs, "env", c.environment)
	}

	return slog.New(handler).With(attrs...)
}

func (c *Config) buildReplaceAttr() func(groups []string, a slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		if _, ok := redactedKeys[strings.ToLower(a.Key)]; ok {
			return slog.String(a.Key, redacted)
		}
		if c.replaceAttr != nil {
			return c.replaceAttr(groups, a)
		}

		return a
	}
}

// Logger returns the underlying slog.Logger.
func (c *Config) Logger() *slog.Logger {
	return c.logger
}

// With returns a logger with additional attributes.
func (c *Config) With(args ...any) *slog.Logger {
	return c.logger.With(args...)
}

// Debug logs a debug message with structured attributes.
func (c *Config) Debug(msg string, args ...any) { c.log(LevelDebug, msg, args...) }

// Info logs an informational message with structured attributes.
func (c *Config) Info(msg string, args ...any) { c.log(LevelInfo, msg, args...) }

// Warn logs a warning message with structured attributes.
func (c *Config) Warn(msg string, args ...any) { c.log(LevelWarn, msg, args...) }

// Error logs an error message with structured attributes.
func (c *Config) Error(msg string, args ...any) { c.log(LevelError, msg, args...) }

func (c *Config) log(level Level, msg string, args ...any) {
	ctx := context.Background()
	if !c.logger.Enabled(ctx, level) {
		return
	}
	c.logger.Log(ctx, level, msg, args...)
}

// LogError logs err under the "error" key together with extra attributes.
func (c *Config) LogError(err error, msg string, extra ...any) {
	args := make([]any, 0, len(extra)+2)
	args = append(args, "error", err.Error())
	args = append(args, extra...)
	c.Error(msg, args...)
}

// SetLevel changes the minimum level at runtime.
func (c *Config) SetLevel(level Level) error {
	if c.useCustom {
		return ErrCannotChangeLevel
	}
	c.level.Set(level)

	return nil
}

// Level returns the current minimum log level.
func (c *Config) Level() Level {
	return c.level.Level()
}

// ServiceName returns the service name.
func (c *Config) ServiceName() string { return c.serviceName }

// ParseLevel maps "debug", "info", "warn" or "error" to a [Level].
func ParseLevel(s string) (Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}

	return level, nil
}

// ParseHandlerType maps "json" or "text" to a [HandlerType].
func ParseHandlerType(s string) (HandlerType, error) {
	switch HandlerType(strings.ToLower(strings.TrimSpace(s))) {
	case JSONHandler, "":
		return JSONHandler, nil
	case TextHandler:
		return TextHandler, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidHandler, s)
	}
}
