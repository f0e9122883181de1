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

// Command entityd serves demo endpoints whose handler arguments are decoded
// from the request body by rivaas.dev/entity/dispatch.
//
// Usage:
//
//	entityd [-config entityd.yaml]
//
// Settings come from the optional config file and ENTITY_ environment
// variables, e.g. ENTITY_DECODING_FORMATS=urlencoded,multipart,json.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"rivaas.dev/entity/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "entityd: %v\n", err)
		os.Exit(1)
	}
}

// run serves until ctx is canceled, then shuts down gracefully.
func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("entityd", flag.ContinueOnError)
	configPath := fs.String("config", "entityd.yaml", "configuration file (YAML, TOML or JSON)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	settings, err := config.Load(ctx,
		config.WithOptionalFile(*configPath),
		config.WithEnv("ENTITY_"),
	)
	if err != nil {
		return err
	}

	svc, err := newService(settings, stdout)
	if err != nil {
		return err
	}

	handler, err := svc.routes()
	if err != nil {
		return errors.Join(err, svc.shutdown(context.Background()))
	}

	server := &http.Server{
		Addr:         settings.Server.Addr,
		Handler:      handler,
		ReadTimeout:  settings.Server.ReadTimeout,
		WriteTimeout: settings.Server.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	serveErr := make(chan error, 1)
	go func() {
		svc.logger.Info("server listening", "addr", settings.Server.Addr)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err = <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return errors.Join(fmt.Errorf("serving: %w", err), svc.shutdown(context.Background()))
		}
	case <-ctx.Done():
	}

	svc.logger.Info("shutting down", "timeout", settings.Server.ShutdownTimeout)

	// The parent context is already canceled; shutdown gets a fresh deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), settings.Server.ShutdownTimeout)
	defer cancel()

	return errors.Join(server.Shutdown(shutdownCtx), svc.shutdown(shutdownCtx))
}
