// Copyright (c) 2025, The recipekit Authors. All rights reserved.
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

package api

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/recipekit/recipekit/pkg/logging"
	"github.com/recipekit/recipekit/pkg/server"
)

const (
	name           = "recipekitd"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve runs the API server until the process is signalled.
func Serve() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return serve(ctx, newConfig())
}

func newConfig() *server.Config {
	cfg := server.NewConfig()
	cfg.Name = name
	cfg.Version = version
	return cfg
}

func serve(ctx context.Context, cfg *server.Config) error {
	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	if err := server.Run(ctx, cfg); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}
	return nil
}
