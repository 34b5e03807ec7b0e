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

package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"

	"github.com/recipekit/recipekit/pkg/errors"
	"github.com/recipekit/recipekit/pkg/server"
)

func serveCmd() *cli.Command {
	defaults := server.NewConfig()
	return &cli.Command{
		Name:                  "serve",
		EnableShellCompletion: true,
		Usage:                 "Serve the recipe planning API over HTTP",
		Description: fmt.Sprintf(`Starts a read-only HTTP API that lists recipes and answers inspect
requests. Nothing is fetched or built. Prometheus metrics are exposed on
/metrics.

The port defaults to $%s when set. $%s sets the graceful shutdown
window in seconds.

# Examples

  recipekit serve --port 9090
  curl -s -XPOST localhost:9090/v1/inspect \
    -d '{"recipe":"libzip","settings":{"os":"Windows"},"options":{"with_openssl":"True"}}'`,
			server.EnvPort, server.EnvShutdownTimeout),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "address",
				Usage: "listen address (empty listens on all interfaces)",
			},
			&cli.IntFlag{
				Name:  "port",
				Value: defaults.Port,
				Usage: "listen port",
			},
			&cli.FloatFlag{
				Name:  "rate-limit",
				Value: float64(defaults.RateLimit),
				Usage: "API requests per second",
			},
			&cli.IntFlag{
				Name:  "rate-limit-burst",
				Value: defaults.RateLimitBurst,
				Usage: "API request burst size",
			},
			&cli.StringFlag{
				Name:  "resolver",
				Value: resolverNone,
				Usage: fmt.Sprintf("dependency resolver for inspect requests (%s, %s)", resolverLocal, resolverNone),
			},
			&cli.StringFlag{
				Name:  "deps-dir",
				Usage: "package cache searched by the local resolver",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := serveConfig(cmd)
			if err != nil {
				return err
			}
			return server.Run(ctx, cfg)
		},
	}
}

func serveConfig(cmd *cli.Command) (*server.Config, error) {
	cfg := server.NewConfig()
	cfg.Name = name + "-server"
	cfg.Version = version
	cfg.Address = cmd.String("address")
	cfg.Port = int(cmd.Int("port"))
	cfg.RateLimit = rate.Limit(cmd.Float("rate-limit"))
	cfg.RateLimitBurst = int(cmd.Int("rate-limit-burst"))

	if cfg.Port < 0 || cfg.Port > 65535 {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest, "--port out of range",
			map[string]any{"port": cfg.Port})
	}
	if cfg.RateLimit <= 0 || cfg.RateLimitBurst <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "--rate-limit and --rate-limit-burst must be positive")
	}

	resolver, err := newResolver(cmd.String("resolver"), cmd.String("deps-dir"))
	if err != nil {
		return nil, err
	}
	cfg.Resolver = resolver
	return cfg, nil
}
