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

package server

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/recipekit/recipekit/pkg/defaults"
	"github.com/recipekit/recipekit/pkg/requirement"
)

const (
	// EnvPort overrides Config.Port.
	EnvPort = "PORT"
	// EnvShutdownTimeout overrides Config.ShutdownTimeout, in seconds.
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT_SECONDS"
)

// Defaults applied by NewConfig.
const (
	DefaultPort           = 8080
	DefaultRateLimit      = rate.Limit(100)
	DefaultRateLimitBurst = 200
	DefaultMaxBodyBytes   = 64 << 10
)

// Config describes one planning API server.
type Config struct {
	Name    string
	Version string

	// Address is the interface to bind; empty means all of them.
	Address string
	Port    int

	// RateLimit is the sustained number of API requests per second and
	// RateLimitBurst the size of the token bucket.
	RateLimit      rate.Limit
	RateLimitBurst int

	// MaxBodyBytes caps inspect request bodies.
	MaxBodyBytes int64

	// Resolver checks the dependencies of inspected recipes. Nil accepts
	// every reference.
	Resolver requirement.Resolver

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// NewConfig returns the defaults with PORT and SHUTDOWN_TIMEOUT_SECONDS
// applied. Malformed values are ignored.
func NewConfig() *Config {
	cfg := &Config{
		Name:            name,
		Version:         "dev",
		Port:            DefaultPort,
		RateLimit:       DefaultRateLimit,
		RateLimitBurst:  DefaultRateLimitBurst,
		MaxBodyBytes:    DefaultMaxBodyBytes,
		ReadTimeout:     defaults.ServerReadTimeout,
		WriteTimeout:    defaults.ServerWriteTimeout,
		IdleTimeout:     defaults.ServerIdleTimeout,
		ShutdownTimeout: defaults.ServerShutdownTimeout,
	}
	if port, ok := envInt(EnvPort); ok && port >= 0 {
		cfg.Port = port
	}
	if secs, ok := envInt(EnvShutdownTimeout); ok && secs > 0 {
		cfg.ShutdownTimeout = time.Duration(secs) * time.Second
	}
	return cfg
}

func envInt(key string) (int, bool) {
	raw, set := os.LookupEnv(key)
	if !set {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		slog.Warn("ignoring malformed environment value", "key", key, "value", raw)
		return 0, false
	}
	return n, true
}
