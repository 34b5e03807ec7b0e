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

// Package server exposes recipe planning over HTTP.
//
// The API is read-only: it lists the bundled recipes and evaluates a recipe
// for a target (settings plus option overrides) without fetching or building
// anything. Use it to answer "what would create do for this profile" from CI
// or other services.
//
// # Endpoints
//
//	GET  /v1/recipes          list recipe metadata
//	GET  /v1/recipes/{name}   metadata and declared options of one recipe
//	POST /v1/inspect          evaluate a recipe for a target
//	GET  /health              liveness
//	GET  /ready               readiness (503 while starting or draining)
//	GET  /metrics             Prometheus metrics
//
// Inspect request body:
//
//	{
//	  "recipe": "libzip",
//	  "settings": {"os": "Windows", "build_type": "Release"},
//	  "options": {"with_openssl": "True"}
//	}
//
// settings.os is required; the server does not guess the target from its
// own host.
//
// # Errors
//
// Errors are JSON objects with code, message, details, requestId, timestamp
// and retryable. Codes follow pkg/errors (NOT_FOUND, INVALID_REQUEST,
// TIMEOUT, ...) plus RATE_LIMIT_EXCEEDED and METHOD_NOT_ALLOWED.
//
// # Operations
//
// Requests carry an X-Request-Id (generated when absent or not a UUID). API
// routes are rate limited with a token bucket (golang.org/x/time/rate) and
// answer 429 with Retry-After when the bucket is empty. PORT and
// SHUTDOWN_TIMEOUT_SECONDS override the defaults.
package server
