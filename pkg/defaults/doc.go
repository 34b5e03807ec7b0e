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

// Package defaults provides centralized configuration constants for recipekit.
//
// This package defines timeout values, concurrency limits, and other
// configuration defaults used across the codebase. Centralizing these values
// keeps the fetch, build and upload paths consistent and makes tuning easier.
//
// # Timeout Categories
//
// Timeouts are organized by component:
//
//   - Fetch timeouts: For downloading recipe sources
//   - Tool timeouts: For external cmake invocations
//   - HTTP client timeouts: For outbound HTTP requests
//   - Upload timeouts: For pushing packages to OCI registries
//
// # Usage
//
// Import and use constants directly:
//
//	import "github.com/recipekit/recipekit/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.FetchTimeout)
//	defer cancel()
//
// # Timeout Guidelines
//
// When choosing timeout values:
//
//   - Fetch: 10m overall, individual HTTP requests bounded by the HTTP client
//   - CMake configure: 10m, build and install: 2h
//   - Upload: 15m for the whole push
package defaults
