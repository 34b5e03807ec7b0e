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

// Package api is the entry point of the recipekitd daemon. It configures
// structured logging and runs the planning API from pkg/server with
// environment based configuration (PORT, SHUTDOWN_TIMEOUT_SECONDS,
// LOG_LEVEL) until SIGINT or SIGTERM.
//
// Version information is set at build time:
//
//	go build -ldflags "-X github.com/recipekit/recipekit/pkg/api.version=1.0.0" ./cmd/recipekitd
package api
