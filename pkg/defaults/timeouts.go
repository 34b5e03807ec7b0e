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

package defaults

import "time"

// Fetch timeouts for source acquisition.
const (
	// FetchTimeout bounds the whole download-verify-extract sequence of one source.
	FetchTimeout = 10 * time.Minute

	// FetchProgressInterval is the minimum interval between download progress logs.
	FetchProgressInterval = 2 * time.Second
)

// Tool timeouts for external build-system invocations.
const (
	// CMakeConfigureTimeout bounds a single cmake configure step.
	CMakeConfigureTimeout = 10 * time.Minute

	// CMakeBuildTimeout bounds a single cmake build or install step.
	CMakeBuildTimeout = 2 * time.Hour
)

// Outbound HTTP, used for source downloads and remote profiles.
const (
	// HTTPClientTimeout caps one whole request including the body; source
	// archives can be tens of megabytes.
	HTTPClientTimeout = 5 * time.Minute

	// HTTPConnectTimeout caps the TCP dial.
	HTTPConnectTimeout = 10 * time.Second

	// HTTPTLSHandshakeTimeout caps the TLS handshake.
	HTTPTLSHandshakeTimeout = 10 * time.Second

	// HTTPResponseHeaderTimeout caps the wait for a mirror to start answering.
	HTTPResponseHeaderTimeout = 30 * time.Second

	// HTTPIdleConnTimeout is how long pooled connections are kept.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPKeepAlive is the TCP keep-alive period.
	HTTPKeepAlive = 30 * time.Second

	// HTTPExpectContinueTimeout caps the wait for 100-continue.
	HTTPExpectContinueTimeout = 1 * time.Second
)

// Planning API server.
const (
	// ServerReadTimeout caps reading one request, body included.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout caps reading request headers.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout caps handling plus writing one response. It must
	// exceed InspectHandlerTimeout.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout closes keep-alive connections left unused.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the drain period after SIGTERM.
	ServerShutdownTimeout = 30 * time.Second

	// InspectHandlerTimeout bounds one inspect request, dependency
	// resolution included.
	InspectHandlerTimeout = 20 * time.Second
)

// Upload timeouts for OCI registry operations.
const (
	// OCIPushTimeout bounds a complete package push.
	OCIPushTimeout = 15 * time.Minute
)

// Concurrency limits.
const (
	// ChecksumConcurrency is the number of files hashed in parallel.
	ChecksumConcurrency = 8
)
