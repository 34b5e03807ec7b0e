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

import (
	"testing"
	"time"
)

func TestTimeoutConstants(t *testing.T) {
	tests := []struct {
		name     string
		timeout  time.Duration
		minValue time.Duration
		maxValue time.Duration
	}{
		// Fetch timeouts
		{"FetchTimeout", FetchTimeout, 1 * time.Minute, 30 * time.Minute},
		{"FetchProgressInterval", FetchProgressInterval, 500 * time.Millisecond, 10 * time.Second},

		// Tool timeouts
		{"CMakeConfigureTimeout", CMakeConfigureTimeout, 1 * time.Minute, 30 * time.Minute},
		{"CMakeBuildTimeout", CMakeBuildTimeout, 10 * time.Minute, 6 * time.Hour},

		// HTTP client timeouts
		{"HTTPClientTimeout", HTTPClientTimeout, 30 * time.Second, 10 * time.Minute},
		{"HTTPConnectTimeout", HTTPConnectTimeout, 1 * time.Second, 30 * time.Second},

		// Server timeouts
		{"ServerReadTimeout", ServerReadTimeout, 1 * time.Second, 1 * time.Minute},
		{"ServerWriteTimeout", ServerWriteTimeout, 5 * time.Second, 2 * time.Minute},
		{"ServerShutdownTimeout", ServerShutdownTimeout, 5 * time.Second, 2 * time.Minute},
		{"InspectHandlerTimeout", InspectHandlerTimeout, 1 * time.Second, 1 * time.Minute},

		// Upload timeouts
		{"OCIPushTimeout", OCIPushTimeout, 1 * time.Minute, 1 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.timeout < tt.minValue {
				t.Errorf("%s (%v) is below minimum expected value (%v)", tt.name, tt.timeout, tt.minValue)
			}
			if tt.timeout > tt.maxValue {
				t.Errorf("%s (%v) is above maximum expected value (%v)", tt.name, tt.timeout, tt.maxValue)
			}
		})
	}
}

func TestFetchTimeoutCoversHTTPClient(t *testing.T) {
	// A single request must be able to finish inside the overall fetch budget
	if HTTPClientTimeout > FetchTimeout {
		t.Errorf("HTTPClientTimeout (%v) should not exceed FetchTimeout (%v)",
			HTTPClientTimeout, FetchTimeout)
	}
}

func TestHTTPClientTimeoutRelationships(t *testing.T) {
	if HTTPConnectTimeout >= HTTPClientTimeout {
		t.Errorf("HTTPConnectTimeout (%v) should be less than HTTPClientTimeout (%v)",
			HTTPConnectTimeout, HTTPClientTimeout)
	}

	if HTTPTLSHandshakeTimeout >= HTTPClientTimeout {
		t.Errorf("HTTPTLSHandshakeTimeout (%v) should be less than HTTPClientTimeout (%v)",
			HTTPTLSHandshakeTimeout, HTTPClientTimeout)
	}
}

func TestConfigureTimeoutLessThanBuild(t *testing.T) {
	if CMakeConfigureTimeout > CMakeBuildTimeout {
		t.Errorf("CMakeConfigureTimeout (%v) should not exceed CMakeBuildTimeout (%v)",
			CMakeConfigureTimeout, CMakeBuildTimeout)
	}
}

func TestChecksumConcurrency(t *testing.T) {
	if ChecksumConcurrency < 1 {
		t.Errorf("ChecksumConcurrency must be positive, got %d", ChecksumConcurrency)
	}
}

func TestInspectHandlerFitsWriteTimeout(t *testing.T) {
	if InspectHandlerTimeout >= ServerWriteTimeout {
		t.Errorf("InspectHandlerTimeout (%v) should be less than ServerWriteTimeout (%v)",
			InspectHandlerTimeout, ServerWriteTimeout)
	}
}
