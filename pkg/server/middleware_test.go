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
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestNegotiateAPIVersion(t *testing.T) {
	tests := []struct {
		accept string
		want   string
	}{
		{"", "v1"},
		{"application/json", "v1"},
		{"application/vnd.recipekit.v1+json", "v1"},
		{"text/html, application/vnd.recipekit.v1+json", "v1"},
		{"application/vnd.recipekit.v9+json", "v1"},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Accept", tt.accept)
		if got := negotiateAPIVersion(r); got != tt.want {
			t.Errorf("negotiateAPIVersion(%q) = %q, want %q", tt.accept, got, tt.want)
		}
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	s := newTestServer(t, nil)
	valid := uuid.New().String()

	tests := []struct {
		name   string
		header string
		keep   bool
	}{
		{"valid id kept", valid, true},
		{"invalid id replaced", "not-a-uuid", false},
		{"missing id generated", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			h := s.requestIDMiddleware(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = r.Context().Value(contextKeyRequestID).(string)
			})
			req := httptest.NewRequest(http.MethodGet, "/v1/recipes", nil)
			if tt.header != "" {
				req.Header.Set("X-Request-Id", tt.header)
			}
			rec := httptest.NewRecorder()
			h(rec, req)

			got := rec.Header().Get("X-Request-Id")
			if got != seen {
				t.Errorf("header %q differs from context %q", got, seen)
			}
			if _, err := uuid.Parse(got); err != nil {
				t.Errorf("request id %q is not a uuid", got)
			}
			if tt.keep && got != tt.header {
				t.Errorf("expected %q to be kept, got %q", tt.header, got)
			}
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	s := newTestServer(t, func(c *Config) {
		c.RateLimit = 0
		c.RateLimitBurst = 1
	})

	first := do(t, s, http.MethodGet, "/v1/recipes", "")
	if first.Code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", first.Code)
	}
	if first.Header().Get("X-RateLimit-Limit") == "" {
		t.Error("missing rate limit headers")
	}

	second := do(t, s, http.MethodGet, "/v1/recipes", "")
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: expected 429, got %d", second.Code)
	}
	if second.Header().Get("Retry-After") != "1" {
		t.Error("missing Retry-After")
	}
	if got := decodeError(t, second); got.Code != ErrCodeRateLimitExceeded || !got.Retryable {
		t.Errorf("unexpected error %+v", got)
	}

	// system endpoints bypass the limiter
	if rec := do(t, s, http.MethodGet, "/health", ""); rec.Code != http.StatusOK {
		t.Errorf("health should not be rate limited, got %d", rec.Code)
	}
}

func TestPanicRecoveryMiddleware(t *testing.T) {
	s := newTestServer(t, nil)
	h := s.withMiddleware(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/v1/recipes", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if got := decodeError(t, rec).Code; got != "INTERNAL" {
		t.Errorf("expected INTERNAL, got %s", got)
	}
}

func TestResponseWriterFirstStatusWins(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)
	rw.WriteHeader(http.StatusAccepted)
	rw.WriteHeader(http.StatusTeapot)

	if rw.Status() != http.StatusAccepted || rec.Code != http.StatusAccepted {
		t.Errorf("expected 202, got writer %d recorder %d", rw.Status(), rec.Code)
	}
}
