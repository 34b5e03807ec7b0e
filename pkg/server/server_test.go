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
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/recipekit/recipekit/pkg/errors"
	"github.com/recipekit/recipekit/pkg/recipe"
	"github.com/recipekit/recipekit/pkg/requirement"
	"github.com/recipekit/recipekit/pkg/runner"
)

func newTestServer(t *testing.T, mutate func(*Config)) *Server {
	t.Helper()
	cfg := NewConfig()
	cfg.Version = "test"
	if mutate != nil {
		mutate(cfg)
	}
	return New(cfg)
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error body %q: %v", rec.Body.String(), err)
	}
	if resp.RequestID == "" {
		t.Error("error response without request id")
	}
	return resp
}

func TestHealthAndReady(t *testing.T) {
	s := newTestServer(t, nil)

	if rec := do(t, s, http.MethodGet, "/health", ""); rec.Code != http.StatusOK {
		t.Errorf("health: expected 200, got %d", rec.Code)
	}
	if rec := do(t, s, http.MethodGet, "/ready", ""); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("ready before start: expected 503, got %d", rec.Code)
	}

	s.SetReady(true)
	if rec := do(t, s, http.MethodGet, "/ready", ""); rec.Code != http.StatusOK {
		t.Errorf("ready: expected 200, got %d", rec.Code)
	}

	rec := do(t, s, http.MethodPost, "/health", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
	if got := decodeError(t, rec).Code; got != ErrCodeMethodNotAllowed {
		t.Errorf("expected %s, got %s", ErrCodeMethodNotAllowed, got)
	}
}

func TestDefaultRoute(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "POST /v1/inspect") {
		t.Errorf("route listing missing inspect: %s", rec.Body.String())
	}

	rec = do(t, s, http.MethodGet, "/v2/anything", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, nil)
	do(t, s, http.MethodGet, "/v1/recipes", "")

	rec := do(t, s, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "recipekit_http_requests_total") {
		t.Error("metrics output missing request counter")
	}
}

func TestListRecipes(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodGet, "/v1/recipes", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var got []recipe.Metadata
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	found := false
	for _, m := range got {
		if m.Name == "libzip" && m.Version == "1.7.3" {
			found = true
		}
	}
	if !found {
		t.Errorf("libzip not listed: %+v", got)
	}
}

func TestGetRecipe(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodGet, "/v1/recipes/libzip", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var detail struct {
		Name    string `json:"name"`
		Options []struct {
			Name    string `json:"name"`
			Default string `json:"default"`
		} `json:"options"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &detail); err != nil {
		t.Fatal(err)
	}
	if detail.Name != "libzip" {
		t.Errorf("expected libzip, got %q", detail.Name)
	}
	if len(detail.Options) != 6 {
		t.Errorf("expected 6 declared options, got %d", len(detail.Options))
	}

	rec = do(t, s, http.MethodGet, "/v1/recipes/zlib", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if got := decodeError(t, rec).Code; got != string(errors.ErrCodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %s", got)
	}
}

func TestInspect(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodPost, "/v1/inspect",
		`{"recipe":"libzip","settings":{"os":"Windows"},"options":{"with_openssl":"true","with_mbedtls":"False"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var res runner.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if _, ok := res.Options["fPIC"]; ok {
		t.Error("fPIC should be removed on Windows")
	}
	if res.Options["with_openssl"] != "True" {
		t.Errorf("expected with_openssl=True, got %q", res.Options["with_openssl"])
	}
	want := []string{"zlib/1.2.11", "xz_utils/5.2.5@ggreene/test", "bzip2/1.0.8", "openssl/1.0.2t"}
	if strings.Join(res.Requirements, ",") != strings.Join(want, ",") {
		t.Errorf("requirements = %v, want %v", res.Requirements, want)
	}
	if res.Definitions["ENABLE_WINDOWS_CRYPTO"] != "ON" {
		t.Errorf("expected ENABLE_WINDOWS_CRYPTO=ON, got %q", res.Definitions["ENABLE_WINDOWS_CRYPTO"])
	}
	if res.PackageDir != "" {
		t.Errorf("inspect must not report a package dir, got %q", res.PackageDir)
	}
}

func TestInspectErrors(t *testing.T) {
	s := newTestServer(t, func(c *Config) {
		c.Resolver = requirement.NewLocalResolver(t.TempDir())
	})

	tests := []struct {
		name   string
		method string
		body   string
		status int
		code   string
	}{
		{"wrong method", http.MethodGet, "", http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed},
		{"malformed body", http.MethodPost, "{", http.StatusBadRequest, "INVALID_REQUEST"},
		{"unknown field", http.MethodPost, `{"recipe":"libzip","settings":{"os":"Linux"},"profile":"x"}`, http.StatusBadRequest, "INVALID_REQUEST"},
		{"missing recipe", http.MethodPost, `{"settings":{"os":"Linux"}}`, http.StatusBadRequest, "INVALID_REQUEST"},
		{"missing os", http.MethodPost, `{"recipe":"libzip","settings":{}}`, http.StatusBadRequest, "INVALID_REQUEST"},
		{"bad os", http.MethodPost, `{"recipe":"libzip","settings":{"os":"Plan9"}}`, http.StatusBadRequest, "INVALID_REQUEST"},
		{"bad option", http.MethodPost, `{"recipe":"libzip","settings":{"os":"Linux"},"options":{"shared":"maybe"}}`, http.StatusBadRequest, "INVALID_REQUEST"},
		{"unknown recipe", http.MethodPost, `{"recipe":"zlib","settings":{"os":"Linux"}}`, http.StatusNotFound, "NOT_FOUND"},
		{"unresolved dependency", http.MethodPost, `{"recipe":"libzip","settings":{"os":"Linux"}}`, http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, tt.method, "/v1/inspect", tt.body)
			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
			if got := decodeError(t, rec).Code; got != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, got)
			}
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code      errors.ErrorCode
		status    int
		retryable bool
	}{
		{errors.ErrCodeNotFound, http.StatusNotFound, false},
		{errors.ErrCodeInvalidRequest, http.StatusBadRequest, false},
		{errors.ErrCodeTimeout, http.StatusGatewayTimeout, true},
		{errors.ErrCodeUnavailable, http.StatusServiceUnavailable, true},
		{errors.ErrCodeToolFailure, http.StatusInternalServerError, true},
		{"", http.StatusInternalServerError, true},
	}
	for _, tt := range tests {
		status, retryable := statusFor(tt.code)
		if status != tt.status || retryable != tt.retryable {
			t.Errorf("statusFor(%q) = %d, %v; want %d, %v", tt.code, status, retryable, tt.status, tt.retryable)
		}
	}
}

func TestServeShutdown(t *testing.T) {
	s := newTestServer(t, func(c *Config) {
		c.ShutdownTimeout = 5 * time.Second
	})

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, l) }()

	url := "http://" + l.Addr().String() + "/ready"
	var resp *http.Response
	for i := 0; i < 50; i++ {
		resp, err = http.Get(url)
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("server never answered: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected ready, got %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected serve error: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
	if s.IsReady() {
		t.Error("server still ready after shutdown")
	}
}
