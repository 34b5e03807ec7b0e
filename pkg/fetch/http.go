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

package fetch

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/recipekit/recipekit/pkg/defaults"
	"github.com/recipekit/recipekit/pkg/errors"
)

const (
	DefaultUserAgent = "recipekit-fetch/1.0"
)

var (
	DefaultMaxIdleConns        = 100
	DefaultMaxIdleConnsPerHost = 10
)

// ClientOption configures a Client.
type ClientOption func(*Client)

// Client downloads remote files with tuned connection timeouts.
type Client struct {
	UserAgent             string
	TotalTimeout          time.Duration
	ConnectTimeout        time.Duration
	TLSHandshakeTimeout   time.Duration
	ResponseHeaderTimeout time.Duration
	InsecureSkipVerify    bool
	ProgressInterval      time.Duration
	HTTP                  *http.Client

	// custom clients are used as given
	custom bool
}

func WithUserAgent(userAgent string) ClientOption {
	return func(c *Client) {
		c.UserAgent = userAgent
	}
}

func WithTotalTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.TotalTimeout = timeout
	}
}

func WithConnectTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.ConnectTimeout = timeout
	}
}

func WithResponseHeaderTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.ResponseHeaderTimeout = timeout
	}
}

func WithInsecureSkipVerify(skip bool) ClientOption {
	return func(c *Client) {
		c.InsecureSkipVerify = skip
	}
}

// WithProgressInterval sets how often download progress is logged.
func WithProgressInterval(d time.Duration) ClientOption {
	return func(c *Client) {
		c.ProgressInterval = d
	}
}

// WithHTTPClient replaces the underlying client; transport options are ignored.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.HTTP = client
		c.custom = client != nil
	}
}

// NewClient creates a Client with defaults from the defaults package.
func NewClient(options ...ClientOption) *Client {
	c := &Client{
		UserAgent:             DefaultUserAgent,
		TotalTimeout:          defaults.HTTPClientTimeout,
		ConnectTimeout:        defaults.HTTPConnectTimeout,
		TLSHandshakeTimeout:   defaults.HTTPTLSHandshakeTimeout,
		ResponseHeaderTimeout: defaults.HTTPResponseHeaderTimeout,
		ProgressInterval:      defaults.FetchProgressInterval,
	}
	for _, opt := range options {
		opt(c)
	}

	if !c.custom {
		c.HTTP = &http.Client{
			Timeout:   c.TotalTimeout,
			Transport: c.newTransport(),
		}
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	return c
}

func (c *Client) newTransport() *http.Transport {
	return &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        DefaultMaxIdleConns,
		MaxIdleConnsPerHost: DefaultMaxIdleConnsPerHost,

		DialContext: (&net.Dialer{
			Timeout:   c.ConnectTimeout,
			KeepAlive: defaults.HTTPKeepAlive,
		}).DialContext,
		TLSHandshakeTimeout:   c.TLSHandshakeTimeout,
		ResponseHeaderTimeout: c.ResponseHeaderTimeout,
		ExpectContinueTimeout: defaults.HTTPExpectContinueTimeout,
		IdleConnTimeout:       defaults.HTTPIdleConnTimeout,
		ForceAttemptHTTP2:     true,

		TLSClientConfig: &tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: c.InsecureSkipVerify, //nolint:gosec // opt-in for private mirrors
		},
	}
}

// Read fetches url and returns the whole body.
func (c *Client) Read(ctx context.Context, url string) ([]byte, error) {
	body, _, err := c.open(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, fmt.Sprintf("failed to read %s", url), err)
	}
	return data, nil
}

// Download streams url into w and returns the number of bytes written.
func (c *Client) Download(ctx context.Context, url string, w io.Writer) (int64, error) {
	body, size, err := c.open(ctx, url)
	if err != nil {
		return 0, err
	}
	defer body.Close()

	pw := &progressWriter{
		w:       w,
		url:     url,
		total:   size,
		limiter: rate.NewLimiter(rate.Every(c.ProgressInterval), 1),
	}
	n, err := io.Copy(pw, body)
	fetchBytesTotal.Add(float64(n))
	if err != nil {
		if ctx.Err() != nil {
			return n, errors.Wrap(errors.ErrCodeTimeout, fmt.Sprintf("download of %s interrupted", url), err)
		}
		return n, errors.Wrap(errors.ErrCodeUnavailable, fmt.Sprintf("failed to download %s", url), err)
	}

	slog.Debug("download complete", "url", url, "bytes", n)
	return n, nil
}

func (c *Client) open(ctx context.Context, url string) (io.ReadCloser, int64, error) {
	if url == "" {
		return nil, 0, errors.New(errors.ErrCodeInvalidRequest, "url is empty")
	}
	if c.HTTP == nil {
		return nil, 0, errors.New(errors.ErrCodeInternal, "http client is nil")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrCodeInvalidRequest, fmt.Sprintf("failed to create request for %s", url), err)
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrCodeUnavailable, fmt.Sprintf("http request failed for %s", url), err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		code := errors.ErrCodeUnavailable
		if resp.StatusCode == http.StatusNotFound {
			code = errors.ErrCodeNotFound
		}
		return nil, 0, errors.NewWithContext(code, fmt.Sprintf("failed to fetch %s: status %s", url, resp.Status),
			map[string]any{"status": resp.StatusCode})
	}
	return resp.Body, resp.ContentLength, nil
}

// progressWriter logs at most one progress record per limiter tick.
type progressWriter struct {
	w       io.Writer
	url     string
	total   int64
	written int64
	limiter *rate.Limiter
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	p.written += int64(n)
	if p.limiter.Allow() {
		slog.Info("downloading", "url", p.url, "bytes", p.written, "total", p.total)
	}
	return n, err
}
