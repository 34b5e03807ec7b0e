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
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/recipekit/recipekit/pkg/checksum"
	"github.com/recipekit/recipekit/pkg/defaults"
	"github.com/recipekit/recipekit/pkg/errors"
)

// Source describes one upstream archive.
type Source struct {
	// URLs are mirrors tried in order.
	URLs []string `json:"urls" yaml:"urls"`
	// SHA256 of the archive; empty skips verification.
	SHA256 string `json:"sha256,omitempty" yaml:"sha256,omitempty"`
	// FileName overrides the name derived from the first URL.
	FileName string `json:"fileName,omitempty" yaml:"fileName,omitempty"`
}

// Name returns the archive file name used for format detection and caching.
func (s Source) Name() string {
	if s.FileName != "" {
		return s.FileName
	}
	if len(s.URLs) == 0 {
		return ""
	}
	raw := s.URLs[0]
	if u, err := url.Parse(raw); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		return path.Base(u.Path)
	}
	return filepath.Base(raw)
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithCacheDir enables the download cache.
func WithCacheDir(dir string) Option {
	return func(f *Fetcher) {
		f.cacheDir = dir
	}
}

// WithClient sets the HTTP client used for remote mirrors.
func WithClient(c *Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// Fetcher downloads and extracts sources.
type Fetcher struct {
	client   *Client
	cacheDir string
}

// New creates a Fetcher.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{}
	for _, opt := range opts {
		opt(f)
	}
	if f.client == nil {
		f.client = NewClient()
	}
	return f
}

// Get downloads src, verifies it and extracts it into destDir. It returns
// the top-level entries created by the archive.
func (f *Fetcher) Get(ctx context.Context, src Source, destDir string) ([]string, error) {
	archive, cleanup, err := f.Download(ctx, src)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	entries, err := Extract(ctx, archive, destDir)
	if err != nil {
		return nil, err
	}
	slog.Info("source extracted", "archive", src.Name(), "dest", destDir, "entries", entries)
	return entries, nil
}

// Download obtains a verified local copy of src and returns its path. The
// cleanup func removes temporary files and must always be called.
func (f *Fetcher) Download(ctx context.Context, src Source) (string, func(), error) {
	noop := func() {}
	if len(src.URLs) == 0 {
		return "", noop, errors.New(errors.ErrCodeInvalidRequest, "source has no urls")
	}
	name := src.Name()
	if name == "" || FormatFromName(name) == FormatUnknown {
		return "", noop, errors.NewWithContext(errors.ErrCodeInvalidRequest, "cannot determine archive format",
			map[string]any{"name": name})
	}

	if cached, ok := f.cached(src, name); ok {
		fetchCacheHits.Inc()
		slog.Debug("using cached archive", "path", cached)
		return cached, noop, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.FetchTimeout)
	defer cancel()

	var lastErr error
	for _, mirror := range src.URLs {
		archive, cleanup, err := f.fetchOne(ctx, mirror, name)
		if err == nil {
			err = checksum.VerifyFile(archive, src.SHA256)
			if err == nil {
				return f.store(src, name, archive, cleanup)
			}
			cleanup()
			if stderrors.Is(err, checksum.ErrMismatch) {
				err = errors.WrapWithContext(errors.ErrCodeInvalidRequest, "archive checksum mismatch", err,
					map[string]any{"url": mirror})
			}
		}
		slog.Warn("mirror failed", "url", mirror, "error", err)
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return "", noop, lastErr
}

// fetchOne makes the mirror content available as a local file.
func (f *Fetcher) fetchOne(ctx context.Context, mirror, name string) (string, func(), error) {
	noop := func() {}

	if local, ok := localPath(mirror); ok {
		if _, err := os.Stat(local); err != nil {
			return "", noop, errors.Wrap(errors.ErrCodeNotFound, fmt.Sprintf("local source %s", local), err)
		}
		return local, noop, nil
	}

	dir, err := os.MkdirTemp("", "recipekit-fetch-")
	if err != nil {
		return "", noop, fmt.Errorf("failed to create temp dir: %w", err)
	}
	cleanup := func() { _ = os.RemoveAll(dir) }

	target := filepath.Join(dir, name)
	out, err := os.Create(target)
	if err != nil {
		cleanup()
		return "", noop, fmt.Errorf("failed to create %s: %w", target, err)
	}

	slog.Info("downloading source", "url", mirror)
	_, err = f.client.Download(ctx, mirror, out)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		cleanup()
		return "", noop, err
	}
	return target, cleanup, nil
}

func (f *Fetcher) cachePath(src Source, name string) string {
	if f.cacheDir == "" || src.SHA256 == "" {
		return ""
	}
	return filepath.Join(f.cacheDir, strings.ToLower(src.SHA256), name)
}

func (f *Fetcher) cached(src Source, name string) (string, bool) {
	p := f.cachePath(src, name)
	if p == "" {
		return "", false
	}
	if err := checksum.VerifyFile(p, src.SHA256); err != nil {
		return "", false
	}
	return p, true
}

// store moves a verified download into the cache when enabled.
func (f *Fetcher) store(src Source, name, archive string, cleanup func()) (string, func(), error) {
	p := f.cachePath(src, name)
	if p == "" {
		return archive, cleanup, nil
	}
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		slog.Warn("failed to create cache dir, using download directly", "error", err)
		return archive, cleanup, nil
	}

	in, err := os.Open(archive)
	if err != nil {
		return archive, cleanup, nil
	}
	defer in.Close()

	tmp := p + ".partial"
	out, err := os.Create(tmp)
	if err != nil {
		slog.Warn("failed to write cache entry", "path", tmp, "error", err)
		return archive, cleanup, nil
	}
	_, err = io.Copy(out, in)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmp, p)
	}
	if err != nil {
		_ = os.Remove(tmp)
		slog.Warn("failed to write cache entry", "path", p, "error", err)
		return archive, cleanup, nil
	}

	cleanup()
	slog.Debug("cached archive", "path", p)
	return p, func() {}, nil
}

// localPath reports whether raw names a local file and returns its path.
func localPath(raw string) (string, bool) {
	if strings.HasPrefix(raw, "file://") {
		u, err := url.Parse(raw)
		if err != nil {
			return strings.TrimPrefix(raw, "file://"), true
		}
		return filepath.FromSlash(u.Path), true
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return "", false
	}
	return raw, true
}
