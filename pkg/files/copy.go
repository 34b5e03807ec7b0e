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

package files

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// CopyOption configures Copy.
type CopyOption func(*copyConfig)

type copyConfig struct {
	keepPath bool
}

// WithKeepPath controls whether the matched file keeps its directory
// structure below dst. Defaults to true.
func WithKeepPath(keep bool) CopyOption {
	return func(c *copyConfig) {
		c.keepPath = keep
	}
}

// Copy copies every regular file under src matching pattern into dst and
// returns the destination paths in sorted order. A pattern matching nothing
// is not an error.
func Copy(pattern, dst, src string, opts ...CopyOption) ([]string, error) {
	cfg := &copyConfig{keepPath: true}
	for _, opt := range opts {
		opt(cfg)
	}

	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid copy pattern %q", pattern)
	}

	matches, err := doublestar.Glob(os.DirFS(src), pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to match %q in %s: %w", pattern, src, err)
	}
	sort.Strings(matches)

	copied := make([]string, 0, len(matches))
	for _, rel := range matches {
		from := filepath.Join(src, filepath.FromSlash(rel))
		info, err := os.Stat(from)
		if err != nil {
			return copied, fmt.Errorf("failed to stat %s: %w", from, err)
		}
		if !info.Mode().IsRegular() {
			continue
		}

		name := filepath.FromSlash(rel)
		if !cfg.keepPath {
			name = filepath.Base(name)
		}
		to := filepath.Join(dst, name)
		if err := CopyFile(from, to, info.Mode().Perm()); err != nil {
			return copied, err
		}
		copied = append(copied, to)
	}

	slog.Debug("copied files", "pattern", pattern, "src", src, "dst", dst, "count", len(copied))
	return copied, nil
}

// CopyFile copies a single file, creating parent directories as needed.
func CopyFile(src, dst string, perm fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", dst, err)
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s -> %s: %w", src, dst, err)
	}
	return out.Close()
}
