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

package checksum

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/recipekit/recipekit/pkg/defaults"
)

// ChecksumFileName is written at the root of every package folder.
const ChecksumFileName = "checksums.txt"

// ErrMismatch is returned when a file does not hash to the expected value.
var ErrMismatch = errors.New("sha256 mismatch")

// SumFile returns the hex encoded SHA256 of the file at path.
func SumFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s for checksum: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to read %s for checksum: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// VerifyFile checks the file at path against an expected hex SHA256.
// Comparison is case-insensitive. An empty expected value always passes.
func VerifyFile(path, expected string) error {
	if expected == "" {
		return nil
	}
	got, err := SumFile(path)
	if err != nil {
		return err
	}
	if !strings.EqualFold(got, strings.TrimSpace(expected)) {
		return fmt.Errorf("%w for %s: expected %s, got %s", ErrMismatch, filepath.Base(path), expected, got)
	}
	return nil
}

// GenerateChecksums hashes files concurrently and writes dir/checksums.txt
// in sha256sum format, one line per file, paths relative to dir and sorted.
func GenerateChecksums(ctx context.Context, dir string, files []string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled: %w", err)
	}

	sums := make([]string, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(defaults.ChecksumConcurrency)
	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sum, err := SumFile(file)
			if err != nil {
				return err
			}
			sums[i] = sum
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	lines := make([]string, 0, len(files))
	for i, file := range files {
		relPath, err := filepath.Rel(dir, file)
		if err != nil {
			relPath = file
		}
		lines = append(lines, fmt.Sprintf("%s  %s", sums[i], filepath.ToSlash(relPath)))
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i][66:] < lines[j][66:] })

	checksumPath := GetChecksumFilePath(dir)
	content := strings.Join(lines, "\n") + "\n"

	if err := os.WriteFile(checksumPath, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write checksums: %w", err)
	}

	slog.Debug("checksums generated",
		"file_count", len(lines),
		"path", checksumPath,
	)

	return nil
}

// GenerateDirChecksums writes checksums.txt for every regular file under
// dir, excluding a previous checksums.txt. Symlinks are not followed.
func GenerateDirChecksums(ctx context.Context, dir string) error {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if path == GetChecksumFilePath(dir) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", dir, err)
	}
	return GenerateChecksums(ctx, dir, files)
}

// GetChecksumFilePath is where GenerateChecksums writes the list for dir.
func GetChecksumFilePath(dir string) string {
	return filepath.Join(dir, ChecksumFileName)
}
