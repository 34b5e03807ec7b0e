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
	"archive/tar"
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"

	"github.com/recipekit/recipekit/pkg/errors"
)

// Format identifies an archive container and compression.
type Format string

const (
	FormatUnknown Format = ""
	FormatTarGz   Format = "tar.gz"
	FormatTarBz2  Format = "tar.bz2"
	FormatTarXz   Format = "tar.xz"
	FormatTarZst  Format = "tar.zst"
	FormatTar     Format = "tar"
	FormatZip     Format = "zip"
)

var suffixes = []struct {
	suffix string
	format Format
}{
	{".tar.gz", FormatTarGz},
	{".tgz", FormatTarGz},
	{".tar.bz2", FormatTarBz2},
	{".tbz2", FormatTarBz2},
	{".tar.xz", FormatTarXz},
	{".txz", FormatTarXz},
	{".tar.zst", FormatTarZst},
	{".tar", FormatTar},
	{".zip", FormatZip},
}

// FormatFromName determines the archive format from a file name.
func FormatFromName(name string) Format {
	lower := strings.ToLower(name)
	for _, s := range suffixes {
		if strings.HasSuffix(lower, s.suffix) {
			return s.format
		}
	}
	return FormatUnknown
}

// Extract unpacks the archive at path into destDir, which is created if
// needed. It returns the top-level entry names in archive order.
func Extract(ctx context.Context, path, destDir string) ([]string, error) {
	format := FormatFromName(path)
	if format == FormatUnknown {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest, "unsupported archive format",
			map[string]any{"path": path})
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", destDir, err)
	}

	// entries are confined to the real destination, not its lexical name
	realDest, err := filepath.EvalSymlinks(destDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", destDir, err)
	}
	destDir = realDest

	slog.Debug("extracting archive", "path", path, "format", format, "dest", destDir)

	if format == FormatZip {
		return extractZip(ctx, path, destDir)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, "failed to open archive", err)
	}
	defer f.Close()

	r, err := decompressor(format, f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, fmt.Sprintf("failed to read %s", path), err)
	}
	defer r.Close()

	return extractTar(ctx, r, destDir)
}

func decompressor(format Format, r io.Reader) (io.ReadCloser, error) {
	switch format {
	case FormatTarGz:
		return gzip.NewReader(r)
	case FormatTarBz2:
		return bzip2.NewReader(r, &bzip2.ReaderConfig{})
	case FormatTarXz:
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(xr), nil
	case FormatTarZst:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	case FormatTar:
		return io.NopCloser(r), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

func extractTar(ctx context.Context, r io.Reader, destDir string) ([]string, error) {
	tr := tar.NewReader(r)
	tops := newTopLevel()

	for {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, "extraction cancelled", err)
		}

		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "failed to read tar entry", err)
		}

		// pax global headers carry no file
		if hdr.Typeflag == tar.TypeXGlobalHeader {
			continue
		}

		target, err := entryPath(destDir, hdr.Name)
		if err != nil {
			return nil, err
		}
		tops.add(hdr.Name)

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := makeDir(destDir, target, dirMode(hdr.FileInfo().Mode())); err != nil {
				return nil, err
			}
		case tar.TypeReg:
			if err := writeFile(target, tr, hdr.FileInfo().Mode().Perm()); err != nil {
				return nil, err
			}
		case tar.TypeSymlink:
			if err := checkLink(destDir, target, hdr.Linkname); err != nil {
				return nil, err
			}
			if err := replaceWith(target, func() error { return os.Symlink(hdr.Linkname, target) }); err != nil {
				return nil, fmt.Errorf("failed to create symlink %s: %w", target, err)
			}
		case tar.TypeLink:
			src, err := resolveWithin(destDir, destDir, hdr.Linkname)
			if err != nil {
				return nil, err
			}
			if err := replaceWith(target, func() error { return os.Link(src, target) }); err != nil {
				return nil, fmt.Errorf("failed to create hard link %s: %w", target, err)
			}
		default:
			slog.Debug("skipping unsupported tar entry", "name", hdr.Name, "type", string(hdr.Typeflag))
		}
	}
	return tops.names, nil
}

func extractZip(ctx context.Context, path, destDir string) ([]string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, fmt.Sprintf("failed to open zip %s", path), err)
	}
	defer zr.Close()

	tops := newTopLevel()
	for _, zf := range zr.File {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, "extraction cancelled", err)
		}

		target, err := entryPath(destDir, zf.Name)
		if err != nil {
			return nil, err
		}
		tops.add(zf.Name)

		mode := zf.Mode()
		if mode.IsDir() {
			if err := makeDir(destDir, target, dirMode(mode)); err != nil {
				return nil, err
			}
			continue
		}

		rc, err := zf.Open()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRequest, fmt.Sprintf("failed to open zip entry %s", zf.Name), err)
		}
		perm := mode.Perm()
		if perm == 0 {
			perm = 0644
		}
		err = writeFile(target, rc, perm)
		rc.Close()
		if err != nil {
			return nil, err
		}
	}
	return tops.names, nil
}

// writeFile creates target with the content of r. An existing symlink at
// target is replaced, never followed.
func writeFile(target string, r io.Reader, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create parent of %s: %w", target, err)
	}
	if fi, err := os.Lstat(target); err == nil && fi.Mode()&os.ModeSymlink != 0 {
		if err := os.Remove(target); err != nil {
			return fmt.Errorf("failed to replace symlink %s: %w", target, err)
		}
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm|0200)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", target, err)
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return errors.Wrap(errors.ErrCodeInvalidRequest, fmt.Sprintf("failed to extract %s", target), err)
	}
	return out.Close()
}

// makeDir creates a directory entry. An earlier symlink entry of the same
// name is followed only when it stays inside destDir.
func makeDir(destDir, target string, mode os.FileMode) error {
	dir, err := resolveWithin(destDir, filepath.Dir(target), filepath.Base(target))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, mode); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return nil
}

func replaceWith(target string, create func() error) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return err
	}
	return create()
}

func dirMode(m os.FileMode) os.FileMode {
	return m.Perm() | 0700
}

// entryPath returns where the archive entry name is written. The parent
// part of name is walked through symlinks already on disk, so links created
// by earlier entries cannot redirect it outside destDir. The last element
// is left unresolved.
func entryPath(destDir, name string) (string, error) {
	native := filepath.FromSlash(name)
	if filepath.IsAbs(native) || filepath.VolumeName(native) != "" || strings.HasPrefix(name, "/") {
		return "", errors.NewWithContext(errors.ErrCodeInvalidRequest, "archive entry has absolute path",
			map[string]any{"entry": name})
	}
	escapes := errors.NewWithContext(errors.ErrCodeInvalidRequest, "archive entry escapes destination",
		map[string]any{"entry": name})
	if !within(destDir, filepath.Join(destDir, native)) {
		return "", escapes
	}

	slashed := strings.TrimRight(filepath.ToSlash(name), "/")
	dir, base := "", slashed
	if i := strings.LastIndex(slashed, "/"); i >= 0 {
		dir, base = slashed[:i], slashed[i+1:]
	}
	parent, err := resolveWithin(destDir, destDir, dir)
	if err != nil {
		return "", errors.WrapWithContext(errors.ErrCodeInvalidRequest, "archive entry escapes destination", err,
			map[string]any{"entry": name})
	}
	switch base {
	case "", ".":
		return parent, nil
	case "..":
		return "", escapes
	}
	return filepath.Join(parent, base), nil
}

// resolveWithin walks rel from start one element at a time, following
// symlinks that exist on disk, and fails as soon as the walk leaves
// destDir. Missing elements are appended as is.
func resolveWithin(destDir, start, rel string) (string, error) {
	if filepath.IsAbs(rel) {
		return "", errors.NewWithContext(errors.ErrCodeInvalidRequest, "archive link is absolute",
			map[string]any{"link": rel})
	}
	cur := start
	for _, elem := range strings.Split(filepath.ToSlash(rel), "/") {
		switch elem {
		case "", ".":
			continue
		case "..":
			cur = filepath.Dir(cur)
		default:
			cur = filepath.Join(cur, elem)
			if fi, err := os.Lstat(cur); err == nil && fi.Mode()&os.ModeSymlink != 0 {
				resolved, err := filepath.EvalSymlinks(cur)
				if err != nil {
					return "", errors.WrapWithContext(errors.ErrCodeInvalidRequest, "archive symlink cannot be resolved", err,
						map[string]any{"path": cur})
				}
				cur = resolved
			}
		}
		if !within(destDir, cur) {
			return "", errors.NewWithContext(errors.ErrCodeInvalidRequest, "archive path escapes destination",
				map[string]any{"path": rel})
		}
	}
	return cur, nil
}

// checkLink rejects a symlink at target whose link text would point
// outside destDir once resolved against the real tree.
func checkLink(destDir, target, linkname string) error {
	if filepath.IsAbs(linkname) {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "archive symlink is absolute",
			map[string]any{"link": linkname})
	}
	if _, err := resolveWithin(destDir, filepath.Dir(target), linkname); err != nil {
		return errors.WrapWithContext(errors.ErrCodeInvalidRequest, "archive symlink escapes destination", err,
			map[string]any{"link": linkname})
	}
	return nil
}

func within(base, target string) bool {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

type topLevel struct {
	seen  map[string]struct{}
	names []string
}

func newTopLevel() *topLevel {
	return &topLevel{seen: map[string]struct{}{}}
}

func (t *topLevel) add(name string) {
	name = strings.TrimPrefix(filepath.ToSlash(name), "./")
	first, _, _ := strings.Cut(name, "/")
	if first == "" || first == "." {
		return
	}
	if _, ok := t.seen[first]; ok {
		return
	}
	t.seen[first] = struct{}{}
	t.names = append(t.names, first)
}
