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

package patch

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"

	"github.com/recipekit/recipekit/pkg/errors"
)

const defaultFileMode os.FileMode = 0644

// Apply parses the diff read from r and applies every file section to the
// tree rooted at baseDir. It returns the paths (relative to baseDir) that
// were created, modified or removed.
func Apply(r io.Reader, baseDir string) ([]string, error) {
	files, _, err := gitdiff.Parse(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "failed to parse patch", err)
	}
	if len(files) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "patch contains no file changes")
	}

	// resolve all targets first so a bad path leaves the tree untouched
	plans := make([]plan, 0, len(files))
	for _, f := range files {
		p, err := newPlan(f, baseDir)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}

	changed := make([]string, 0, len(plans))
	for _, p := range plans {
		if err := p.apply(); err != nil {
			return changed, err
		}
		changed = append(changed, p.name)
		slog.Debug("patched file", "file", p.name, "delete", p.file.IsDelete, "new", p.file.IsNew)
	}
	return changed, nil
}

// ApplyFile applies the diff stored at patchPath.
func ApplyFile(patchPath, baseDir string) ([]string, error) {
	f, err := os.Open(patchPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, "failed to open patch", err)
	}
	defer f.Close()
	return Apply(f, baseDir)
}

// ApplyFS applies the diff stored under name in fsys, typically an embedded
// recipe directory.
func ApplyFS(fsys fs.FS, name, baseDir string) ([]string, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, fmt.Sprintf("failed to open patch %s", name), err)
	}
	defer f.Close()
	return Apply(f, baseDir)
}

type plan struct {
	file    *gitdiff.File
	name    string
	oldPath string
	newPath string
}

func newPlan(f *gitdiff.File, baseDir string) (plan, error) {
	oldName := stripPrefix(baseDir, f.OldName)
	newName := stripPrefix(baseDir, f.NewName)

	p := plan{file: f}
	var err error
	if !f.IsNew {
		if p.oldPath, err = within(baseDir, oldName); err != nil {
			return p, err
		}
		p.name = oldName
	}
	if !f.IsDelete {
		if p.newPath, err = within(baseDir, newName); err != nil {
			return p, err
		}
		p.name = newName
	}
	return p, nil
}

func (p plan) apply() error {
	f := p.file
	if f.IsDelete {
		if err := os.Remove(p.oldPath); err != nil {
			return fmt.Errorf("failed to delete %s: %w", p.name, err)
		}
		return nil
	}

	var src []byte
	mode := defaultFileMode
	if !f.IsNew {
		info, err := os.Stat(p.oldPath)
		if err != nil {
			return errors.Wrap(errors.ErrCodeNotFound, fmt.Sprintf("patch target %s missing", p.name), err)
		}
		mode = info.Mode().Perm()
		if src, err = os.ReadFile(p.oldPath); err != nil {
			return fmt.Errorf("failed to read %s: %w", p.name, err)
		}
	}
	if f.NewMode != 0 {
		mode = f.NewMode.Perm()
	}

	var out bytes.Buffer
	if err := gitdiff.Apply(&out, bytes.NewReader(src), f); err != nil {
		return errors.WrapWithContext(errors.ErrCodeInvalidRequest, "patch does not apply", err,
			map[string]any{"file": p.name})
	}

	if err := os.MkdirAll(filepath.Dir(p.newPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", p.name, err)
	}
	if err := os.WriteFile(p.newPath, out.Bytes(), mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", p.name, err)
	}
	if f.IsRename && p.oldPath != p.newPath {
		if err := os.Remove(p.oldPath); err != nil {
			return fmt.Errorf("failed to remove renamed %s: %w", p.oldPath, err)
		}
	}
	return nil
}

// stripPrefix drops a leading a/ or b/ component unless the tree really has
// a directory of that name. Git headers arrive already stripped.
func stripPrefix(baseDir, name string) string {
	for _, prefix := range []string{"a/", "b/"} {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if info, err := os.Stat(filepath.Join(baseDir, prefix[:1])); err == nil && info.IsDir() {
			return name
		}
		return name[len(prefix):]
	}
	return name
}

func within(baseDir, name string) (string, error) {
	if name == "" || filepath.IsAbs(name) {
		return "", errors.NewWithContext(errors.ErrCodeInvalidRequest, "invalid patch target path",
			map[string]any{"path": name})
	}
	target := filepath.Join(baseDir, filepath.FromSlash(name))
	rel, err := filepath.Rel(baseDir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.NewWithContext(errors.ErrCodeInvalidRequest, "patch target escapes base directory",
			map[string]any{"path": name})
	}
	return target, nil
}
