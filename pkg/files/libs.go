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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// DefaultLibDirs is where CollectLibs looks when no directories are given.
var DefaultLibDirs = []string{"lib"}

// versioned shared objects such as libzip.so.5.3 are symlink targets of the
// plain .so and are not reported separately
var versionedShared = regexp.MustCompile(`\.so(\.[0-9]+)+$`)

// CollectLibs lists the link names of the libraries found directly inside
// the given library directories of packageDir, sorted and deduplicated.
// Missing directories are skipped.
func CollectLibs(packageDir string, libDirs ...string) ([]string, error) {
	seen := map[string]struct{}{}
	err := eachLib(packageDir, libDirs, func(name, _ string) {
		seen[name] = struct{}{}
	})
	if err != nil {
		return nil, err
	}
	libs := make([]string, 0, len(seen))
	for name := range seen {
		libs = append(libs, name)
	}
	sort.Strings(libs)
	return libs, nil
}

// CollectLibFiles is CollectLibs returning absolute file paths, which a
// build can link without extra search directories. When a link name exists
// in several directories the first directory wins.
func CollectLibFiles(packageDir string, libDirs ...string) ([]string, error) {
	abs, err := filepath.Abs(packageDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", packageDir, err)
	}
	byName := map[string]string{}
	err = eachLib(abs, libDirs, func(name, path string) {
		if _, ok := byName[name]; !ok {
			byName[name] = path
		}
	})
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = byName[name]
	}
	return paths, nil
}

func eachLib(packageDir string, libDirs []string, fn func(name, path string)) error {
	if len(libDirs) == 0 {
		libDirs = DefaultLibDirs
	}
	for _, dir := range libDirs {
		full := filepath.Join(packageDir, dir)
		entries, err := os.ReadDir(full)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to list %s: %w", dir, err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if name, ok := LibName(e.Name()); ok {
				fn(name, filepath.Join(full, e.Name()))
			}
		}
	}
	return nil
}

// LibName converts a library file name to its link name. It reports false
// for files that are not libraries.
func LibName(file string) (string, bool) {
	if versionedShared.MatchString(file) {
		return "", false
	}

	var base string
	switch {
	case strings.HasSuffix(file, ".dll.a"):
		base = strings.TrimSuffix(file, ".dll.a")
	case strings.HasSuffix(file, ".lib"):
		// MSVC import and static libraries keep their full name
		return strings.TrimSuffix(file, ".lib"), true
	default:
		ext := filepath.Ext(file)
		switch ext {
		case ".a", ".so", ".dylib", ".bc":
			base = strings.TrimSuffix(file, ext)
		default:
			return "", false
		}
	}

	base = strings.TrimPrefix(base, "lib")
	if base == "" {
		return "", false
	}
	return base, true
}
