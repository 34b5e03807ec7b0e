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

package textpatch

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrPatternNotFound is returned when a strict replacement finds nothing to replace.
var ErrPatternNotFound = errors.New("pattern not found")

// ReplaceInFile replaces every occurrence of search with replace in the file
// at path and returns the number of replacements. When search does not occur,
// strict mode returns an error wrapping ErrPatternNotFound; otherwise a
// warning is logged and the file is left untouched.
func ReplaceInFile(path, search, replace string, strict bool) (int, error) {
	if search == "" {
		return 0, fmt.Errorf("empty search pattern for %s", path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", path, err)
	}

	content := string(data)
	n := strings.Count(content, search)
	if n == 0 {
		if strict {
			return 0, fmt.Errorf("%w: %q in %s", ErrPatternNotFound, search, path)
		}
		slog.Warn("pattern not found, file left unchanged", "pattern", search, "path", path)
		return 0, nil
	}

	content = strings.ReplaceAll(content, search, replace)
	if err := os.WriteFile(path, []byte(content), info.Mode().Perm()); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", path, err)
	}

	slog.Debug("replaced in file", "path", path, "pattern", search, "count", n)
	return n, nil
}

// ReplaceFirstOf tries each variant in order and replaces the first one that
// occurs in the file. It returns the variant that matched. When none occur
// the error wraps ErrPatternNotFound.
func ReplaceFirstOf(path string, variants []string, replace string) (string, error) {
	if len(variants) == 0 {
		return "", fmt.Errorf("no variants given for %s", path)
	}
	for _, v := range variants {
		_, err := ReplaceInFile(path, v, replace, true)
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, ErrPatternNotFound) {
			return "", err
		}
		slog.Debug("variant not present, trying next", "variant", v, "path", path)
	}
	return "", fmt.Errorf("%w: none of %q in %s", ErrPatternNotFound, variants, path)
}

// CommandVariants returns the upper-case and lower-case spellings of a
// build-manifest command invocation, e.g. ADD_SUBDIRECTORY(man) and
// add_subdirectory(man). The argument keeps its case.
func CommandVariants(command, arg string) []string {
	upper := cases.Upper(language.Und).String(command)
	lower := cases.Lower(language.Und).String(command)
	return []string{
		fmt.Sprintf("%s(%s)", upper, arg),
		fmt.Sprintf("%s(%s)", lower, arg),
	}
}
