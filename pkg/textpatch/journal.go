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
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// JournalFileName is the name of the journal file kept in the patched tree.
const JournalFileName = ".recipekit-textpatch.yaml"

// Journal remembers which edits have been applied to a tree. Every
// successful edit is written to disk before the call returns, so a run that
// fails halfway leaves a journal matching the files.
type Journal struct {
	path    string
	Applied map[string]string `yaml:"applied"`
}

// LoadJournal reads the journal in dir, returning an empty one if absent.
func LoadJournal(dir string) (*Journal, error) {
	j := &Journal{
		path:    filepath.Join(dir, JournalFileName),
		Applied: map[string]string{},
	}

	data, err := os.ReadFile(j.path)
	if errors.Is(err, os.ErrNotExist) {
		return j, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read patch journal: %w", err)
	}
	if err := yaml.Unmarshal(data, j); err != nil {
		return nil, fmt.Errorf("failed to parse patch journal %s: %w", j.path, err)
	}
	if j.Applied == nil {
		j.Applied = map[string]string{}
	}
	return j, nil
}

// Save writes the journal back to disk.
func (j *Journal) Save() error {
	data, err := yaml.Marshal(j)
	if err != nil {
		return fmt.Errorf("failed to serialize patch journal: %w", err)
	}
	if err := os.WriteFile(j.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write patch journal: %w", err)
	}
	return nil
}

// Keys returns the recorded edit keys in sorted order.
func (j *Journal) Keys() []string {
	keys := make([]string, 0, len(j.Applied))
	for k := range j.Applied {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func journalKey(path string, variants []string, replace string) string {
	return fmt.Sprintf("%s|%q->%q", filepath.Base(path), variants, replace)
}

// Replace is ReplaceInFile in strict mode, except that an edit already
// recorded in the journal is accepted when its pattern is gone.
func (j *Journal) Replace(path, search, replace string) error {
	_, err := j.ReplaceFirstOf(path, []string{search}, replace)
	return err
}

// ReplaceFirstOf is the journaled form of the package level ReplaceFirstOf.
// It returns the matched variant, or "" when the edit was already applied.
func (j *Journal) ReplaceFirstOf(path string, variants []string, replace string) (string, error) {
	key := journalKey(path, variants, replace)

	matched, err := ReplaceFirstOf(path, variants, replace)
	if err == nil {
		j.Applied[key] = matched
		if err := j.Save(); err != nil {
			return "", err
		}
		return matched, nil
	}
	if errors.Is(err, ErrPatternNotFound) {
		if prev, ok := j.Applied[key]; ok {
			slog.Debug("edit already applied", "path", path, "variant", prev)
			return "", nil
		}
	}
	return "", err
}

// Done reports whether an arbitrary step key was recorded with Mark.
func (j *Journal) Done(key string) bool {
	_, ok := j.Applied[key]
	return ok
}

// Mark records an arbitrary step key, such as an applied patch file, and
// saves the journal.
func (j *Journal) Mark(key, detail string) error {
	j.Applied[key] = detail
	return j.Save()
}
