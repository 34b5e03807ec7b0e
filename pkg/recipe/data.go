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

package recipe

import (
	"fmt"
	"io/fs"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/recipekit/recipekit/pkg/errors"
	"github.com/recipekit/recipekit/pkg/fetch"
	"github.com/recipekit/recipekit/pkg/version"
)

// DataFileName is the conventional name of the version-keyed data file.
const DataFileName = "conandata.yml"

// URLList accepts either a single URL or a list of mirrors.
type URLList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (u *URLList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*u = URLList{node.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*u = list
		return nil
	default:
		return fmt.Errorf("line %d: url must be a string or a list of strings", node.Line)
	}
}

// SourceEntry is one version's upstream archive.
type SourceEntry struct {
	URL    URLList `yaml:"url"`
	SHA256 string  `yaml:"sha256"`
}

// PatchEntry is one version's patch.
type PatchEntry struct {
	PatchFile string `yaml:"patch_file"`
	BasePath  string `yaml:"base_path"`
}

// Data is the version-keyed recipe data.
type Data struct {
	Sources map[string]SourceEntry  `yaml:"sources"`
	Patches map[string][]PatchEntry `yaml:"patches,omitempty"`
}

// ParseData decodes recipe data and validates every source entry.
func ParseData(b []byte) (*Data, error) {
	var d Data
	if err := yaml.Unmarshal(b, &d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "failed to parse recipe data", err)
	}
	for v, s := range d.Sources {
		if len(s.URL) == 0 {
			return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest, "source has no url",
				map[string]any{"version": v})
		}
	}
	for v, patches := range d.Patches {
		for _, p := range patches {
			if p.PatchFile == "" {
				return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest, "patch entry has no patch_file",
					map[string]any{"version": v})
			}
		}
	}
	return &d, nil
}

// LoadData reads and parses name from fsys.
func LoadData(fsys fs.FS, name string) (*Data, error) {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, fmt.Sprintf("failed to read %s", name), err)
	}
	return ParseData(b)
}

// Source returns the fetch source for ver.
func (d *Data) Source(ver string) (fetch.Source, error) {
	s, ok := d.Sources[ver]
	if !ok {
		return fetch.Source{}, errors.NewWithContext(errors.ErrCodeNotFound,
			fmt.Sprintf("no source for version %s", ver),
			map[string]any{"version": ver, "available": d.Versions()})
	}
	return fetch.Source{URLs: slices.Clone(s.URL), SHA256: s.SHA256}, nil
}

// PatchesFor returns the patches for ver, possibly none.
func (d *Data) PatchesFor(ver string) []PatchEntry {
	return d.Patches[ver]
}

// Versions lists the versions with sources, oldest first.
func (d *Data) Versions() []string {
	keys := slices.Sorted(maps.Keys(d.Sources))
	version.Sort(keys)
	return keys
}
