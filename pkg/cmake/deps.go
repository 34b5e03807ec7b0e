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

package cmake

import (
	"fmt"
	"strings"

	"github.com/recipekit/recipekit/pkg/files"
)

const (
	DefPrefixPath = "CMAKE_PREFIX_PATH"
	// LibsPrefix starts the per-dependency library list variables,
	// e.g. CONAN_LIBS_OPENSSL.
	LibsPrefix = "CONAN_LIBS_"
)

// Dependency is a resolved package the build links against.
type Dependency struct {
	Name string
	Path string
}

// UseDependencies exposes resolved dependencies to the CMake project:
// their package folders go on CMAKE_PREFIX_PATH and the absolute paths of
// the libraries found in each are published as CONAN_LIBS_<NAME>, ready for
// target_link_libraries. Dependencies without a path define nothing.
func (c *CMake) UseDependencies(deps []Dependency) error {
	var prefixes []string
	for _, d := range deps {
		if d.Path == "" {
			continue
		}
		prefixes = append(prefixes, d.Path)

		libs, err := files.CollectLibFiles(d.Path, files.DefaultLibDirs...)
		if err != nil {
			return fmt.Errorf("failed to collect libraries of %s: %w", d.Name, err)
		}
		c.Definitions[LibsVariable(d.Name)] = strings.Join(libs, ";")
	}
	if len(prefixes) > 0 {
		c.Definitions[DefPrefixPath] = strings.Join(prefixes, ";")
	}
	return nil
}

// LibsVariable returns the library list variable for a package name.
func LibsVariable(name string) string {
	return LibsPrefix + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}
