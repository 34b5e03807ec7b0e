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

import "slices"

// CppInfo describes what consumers of a package link against.
type CppInfo struct {
	Libs        []string `json:"libs" yaml:"libs"`
	SystemLibs  []string `json:"systemLibs,omitempty" yaml:"systemLibs,omitempty"`
	IncludeDirs []string `json:"includeDirs" yaml:"includeDirs"`
	LibDirs     []string `json:"libDirs" yaml:"libDirs"`
	BinDirs     []string `json:"binDirs" yaml:"binDirs"`
}

// NewCppInfo returns a CppInfo with the conventional folders.
func NewCppInfo() *CppInfo {
	return &CppInfo{
		IncludeDirs: []string{"include"},
		LibDirs:     []string{"lib"},
		BinDirs:     []string{"bin"},
	}
}

// AppendLib adds lib unless it is already listed.
func (c *CppInfo) AppendLib(lib string) {
	if !slices.Contains(c.Libs, lib) {
		c.Libs = append(c.Libs, lib)
	}
}

// AppendSystemLib adds lib to SystemLibs unless it is already listed.
func (c *CppInfo) AppendSystemLib(lib string) {
	if !slices.Contains(c.SystemLibs, lib) {
		c.SystemLibs = append(c.SystemLibs, lib)
	}
}
