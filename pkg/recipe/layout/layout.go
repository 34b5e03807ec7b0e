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

// Package layout names the folders a recipe run works in.
package layout

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// SourceSubfolder holds the extracted upstream sources.
	SourceSubfolder = "source_subfolder"
	// BuildSubfolder is the CMake binary directory.
	BuildSubfolder = "build_subfolder"
	// LicensesFolder receives license files inside the package folder.
	LicensesFolder = "licenses"
)

// Layout is the set of directories for one run.
type Layout struct {
	WorkDir    string `json:"workDir" yaml:"workDir"`
	PackageDir string `json:"packageDir" yaml:"packageDir"`
}

// New returns a Layout with absolute paths. An empty packageDir defaults to
// <workDir>/package.
func New(workDir, packageDir string) (Layout, error) {
	if workDir == "" {
		return Layout{}, fmt.Errorf("work directory is empty")
	}
	w, err := filepath.Abs(workDir)
	if err != nil {
		return Layout{}, fmt.Errorf("failed to resolve %s: %w", workDir, err)
	}
	if packageDir == "" {
		packageDir = filepath.Join(w, "package")
	}
	p, err := filepath.Abs(packageDir)
	if err != nil {
		return Layout{}, fmt.Errorf("failed to resolve %s: %w", packageDir, err)
	}
	return Layout{WorkDir: w, PackageDir: p}, nil
}

// SourceDir is <work>/source_subfolder.
func (l Layout) SourceDir() string {
	return filepath.Join(l.WorkDir, SourceSubfolder)
}

// BuildDir is <work>/build_subfolder.
func (l Layout) BuildDir() string {
	return filepath.Join(l.WorkDir, BuildSubfolder)
}

// LicensesDir is <package>/licenses.
func (l Layout) LicensesDir() string {
	return filepath.Join(l.PackageDir, LicensesFolder)
}

// Ensure creates the work and package directories.
func (l Layout) Ensure() error {
	for _, d := range []string{l.WorkDir, l.PackageDir} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", d, err)
		}
	}
	return nil
}
