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
	"context"

	"github.com/recipekit/recipekit/pkg/cmake"
	"github.com/recipekit/recipekit/pkg/command"
	"github.com/recipekit/recipekit/pkg/fetch"
	"github.com/recipekit/recipekit/pkg/recipe/layout"
	"github.com/recipekit/recipekit/pkg/recipe/options"
	"github.com/recipekit/recipekit/pkg/recipe/settings"
	"github.com/recipekit/recipekit/pkg/requirement"
)

// Metadata is the static description of a recipe.
type Metadata struct {
	Name        string   `json:"name" yaml:"name"`
	Version     string   `json:"version" yaml:"version"`
	License     string   `json:"license" yaml:"license"`
	Homepage    string   `json:"homepage" yaml:"homepage"`
	URL         string   `json:"url" yaml:"url"`
	Description string   `json:"description" yaml:"description"`
	Topics      []string `json:"topics,omitempty" yaml:"topics,omitempty"`
	Settings    []string `json:"settings" yaml:"settings"`
}

// Reference returns name/version.
func (m Metadata) Reference() string {
	return m.Name + "/" + m.Version
}

// Recipe is implemented by every package recipe.
type Recipe interface {
	Metadata() Metadata
	// Options declares the option set with defaults.
	Options() []options.Definition

	ConfigOptions(ctx context.Context, rc *Context) error
	Configure(ctx context.Context, rc *Context) error
	Requirements(ctx context.Context, rc *Context, req requirement.Requirer) error
	Source(ctx context.Context, rc *Context) error
	Build(ctx context.Context, rc *Context) error
	Package(ctx context.Context, rc *Context) error
	PackageInfo(ctx context.Context, rc *Context) (*CppInfo, error)
}

// Fetcher obtains and extracts upstream sources.
type Fetcher interface {
	Get(ctx context.Context, src fetch.Source, destDir string) ([]string, error)
}

// Context is the per-run state handed to hooks.
type Context struct {
	Settings *settings.Settings
	Options  *options.Set
	Layout   layout.Layout
	Fetcher  Fetcher
	Runner   command.Runner
	// CMakeOptions are applied to every CMake helper the recipe creates.
	CMakeOptions []cmake.Option
	// Dependencies are the resolved requirements, filled in by the runtime
	// after the Requirements hook.
	Dependencies []cmake.Dependency
}

// CMake returns a CMake helper bound to this run with the resolved
// dependencies already exposed.
func (rc *Context) CMake() (*cmake.CMake, error) {
	c := cmake.New(rc.Settings, rc.Options, rc.Layout, rc.Runner, rc.CMakeOptions...)
	if err := c.UseDependencies(rc.Dependencies); err != nil {
		return nil, err
	}
	return c, nil
}

// Resolved reports whether the named dependency was resolved to a package
// folder, so that CMake sees a CONAN_LIBS_<NAME> definition for it.
func (rc *Context) Resolved(name string) bool {
	for _, d := range rc.Dependencies {
		if d.Name == name && d.Path != "" {
			return true
		}
	}
	return false
}

// DefinitionsProvider is implemented by recipes that build with CMake so the
// runtime can report the effective definitions without building.
type DefinitionsProvider interface {
	BuildDefinitions(rc *Context) (map[string]string, error)
}
