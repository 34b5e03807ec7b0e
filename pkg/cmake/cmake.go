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
	"context"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strconv"

	"github.com/recipekit/recipekit/pkg/command"
	"github.com/recipekit/recipekit/pkg/defaults"
	"github.com/recipekit/recipekit/pkg/errors"
	"github.com/recipekit/recipekit/pkg/recipe/layout"
	"github.com/recipekit/recipekit/pkg/recipe/options"
	"github.com/recipekit/recipekit/pkg/recipe/settings"
)

// Standard definition names.
const (
	DefBuildType     = "CMAKE_BUILD_TYPE"
	DefSharedLibs    = "BUILD_SHARED_LIBS"
	DefPIC           = "CMAKE_POSITION_INDEPENDENT_CODE"
	DefInstallPrefix = "CMAKE_INSTALL_PREFIX"

	DefaultExecutable = "cmake"
)

// Option configures a CMake helper.
type Option func(*CMake)

// WithExecutable sets the cmake binary.
func WithExecutable(path string) Option {
	return func(c *CMake) {
		if path != "" {
			c.executable = path
		}
	}
}

// WithGenerator overrides the generator chosen from settings.
func WithGenerator(g string) Option {
	return func(c *CMake) {
		c.generator = g
	}
}

// WithParallel sets the number of parallel build jobs; 0 lets the tool decide.
func WithParallel(jobs int) Option {
	return func(c *CMake) {
		c.parallel = jobs
	}
}

// CMake builds one source tree.
type CMake struct {
	// Definitions are passed as -D arguments on configure.
	Definitions map[string]string

	settings   *settings.Settings
	layout     layout.Layout
	runner     command.Runner
	executable string
	generator  string
	parallel   int
}

// New creates a helper with the standard definitions already populated.
func New(s *settings.Settings, o *options.Set, l layout.Layout, r command.Runner, opts ...Option) *CMake {
	c := &CMake{
		Definitions: map[string]string{},
		settings:    s,
		layout:      l,
		runner:      r,
		executable:  DefaultExecutable,
		generator:   DefaultGenerator(s),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Definitions[DefBuildType] = string(s.BuildType())
	if o.Has("shared") {
		c.Define(DefSharedLibs, o.Enabled("shared"))
	}
	if o.Has("fPIC") {
		c.Define(DefPIC, o.Enabled("fPIC"))
	}
	c.Definitions[DefInstallPrefix] = l.PackageDir
	return c
}

// DefaultGenerator picks a generator for the target settings.
func DefaultGenerator(s *settings.Settings) string {
	if s.IsWindows() {
		switch s.Get(settings.KeyCompiler) {
		case "gcc", "clang":
			return "MinGW Makefiles"
		default:
			return "NMake Makefiles"
		}
	}
	return "Unix Makefiles"
}

// Define sets a definition; bool values render as ON/OFF.
func (c *CMake) Define(key string, value any) {
	switch v := value.(type) {
	case bool:
		c.Definitions[key] = OnOff(v)
	case string:
		c.Definitions[key] = v
	case int:
		c.Definitions[key] = strconv.Itoa(v)
	default:
		c.Definitions[key] = fmt.Sprint(v)
	}
}

// OnOff renders a boolean the way CMake expects.
func OnOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}

// Generator returns the generator passed to configure.
func (c *CMake) Generator() string {
	return c.generator
}

// DefinitionArgs renders the definitions as sorted -D arguments.
func (c *CMake) DefinitionArgs() []string {
	keys := slices.Sorted(maps.Keys(c.Definitions))
	args := make([]string, 0, len(keys))
	for _, k := range keys {
		args = append(args, fmt.Sprintf("-D%s=%s", k, c.Definitions[k]))
	}
	return args
}

// ConfigureCommand is the command Configure runs.
func (c *CMake) ConfigureCommand() command.Command {
	args := []string{}
	if c.generator != "" {
		args = append(args, "-G", c.generator)
	}
	args = append(args, c.DefinitionArgs()...)
	args = append(args, c.layout.SourceDir())
	return command.Command{Name: c.executable, Args: args, Dir: c.layout.BuildDir()}
}

// BuildCommand is the command Build runs.
func (c *CMake) BuildCommand() command.Command {
	args := []string{"--build", ".", "--config", string(c.settings.BuildType())}
	if c.parallel > 0 {
		args = append(args, "--parallel", strconv.Itoa(c.parallel))
	}
	return command.Command{Name: c.executable, Args: args, Dir: c.layout.BuildDir()}
}

// InstallCommand is the command Install runs.
func (c *CMake) InstallCommand() command.Command {
	args := []string{"--build", ".", "--target", "install", "--config", string(c.settings.BuildType())}
	return command.Command{Name: c.executable, Args: args, Dir: c.layout.BuildDir()}
}

// Configure generates the build system in the build folder.
func (c *CMake) Configure(ctx context.Context) error {
	if err := os.MkdirAll(c.layout.BuildDir(), 0755); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to create build folder", err)
	}
	ctx, cancel := context.WithTimeout(ctx, defaults.CMakeConfigureTimeout)
	defer cancel()
	return c.run(ctx, "configure", c.ConfigureCommand())
}

// Build compiles the configured tree.
func (c *CMake) Build(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaults.CMakeBuildTimeout)
	defer cancel()
	return c.run(ctx, "build", c.BuildCommand())
}

// Install copies build outputs into the install prefix.
func (c *CMake) Install(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaults.CMakeBuildTimeout)
	defer cancel()
	return c.run(ctx, "install", c.InstallCommand())
}

func (c *CMake) run(ctx context.Context, step string, cmd command.Command) error {
	slog.Info("running cmake", "step", step, "dir", cmd.Dir, "generator", c.generator)
	if err := c.runner.Run(ctx, cmd); err != nil {
		return err
	}
	slog.Debug("cmake step complete", "step", step)
	return nil
}
