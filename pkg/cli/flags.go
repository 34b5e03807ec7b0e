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

package cli

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/recipekit/recipekit/pkg/cmake"
	"github.com/recipekit/recipekit/pkg/errors"
	"github.com/recipekit/recipekit/pkg/fetch"
	"github.com/recipekit/recipekit/pkg/recipe"
	"github.com/recipekit/recipekit/pkg/recipe/layout"
	"github.com/recipekit/recipekit/pkg/recipe/settings"
	"github.com/recipekit/recipekit/pkg/requirement"
	"github.com/recipekit/recipekit/pkg/runner"
	"github.com/recipekit/recipekit/pkg/serializer"

	// registers the bundled recipes
	_ "github.com/recipekit/recipekit/pkg/recipe/libzip"
)

const (
	resolverLocal = "local"
	resolverNone  = "none"
	defaultRecipe = "libzip"
)

// Profile is the YAML or JSON file accepted by --profile.
type Profile struct {
	Settings map[string]string `json:"settings,omitempty" yaml:"settings,omitempty"`
	Options  map[string]string `json:"options,omitempty" yaml:"options,omitempty"`
}

func outputFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "output",
		Usage: "write the result to this file instead of stdout",
	}
}

func formatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "format",
		Value: string(serializer.FormatYAML),
		Usage: fmt.Sprintf("output format (supported values: %s)", strings.Join(serializer.SupportedFormats(), ", ")),
	}
}

// recipeFlags are shared by create and inspect.
func recipeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "recipe",
			Value: defaultRecipe,
			Usage: "name of the recipe to run",
		},
		&cli.StringFlag{
			Name:    "profile",
			Aliases: []string{"p"},
			Usage:   "profile file or URL with settings: and options: maps",
		},
		&cli.StringSliceFlag{
			Name:    "setting",
			Aliases: []string{"s"},
			Usage:   "target setting as key=value, can be repeated (e.g. -s os=Windows)",
		},
		&cli.StringSliceFlag{
			Name:    "option",
			Aliases: []string{"o"},
			Usage:   "recipe option as name=value, can be repeated (e.g. -o shared=True)",
		},
		&cli.StringFlag{
			Name:  "resolver",
			Value: resolverNone,
			Usage: fmt.Sprintf("dependency resolver (%s, %s)", resolverLocal, resolverNone),
		},
		&cli.StringFlag{
			Name:  "deps-dir",
			Usage: "package cache searched by the local resolver",
		},
		outputFlag(),
		formatFlag(),
	}
}

// parseKeyValues turns ["k=v", ...] into a map. Later entries win.
func parseKeyValues(flag string, pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("--%s expects key=value, got %q", flag, p),
				map[string]any{"flag": flag})
		}
		out[k] = strings.TrimSpace(v)
	}
	return out, nil
}

func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	return serializer.ParseFormat(cmd.String("format"))
}

func loadProfile(ctx context.Context, path string) (*Profile, error) {
	if path == "" {
		return &Profile{}, nil
	}
	p, err := serializer.FromFile[Profile](ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile %q: %w", path, err)
	}
	return p, nil
}

// planConfig builds the runner input shared by create and inspect.
func planConfig(ctx context.Context, cmd *cli.Command) (recipe.Recipe, runner.Config, error) {
	var cfg runner.Config

	r, err := recipe.Get(cmd.String("recipe"))
	if err != nil {
		return nil, cfg, err
	}

	profile, err := loadProfile(ctx, cmd.String("profile"))
	if err != nil {
		return nil, cfg, err
	}
	settingFlags, err := parseKeyValues("setting", cmd.StringSlice("setting"))
	if err != nil {
		return nil, cfg, err
	}
	optionFlags, err := parseKeyValues("option", cmd.StringSlice("option"))
	if err != nil {
		return nil, cfg, err
	}

	s := settings.Detect()
	if err := s.Merge(profile.Settings); err != nil {
		return nil, cfg, err
	}
	if err := s.Merge(settingFlags); err != nil {
		return nil, cfg, err
	}

	overrides := maps.Clone(profile.Options)
	if overrides == nil {
		overrides = map[string]string{}
	}
	maps.Copy(overrides, optionFlags)

	resolver, err := newResolver(cmd.String("resolver"), cmd.String("deps-dir"))
	if err != nil {
		return nil, cfg, err
	}

	cfg = runner.Config{
		Settings:    s,
		Overrides:   overrides,
		Resolver:    resolver,
		ToolVersion: version,
	}
	return r, cfg, nil
}

func newResolver(kind, dir string) (requirement.Resolver, error) {
	switch kind {
	case "", resolverNone:
		return requirement.NoopResolver{}, nil
	case resolverLocal:
		if dir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "--deps-dir is required without a home directory", err)
			}
			dir = filepath.Join(home, ".recipekit", "packages")
		}
		return requirement.NewLocalResolver(dir), nil
	default:
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown resolver %q", kind),
			map[string]any{"supported": []string{resolverLocal, resolverNone}})
	}
}

// buildFlags are specific to create.
func buildFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "work-dir",
			Value: "recipekit-build",
			Usage: "folder holding source_subfolder and build_subfolder",
		},
		&cli.StringFlag{
			Name:  "package-dir",
			Usage: "install folder (default: <work-dir>/package)",
		},
		&cli.StringFlag{
			Name:  "cache-dir",
			Usage: "source archive cache (default: user cache dir, \"off\" disables)",
		},
		&cli.StringFlag{
			Name:  "cmake",
			Value: cmake.DefaultExecutable,
			Usage: "cmake executable",
		},
		&cli.StringFlag{
			Name:  "generator",
			Usage: "cmake generator (default depends on the target os and compiler)",
		},
		&cli.IntFlag{
			Name:    "jobs",
			Aliases: []string{"j"},
			Usage:   "parallel build jobs (0 lets the build tool decide)",
		},
	}
}

func applyBuildFlags(cmd *cli.Command, cfg *runner.Config) error {
	l, err := layout.New(cmd.String("work-dir"), cmd.String("package-dir"))
	if err != nil {
		return err
	}
	cfg.Layout = l

	cacheDir := cmd.String("cache-dir")
	switch cacheDir {
	case "off":
		cacheDir = ""
	case "":
		if base, err := os.UserCacheDir(); err == nil {
			cacheDir = filepath.Join(base, "recipekit", "sources")
		}
	}
	cfg.Fetcher = fetch.New(fetch.WithCacheDir(cacheDir))

	if jobs := cmd.Int("jobs"); jobs < 0 {
		return errors.New(errors.ErrCodeInvalidRequest, "--jobs cannot be negative")
	}
	cfg.CMakeOptions = append(cfg.CMakeOptions,
		cmake.WithExecutable(cmd.String("cmake")),
		cmake.WithParallel(int(cmd.Int("jobs"))),
	)
	if g := cmd.String("generator"); g != "" {
		cfg.CMakeOptions = append(cfg.CMakeOptions, cmake.WithGenerator(g))
	}
	return nil
}

func writeResult(ctx context.Context, cmd *cli.Command, v any) error {
	format, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}
	w, err := serializer.NewFileWriterOrStdout(format, cmd.String("output"))
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := w.Close(); closeErr != nil {
			fmt.Fprintln(os.Stderr, "failed to close output:", closeErr)
		}
	}()
	return w.Serialize(ctx, v)
}
