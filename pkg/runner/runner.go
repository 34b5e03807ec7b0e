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

package runner

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/recipekit/recipekit/pkg/cmake"
	"github.com/recipekit/recipekit/pkg/command"
	"github.com/recipekit/recipekit/pkg/errors"
	"github.com/recipekit/recipekit/pkg/fetch"
	"github.com/recipekit/recipekit/pkg/header"
	"github.com/recipekit/recipekit/pkg/recipe"
	"github.com/recipekit/recipekit/pkg/recipe/layout"
	"github.com/recipekit/recipekit/pkg/recipe/options"
	"github.com/recipekit/recipekit/pkg/recipe/settings"
	"github.com/recipekit/recipekit/pkg/requirement"
)

// Stage names a pipeline step.
type Stage string

const (
	StageConfigOptions Stage = "config_options"
	StageConfigure     Stage = "configure"
	StageRequirements  Stage = "requirements"
	StageResolve       Stage = "resolve"
	StageSource        Stage = "source"
	StageBuild         Stage = "build"
	StagePackage       Stage = "package"
	StagePackageInfo   Stage = "package_info"
)

// Config is the input of a run.
type Config struct {
	// Settings of the target; detected from the host when nil.
	Settings *settings.Settings
	// Overrides are user option values applied before config_options.
	Overrides map[string]string
	// Layout is required by Run; Inspect ignores it.
	Layout layout.Layout
	// Fetcher defaults to fetch.New().
	Fetcher recipe.Fetcher
	// Runner defaults to command.NewOSRunner().
	Runner command.Runner
	// Resolver defaults to requirement.NoopResolver.
	Resolver requirement.Resolver
	// CMakeOptions are passed to every CMake helper.
	CMakeOptions []cmake.Option
	// ToolVersion is recorded in the result header.
	ToolVersion string
}

type run struct {
	recipe recipe.Recipe
	rc     *recipe.Context
	res    *Result
	cfg    Config
}

// Run executes every hook of r and returns the result.
func Run(ctx context.Context, r recipe.Recipe, cfg Config) (*Result, error) {
	if cfg.Layout.WorkDir == "" || cfg.Layout.PackageDir == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "work and package folders are required")
	}
	x, err := prepare(r, cfg, header.KindRecipeRun)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	if err := x.plan(ctx); err != nil {
		return nil, err
	}
	if err := cfg.Layout.Ensure(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to prepare folders", err)
	}

	for _, s := range []struct {
		stage Stage
		hook  func(context.Context, *recipe.Context) error
	}{
		{StageSource, r.Source},
		{StageBuild, r.Build},
		{StagePackage, r.Package},
	} {
		if err := x.stage(ctx, s.stage, func(ctx context.Context) error { return s.hook(ctx, x.rc) }); err != nil {
			return nil, err
		}
	}

	err = x.stage(ctx, StagePackageInfo, func(ctx context.Context) error {
		info, err := r.PackageInfo(ctx, x.rc)
		x.res.PackageInfo = info
		return err
	})
	if err != nil {
		return nil, err
	}

	if x.res.PackageInfo == nil {
		x.res.PackageInfo = recipe.NewCppInfo()
	}
	x.res.PackageDir = cfg.Layout.PackageDir
	x.res.TotalDuration = time.Since(start)
	slog.Info("recipe complete",
		"recipe", x.res.Recipe.Reference(),
		"run_id", x.res.RunID,
		"libs", x.res.PackageInfo.Libs,
		"duration", x.res.TotalDuration,
	)
	return x.res, nil
}

// Inspect runs the option and requirement stages only. No sources are
// fetched and nothing is written.
func Inspect(ctx context.Context, r recipe.Recipe, cfg Config) (*Result, error) {
	if cfg.Resolver == nil {
		cfg.Resolver = requirement.NoopResolver{}
	}
	x, err := prepare(r, cfg, header.KindRecipeInspection)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	if err := x.plan(ctx); err != nil {
		return nil, err
	}
	x.res.TotalDuration = time.Since(start)
	return x.res, nil
}

func prepare(r recipe.Recipe, cfg Config, kind header.Kind) (*run, error) {
	if r == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "recipe cannot be nil")
	}
	if cfg.Settings == nil {
		cfg.Settings = settings.Detect()
	}
	if cfg.Fetcher == nil {
		cfg.Fetcher = fetch.New()
	}
	if cfg.Runner == nil {
		cfg.Runner = command.NewOSRunner()
	}
	if cfg.Resolver == nil {
		cfg.Resolver = requirement.NoopResolver{}
	}

	opts, err := options.NewSet(r.Options()...)
	if err != nil {
		return nil, err
	}
	for name, value := range cfg.Overrides {
		if err := opts.Override(name, value); err != nil {
			return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "invalid option override", err,
				map[string]any{"option": name, "value": value})
		}
	}

	meta := r.Metadata()
	res := &Result{
		RunID:  uuid.NewString(),
		Recipe: meta,
	}
	res.Init(kind, cfg.ToolVersion)
	res.Set(header.MetaRecipe, meta.Reference())
	res.Set(header.MetaRunID, res.RunID)

	return &run{
		recipe: r,
		cfg:    cfg,
		res:    res,
		rc: &recipe.Context{
			Settings:     cfg.Settings.Clone(),
			Options:      opts,
			Layout:       cfg.Layout,
			Fetcher:      cfg.Fetcher,
			Runner:       cfg.Runner,
			CMakeOptions: cfg.CMakeOptions,
		},
	}, nil
}

// plan runs the stages shared by Run and Inspect.
func (x *run) plan(ctx context.Context) error {
	if err := x.stage(ctx, StageConfigOptions, func(ctx context.Context) error {
		return x.recipe.ConfigOptions(ctx, x.rc)
	}); err != nil {
		return err
	}
	if err := x.stage(ctx, StageConfigure, func(ctx context.Context) error {
		return x.recipe.Configure(ctx, x.rc)
	}); err != nil {
		return err
	}
	x.rc.Options.Freeze()

	reqs := requirement.NewRequirements()
	if err := x.stage(ctx, StageRequirements, func(ctx context.Context) error {
		return x.recipe.Requirements(ctx, x.rc, reqs)
	}); err != nil {
		return err
	}

	var resolved []requirement.Resolution
	if err := x.stage(ctx, StageResolve, func(ctx context.Context) error {
		var err error
		resolved, err = requirement.ResolveAll(ctx, x.cfg.Resolver, reqs.List())
		return err
	}); err != nil {
		return err
	}
	for _, d := range resolved {
		if d.Path != "" {
			x.rc.Dependencies = append(x.rc.Dependencies, cmake.Dependency{Name: d.Reference.Name, Path: d.Path})
		}
	}

	x.res.Settings = x.rc.Settings.Map()
	x.res.Options = x.rc.Options.Values()
	x.res.RemovedOptions = x.rc.Options.Removed()
	x.res.Requirements = reqs.Strings()
	x.res.Dependencies = resolved

	if p, ok := x.recipe.(recipe.DefinitionsProvider); ok {
		defs, err := p.BuildDefinitions(x.rc)
		if err != nil {
			return err
		}
		x.res.Definitions = defs
	}
	return nil
}

// stage times fn, records metrics and tags a failure with the stage name.
func (x *run) stage(ctx context.Context, stage Stage, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return errors.WrapWithContext(errors.ErrCodeTimeout, "run cancelled", err,
			map[string]any{"stage": string(stage)})
	}

	ref := x.res.Recipe.Reference()
	slog.Info("stage started", "recipe", ref, "stage", stage)
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)

	stageDuration.WithLabelValues(string(stage)).Observe(elapsed.Seconds())
	x.res.Stages = append(x.res.Stages, StageTiming{Stage: stage, Duration: elapsed})

	if err != nil {
		stageFailures.WithLabelValues(string(stage)).Inc()
		slog.Error("stage failed", "recipe", ref, "stage", stage, "error", err)
		return withStage(err, stage)
	}
	slog.Info("stage finished", "recipe", ref, "stage", stage, "duration", elapsed)
	return nil
}

// withStage records stage in the error's structured context. Structured
// errors keep their identity and code; anything else becomes INTERNAL.
func withStage(err error, stage Stage) error {
	var se *errors.StructuredError
	if stderrors.As(err, &se) {
		if se.Context == nil {
			se.Context = make(map[string]any)
		}
		se.Context["stage"] = string(stage)
		return err
	}
	return errors.WrapWithContext(errors.ErrCodeInternal, fmt.Sprintf("%s failed", stage), err,
		map[string]any{"stage": string(stage)})
}
