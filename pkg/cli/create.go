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
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/recipekit/recipekit/pkg/runner"
)

func createCmd() *cli.Command {
	return &cli.Command{
		Name:                  "create",
		EnableShellCompletion: true,
		Usage:                 "Fetch, build and package a recipe",
		Description: `Runs every hook of the recipe in order:

  config_options, configure, requirements, source, build, package, package_info

Sources are downloaded into <work-dir>, extracted to source_subfolder and
built with CMake in build_subfolder. The install tree, licenses/ and a
checksums.txt land in the package folder. The run result, including the
libraries consumers must link, is written in the selected format.

# Examples

Build for the host with defaults:
  recipekit create

Build a shared Windows variant from a profile, overriding one option:
  recipekit create --profile msvc.yaml -o shared=True --jobs 8

Resolve dependencies from a local package cache:
  recipekit create --resolver local --deps-dir ~/.recipekit/packages`,
		Flags: slices.Concat(recipeFlags(), buildFlags()),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			r, cfg, err := planConfig(ctx, cmd)
			if err != nil {
				return err
			}
			if err := applyBuildFlags(cmd, &cfg); err != nil {
				return err
			}
			res, err := runner.Run(ctx, r, cfg)
			if err != nil {
				return err
			}
			return writeResult(ctx, cmd, res)
		},
	}
}
