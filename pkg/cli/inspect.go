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

	"github.com/urfave/cli/v3"

	"github.com/recipekit/recipekit/pkg/runner"
)

func inspectCmd() *cli.Command {
	return &cli.Command{
		Name:                  "inspect",
		EnableShellCompletion: true,
		Usage:                 "Show the effective options, requirements and build definitions",
		Description: `Runs the option and requirement hooks only. Nothing is downloaded or
written except the report itself.

# Examples

  recipekit inspect -s os=Windows --format table
  recipekit inspect --profile https://example.com/profiles/gcc.yaml -o with_openssl=True`,
		Flags: recipeFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			r, cfg, err := planConfig(ctx, cmd)
			if err != nil {
				return err
			}
			res, err := runner.Inspect(ctx, r, cfg)
			if err != nil {
				return err
			}
			return writeResult(ctx, cmd, res)
		},
	}
}
