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

	"github.com/urfave/cli/v3"

	"github.com/recipekit/recipekit/pkg/errors"
	"github.com/recipekit/recipekit/pkg/header"
	"github.com/recipekit/recipekit/pkg/oci"
	"github.com/recipekit/recipekit/pkg/recipe"
)

// uploadResult is the document written by upload.
type uploadResult struct {
	header.Header `json:",inline" yaml:",inline"`
	oci.Result    `json:",inline" yaml:",inline"`
}

type uploadCmdOptions struct {
	packageDir  string
	layoutDir   string
	reference   *oci.Reference
	plainHTTP   bool
	insecureTLS bool
}

func parseUploadCmdOptions(cmd *cli.Command, meta recipe.Metadata) (*uploadCmdOptions, error) {
	opts := &uploadCmdOptions{
		packageDir:  cmd.String("package-dir"),
		layoutDir:   cmd.String("layout"),
		plainHTTP:   cmd.Bool("plain-http"),
		insecureTLS: cmd.Bool("insecure-tls"),
	}
	if opts.packageDir == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "--package-dir is required")
	}

	tag := cmd.String("tag")
	if tag == "" {
		tag = oci.SanitizeTag(meta.Version)
	}

	registry, repository := cmd.String("registry"), cmd.String("repository")
	switch {
	case opts.layoutDir != "" && (registry != "" || repository != ""):
		return nil, errors.New(errors.ErrCodeInvalidRequest, "--layout cannot be combined with --registry or --repository")
	case opts.layoutDir != "":
		opts.reference = &oci.Reference{Tag: tag}
	case registry == "" || repository == "":
		return nil, errors.New(errors.ErrCodeInvalidRequest, "--registry and --repository are required unless --layout is set")
	default:
		ref, err := oci.NewReference(registry, repository, tag)
		if err != nil {
			return nil, err
		}
		opts.reference = ref
	}
	return opts, nil
}

func uploadCmd() *cli.Command {
	return &cli.Command{
		Name:                  "upload",
		EnableShellCompletion: true,
		Usage:                 "Publish a package folder as an OCI artifact",
		Description: fmt.Sprintf(`Packs the package folder into a single reproducible layer with artifact
type %s and pushes it to a registry, or writes it to a local OCI image
layout with --layout. Registry credentials are read from the Docker
credential store.

# Examples

  recipekit upload --package-dir recipekit-build/package --registry ghcr.io --repository acme/libzip
  recipekit upload --package-dir recipekit-build/package --registry localhost:5000 \
    --repository pkgs/libzip --tag 1.7.3-msvc --plain-http
  recipekit upload --package-dir recipekit-build/package --layout ./oci-layout`, oci.ArtifactType),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "recipe",
				Value: defaultRecipe,
				Usage: "recipe the package was built from, used for annotations and the default tag",
			},
			&cli.StringFlag{
				Name:  "package-dir",
				Usage: "package folder produced by create",
			},
			&cli.StringFlag{
				Name:  "registry",
				Usage: "OCI registry host (e.g. ghcr.io, localhost:5000)",
			},
			&cli.StringFlag{
				Name:  "repository",
				Usage: "repository path within the registry",
			},
			&cli.StringFlag{
				Name:  "tag",
				Usage: "artifact tag (default: recipe version)",
			},
			&cli.StringFlag{
				Name:  "layout",
				Usage: "write an OCI image layout to this folder instead of pushing",
			},
			&cli.StringFlag{
				Name:  "created",
				Usage: "fixed RFC 3339 creation time for reproducible digests",
			},
			&cli.BoolFlag{
				Name:  "plain-http",
				Usage: "use HTTP instead of HTTPS",
			},
			&cli.BoolFlag{
				Name:  "insecure-tls",
				Usage: "skip TLS certificate verification",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			r, err := recipe.Get(cmd.String("recipe"))
			if err != nil {
				return err
			}
			meta := r.Metadata()

			opts, err := parseUploadCmdOptions(cmd, meta)
			if err != nil {
				return err
			}

			artifact := oci.Artifact{
				SourceDir: opts.packageDir,
				Title:     fmt.Sprintf("%s-%s", meta.Name, meta.Version),
				Version:   meta.Version,
				Source:    meta.Homepage,
				Created:   cmd.String("created"),
				Annotations: map[string]string{
					"org.opencontainers.image.licenses":    meta.License,
					"org.opencontainers.image.description": meta.Description,
				},
			}

			var res *oci.Result
			if opts.layoutDir != "" {
				res, err = oci.Package(ctx, artifact, opts.layoutDir, opts.reference.Tag)
			} else {
				res, err = oci.Push(ctx, oci.PushOptions{
					Artifact:    artifact,
					Reference:   opts.reference,
					PlainHTTP:   opts.plainHTTP,
					InsecureTLS: opts.insecureTLS,
				})
			}
			if err != nil {
				return err
			}

			out := uploadResult{
				Header: *header.New(header.WithKind(header.KindPackageManifest), header.WithMetadata(header.MetaRecipe, meta.Reference())),
				Result: *res,
			}
			out.Set(header.MetaVersion, version)
			return writeResult(ctx, cmd, out)
		},
	}
}
