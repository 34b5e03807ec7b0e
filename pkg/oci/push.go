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

package oci

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	oras "oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content/file"
	"oras.land/oras-go/v2/content/oci"
	"oras.land/oras-go/v2/registry/remote"
	"oras.land/oras-go/v2/registry/remote/auth"
	"oras.land/oras-go/v2/registry/remote/credentials"

	"github.com/recipekit/recipekit/pkg/defaults"
	"github.com/recipekit/recipekit/pkg/errors"
)

// ArtifactType is the media type of package artifacts.
const ArtifactType = "application/vnd.recipekit.package.v1"

// Artifact describes what is packed.
type Artifact struct {
	// SourceDir is the package folder.
	SourceDir string
	// Title names the layer, typically the recipe reference.
	Title string
	// Version is recorded as org.opencontainers.image.version.
	Version string
	// Source is recorded as org.opencontainers.image.source.
	Source string
	// Created fixes org.opencontainers.image.created for reproducible digests.
	Created string
	// Annotations are merged into the manifest annotations.
	Annotations map[string]string
}

// PushOptions configures Push.
type PushOptions struct {
	Artifact
	Reference   *Reference
	PlainHTTP   bool
	InsecureTLS bool
}

// Result is a packed or pushed artifact.
type Result struct {
	Digest    string `json:"digest" yaml:"digest"`
	Reference string `json:"reference" yaml:"reference"`
	// StorePath is set for local image layouts.
	StorePath string `json:"storePath,omitempty" yaml:"storePath,omitempty"`
}

// Package writes the artifact to an OCI image layout at storeDir, tagged tag.
func Package(ctx context.Context, a Artifact, storeDir, tag string) (*Result, error) {
	if tag == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "tag is required")
	}
	store, err := oci.New(storeDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to create OCI layout", err)
	}
	desc, err := packAndCopy(ctx, a, tag, store)
	if err != nil {
		return nil, err
	}
	slog.Info("package written to OCI layout", "path", storeDir, "tag", tag, "digest", desc.Digest.String())
	return &Result{Digest: desc.Digest.String(), Reference: tag, StorePath: storeDir}, nil
}

// Push packs the artifact and copies it to the remote repository.
func Push(ctx context.Context, opts PushOptions) (*Result, error) {
	if opts.Reference == nil || opts.Reference.Tag == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "a tagged reference is required to push")
	}

	repo, err := remote.NewRepository(fmt.Sprintf("%s/%s", opts.Reference.Registry, opts.Reference.Repository))
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "invalid repository", err,
			map[string]any{"reference": opts.Reference.String()})
	}
	repo.PlainHTTP = opts.PlainHTTP
	repo.Client = createAuthClient(opts.PlainHTTP, opts.InsecureTLS)

	ctx, cancel := context.WithTimeout(ctx, defaults.OCIPushTimeout)
	defer cancel()

	slog.Info("pushing package", "reference", opts.Reference.String())
	desc, err := packAndCopy(ctx, opts.Artifact, opts.Reference.Tag, repo)
	if err != nil {
		return nil, err
	}
	slog.Info("package pushed", "reference", opts.Reference.String(), "digest", desc.Digest.String())
	return &Result{Digest: desc.Digest.String(), Reference: opts.Reference.ImageReference()}, nil
}

// packAndCopy builds the manifest in a file store rooted at the package
// folder and copies it to dst under tag.
func packAndCopy(ctx context.Context, a Artifact, tag string, dst oras.Target) (ociv1.Descriptor, error) {
	src, err := filepath.Abs(a.SourceDir)
	if err != nil {
		return ociv1.Descriptor{}, errors.Wrap(errors.ErrCodeInternal, "failed to resolve package folder", err)
	}
	info, err := os.Stat(src)
	if err != nil || !info.IsDir() {
		return ociv1.Descriptor{}, errors.WrapWithContext(errors.ErrCodeNotFound, "package folder not found", err,
			map[string]any{"path": src})
	}

	title := a.Title
	if title == "" {
		title = filepath.Base(src)
	}

	fs, err := file.New(src)
	if err != nil {
		return ociv1.Descriptor{}, errors.Wrap(errors.ErrCodeInternal, "failed to create file store", err)
	}
	defer func() { _ = fs.Close() }()
	fs.TarReproducible = true

	layer, err := fs.Add(ctx, title, ociv1.MediaTypeImageLayerGzip, src)
	if err != nil {
		return ociv1.Descriptor{}, errors.Wrap(errors.ErrCodeInternal, "failed to add package folder", err)
	}

	manifest, err := oras.PackManifest(ctx, fs, oras.PackManifestVersion1_1, ArtifactType, oras.PackManifestOptions{
		Layers:              []ociv1.Descriptor{layer},
		ManifestAnnotations: annotations(a, title),
	})
	if err != nil {
		return ociv1.Descriptor{}, errors.Wrap(errors.ErrCodeInternal, "failed to pack manifest", err)
	}
	if err := fs.Tag(ctx, manifest, tag); err != nil {
		return ociv1.Descriptor{}, errors.Wrap(errors.ErrCodeInternal, "failed to tag manifest", err)
	}

	desc, err := oras.Copy(ctx, fs, tag, dst, tag, oras.DefaultCopyOptions)
	if err != nil {
		return ociv1.Descriptor{}, errors.Wrap(errors.ErrCodeUnavailable, "failed to copy artifact", err)
	}
	return desc, nil
}

func annotations(a Artifact, title string) map[string]string {
	out := map[string]string{ociv1.AnnotationTitle: title}
	if a.Version != "" {
		out[ociv1.AnnotationVersion] = a.Version
	}
	if a.Source != "" {
		out[ociv1.AnnotationSource] = a.Source
	}
	if a.Created != "" {
		out[ociv1.AnnotationCreated] = a.Created
	}
	for k, v := range a.Annotations {
		out[k] = v
	}
	return out
}

// createAuthClient uses Docker credentials when available.
func createAuthClient(plainHTTP, insecureTLS bool) *auth.Client {
	credStore, err := credentials.NewStoreFromDocker(credentials.StoreOptions{})
	if err != nil {
		slog.Debug("docker credential store unavailable", "error", err)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !plainHTTP && insecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}

	client := &auth.Client{
		Client: &http.Client{Transport: transport},
		Cache:  auth.NewCache(),
	}
	if credStore != nil {
		client.Credential = credentials.Credential(credStore)
	}
	return client
}
