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

package libzip

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/recipekit/recipekit/pkg/cmake"
	"github.com/recipekit/recipekit/pkg/errors"
	"github.com/recipekit/recipekit/pkg/recipe"
	"github.com/recipekit/recipekit/pkg/recipe/options"
	"github.com/recipekit/recipekit/pkg/recipe/settings"
	"github.com/recipekit/recipekit/pkg/requirement"
)

const (
	Name    = "libzip"
	Version = "1.7.3"
)

// Option names.
const (
	OptShared              = "shared"
	OptFPIC                = "fPIC"
	OptWithBzip2           = "with_bzip2"
	OptWithOpenSSL         = "with_openssl"
	OptWithMbedTLS         = "with_mbedtls"
	OptEnableWindowsCrypto = "enable_windows_crypto"
)

// Dependency references.
const (
	RefZlib    = "zlib/1.2.11"
	RefXzUtils = "xz_utils/5.2.5@ggreene/test"
	RefBzip2   = "bzip2/1.0.8"
	RefOpenSSL = "openssl/1.0.2t"
	RefMbedTLS = "mbedtls/2.23.0-apache@ggreene/test"
)

//go:embed data
var dataFS embed.FS

var (
	embeddedOnce sync.Once
	embeddedData *recipe.Data
	embeddedErr  error
)

func loadEmbedded() (*recipe.Data, fs.FS, error) {
	sub, err := fs.Sub(dataFS, "data")
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInternal, "embedded recipe data missing", err)
	}
	embeddedOnce.Do(func() {
		embeddedData, embeddedErr = recipe.LoadData(sub, recipe.DataFileName)
	})
	return embeddedData, sub, embeddedErr
}

func init() {
	recipe.MustRegister(Name, New)
}

// Recipe builds libzip.
type Recipe struct {
	data    *recipe.Data
	dataErr error
	files   fs.FS
}

// New returns the recipe backed by its embedded conandata.yml.
func New() recipe.Recipe {
	d, files, err := loadEmbedded()
	return &Recipe{data: d, dataErr: err, files: files}
}

// NewWithData returns the recipe backed by the given data; patch files are
// read from files.
func NewWithData(d *recipe.Data, files fs.FS) *Recipe {
	return &Recipe{data: d, files: files}
}

// Metadata implements recipe.Recipe.
func (r *Recipe) Metadata() recipe.Metadata {
	return recipe.Metadata{
		Name:        Name,
		Version:     Version,
		License:     "LibZip",
		Homepage:    "https://libzip.org/",
		URL:         "https://github.com/conan-io/conan-center-index",
		Description: "A C library for reading, creating, and modifying zip archives",
		Settings: []string{
			settings.KeyOS, settings.KeyArch, settings.KeyCompiler, settings.KeyBuildType,
		},
	}
}

// Options implements recipe.Recipe.
func (r *Recipe) Options() []options.Definition {
	return []options.Definition{
		options.Bool(OptShared, false),
		options.Bool(OptFPIC, true),
		options.Bool(OptWithBzip2, true),
		options.Bool(OptWithOpenSSL, false),
		options.Bool(OptWithMbedTLS, true),
		options.Bool(OptEnableWindowsCrypto, true),
	}
}

// ConfigOptions drops the option that does not apply to the target OS.
func (r *Recipe) ConfigOptions(_ context.Context, rc *recipe.Context) error {
	if rc.Settings.IsWindows() {
		return rc.Options.Remove(OptFPIC)
	}
	return rc.Options.Remove(OptEnableWindowsCrypto)
}

// Configure removes C++ settings; libzip is a C library.
func (r *Recipe) Configure(_ context.Context, rc *recipe.Context) error {
	rc.Settings.Delete(settings.KeyCompilerLibcxx)
	rc.Settings.Delete(settings.KeyCompilerCppstd)
	return nil
}

// Requirements declares the compression and crypto dependencies.
func (r *Recipe) Requirements(_ context.Context, rc *recipe.Context, req requirement.Requirer) error {
	refs := []string{RefZlib, RefXzUtils}
	if rc.Options.Enabled(OptWithBzip2) {
		refs = append(refs, RefBzip2)
	}
	if rc.Options.Enabled(OptWithOpenSSL) {
		refs = append(refs, RefOpenSSL)
	}
	if rc.Options.Enabled(OptWithMbedTLS) {
		refs = append(refs, RefMbedTLS)
	}
	for _, ref := range refs {
		if err := req.Requires(ref); err != nil {
			return err
		}
	}
	return nil
}

// Source fetches the release archive and moves it to source_subfolder.
func (r *Recipe) Source(ctx context.Context, rc *recipe.Context) error {
	if r.dataErr != nil {
		return r.dataErr
	}
	src, err := r.data.Source(Version)
	if err != nil {
		return err
	}

	if err := os.RemoveAll(rc.Layout.SourceDir()); err != nil {
		return fmt.Errorf("failed to clear %s: %w", rc.Layout.SourceDir(), err)
	}
	if _, err := rc.Fetcher.Get(ctx, src, rc.Layout.WorkDir); err != nil {
		return err
	}

	extracted := filepath.Join(rc.Layout.WorkDir, fmt.Sprintf("%s-%s", Name, Version))
	if err := os.Rename(extracted, rc.Layout.SourceDir()); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to rename extracted sources", err)
	}
	slog.Debug("sources ready", "dir", rc.Layout.SourceDir())
	return nil
}

// Definitions returns the libzip specific CMake definitions for the
// current options and target.
func Definitions(o *options.Set, s *settings.Settings) map[string]string {
	defs := map[string]string{
		"ENABLE_MBEDTLS": cmake.OnOff(o.Enabled(OptWithMbedTLS)),
		"ENABLE_OPENSSL": cmake.OnOff(o.Enabled(OptWithOpenSSL)),
		"ENABLE_GNUTLS":  cmake.OnOff(false),
	}
	if s.IsWindows() {
		defs["ENABLE_WINDOWS_CRYPTO"] = cmake.OnOff(o.Enabled(OptEnableWindowsCrypto))
	}
	return defs
}

func (r *Recipe) newCMake(rc *recipe.Context) (*cmake.CMake, error) {
	c, err := rc.CMake()
	if err != nil {
		return nil, err
	}
	for k, v := range Definitions(rc.Options, rc.Settings) {
		c.Definitions[k] = v
	}
	return c, nil
}

// BuildDefinitions implements recipe.DefinitionsProvider.
func (r *Recipe) BuildDefinitions(rc *recipe.Context) (map[string]string, error) {
	c, err := r.newCMake(rc)
	if err != nil {
		return nil, err
	}
	return c.Definitions, nil
}

func (r *Recipe) configureCMake(ctx context.Context, rc *recipe.Context) (*cmake.CMake, error) {
	c, err := r.newCMake(rc)
	if err != nil {
		return nil, err
	}
	if err := c.Configure(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Build applies patches, trims the upstream targets, then configures and
// compiles.
func (r *Recipe) Build(ctx context.Context, rc *recipe.Context) error {
	if err := r.applyPatches(rc); err != nil {
		return err
	}
	if err := r.excludeTargets(rc); err != nil {
		return err
	}
	c, err := r.configureCMake(ctx, rc)
	if err != nil {
		return err
	}
	return c.Build(ctx)
}

// Package installs into the package folder and adds the license.
func (r *Recipe) Package(ctx context.Context, rc *recipe.Context) error {
	c, err := r.configureCMake(ctx, rc)
	if err != nil {
		return err
	}
	if err := c.Install(ctx); err != nil {
		return err
	}
	return packageLicense(ctx, rc)
}

// PackageInfo reports the installed libraries.
func (r *Recipe) PackageInfo(_ context.Context, rc *recipe.Context) (*recipe.CppInfo, error) {
	info := recipe.NewCppInfo()
	libs, err := collectLibs(rc.Layout.PackageDir, info.LibDirs)
	if err != nil {
		return nil, err
	}
	info.Libs = libs

	if rc.Settings.IsWindows() && rc.Options.Enabled(OptEnableWindowsCrypto) {
		info.AppendLib("bcrypt")
	}
	return info, nil
}
