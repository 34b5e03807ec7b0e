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
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/recipekit/recipekit/pkg/errors"
	"github.com/recipekit/recipekit/pkg/header"
	"github.com/recipekit/recipekit/pkg/recipe"
	"github.com/recipekit/recipekit/pkg/runner"
	"github.com/recipekit/recipekit/pkg/serializer"
)

func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	return newRootCmd().Run(context.Background(), append([]string{name, "--log-level", "error"}, args...))
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		name       string
		format     string
		wantFormat serializer.Format
		wantErr    bool
	}{
		{"yaml", "yaml", serializer.FormatYAML, false},
		{"json", "json", serializer.FormatJSON, false},
		{"table", "table", serializer.FormatTable, false},
		{"xml", "xml", "", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cli.Command{
				Flags: []cli.Flag{&cli.StringFlag{Name: "format", Value: tt.format}},
				Action: func(_ context.Context, c *cli.Command) error {
					got, err := parseOutputFormat(c)
					if tt.wantErr {
						assert.Error(t, err)
						return nil
					}
					assert.NoError(t, err)
					assert.Equal(t, tt.wantFormat, got)
					return nil
				},
			}
			require.NoError(t, cmd.Run(context.Background(), []string{"test"}))
		})
	}
}

func TestParseKeyValues(t *testing.T) {
	got, err := parseKeyValues("option", []string{"shared=True", " fPIC = False ", "shared=False", "empty="})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"shared": "False", "fPIC": "False", "empty": ""}, got)

	for _, bad := range []string{"shared", "=True"} {
		_, err := parseKeyValues("option", []string{bad})
		assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest), bad)
	}
}

func TestNewResolver(t *testing.T) {
	r, err := newResolver("local", t.TempDir())
	require.NoError(t, err)
	assert.NotNil(t, r)

	_, err = newResolver("remote", "")
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
}

func TestInspectCommand(t *testing.T) {
	dir := t.TempDir()
	profile := filepath.Join(dir, "msvc.yaml")
	require.NoError(t, os.WriteFile(profile, []byte(`settings:
  os: Windows
  compiler: Visual Studio
options:
  with_openssl: "True"
  with_mbedtls: "True"
`), 0o600))
	out := filepath.Join(dir, "inspect.json")

	err := runCLI(t, "inspect", "--profile", profile, "-o", "with_mbedtls=False", "-s", "build_type=Debug",
		"--format", "json", "--output", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var res runner.Result
	require.NoError(t, json.Unmarshal(data, &res))

	assert.Equal(t, header.KindRecipeInspection, res.Kind)
	assert.Equal(t, "libzip/1.7.3", res.Metadata[header.MetaRecipe])
	assert.Equal(t, "Windows", res.Settings["os"])
	assert.Equal(t, "Debug", res.Settings["build_type"])
	assert.Equal(t, "True", res.Options["with_openssl"])
	assert.Equal(t, "False", res.Options["with_mbedtls"])
	assert.Equal(t, "True", res.Options["enable_windows_crypto"])
	assert.NotContains(t, res.Options, "fPIC")
	assert.Equal(t, []string{"fPIC"}, res.RemovedOptions)
	assert.Equal(t, []string{"zlib/1.2.11", "xz_utils/5.2.5@ggreene/test", "bzip2/1.0.8", "openssl/1.0.2t"}, res.Requirements)
	assert.Equal(t, "ON", res.Definitions["ENABLE_OPENSSL"])
	assert.Equal(t, "OFF", res.Definitions["ENABLE_MBEDTLS"])
	assert.Equal(t, "OFF", res.Definitions["ENABLE_GNUTLS"])
	assert.Equal(t, "ON", res.Definitions["ENABLE_WINDOWS_CRYPTO"])
	assert.Equal(t, "Debug", res.Definitions["CMAKE_BUILD_TYPE"])
}

func TestInspectCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.ErrorCode
	}{
		{"unknown recipe", []string{"inspect", "--recipe", "zlib"}, errors.ErrCodeNotFound},
		{"bad setting", []string{"inspect", "-s", "os=Plan9"}, errors.ErrCodeInvalidRequest},
		{"bad option value", []string{"inspect", "-o", "shared=maybe"}, errors.ErrCodeInvalidRequest},
		{"undeclared option", []string{"inspect", "-o", "minizip=True"}, errors.ErrCodeInvalidRequest},
		{"missing profile", []string{"inspect", "--profile", "/nonexistent/profile.yaml"}, errors.ErrCodeNotFound},
		{"bad format", []string{"inspect", "--format", "xml"}, errors.ErrCodeInvalidRequest},
		{"bad resolver", []string{"inspect", "--resolver", "remote"}, errors.ErrCodeInvalidRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runCLI(t, append(tt.args, "--output", filepath.Join(t.TempDir(), "out.yaml"))...)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, tt.code), "got %v", err)
		})
	}
}

func TestInspectUnresolvedDependency(t *testing.T) {
	err := runCLI(t, "inspect", "-s", "os=Linux", "--resolver", "local", "--deps-dir", t.TempDir(),
		"--output", filepath.Join(t.TempDir(), "out.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
}

func TestCreateRejectsNegativeJobs(t *testing.T) {
	err := runCLI(t, "create", "-s", "os=Linux", "--work-dir", t.TempDir(), "--jobs=-2")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
}

func TestListCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "list.yaml")
	require.NoError(t, runCLI(t, "list", "--output", out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var got []recipe.Metadata
	require.NoError(t, yaml.Unmarshal(data, &got))
	require.NotEmpty(t, got)
	assert.Equal(t, "libzip", got[0].Name)
}

func TestUploadToLayout(t *testing.T) {
	pkg := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(pkg, "licenses"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(pkg, "licenses", "LICENSE"), []byte("libzip license\n"), 0o644))

	layout := filepath.Join(t.TempDir(), "layout")
	out := filepath.Join(t.TempDir(), "upload.json")
	err := runCLI(t, "upload", "--package-dir", pkg, "--layout", layout,
		"--created", "2000-01-01T00:00:00Z", "--format", "json", "--output", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, string(header.KindPackageManifest), got["kind"])
	assert.Equal(t, "1.7.3", got["reference"])
	assert.NotEmpty(t, got["digest"])
	assert.FileExists(t, filepath.Join(layout, "index.json"))
}

func TestParseUploadCmdOptions(t *testing.T) {
	meta := recipe.Metadata{Name: "libzip", Version: "1.7.3"}
	tests := []struct {
		name    string
		args    []string
		wantRef string
		wantErr bool
	}{
		{"registry default tag", []string{"--package-dir", "p", "--registry", "ghcr.io", "--repository", "acme/libzip"},
			"ghcr.io/acme/libzip:1.7.3", false},
		{"explicit tag", []string{"--package-dir", "p", "--registry", "https://localhost:5000", "--repository", "libzip", "--tag", "msvc"},
			"localhost:5000/libzip:msvc", false},
		{"missing package dir", []string{"--registry", "ghcr.io", "--repository", "acme/libzip"}, "", true},
		{"missing repository", []string{"--package-dir", "p", "--registry", "ghcr.io"}, "", true},
		{"layout and registry", []string{"--package-dir", "p", "--layout", "l", "--registry", "ghcr.io"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := uploadCmd()
			cmd.Action = func(_ context.Context, c *cli.Command) error {
				opts, err := parseUploadCmdOptions(c, meta)
				if tt.wantErr {
					assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
					return nil
				}
				require.NoError(t, err)
				assert.Equal(t, tt.wantRef, opts.reference.ImageReference())
				return nil
			}
			require.NoError(t, cmd.Run(context.Background(), append([]string{"upload"}, tt.args...)))
		})
	}
}

func TestServeConfig(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantPort int
		wantErr  bool
	}{
		{"defaults", nil, 8080, false},
		{"custom port", []string{"--port", "9191", "--address", "127.0.0.1"}, 9191, false},
		{"local resolver", []string{"--resolver", "local", "--deps-dir", "/tmp/pkgs"}, 8080, false},
		{"port out of range", []string{"--port", "70000"}, 0, true},
		{"zero rate", []string{"--rate-limit", "0"}, 0, true},
		{"bad resolver", []string{"--resolver", "remote"}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PORT", "")
			cmd := serveCmd()
			cmd.Action = func(_ context.Context, c *cli.Command) error {
				cfg, err := serveConfig(c)
				if tt.wantErr {
					assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest), "got %v", err)
					return nil
				}
				require.NoError(t, err)
				assert.Equal(t, tt.wantPort, cfg.Port)
				assert.NotNil(t, cfg.Resolver)
				return nil
			}
			require.NoError(t, cmd.Run(context.Background(), append([]string{"serve"}, tt.args...)))
		})
	}
}
