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
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipekit/recipekit/pkg/errors"
	"github.com/recipekit/recipekit/pkg/recipe/options"
	"github.com/recipekit/recipekit/pkg/requirement"
)

const testData = `sources:
  "1.7.3":
    url: "https://libzip.org/download/libzip-1.7.3.tar.gz"
    sha256: "0e2276c550c5a310d4ebf3a2c3dfc43fb3b4602a072ff625842ad4f3238cb9cc"
  "1.10.0":
    url:
      - "https://libzip.org/download/libzip-1.10.0.tar.gz"
      - "https://github.com/nih-at/libzip/releases/download/v1.10.0/libzip-1.10.0.tar.gz"
    sha256: "52a60b46182587e083b71e2b071f0d6b4bc1a7f4ccd3cfc59f95a5e44c1f4f86"
  "1.7.1":
    url: "https://libzip.org/download/libzip-1.7.1.tar.gz"
patches:
  "1.7.3":
    - patch_file: "patches/0001-cmake.patch"
      base_path: "source_subfolder"
`

func TestParseData(t *testing.T) {
	d, err := ParseData([]byte(testData))
	require.NoError(t, err)

	assert.Equal(t, []string{"1.7.1", "1.7.3", "1.10.0"}, d.Versions())

	src, err := d.Source("1.10.0")
	require.NoError(t, err)
	assert.Len(t, src.URLs, 2)
	assert.Equal(t, "libzip-1.10.0.tar.gz", src.Name())

	src, err = d.Source("1.7.3")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://libzip.org/download/libzip-1.7.3.tar.gz"}, src.URLs)
	assert.Equal(t, "0e2276c550c5a310d4ebf3a2c3dfc43fb3b4602a072ff625842ad4f3238cb9cc", src.SHA256)

	_, err = d.Source("9.9.9")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))

	assert.Len(t, d.PatchesFor("1.7.3"), 1)
	assert.Empty(t, d.PatchesFor("1.7.1"))
}

func TestParseDataInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not yaml", "sources: ["},
		{"url map", "sources:\n  \"1.0\":\n    url: {a: b}\n"},
		{"no url", "sources:\n  \"1.0\":\n    sha256: abc\n"},
		{"patch without file", "sources:\n  \"1.0\":\n    url: x\npatches:\n  \"1.0\":\n    - base_path: src\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseData([]byte(tt.data))
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
		})
	}
}

func TestLoadData(t *testing.T) {
	fsys := fstest.MapFS{DataFileName: &fstest.MapFile{Data: []byte(testData)}}
	d, err := LoadData(fsys, DataFileName)
	require.NoError(t, err)
	assert.Len(t, d.Sources, 3)

	_, err = LoadData(fsys, "missing.yml")
	assert.Error(t, err)
}

func TestCppInfo(t *testing.T) {
	info := NewCppInfo()
	assert.Equal(t, []string{"include"}, info.IncludeDirs)
	assert.Equal(t, []string{"lib"}, info.LibDirs)
	assert.Equal(t, []string{"bin"}, info.BinDirs)

	info.Libs = []string{"zip"}
	info.AppendLib("bcrypt")
	info.AppendLib("bcrypt")
	assert.Equal(t, []string{"zip", "bcrypt"}, info.Libs)

	info.AppendSystemLib("m")
	info.AppendSystemLib("m")
	assert.Equal(t, []string{"m"}, info.SystemLibs)
}

type stubRecipe struct{}

func (stubRecipe) Metadata() Metadata {
	return Metadata{Name: "stub", Version: "0.1.0"}
}
func (stubRecipe) Options() []options.Definition { return nil }
func (stubRecipe) ConfigOptions(context.Context, *Context) error { return nil }
func (stubRecipe) Configure(context.Context, *Context) error { return nil }
func (stubRecipe) Source(context.Context, *Context) error { return nil }
func (stubRecipe) Build(context.Context, *Context) error { return nil }
func (stubRecipe) Package(context.Context, *Context) error { return nil }
func (stubRecipe) PackageInfo(context.Context, *Context) (*CppInfo, error) {
	return NewCppInfo(), nil
}
func (stubRecipe) Requirements(context.Context, *Context, requirement.Requirer) error {
	return nil
}

func TestRegistry(t *testing.T) {
	name := "stub-registry-test"
	require.NoError(t, Register(name, func() Recipe { return stubRecipe{} }))
	assert.Error(t, Register(name, func() Recipe { return stubRecipe{} }))
	assert.Panics(t, func() { MustRegister(name, func() Recipe { return stubRecipe{} }) })
	assert.Contains(t, Names(), name)

	r, err := Get(name)
	require.NoError(t, err)
	assert.Equal(t, "stub/0.1.0", r.Metadata().Reference())

	_, err = Get("does-not-exist")
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
}
