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

package requirement

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/recipekit/recipekit/pkg/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Reference
		wantErr bool
	}{
		{"zlib/1.2.11", Reference{Name: "zlib", Version: "1.2.11"}, false},
		{"xz_utils/5.2.5@ggreene/test", Reference{Name: "xz_utils", Version: "5.2.5", User: "ggreene", Channel: "test"}, false},
		{"openssl/1.0.2t", Reference{Name: "openssl", Version: "1.0.2t"}, false},
		{"mbedtls/2.23.0-apache@ggreene/test", Reference{Name: "mbedtls", Version: "2.23.0-apache", User: "ggreene", Channel: "test"}, false},
		{" bzip2/1.0.8 ", Reference{Name: "bzip2", Version: "1.0.8"}, false},
		{"zlib", Reference{}, true},
		{"zlib/", Reference{}, true},
		{"/1.2.11", Reference{}, true},
		{"zlib/1.2.11/extra", Reference{}, true},
		{"zlib/1.2.11@user", Reference{}, true},
		{"zlib/1.2.11@user/", Reference{}, true},
		{"Zlib/1.2.11", Reference{}, true},
		{"zlib/abc", Reference{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, MustParse(got.String()))
		})
	}
}

func TestReferenceYAML(t *testing.T) {
	var doc struct {
		Requires []Reference `yaml:"requires"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("requires:\n  - zlib/1.2.11\n  - xz_utils/5.2.5@ggreene/test\n"), &doc))
	require.Len(t, doc.Requires, 2)
	assert.Equal(t, "ggreene", doc.Requires[1].User)

	out, err := yaml.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), "- xz_utils/5.2.5@ggreene/test")

	assert.Error(t, yaml.Unmarshal([]byte("requires:\n  - nope\n"), &doc))
}

func TestRequirementsDuplicates(t *testing.T) {
	r := NewRequirements()
	require.NoError(t, r.Requires("zlib/1.2.11"))
	require.NoError(t, r.Requires("bzip2/1.0.8"))

	err := r.Requires("zlib/1.2.11")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))

	err = r.Requires("zlib/1.2.13")
	assert.Error(t, err)

	assert.Error(t, r.Requires("bad"))
	assert.Equal(t, []string{"zlib/1.2.11", "bzip2/1.0.8"}, r.Strings())
	assert.Equal(t, 2, r.Len())
	assert.True(t, r.Has("bzip2"))
	assert.False(t, r.Has("openssl"))
}

func TestLocalResolver(t *testing.T) {
	root := t.TempDir()
	res := NewLocalResolver(root)

	zlib := MustParse("zlib/1.2.11")
	xz := MustParse("xz_utils/5.2.5@ggreene/test")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "zlib", "1.2.11", "_", "_", "package"), 0755))
	require.NoError(t, os.MkdirAll(res.PackagePath(xz), 0755))

	resolved, err := ResolveAll(context.Background(), res, []Reference{zlib, xz})
	require.NoError(t, err)
	require.Len(t, resolved, 2)
	assert.Equal(t, filepath.Join(root, "xz_utils", "5.2.5", "ggreene", "test", "package"), resolved[1].Path)

	_, err = ResolveAll(context.Background(), res, []Reference{zlib, MustParse("bzip2/1.0.8")})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
}

func TestLocalResolverPackageIsFile(t *testing.T) {
	res := NewLocalResolver(t.TempDir())
	ref := MustParse("bzip2/1.0.8")
	p := res.PackagePath(ref)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte("not a folder"), 0644))

	_, err := res.Resolve(context.Background(), ref)
	require.Error(t, err)
	var se *errors.StructuredError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, errors.ErrCodeNotFound, se.Code)
	assert.Nil(t, se.Cause)
	assert.Equal(t, p, se.Context["path"])
	assert.NotContains(t, err.Error(), "<nil>")
}

func TestNoopResolver(t *testing.T) {
	resolved, err := ResolveAll(context.Background(), NoopResolver{}, []Reference{MustParse("zlib/1.2.11")})
	require.NoError(t, err)
	assert.Empty(t, resolved[0].Path)
}

func TestResolveAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ResolveAll(ctx, NoopResolver{}, []Reference{MustParse("zlib/1.2.11")})
	assert.True(t, errors.IsCode(err, errors.ErrCodeTimeout))
}
