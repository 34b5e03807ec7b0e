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

package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipekit/recipekit/pkg/errors"
)

func newTestSet(t *testing.T) *Set {
	t.Helper()
	s, err := NewSet(
		Bool("shared", false),
		Bool("fPIC", true),
		Enum("crypto", "mbedtls", "mbedtls", "openssl"),
	)
	require.NoError(t, err)
	return s
}

func TestDefaults(t *testing.T) {
	s := newTestSet(t)
	assert.Equal(t, map[string]string{"shared": False, "fPIC": True, "crypto": "mbedtls"}, s.Values())
	assert.Equal(t, []string{"shared", "fPIC", "crypto"}, s.Names())
	assert.Len(t, s.Declared(), 3)
}

func TestNewSetInvalid(t *testing.T) {
	tests := []struct {
		name string
		defs []Definition
	}{
		{"empty name", []Definition{Bool("", true)}},
		{"duplicate", []Definition{Bool("a", true), Bool("a", false)}},
		{"bad default", []Definition{Enum("a", "x", "y", "z")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSet(tt.defs...)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
		})
	}
	assert.Panics(t, func() { MustNewSet(Bool("a", true), Bool("a", true)) })
}

func TestSetValues(t *testing.T) {
	s := newTestSet(t)

	require.NoError(t, s.Set("shared", "true"))
	v, err := s.Bool("shared")
	require.NoError(t, err)
	assert.True(t, v)

	require.NoError(t, s.Set("shared", "False"))
	assert.False(t, s.Enabled("shared"))

	err = s.Set("shared", "maybe")
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))

	err = s.Set("crypto", "gnutls")
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))

	_, err = s.Bool("crypto")
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))

	err = s.Set("undeclared", "True")
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
}

func TestBoolSpellings(t *testing.T) {
	tests := []struct {
		value string
		want  string
		ok    bool
	}{
		{"True", True, true},
		{"true", True, true},
		{" TRUE ", True, true},
		{"False", False, true},
		{"false", False, true},
		{"1", "", false},
		{"0", "", false},
		{"t", "", false},
		{"F", "", false},
		{"yes", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			s := newTestSet(t)
			err := s.Set("shared", tt.value)
			if !tt.ok {
				assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest), "got %v", err)
				return
			}
			require.NoError(t, err)
			got, err := s.Get("shared")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRemove(t *testing.T) {
	s := newTestSet(t)

	require.NoError(t, s.Remove("fPIC"))
	require.NoError(t, s.Remove("fPIC"))
	assert.False(t, s.Has("fPIC"))
	assert.Equal(t, []string{"fPIC"}, s.Removed())
	assert.NotContains(t, s.Values(), "fPIC")

	_, err := s.Get("fPIC")
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
	assert.False(t, s.Enabled("fPIC"))

	err = s.Set("fPIC", "True")
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))

	err = s.Remove("undeclared")
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
}

func TestOverrideThenRemove(t *testing.T) {
	s := newTestSet(t)
	require.NoError(t, s.Override("fPIC", "False"))
	require.NoError(t, s.Remove("fPIC"))
	assert.False(t, s.Has("fPIC"))
}

func TestFreeze(t *testing.T) {
	s := newTestSet(t)
	s.Freeze()
	assert.True(t, s.Frozen())

	err := s.Set("shared", "True")
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))

	err = s.Remove("fPIC")
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))

	v, err := s.Get("shared")
	require.NoError(t, err)
	assert.Equal(t, False, v)
}
