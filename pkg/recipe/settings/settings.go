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

package settings

import (
	"fmt"
	"maps"
	"runtime"
	"slices"
	"strings"

	"github.com/recipekit/recipekit/pkg/errors"
)

// Well-known setting keys.
const (
	KeyOS              = "os"
	KeyArch            = "arch"
	KeyCompiler        = "compiler"
	KeyCompilerVersion = "compiler.version"
	KeyCompilerLibcxx  = "compiler.libcxx"
	KeyCompilerCppstd  = "compiler.cppstd"
	KeyBuildType       = "build_type"
)

// Settings is the live target description for one run.
type Settings struct {
	values map[string]string
}

// New creates Settings from the given key/value pairs. os and build_type
// are normalized and validated.
func New(values map[string]string) (*Settings, error) {
	s := &Settings{values: map[string]string{}}
	for k, v := range values {
		if err := s.Set(k, v); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Detect returns settings describing the host, with a Release build type.
func Detect() *Settings {
	s := &Settings{values: map[string]string{
		KeyArch:      hostArch(runtime.GOARCH),
		KeyBuildType: string(BuildTypeRelease),
	}}

	os, err := ParseOS(runtime.GOOS)
	if err != nil {
		os = OSLinux
	}
	s.values[KeyOS] = string(os)

	switch os {
	case OSWindows:
		s.values[KeyCompiler] = "Visual Studio"
	case OSMacos, OSiOS:
		s.values[KeyCompiler] = "apple-clang"
		s.values[KeyCompilerLibcxx] = "libc++"
	case OSFreeBSD:
		s.values[KeyCompiler] = "clang"
		s.values[KeyCompilerLibcxx] = "libc++"
	default:
		s.values[KeyCompiler] = "gcc"
		s.values[KeyCompilerLibcxx] = "libstdc++11"
	}
	return s
}

func hostArch(goarch string) string {
	switch goarch {
	case "amd64":
		return "x86_64"
	case "386":
		return "x86"
	case "arm64":
		return "armv8"
	case "arm":
		return "armv7"
	default:
		return goarch
	}
}

// Set assigns a setting, normalizing known enumerations.
func (s *Settings) Set(key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "setting key is empty")
	}

	switch key {
	case KeyOS:
		os, err := ParseOS(value)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidRequest, "invalid setting", err)
		}
		value = string(os)
	case KeyBuildType:
		bt, err := ParseBuildType(value)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidRequest, "invalid setting", err)
		}
		value = string(bt)
	}
	s.values[key] = value
	return nil
}

// Get returns the value of key or "" when unset.
func (s *Settings) Get(key string) string {
	return s.values[key]
}

// Lookup returns the value of key and whether it is set.
func (s *Settings) Lookup(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Delete removes key. Deleting an unset key is a no-op.
func (s *Settings) Delete(key string) {
	delete(s.values, key)
}

// OS returns the target operating system.
func (s *Settings) OS() OS {
	return OS(s.values[KeyOS])
}

// IsWindows reports whether the target is Windows.
func (s *Settings) IsWindows() bool {
	return s.OS() == OSWindows
}

// BuildType returns the build type, defaulting to Release.
func (s *Settings) BuildType() BuildType {
	if bt, ok := s.values[KeyBuildType]; ok && bt != "" {
		return BuildType(bt)
	}
	return BuildTypeRelease
}

// Keys returns the set keys in sorted order.
func (s *Settings) Keys() []string {
	return slices.Sorted(maps.Keys(s.values))
}

// Map returns a copy of all settings.
func (s *Settings) Map() map[string]string {
	return maps.Clone(s.values)
}

// Clone returns an independent copy.
func (s *Settings) Clone() *Settings {
	return &Settings{values: maps.Clone(s.values)}
}

// Merge applies overrides on top of s.
func (s *Settings) Merge(overrides map[string]string) error {
	for _, k := range slices.Sorted(maps.Keys(overrides)) {
		if err := s.Set(k, overrides[k]); err != nil {
			return fmt.Errorf("setting %s: %w", k, err)
		}
	}
	return nil
}
