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
	"strings"
)

// OS is the target operating system.
type OS string

// OS constants for supported targets.
const (
	OSLinux   OS = "Linux"
	OSWindows OS = "Windows"
	OSMacos   OS = "Macos"
	OSFreeBSD OS = "FreeBSD"
	OSAndroid OS = "Android"
	OSiOS     OS = "iOS"
)

// ParseOS parses a string into an OS, accepting common spellings.
func ParseOS(s string) (OS, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linux":
		return OSLinux, nil
	case "windows", "win", "win32":
		return OSWindows, nil
	case "macos", "darwin", "osx":
		return OSMacos, nil
	case "freebsd":
		return OSFreeBSD, nil
	case "android":
		return OSAndroid, nil
	case "ios":
		return OSiOS, nil
	default:
		return "", fmt.Errorf("invalid os: %s", s)
	}
}

// GetOSTypes returns all supported OS values sorted alphabetically.
func GetOSTypes() []string {
	return []string{"Android", "FreeBSD", "Linux", "Macos", "Windows", "iOS"}
}

// BuildType is the CMake build configuration.
type BuildType string

// BuildType constants.
const (
	BuildTypeRelease        BuildType = "Release"
	BuildTypeDebug          BuildType = "Debug"
	BuildTypeRelWithDebInfo BuildType = "RelWithDebInfo"
	BuildTypeMinSizeRel     BuildType = "MinSizeRel"
)

// ParseBuildType parses a string into a BuildType.
func ParseBuildType(s string) (BuildType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "release":
		return BuildTypeRelease, nil
	case "debug":
		return BuildTypeDebug, nil
	case "relwithdebinfo":
		return BuildTypeRelWithDebInfo, nil
	case "minsizerel":
		return BuildTypeMinSizeRel, nil
	default:
		return "", fmt.Errorf("invalid build_type: %s", s)
	}
}

// GetBuildTypes returns all supported build types sorted alphabetically.
func GetBuildTypes() []string {
	return []string{"Debug", "MinSizeRel", "RelWithDebInfo", "Release"}
}
