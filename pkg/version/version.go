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

// Package version parses and orders the version strings used by recipes and
// their dependency references.
//
// Recipe versions are mostly "major.minor.patch" but upstream projects are
// not consistent: OpenSSL uses a trailing letter ("1.0.2t") and forks often
// carry a suffix ("2.23.0-apache"). Anything after the numeric core is kept
// in Extras and only used as a tie-breaker when ordering.
package version

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Error types for version parsing failures
var (
	ErrEmptyVersion      = errors.New("version string is empty")
	ErrTooManyComponents = errors.New("version has more than 3 components")
	ErrNonNumeric        = errors.New("version component is not numeric")
)

// Version is a parsed version with up to three numeric components.
// Precision records how many components were present in the input.
type Version struct {
	Major int `json:"major" yaml:"major"`
	Minor int `json:"minor,omitempty" yaml:"minor,omitempty"`
	Patch int `json:"patch,omitempty" yaml:"patch,omitempty"`

	// Precision indicates how many components were given (1, 2, or 3)
	Precision int `json:"precision,omitempty" yaml:"precision,omitempty"`

	// Extras stores trailing metadata such as "t" in 1.0.2t or "-apache"
	Extras string `json:"extras,omitempty" yaml:"extras,omitempty"`
}

// NewVersion creates a Version with all three components significant.
func NewVersion(major, minor, patch int) Version {
	return Version{Major: major, Minor: minor, Patch: patch, Precision: 3}
}

// String returns the numeric core respecting precision, followed by Extras.
func (v Version) String() string {
	var core string
	switch v.Precision {
	case 1:
		core = strconv.Itoa(v.Major)
	case 2:
		core = fmt.Sprintf("%d.%d", v.Major, v.Minor)
	default:
		core = fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	}
	return core + v.Extras
}

// Parse parses strings like "1", "1.7", "v1.7.3", "1.0.2t" and "2.23.0-apache".
func Parse(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Version{}, ErrEmptyVersion
	}
	s = strings.TrimPrefix(s, "v")

	// the numeric core ends at the first rune that is neither a digit nor a dot
	end := len(s)
	for i, ch := range s {
		if (ch < '0' || ch > '9') && ch != '.' {
			end = i
			break
		}
	}
	core := strings.TrimSuffix(s[:end], ".")
	if core == "" {
		return Version{}, fmt.Errorf("%w: %q", ErrNonNumeric, s)
	}

	parts := strings.Split(core, ".")
	if len(parts) > 3 {
		return Version{}, ErrTooManyComponents
	}

	v := Version{Precision: len(parts), Extras: s[len(core):]}
	for i, part := range parts {
		if part == "" {
			return Version{}, fmt.Errorf("%w: empty component in %q", ErrNonNumeric, s)
		}
		num, err := strconv.Atoi(part)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q", ErrNonNumeric, part)
		}
		switch i {
		case 0:
			v.Major = num
		case 1:
			v.Minor = num
		case 2:
			v.Patch = num
		}
	}
	return v, nil
}

// MustParse is like Parse but panics on error. Use only for literals.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("MustParse: %v", err))
	}
	return v
}

// Compare returns -1, 0 or 1. Missing components compare as zero and
// Extras break ties lexically, so 1.0.2 < 1.0.2s < 1.0.2t.
func (v Version) Compare(other Version) int {
	for _, pair := range [][2]int{{v.Major, other.Major}, {v.Minor, other.Minor}, {v.Patch, other.Patch}} {
		switch {
		case pair[0] < pair[1]:
			return -1
		case pair[0] > pair[1]:
			return 1
		}
	}
	return strings.Compare(v.Extras, other.Extras)
}

// Equals reports whether both versions have the same components and extras.
func (v Version) Equals(other Version) bool {
	return v.Compare(other) == 0
}

// IsValid returns true if all components are non-negative and precision is 1-3.
func (v Version) IsValid() bool {
	if v.Major < 0 || v.Minor < 0 || v.Patch < 0 {
		return false
	}
	return v.Precision >= 1 && v.Precision <= 3
}

// Sort orders version strings ascending. Strings that do not parse sort
// after all parseable ones, in lexical order.
func Sort(versions []string) {
	sort.SliceStable(versions, func(i, j int) bool {
		vi, erri := Parse(versions[i])
		vj, errj := Parse(versions[j])
		switch {
		case erri != nil && errj != nil:
			return versions[i] < versions[j]
		case erri != nil:
			return false
		case errj != nil:
			return true
		}
		return vi.Compare(vj) < 0
	})
}

// Latest returns the highest version among versions, or "" when empty.
func Latest(versions []string) string {
	if len(versions) == 0 {
		return ""
	}
	sorted := append([]string(nil), versions...)
	Sort(sorted)
	return sorted[len(sorted)-1]
}
