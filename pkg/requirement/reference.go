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
	"fmt"
	"regexp"
	"strings"

	"github.com/recipekit/recipekit/pkg/errors"
	"github.com/recipekit/recipekit/pkg/version"
)

var (
	namePattern    = regexp.MustCompile(`^[a-z0-9_][a-z0-9_+.-]{1,50}$`)
	segmentPattern = regexp.MustCompile(`^[a-zA-Z0-9_][a-zA-Z0-9_+.-]{1,50}$`)
)

// Reference identifies a package.
type Reference struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`
	User    string `json:"user,omitempty" yaml:"user,omitempty"`
	Channel string `json:"channel,omitempty" yaml:"channel,omitempty"`
}

// Parse parses name/version[@user/channel].
func Parse(s string) (Reference, error) {
	raw := strings.TrimSpace(s)
	invalid := func(reason string) (Reference, error) {
		return Reference{}, errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid reference %q: %s", s, reason), map[string]any{"reference": s})
	}

	pkg, uc, hasAt := strings.Cut(raw, "@")
	name, ver, ok := strings.Cut(pkg, "/")
	if !ok || strings.Contains(ver, "/") {
		return invalid("expected name/version")
	}
	if !namePattern.MatchString(name) {
		return invalid("bad name")
	}
	if !segmentPattern.MatchString(ver) {
		return invalid("bad version")
	}
	if _, err := version.Parse(ver); err != nil {
		return invalid(err.Error())
	}

	ref := Reference{Name: name, Version: ver}
	if hasAt {
		user, channel, ok := strings.Cut(uc, "/")
		if !ok || strings.Contains(channel, "/") {
			return invalid("expected @user/channel")
		}
		if !segmentPattern.MatchString(user) || !segmentPattern.MatchString(channel) {
			return invalid("bad user or channel")
		}
		ref.User, ref.Channel = user, channel
	}
	return ref, nil
}

// MustParse is Parse that panics on error.
func MustParse(s string) Reference {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return r
}

// String renders the reference in its canonical form.
func (r Reference) String() string {
	s := r.Name + "/" + r.Version
	if r.User != "" {
		s += "@" + r.User + "/" + r.Channel
	}
	return s
}

// MarshalText implements encoding.TextMarshaler.
func (r Reference) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Reference) UnmarshalText(b []byte) error {
	ref, err := Parse(string(b))
	if err != nil {
		return err
	}
	*r = ref
	return nil
}
