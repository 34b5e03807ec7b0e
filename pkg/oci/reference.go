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
	"fmt"
	"strings"

	"github.com/distribution/reference"

	"github.com/recipekit/recipekit/pkg/errors"
)

// URIScheme is the optional prefix of registry references.
const URIScheme = "oci://"

// Reference is a registry location for an artifact.
type Reference struct {
	Registry   string
	Repository string
	// Tag may be empty; callers apply a default before pushing.
	Tag string
}

// ParseReference parses "oci://registry/repository[:tag]" or the same
// without the scheme.
func ParseReference(s string) (*Reference, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), URIScheme)
	ref, err := reference.ParseNormalizedNamed(raw)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "invalid OCI reference", err,
			map[string]any{"reference": s})
	}
	if _, ok := ref.(reference.Digested); ok {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest, "digest references cannot be pushed",
			map[string]any{"reference": s})
	}
	r := &Reference{
		Registry:   reference.Domain(ref),
		Repository: reference.Path(ref),
	}
	if tagged, ok := ref.(reference.Tagged); ok {
		r.Tag = tagged.Tag()
	}
	return r, nil
}

// NewReference builds and validates a reference from its parts. The
// registry may carry an http(s):// prefix, which is dropped.
func NewReference(registry, repository, tag string) (*Reference, error) {
	registry = stripProtocol(strings.TrimSpace(registry))
	if registry == "" || repository == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "registry and repository are required")
	}
	r := &Reference{Registry: registry, Repository: repository, Tag: tag}
	if _, err := reference.ParseNormalizedNamed(r.ImageReference()); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "invalid OCI reference", err,
			map[string]any{"reference": r.ImageReference()})
	}
	return r, nil
}

// ImageReference renders registry/repository[:tag].
func (r *Reference) ImageReference() string {
	if r.Tag == "" {
		return fmt.Sprintf("%s/%s", r.Registry, r.Repository)
	}
	return fmt.Sprintf("%s/%s:%s", r.Registry, r.Repository, r.Tag)
}

// String renders the reference with the oci:// scheme.
func (r *Reference) String() string {
	return URIScheme + r.ImageReference()
}

// WithTag returns a copy with tag set.
func (r *Reference) WithTag(tag string) *Reference {
	c := *r
	c.Tag = tag
	return &c
}

// SanitizeTag turns a version such as "1.7.3+build.1" into a valid tag.
func SanitizeTag(v string) string {
	var b strings.Builder
	for i, ch := range v {
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9', ch == '_':
			b.WriteRune(ch)
		case (ch == '.' || ch == '-') && i > 0:
			b.WriteRune(ch)
		default:
			b.WriteRune('_')
		}
		if b.Len() == 128 {
			break
		}
	}
	return b.String()
}

func stripProtocol(registry string) string {
	registry = strings.TrimPrefix(registry, "https://")
	return strings.TrimPrefix(registry, "http://")
}
