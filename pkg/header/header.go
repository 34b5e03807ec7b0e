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

package header

import "time"

// APIVersion is the schema version stamped on every document.
const APIVersion = "recipekit.dev/v1"

// Kind names the document type.
type Kind string

const (
	// KindRecipeRun is the result of a full create run.
	KindRecipeRun Kind = "RecipeRun"
	// KindRecipeInspection is the result of inspect; nothing was built.
	KindRecipeInspection Kind = "RecipeInspection"
	// KindPackageManifest describes an uploaded package.
	KindPackageManifest Kind = "PackageManifest"
)

// Metadata keys.
const (
	MetaTimestamp = "timestamp"
	MetaVersion   = "version"
	MetaRecipe    = "recipe"
	MetaRunID     = "runID"
)

func (k Kind) String() string { return string(k) }

// IsValid reports whether k is a document kind this module emits.
func (k Kind) IsValid() bool {
	return k == KindRecipeRun || k == KindRecipeInspection || k == KindPackageManifest
}

// Header is the envelope shared by run results, inspections and package
// manifests.
type Header struct {
	Kind       Kind              `json:"kind,omitempty" yaml:"kind,omitempty"`
	APIVersion string            `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Option customizes a Header built by New.
type Option func(*Header)

// WithKind sets the document kind.
func WithKind(kind Kind) Option {
	return func(h *Header) { h.Kind = kind }
}

// WithMetadata records one metadata entry.
func WithMetadata(key, value string) Option {
	return func(h *Header) { h.Set(key, value) }
}

// New returns a header stamped with the current UTC time.
func New(opts ...Option) *Header {
	h := &Header{}
	h.stamp()
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Init discards previous metadata and restamps h for kind. An empty
// version is not recorded.
func (h *Header) Init(kind Kind, version string) {
	h.Kind = kind
	h.stamp()
	if version != "" {
		h.Metadata[MetaVersion] = version
	}
}

// Set stores a metadata value.
func (h *Header) Set(key, value string) {
	if h.Metadata == nil {
		h.Metadata = map[string]string{}
	}
	h.Metadata[key] = value
}

func (h *Header) stamp() {
	h.APIVersion = APIVersion
	h.Metadata = map[string]string{MetaTimestamp: time.Now().UTC().Format(time.RFC3339)}
}
