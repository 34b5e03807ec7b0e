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
	"log/slog"

	"github.com/recipekit/recipekit/pkg/errors"
)

// Requirer is what recipes use to declare dependencies.
type Requirer interface {
	Requires(ref string) error
}

// Requirements is an ordered, duplicate-free list of references.
type Requirements struct {
	refs  []Reference
	names map[string]Reference
}

// NewRequirements creates an empty collection.
func NewRequirements() *Requirements {
	return &Requirements{names: map[string]Reference{}}
}

// Requires parses ref and adds it. A second reference to the same package
// name is rejected even when versions match.
func (r *Requirements) Requires(ref string) error {
	parsed, err := Parse(ref)
	if err != nil {
		return err
	}
	return r.Add(parsed)
}

// Add adds a parsed reference.
func (r *Requirements) Add(ref Reference) error {
	if prev, dup := r.names[ref.Name]; dup {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("duplicate requirement %s (already have %s)", ref, prev),
			map[string]any{"name": ref.Name})
	}
	r.names[ref.Name] = ref
	r.refs = append(r.refs, ref)
	slog.Debug("requirement declared", "reference", ref.String())
	return nil
}

// List returns the references in declaration order.
func (r *Requirements) List() []Reference {
	return append([]Reference(nil), r.refs...)
}

// Strings returns the references rendered canonically.
func (r *Requirements) Strings() []string {
	out := make([]string, 0, len(r.refs))
	for _, ref := range r.refs {
		out = append(out, ref.String())
	}
	return out
}

// Has reports whether a package with name was declared.
func (r *Requirements) Has(name string) bool {
	_, ok := r.names[name]
	return ok
}

// Len returns the number of references.
func (r *Requirements) Len() int {
	return len(r.refs)
}
