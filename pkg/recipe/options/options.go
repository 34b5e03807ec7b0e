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
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/recipekit/recipekit/pkg/errors"
)

const (
	True  = "True"
	False = "False"
)

// Definition declares one option.
type Definition struct {
	Name    string   `json:"name" yaml:"name"`
	Values  []string `json:"values" yaml:"values"`
	Default string   `json:"default" yaml:"default"`
	boolean bool
}

// Bool declares a boolean option with the given default.
func Bool(name string, def bool) Definition {
	return Definition{
		Name:    name,
		Values:  []string{True, False},
		Default: FormatBool(def),
		boolean: true,
	}
}

// Enum declares an option restricted to values.
func Enum(name, def string, values ...string) Definition {
	return Definition{Name: name, Values: values, Default: def}
}

// FormatBool renders b in the option domain.
func FormatBool(b bool) string {
	if b {
		return True
	}
	return False
}

func (d Definition) normalize(value string) (string, error) {
	if d.boolean {
		// True and False in any letter case; 1, t, yes and the like are not
		// part of the domain
		switch v := strings.TrimSpace(value); {
		case strings.EqualFold(v, True):
			return True, nil
		case strings.EqualFold(v, False):
			return False, nil
		}
		return "", errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid value %q for option %s", value, d.Name),
			map[string]any{"option": d.Name, "allowed": d.Values})
	}
	if !slices.Contains(d.Values, value) {
		return "", errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid value %q for option %s", value, d.Name),
			map[string]any{"option": d.Name, "allowed": d.Values})
	}
	return value, nil
}

type state struct {
	def        Definition
	value      string
	removed    bool
	overridden bool
}

// Set holds the declared options and their current values.
type Set struct {
	order  []string
	items  map[string]*state
	frozen bool
}

// NewSet creates a set from definitions with every option at its default.
func NewSet(defs ...Definition) (*Set, error) {
	s := &Set{items: make(map[string]*state, len(defs))}
	for _, d := range defs {
		if d.Name == "" {
			return nil, errors.New(errors.ErrCodeInvalidRequest, "option name is empty")
		}
		if _, dup := s.items[d.Name]; dup {
			return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest, "option declared twice",
				map[string]any{"option": d.Name})
		}
		def, err := d.normalize(d.Default)
		if err != nil {
			return nil, err
		}
		s.items[d.Name] = &state{def: d, value: def}
		s.order = append(s.order, d.Name)
	}
	return s, nil
}

// MustNewSet is NewSet that panics on invalid definitions.
func MustNewSet(defs ...Definition) *Set {
	s, err := NewSet(defs...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Set) active(name string) (*state, error) {
	st, ok := s.items[name]
	if !ok {
		return nil, errors.NewWithContext(errors.ErrCodeNotFound, fmt.Sprintf("option %s is not declared", name),
			map[string]any{"option": name})
	}
	if st.removed {
		return nil, errors.NewWithContext(errors.ErrCodeNotFound, fmt.Sprintf("option %s was removed", name),
			map[string]any{"option": name})
	}
	return st, nil
}

// Has reports whether name is declared and still active.
func (s *Set) Has(name string) bool {
	st, ok := s.items[name]
	return ok && !st.removed
}

// Get returns the value of an active option.
func (s *Set) Get(name string) (string, error) {
	st, err := s.active(name)
	if err != nil {
		return "", err
	}
	return st.value, nil
}

// Bool returns the value of an active boolean option.
func (s *Set) Bool(name string) (bool, error) {
	st, err := s.active(name)
	if err != nil {
		return false, err
	}
	if !st.def.boolean {
		return false, errors.NewWithContext(errors.ErrCodeInvalidRequest, fmt.Sprintf("option %s is not boolean", name),
			map[string]any{"option": name})
	}
	return st.value == True, nil
}

// Enabled reports whether name is active and true. Removed or undeclared
// options read as false.
func (s *Set) Enabled(name string) bool {
	b, err := s.Bool(name)
	return err == nil && b
}

// Set assigns a value to an active option.
func (s *Set) Set(name, value string) error {
	if s.frozen {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "options are frozen",
			map[string]any{"option": name})
	}
	st, err := s.active(name)
	if err != nil {
		return err
	}
	v, err := st.def.normalize(value)
	if err != nil {
		return err
	}
	st.value = v
	return nil
}

// Override assigns a user supplied value. Unlike Set it marks the option so
// that a later removal is logged.
func (s *Set) Override(name, value string) error {
	if err := s.Set(name, value); err != nil {
		return err
	}
	s.items[name].overridden = true
	return nil
}

// Remove drops an option from the active set. Removing an option twice is
// a no-op.
func (s *Set) Remove(name string) error {
	if s.frozen {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "options are frozen",
			map[string]any{"option": name})
	}
	st, ok := s.items[name]
	if !ok {
		return errors.NewWithContext(errors.ErrCodeNotFound, fmt.Sprintf("option %s is not declared", name),
			map[string]any{"option": name})
	}
	if st.removed {
		return nil
	}
	if st.overridden {
		slog.Debug("discarding override of removed option", "option", name, "value", st.value)
	}
	st.removed = true
	return nil
}

// Freeze makes the set read-only.
func (s *Set) Freeze() {
	s.frozen = true
}

// Frozen reports whether Freeze was called.
func (s *Set) Frozen() bool {
	return s.frozen
}

// Names returns active option names in declaration order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.order))
	for _, n := range s.order {
		if !s.items[n].removed {
			names = append(names, n)
		}
	}
	return names
}

// Removed returns removed option names in declaration order.
func (s *Set) Removed() []string {
	var names []string
	for _, n := range s.order {
		if s.items[n].removed {
			names = append(names, n)
		}
	}
	return names
}

// Declared returns every definition in declaration order.
func (s *Set) Declared() []Definition {
	defs := make([]Definition, 0, len(s.order))
	for _, n := range s.order {
		defs = append(defs, s.items[n].def)
	}
	return defs
}

// Values returns the active options and their values.
func (s *Set) Values() map[string]string {
	out := make(map[string]string, len(s.order))
	for _, n := range s.Names() {
		out[n] = s.items[n].value
	}
	return out
}
