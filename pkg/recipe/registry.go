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

package recipe

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/recipekit/recipekit/pkg/errors"
)

// Factory creates a recipe instance.
type Factory func() Recipe

var (
	globalFactories = make(map[string]Factory)
	globalMu        sync.RWMutex
)

// Register registers a recipe factory under name.
func Register(name string, factory Factory) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	if _, exists := globalFactories[name]; exists {
		return fmt.Errorf("recipe %s already registered", name)
	}
	globalFactories[name] = factory
	return nil
}

// MustRegister is Register that panics; use it from init functions.
func MustRegister(name string, factory Factory) {
	if err := Register(name, factory); err != nil {
		panic(err)
	}
}

// Get creates a new instance of the recipe registered under name.
func Get(name string) (Recipe, error) {
	globalMu.RLock()
	factory, ok := globalFactories[name]
	globalMu.RUnlock()

	if !ok {
		return nil, errors.NewWithContext(errors.ErrCodeNotFound, fmt.Sprintf("unknown recipe %q", name),
			map[string]any{"available": Names()})
	}
	return factory(), nil
}

// Names returns the registered recipe names in sorted order.
func Names() []string {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return slices.Sorted(maps.Keys(globalFactories))
}
