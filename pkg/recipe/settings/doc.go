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

// Package settings holds the target description a recipe builds for:
// operating system, architecture, compiler and build type.
//
// Keys are flat strings; compiler sub-settings use a dot, e.g.
// "compiler.version". Recipes may delete keys they do not consume, such as
// compiler.libcxx for pure C libraries.
package settings
