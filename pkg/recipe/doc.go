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

// Package recipe defines the contract between a package recipe and the
// runtime that executes it.
//
// # Overview
//
// A recipe describes how to obtain, build and package one version of a
// third-party library. It is metadata plus a fixed set of hooks; the runtime
// (see pkg/runner) calls the hooks in this order and the recipe never drives
// its own execution:
//
//	ConfigOptions  adjust the declared option set for the target
//	Configure      prune settings the recipe does not consume
//	Requirements   declare dependencies
//	Source         fetch and extract upstream sources
//	Build          patch, configure and compile
//	Package        install into the package folder
//	PackageInfo    report link libraries and folders to consumers
//
// # Core Types
//
// Recipe: the hook interface every recipe implements.
//
// Metadata: static description (name, version, license, homepage, url,
// description, consumed settings).
//
// Context: everything a hook may use for one run. It carries the live
// settings and options, the folder layout, the source fetcher and the
// process runner used for external tools.
//
// CppInfo: the post-build description consumers link against.
//
// Data: version-keyed recipe data (sources and patches) loaded from an
// embedded conandata.yml.
//
// # Registry
//
// Recipes register a Factory from an init function:
//
//	func init() {
//	    recipe.MustRegister("libzip", New)
//	}
//
// and callers obtain an instance with recipe.Get(name).
package recipe
