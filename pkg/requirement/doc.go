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

// Package requirement parses and resolves package references of the form
// name/version[@user/channel].
//
// A recipe declares its dependencies into a Requirements collection, which
// rejects a second reference to the same package name. A Resolver then
// locates each reference; LocalResolver looks in a local package cache laid
// out as <cache>/<name>/<version>/<user>/<channel>/package, with "_" standing
// in for a missing user and channel.
package requirement
