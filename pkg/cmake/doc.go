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

// Package cmake drives the CMake executable for a recipe: configure into the
// build folder, build, and install into the package folder.
//
// Definitions are collected in a map and rendered as -DKEY=VALUE arguments
// in sorted key order, so the same options always yield the same command
// line. Boolean values render as ON/OFF. The helper adds its standard
// definitions from settings and options:
//
//	CMAKE_BUILD_TYPE                  from settings build_type
//	BUILD_SHARED_LIBS                 from option shared, when declared
//	CMAKE_POSITION_INDEPENDENT_CODE   from option fPIC, when still active
//	CMAKE_INSTALL_PREFIX              the package folder
//
// Processes run through a command.Runner so tests can record invocations
// instead of spawning cmake.
package cmake
