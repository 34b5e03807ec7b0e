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

// Package cli implements the recipekit command line.
//
// Commands:
//
//	recipekit create   run every hook of a recipe and package the result
//	recipekit inspect  show options, requirements and build definitions
//	recipekit upload   publish a package folder as an OCI artifact
//	recipekit list     list the registered recipes
//	recipekit serve    serve the planning API (see pkg/server)
//
// Settings and options come from an optional profile file and from
// repeatable -s key=value and -o name=value flags, flags winning:
//
//	settings:
//	  os: Windows
//	  compiler: Visual Studio
//	options:
//	  with_openssl: "True"
//	  with_mbedtls: "False"
//
// Examples:
//
//	recipekit inspect -s os=Windows -o enable_windows_crypto=False --format table
//	recipekit create --profile msvc.yaml --work-dir build --jobs 8
//	recipekit upload --package-dir build/package --registry ghcr.io --repository acme/libzip
//
// Global flags --log-level (or LOG_LEVEL) and --debug control the JSON logs
// written to stderr.
package cli
