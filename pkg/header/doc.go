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

// Package header provides the envelope written in front of every document
// recipekit emits: run results, inspection reports and package manifests.
//
// A header carries a Kind, an APIVersion and a small string metadata map:
//
//	kind: RecipeRun
//	apiVersion: recipekit.dev/v1
//	metadata:
//	  timestamp: "2026-01-12T10:30:00Z"
//	  version: v0.3.0
//	  recipe: libzip/1.7.3
//
// Readers should check Kind before decoding the rest of a document.
package header
