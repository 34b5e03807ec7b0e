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

// Package runner drives a recipe through its hooks.
//
// Run executes the full pipeline:
//
//	config_options -> configure -> (freeze) -> requirements -> resolve ->
//	source -> build -> package -> package_info
//
// User option overrides are applied before config_options so a recipe may
// still drop an option the user set; the override is then discarded. The
// option set is frozen once configure returns. Any hook error aborts the
// run and carries the failing stage in its structured context.
//
// Inspect stops after resolve and touches no files.
//
// Each stage duration is observed into recipekit_stage_duration_seconds and
// failures are counted in recipekit_stage_failures_total.
package runner
