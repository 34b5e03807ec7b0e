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

// Package patch applies unified diffs (git style or plain) to a source tree.
//
// Diffs are parsed with go-gitdiff. Names in plain diffs that carry the
// conventional a/ and b/ prefixes are stripped the same way git does. Every
// target path is resolved inside the base directory; a diff that tries to
// write outside it is rejected before anything is touched.
//
// Usage:
//
//	changed, err := patch.ApplyFS(recipeFS, "patches/0001-fix.patch", sourceDir)
package patch
