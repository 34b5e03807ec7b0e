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

// Package textpatch performs literal search-and-replace edits on files in an
// extracted source tree.
//
// These edits are textual, not parsed: a reworded upstream manifest makes a
// strict replacement fail with ErrPatternNotFound rather than silently
// producing a different build. The Journal records which edits were applied
// so a rerun over an already patched tree is a no-op instead of an error.
// The journal is saved after each edit, so a rerun after a partial failure
// sees exactly the edits that reached the files.
//
// Usage:
//
//	j, err := textpatch.LoadJournal(sourceDir)
//	if err != nil {
//	    return err
//	}
//	variants := textpatch.CommandVariants("add_subdirectory", "regress")
//	if _, err := j.ReplaceFirstOf(cmakeLists, variants, ""); err != nil {
//	    return err
//	}
package textpatch
