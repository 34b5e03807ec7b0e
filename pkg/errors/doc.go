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

// Package errors provides structured error types for recipe runs so that
// callers can tell a missing version entry from a failed CMake invocation
// without parsing messages.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeToolFailure,
//	    "cmake configure failed",
//	    runErr,
//	    map[string]any{
//	        "stage":  "build",
//	        "recipe": "libzip/1.7.3",
//	    },
//	)
//
// CodeOf recovers the classification from any error chain:
//
//	if errors.CodeOf(err) == errors.ErrCodeNotFound {
//	    // missing recipe data or unresolved dependency
//	}
package errors
