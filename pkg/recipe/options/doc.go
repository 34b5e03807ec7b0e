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

// Package options models a recipe's declared build toggles and the values
// chosen for one run.
//
// Each option has a finite domain of allowed values and a default. A recipe
// may remove options that do not apply to the target (for example fPIC on
// Windows). After the runtime freezes the set, reads keep working but any
// removal or mutation fails with INVALID_REQUEST. Reading an option that was
// removed or never declared fails with NOT_FOUND.
//
// Usage:
//
//	set, err := options.NewSet(
//	    options.Bool("shared", false),
//	    options.Bool("fPIC", true),
//	)
//	if err := set.Remove("fPIC"); err != nil {
//	    return err
//	}
//	set.Freeze()
//	shared, err := set.Bool("shared")
package options
