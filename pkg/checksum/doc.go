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

// Package checksum provides SHA256 helpers for source verification and
// package manifests.
//
// pkg/fetch checks downloaded archives against the sha256 recorded in the
// recipe data:
//
//	if err := checksum.VerifyFile(archive, src.SHA256); err != nil {
//	    return err // wraps ErrMismatch
//	}
//
// The package stage lists every file of the package folder:
//
//	err := checksum.GenerateDirChecksums(ctx, layout.PackageDir)
//
// The resulting checksums.txt uses the sha256sum format, so it can be
// checked with
//
//	sha256sum -c checksums.txt
package checksum
