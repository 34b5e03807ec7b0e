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

// Package oci publishes a finished package folder as an OCI artifact.
//
// The folder (headers, libraries, licenses/ and checksums.txt) becomes a
// single reproducible gzip layer under a manifest with ArtifactType. The
// artifact can be written to a local OCI image layout with Package, or
// pushed to a registry with Push:
//
//	ref, err := oci.ParseReference("oci://ghcr.io/acme/libzip:1.7.3")
//	res, err := oci.Push(ctx, oci.PushOptions{
//		SourceDir: "work/package",
//		Reference: ref,
//		Title:     "libzip/1.7.3",
//	})
//
// Registry credentials come from the Docker credential store.
package oci
