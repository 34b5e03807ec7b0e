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

// Package fetch downloads upstream source archives, verifies them and
// extracts them into a work directory.
//
// A Source lists one or more mirror URLs and an optional SHA-256 digest.
// Mirrors are tried in order; the first one that downloads and verifies is
// extracted. URLs may be http(s), file:// or plain local paths. When a cache
// directory is configured, verified archives are kept under
// <cache>/<sha256>/<file> and reused on later runs.
//
// Supported archive formats, chosen by file name suffix:
//
//	.tar.gz .tgz     gzip (klauspost/compress)
//	.tar.bz2 .tbz2   bzip2 (dsnet/compress)
//	.tar.xz .txz     xz (ulikunitz/xz)
//	.tar.zst         zstd (klauspost/compress)
//	.tar             uncompressed
//	.zip             zip
//
// Entries that would land outside the destination directory are rejected.
//
// Usage:
//
//	f := fetch.New(fetch.WithCacheDir(cacheDir))
//	archive, err := f.Get(ctx, fetch.Source{
//	    URLs:   []string{"https://libzip.org/download/libzip-1.7.3.tar.gz"},
//	    SHA256: "0e2276c550c5a310d4ebf3a2c3dfc43fb3b4602a072ff625842ad4f3238cb9cc",
//	}, workDir)
package fetch
