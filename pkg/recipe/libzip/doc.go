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

// Package libzip is the recipe for libzip, a C library for reading,
// creating, and modifying zip archives.
//
// Options (all boolean):
//
//	shared                 false
//	fPIC                   true   non-Windows targets only
//	with_bzip2             true
//	with_openssl           false
//	with_mbedtls           true
//	enable_windows_crypto  true   Windows targets only
//
// Dependencies are zlib/1.2.11 and xz_utils/5.2.5@ggreene/test, plus
// bzip2/1.0.8, openssl/1.0.2t and mbedtls/2.23.0-apache@ggreene/test when
// the matching option is on.
//
// Before configuring, the upstream CMakeLists.txt is edited so the regress,
// examples and man subdirectories are not built, and so the crypto backends
// link against the libraries published for resolved dependencies. GnuTLS is
// always disabled.
//
// The recipe registers itself as "libzip"; import the package for its side
// effect to make it available through recipe.Get.
package libzip
