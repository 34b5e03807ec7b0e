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

// Package serializer reads and writes the structured documents recipekit
// works with: profiles on the way in, run results on the way out.
//
// Output formats:
//   - json: indented JSON
//   - yaml: two-space YAML
//   - table: flattened FIELD/VALUE listing for terminals
//
// Writing a result:
//
//	w, err := serializer.NewFileWriterOrStdout(serializer.FormatYAML, path)
//	if err != nil {
//		return err
//	}
//	defer w.Close()
//	return w.Serialize(ctx, result)
//
// Reading a profile from a local file or an http(s) URL, with the format
// taken from the extension:
//
//	p, err := serializer.FromFile[cli.Profile](ctx, "gcc-release.yaml")
package serializer
