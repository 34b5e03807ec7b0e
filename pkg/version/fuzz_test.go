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

package version

import "testing"

func FuzzParse(f *testing.F) {
	for _, seed := range []string{"1.7.3", "1.0.2t", "2.23.0-apache", "v1", "", "1..2", "1.2.3.4"} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, s string) {
		v, err := Parse(s)
		if err != nil {
			return
		}
		if !v.IsValid() {
			t.Fatalf("Parse(%q) returned invalid version %+v", s, v)
		}
		again, err := Parse(v.String())
		if err != nil {
			t.Fatalf("re-parse of %q failed: %v", v.String(), err)
		}
		if again.Compare(v) != 0 {
			t.Fatalf("round trip mismatch: %+v vs %+v", v, again)
		}
	})
}
