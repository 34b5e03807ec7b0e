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

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Version
		wantErr error
	}{
		{name: "full", input: "1.7.3", want: Version{Major: 1, Minor: 7, Patch: 3, Precision: 3}},
		{name: "v prefix", input: "v1.2", want: Version{Major: 1, Minor: 2, Precision: 2}},
		{name: "major only", input: "5", want: Version{Major: 5, Precision: 1}},
		{name: "letter suffix", input: "1.0.2t", want: Version{Major: 1, Minor: 0, Patch: 2, Precision: 3, Extras: "t"}},
		{name: "dash suffix", input: "2.23.0-apache", want: Version{Major: 2, Minor: 23, Patch: 0, Precision: 3, Extras: "-apache"}},
		{name: "dotted extras", input: "1.2.11-rc.1", want: Version{Major: 1, Minor: 2, Patch: 11, Precision: 3, Extras: "-rc.1"}},
		{name: "empty", input: "", wantErr: ErrEmptyVersion},
		{name: "too many", input: "1.2.3.4", wantErr: ErrTooManyComponents},
		{name: "not numeric", input: "latest", wantErr: ErrNonNumeric},
		{name: "empty component", input: "1..2", wantErr: ErrNonNumeric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestString_RoundTrip(t *testing.T) {
	for _, in := range []string{"1.7.3", "1.0.2t", "2.23.0-apache", "5", "1.2"} {
		v := MustParse(in)
		assert.Equal(t, in, v.String())
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.7.3", "1.7.3", 0},
		{"1.7.3", "1.8.0", -1},
		{"1.10.0", "1.9.9", 1},
		{"1.0.2", "1.0.2t", -1},
		{"1.0.2s", "1.0.2t", -1},
		{"1.2", "1.2.0", 0},
		{"2", "1.99.99", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_vs_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, MustParse(tt.a).Compare(MustParse(tt.b)))
		})
	}
}

func TestSortAndLatest(t *testing.T) {
	versions := []string{"1.7.3", "1.10.0", "main", "1.2.0", "1.7.3-rc1"}
	Sort(versions)
	assert.Equal(t, []string{"1.2.0", "1.7.3", "1.7.3-rc1", "1.10.0", "main"}, versions)

	assert.Equal(t, "1.10.0", Latest([]string{"1.2.0", "1.10.0", "1.9.1"}))
	assert.Equal(t, "", Latest(nil))
}

func TestIsValid(t *testing.T) {
	assert.True(t, NewVersion(1, 2, 3).IsValid())
	assert.False(t, Version{Major: 1}.IsValid())
	assert.False(t, Version{Major: -1, Precision: 1}.IsValid())
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse("not-a-version") })
}
