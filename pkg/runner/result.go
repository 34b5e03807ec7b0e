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

package runner

import (
	"time"

	"github.com/recipekit/recipekit/pkg/header"
	"github.com/recipekit/recipekit/pkg/recipe"
	"github.com/recipekit/recipekit/pkg/requirement"
)

// StageTiming records how long one stage took.
type StageTiming struct {
	Stage    Stage         `json:"stage" yaml:"stage"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Result summarizes a run or an inspection.
type Result struct {
	header.Header `json:",inline" yaml:",inline"`

	RunID          string                   `json:"runID" yaml:"runID"`
	Recipe         recipe.Metadata          `json:"recipe" yaml:"recipe"`
	Settings       map[string]string        `json:"settings" yaml:"settings"`
	Options        map[string]string        `json:"options" yaml:"options"`
	RemovedOptions []string                 `json:"removedOptions,omitempty" yaml:"removedOptions,omitempty"`
	Requirements   []string                 `json:"requirements" yaml:"requirements"`
	Dependencies   []requirement.Resolution `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	Definitions    map[string]string        `json:"definitions,omitempty" yaml:"definitions,omitempty"`
	PackageDir     string                   `json:"packageDir,omitempty" yaml:"packageDir,omitempty"`
	PackageInfo    *recipe.CppInfo          `json:"packageInfo,omitempty" yaml:"packageInfo,omitempty"`
	Stages         []StageTiming            `json:"stages" yaml:"stages"`
	TotalDuration  time.Duration            `json:"totalDuration" yaml:"totalDuration"`
}

// StageDuration returns the recorded duration of stage and whether it ran.
func (r *Result) StageDuration(stage Stage) (time.Duration, bool) {
	for _, s := range r.Stages {
		if s.Stage == stage {
			return s.Duration, true
		}
	}
	return 0, false
}
