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

package command

import (
	"context"
	"sync"
)

// Recorder is a Runner that records commands instead of executing them.
// Handler, when set, is called for every command and its error is returned;
// tests use it to fake tool side effects such as cmake install output.
type Recorder struct {
	Handler func(ctx context.Context, cmd Command) error

	mu       sync.Mutex
	commands []Command
}

// Run implements Runner.
func (r *Recorder) Run(ctx context.Context, cmd Command) error {
	r.mu.Lock()
	r.commands = append(r.commands, cmd)
	r.mu.Unlock()

	if r.Handler != nil {
		return r.Handler(ctx, cmd)
	}
	return nil
}

// Commands returns a copy of the recorded commands in call order.
func (r *Recorder) Commands() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Command(nil), r.commands...)
}
