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

package requirement

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/recipekit/recipekit/pkg/errors"
)

// Resolution is a resolved reference.
type Resolution struct {
	Reference Reference `json:"reference" yaml:"reference"`
	// Path of the dependency's package folder; empty when the resolver
	// does not materialize packages.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// Resolver locates declared dependencies.
type Resolver interface {
	Resolve(ctx context.Context, ref Reference) (Resolution, error)
}

// ResolveAll resolves refs in order and stops at the first failure.
func ResolveAll(ctx context.Context, r Resolver, refs []Reference) ([]Resolution, error) {
	out := make([]Resolution, 0, len(refs))
	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, "dependency resolution cancelled", err)
		}
		res, err := r.Resolve(ctx, ref)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}

// NoopResolver accepts every reference without looking anything up.
type NoopResolver struct{}

// Resolve implements Resolver.
func (NoopResolver) Resolve(_ context.Context, ref Reference) (Resolution, error) {
	return Resolution{Reference: ref}, nil
}

// LocalResolver resolves references against a local package cache.
type LocalResolver struct {
	Root string
}

// NewLocalResolver creates a resolver rooted at dir.
func NewLocalResolver(dir string) *LocalResolver {
	return &LocalResolver{Root: dir}
}

// PackagePath is where ref is expected inside the cache.
func (l *LocalResolver) PackagePath(ref Reference) string {
	user, channel := ref.User, ref.Channel
	if user == "" {
		user, channel = "_", "_"
	}
	return filepath.Join(l.Root, ref.Name, ref.Version, user, channel, "package")
}

// Resolve implements Resolver.
func (l *LocalResolver) Resolve(_ context.Context, ref Reference) (Resolution, error) {
	p := l.PackagePath(ref)
	msg := fmt.Sprintf("dependency %s not found in local cache", ref)
	ctx := map[string]any{"reference": ref.String(), "path": p}
	info, err := os.Stat(p)
	if err != nil {
		return Resolution{}, errors.WrapWithContext(errors.ErrCodeNotFound, msg, err, ctx)
	}
	if !info.IsDir() {
		ctx["reason"] = "package path is not a directory"
		return Resolution{}, errors.NewWithContext(errors.ErrCodeNotFound, msg, ctx)
	}
	slog.Debug("dependency resolved", "reference", ref.String(), "path", p)
	return Resolution{Reference: ref, Path: p}, nil
}
