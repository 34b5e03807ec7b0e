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

package libzip

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/recipekit/recipekit/pkg/checksum"
	"github.com/recipekit/recipekit/pkg/cmake"
	"github.com/recipekit/recipekit/pkg/errors"
	"github.com/recipekit/recipekit/pkg/files"
	"github.com/recipekit/recipekit/pkg/patch"
	"github.com/recipekit/recipekit/pkg/recipe"
	"github.com/recipekit/recipekit/pkg/textpatch"
)

const manifestName = "CMakeLists.txt"

// excludedTargets are upstream subdirectories that are not packaged.
var excludedTargets = []string{"regress", "examples", "man"}

func (r *Recipe) applyPatches(rc *recipe.Context) error {
	if r.data == nil {
		return r.dataErr
	}
	entries := r.data.PatchesFor(Version)
	if len(entries) == 0 {
		return nil
	}

	journal, err := textpatch.LoadJournal(rc.Layout.SourceDir())
	if err != nil {
		return err
	}
	for _, e := range entries {
		key := "patch:" + e.PatchFile
		if journal.Done(key) {
			slog.Debug("patch already applied", "patch", e.PatchFile)
			continue
		}
		base := filepath.Join(rc.Layout.WorkDir, filepath.FromSlash(e.BasePath))
		changed, err := patch.ApplyFS(r.files, e.PatchFile, base)
		if err != nil {
			return fmt.Errorf("applying %s: %w", e.PatchFile, err)
		}
		if err := journal.Mark(key, e.BasePath); err != nil {
			return err
		}
		slog.Info("patch applied", "patch", e.PatchFile, "files", len(changed))
	}
	return nil
}

// libraryRedirects point the upstream crypto link lists at the library
// lists published for resolved dependencies.
var libraryRedirects = []struct {
	option     string
	dependency string
	upstream   string
}{
	{OptWithOpenSSL, "openssl", "OPENSSL_LIBRARIES"},
	{OptWithMbedTLS, "mbedtls", "MBEDTLS_LIBRARIES"},
}

// excludeTargets edits the upstream manifest in place. Each edit is
// journaled as soon as it succeeds, so running it again over the same tree,
// even after a failed run, repeats only what is missing.
func (r *Recipe) excludeTargets(rc *recipe.Context) error {
	manifest := filepath.Join(rc.Layout.SourceDir(), manifestName)
	journal, err := textpatch.LoadJournal(rc.Layout.SourceDir())
	if err != nil {
		return err
	}

	for _, target := range excludedTargets {
		matched, err := journal.ReplaceFirstOf(manifest, textpatch.CommandVariants("add_subdirectory", target), "")
		if err != nil {
			return errors.WrapWithContext(errors.ErrCodeNotFound, "failed to exclude target", err,
				map[string]any{"target": target, "manifest": manifest})
		}
		if matched != "" {
			slog.Debug("excluded target", "target", target, "matched", matched)
		}
	}

	for _, rd := range libraryRedirects {
		if !rc.Options.Enabled(rd.option) {
			continue
		}
		// without a package folder there is no library list to point at;
		// upstream's own find_package result is kept
		if !rc.Resolved(rd.dependency) {
			slog.Debug("dependency not resolved, keeping upstream libraries",
				"dependency", rd.dependency, "variable", rd.upstream)
			continue
		}
		if err := journal.Replace(manifest, rd.upstream, cmake.LibsVariable(rd.dependency)); err != nil {
			return errors.WrapWithContext(errors.ErrCodeNotFound, "failed to redirect libraries", err,
				map[string]any{"dependency": rd.dependency, "variable": rd.upstream})
		}
	}
	return nil
}

func packageLicense(ctx context.Context, rc *recipe.Context) error {
	copied, err := files.Copy("LICENSE", rc.Layout.LicensesDir(), rc.Layout.SourceDir())
	if err != nil {
		return err
	}
	if len(copied) != 1 {
		return errors.NewWithContext(errors.ErrCodeNotFound, "license file not found in sources",
			map[string]any{"dir": rc.Layout.SourceDir()})
	}
	return checksum.GenerateDirChecksums(ctx, rc.Layout.PackageDir)
}

func collectLibs(packageDir string, libDirs []string) ([]string, error) {
	libs, err := files.CollectLibs(packageDir, libDirs...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to collect libraries", err)
	}
	return libs, nil
}
