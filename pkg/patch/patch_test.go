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

package patch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipekit/recipekit/pkg/errors"
)

const original = `line one
line two
line three
`

const plainDiff = `--- a/lib/zip.c
+++ b/lib/zip.c
@@ -1,3 +1,3 @@
 line one
-line two
+line 2
 line three
`

const gitDiff = `diff --git a/lib/zip.c b/lib/zip.c
index 1111111..2222222 100644
--- a/lib/zip.c
+++ b/lib/zip.c
@@ -1,3 +1,4 @@
 line one
 line two
 line three
+line four
diff --git a/lib/extra.h b/lib/extra.h
new file mode 100644
index 0000000..3333333
--- /dev/null
+++ b/lib/extra.h
@@ -0,0 +1 @@
+#define EXTRA 1
`

const escapeDiff = `diff --git a/../outside.txt b/../outside.txt
new file mode 100644
index 0000000..3333333
--- /dev/null
+++ b/../outside.txt
@@ -0,0 +1 @@
+boom
`

func setupTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "lib"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib", "zip.c"), []byte(original), 0644))
	return dir
}

func TestApplyPlainDiff(t *testing.T) {
	dir := setupTree(t)

	changed, err := Apply(strings.NewReader(plainDiff), dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"lib/zip.c"}, changed)

	data, err := os.ReadFile(filepath.Join(dir, "lib", "zip.c"))
	require.NoError(t, err)
	assert.Equal(t, "line one\nline 2\nline three\n", string(data))
}

func TestApplyGitDiffWithNewFile(t *testing.T) {
	dir := setupTree(t)

	changed, err := Apply(strings.NewReader(gitDiff), dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"lib/zip.c", "lib/extra.h"}, changed)

	data, err := os.ReadFile(filepath.Join(dir, "lib", "zip.c"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "line four\n"))

	data, err = os.ReadFile(filepath.Join(dir, "lib", "extra.h"))
	require.NoError(t, err)
	assert.Equal(t, "#define EXTRA 1\n", string(data))
}

func TestApplyRejectsEscape(t *testing.T) {
	dir := setupTree(t)

	_, err := Apply(strings.NewReader(escapeDiff), dir)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))

	_, statErr := os.Stat(filepath.Join(filepath.Dir(dir), "outside.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestApplyConflict(t *testing.T) {
	dir := setupTree(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib", "zip.c"), []byte("something else\n"), 0644))

	_, err := Apply(strings.NewReader(plainDiff), dir)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
}

func TestApplyMissingTarget(t *testing.T) {
	_, err := Apply(strings.NewReader(plainDiff), t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
}

func TestApplyEmpty(t *testing.T) {
	_, err := Apply(strings.NewReader(""), t.TempDir())
	assert.Error(t, err)
}

func TestApplyFS(t *testing.T) {
	dir := setupTree(t)
	fsys := fstest.MapFS{
		"patches/0001-two.patch": &fstest.MapFile{Data: []byte(plainDiff)},
	}

	changed, err := ApplyFS(fsys, "patches/0001-two.patch", dir)
	require.NoError(t, err)
	assert.Len(t, changed, 1)

	_, err = ApplyFS(fsys, "patches/missing.patch", dir)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
}

func TestApplyFile(t *testing.T) {
	dir := setupTree(t)
	patchPath := filepath.Join(t.TempDir(), "fix.patch")
	require.NoError(t, os.WriteFile(patchPath, []byte(plainDiff), 0644))

	_, err := ApplyFile(patchPath, dir)
	require.NoError(t, err)
}
