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

// Package command runs external build tools on behalf of recipes.
//
// Recipes never call os/exec directly; they hand a Command to a Runner so the
// runtime can stream tool output into the structured log, attach the command
// line to failures, and so tests can substitute a Recorder.
package command

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/kballard/go-shellquote"

	apperrors "github.com/recipekit/recipekit/pkg/errors"
)

// tailLines is the number of trailing output lines kept for error reports.
const tailLines = 20

// Command describes one external process invocation.
type Command struct {
	// Name is the executable, resolved through PATH when not absolute.
	Name string
	// Args are passed verbatim.
	Args []string
	// Dir is the working directory; empty means the current directory.
	Dir string
	// Env entries are appended to the inherited environment.
	Env []string
}

// String renders the command line with shell quoting.
func (c Command) String() string {
	return shellquote.Join(append([]string{c.Name}, c.Args...)...)
}

// Runner executes commands synchronously.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// OSRunner runs commands as child processes.
// Each output line is logged at debug level; the last lines are attached to
// the error when the process fails.
type OSRunner struct {
	// Stdout and Stderr optionally mirror raw tool output (e.g. os.Stdout for --verbose).
	Stdout io.Writer
	Stderr io.Writer
}

// NewOSRunner returns a runner that only logs tool output.
func NewOSRunner() *OSRunner {
	return &OSRunner{}
}

// Run implements Runner.
func (r *OSRunner) Run(ctx context.Context, c Command) error {
	if c.Name == "" {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "command name is empty")
	}

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}

	tail := &lineLogger{tool: c.Name}
	cmd.Stdout = teeWriter(tail, r.Stdout)
	cmd.Stderr = teeWriter(tail, r.Stderr)

	slog.Info("running", "command", c.String(), "dir", c.Dir)
	err := cmd.Run()
	tail.flush()
	if err == nil {
		return nil
	}

	code := apperrors.ErrCodeToolFailure
	if ctx.Err() != nil {
		code = apperrors.ErrCodeTimeout
	}
	return apperrors.WrapWithContext(code, fmt.Sprintf("error running %s", c.String()), err, map[string]any{
		"dir":    c.Dir,
		"output": tail.String(),
	})
}

func teeWriter(primary io.Writer, mirror io.Writer) io.Writer {
	if mirror == nil {
		return primary
	}
	return io.MultiWriter(primary, mirror)
}

// lineLogger splits tool output into lines, logs them, and keeps a tail.
type lineLogger struct {
	tool string

	mu      sync.Mutex
	partial bytes.Buffer
	lines   []string
}

func (l *lineLogger) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.partial.Write(p)
	for {
		line, err := l.partial.ReadString('\n')
		if err != nil {
			// incomplete line, keep it for the next write
			l.partial.Reset()
			l.partial.WriteString(line)
			break
		}
		l.emit(strings.TrimRight(line, "\r\n"))
	}
	return len(p), nil
}

func (l *lineLogger) flush() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.partial.Len() > 0 {
		l.emit(l.partial.String())
		l.partial.Reset()
	}
}

func (l *lineLogger) emit(line string) {
	slog.Debug(line, "tool", l.tool)
	l.lines = append(l.lines, line)
	if len(l.lines) > tailLines {
		l.lines = l.lines[len(l.lines)-tailLines:]
	}
}

func (l *lineLogger) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return strings.Join(l.lines, "\n")
}
