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

package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/recipekit/recipekit/pkg/errors"
	"github.com/recipekit/recipekit/pkg/fetch"
)

// FormatFromPath picks the format from the file extension. Unknown
// extensions default to YAML, the format profiles are usually written in.
func FormatFromPath(filePath string) Format {
	if u, err := url.Parse(filePath); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		filePath = u.Path
	}
	switch strings.ToLower(path.Ext(filePath)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		slog.Debug("unknown file extension, defaulting to YAML", "path", filePath)
		return FormatYAML
	}
}

// Reader decodes a single document.
type Reader struct {
	format Format
	input  io.Reader
	closer io.Closer
}

// NewReader creates a Reader on input. Table output cannot be read back.
func NewReader(format Format, input io.Reader) (*Reader, error) {
	if format.IsUnknown() || format == FormatTable {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("format %q cannot be deserialized", format),
			map[string]any{"format": string(format)})
	}
	r := &Reader{format: format, input: input}
	if c, ok := input.(io.Closer); ok {
		r.closer = c
	}
	return r, nil
}

// NewFileReader opens a local path or downloads an http(s) URL.
func NewFileReader(ctx context.Context, format Format, filePath string) (*Reader, error) {
	if isRemote(filePath) {
		body, err := fetch.NewClient().Read(ctx, filePath)
		if err != nil {
			return nil, err
		}
		return NewReader(format, bytes.NewReader(body))
	}

	file, err := os.Open(filePath)
	if err != nil {
		code := errors.ErrCodeInternal
		if os.IsNotExist(err) {
			code = errors.ErrCodeNotFound
		}
		return nil, errors.WrapWithContext(code, "cannot open document", err, map[string]any{"path": filePath})
	}
	r, err := NewReader(format, file)
	if err != nil {
		file.Close()
		return nil, err
	}
	return r, nil
}

// Deserialize decodes the input into v. Unknown fields are errors and an
// empty YAML document leaves v untouched.
func (r *Reader) Deserialize(v any) error {
	if r == nil || r.input == nil {
		return errors.New(errors.ErrCodeInternal, "reader has no input")
	}
	var err error
	switch r.format {
	case FormatJSON:
		dec := json.NewDecoder(r.input)
		dec.DisallowUnknownFields()
		err = dec.Decode(v)
	case FormatYAML:
		dec := yaml.NewDecoder(r.input)
		dec.KnownFields(true)
		if err = dec.Decode(v); err == io.EOF {
			err = nil
		}
	default:
		return errors.New(errors.ErrCodeInvalidRequest, fmt.Sprintf("cannot read %s documents", r.format))
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", r.format, err)
	}
	return nil
}

// Close releases the file handle. Later calls are no-ops.
func (r *Reader) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	c := r.closer
	r.closer = nil
	return c.Close()
}

// FromFile loads a document of type T from a path or URL. The format comes
// from the extension. Unknown fields are rejected so typos in profiles
// surface as errors.
func FromFile[T any](ctx context.Context, filePath string) (*T, error) {
	format := FormatFromPath(filePath)
	r, err := NewFileReader(ctx, format, filePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := r.Close(); cerr != nil {
			slog.Warn("closing document", "path", filePath, "error", cerr)
		}
	}()

	var v T
	if err := r.Deserialize(&v); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "failed to decode document", err,
			map[string]any{"path": filePath, "format": string(format)})
	}
	slog.Debug("loaded document", "path", filePath, "format", format)
	return &v, nil
}

func isRemote(p string) bool {
	return strings.HasPrefix(p, "https://") || strings.HasPrefix(p, "http://")
}
