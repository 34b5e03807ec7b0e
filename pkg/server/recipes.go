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

package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/recipekit/recipekit/pkg/defaults"
	"github.com/recipekit/recipekit/pkg/errors"
	"github.com/recipekit/recipekit/pkg/recipe"
	"github.com/recipekit/recipekit/pkg/recipe/settings"
	"github.com/recipekit/recipekit/pkg/runner"
	"github.com/recipekit/recipekit/pkg/serializer"
)

// handleRecipes handles GET /v1/recipes
func (s *Server) handleRecipes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r, http.MethodGet)
		return
	}

	out := make([]recipe.Metadata, 0)
	for _, n := range recipe.Names() {
		rcp, err := recipe.Get(n)
		if err != nil {
			writeErr(w, r, err)
			return
		}
		out = append(out, rcp.Metadata())
	}
	serializer.RespondJSON(w, http.StatusOK, out)
}

// handleRecipe handles GET /v1/recipes/{name}
func (s *Server) handleRecipe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r, http.MethodGet)
		return
	}

	rcp, err := recipe.Get(r.PathValue("name"))
	if err != nil {
		writeErr(w, r, err)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, RecipeDetail{
		Metadata: rcp.Metadata(),
		Options:  rcp.Options(),
	})
}

// handleInspect handles POST /v1/inspect
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.methodNotAllowed(w, r, http.MethodPost)
		return
	}

	req, err := s.decodeInspectRequest(w, r)
	if err != nil {
		writeErr(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaults.InspectHandlerTimeout)
	defer cancel()

	res, err := s.inspect(ctx, req)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	serializer.RespondJSON(w, http.StatusOK, res)
}

func (s *Server) decodeInspectRequest(w http.ResponseWriter, r *http.Request) (*InspectRequest, error) {
	body := http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	var req InspectRequest
	if err := dec.Decode(&req); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "invalid inspect request body", err)
	}
	if req.Recipe == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "recipe is required")
	}
	if req.Settings[settings.KeyOS] == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "settings.os is required")
	}
	return &req, nil
}

func (s *Server) inspect(ctx context.Context, req *InspectRequest) (*runner.Result, error) {
	rcp, err := recipe.Get(req.Recipe)
	if err != nil {
		return nil, err
	}
	st, err := settings.New(req.Settings)
	if err != nil {
		return nil, err
	}
	return runner.Inspect(ctx, rcp, runner.Config{
		Settings:    st,
		Overrides:   req.Options,
		Resolver:    s.config.Resolver,
		ToolVersion: s.config.Version,
	})
}
