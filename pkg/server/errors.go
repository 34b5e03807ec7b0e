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
	stderrors "errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/recipekit/recipekit/pkg/errors"
	"github.com/recipekit/recipekit/pkg/serializer"
)

// HTTP-only error codes; everything else uses pkg/errors codes.
const (
	ErrCodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	ErrCodeMethodNotAllowed  = "METHOD_NOT_ALLOWED"
)

// WriteError writes an ErrorResponse carrying the request ID.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code, message string, retryable bool, details map[string]any) {

	requestID := requestIDFrom(r)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	serializer.RespondJSON(w, statusCode, ErrorResponse{
		Code:      code,
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	})
}

// writeErr maps a structured error onto an HTTP status.
func writeErr(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.CodeOf(err)
	status, retryable := statusFor(code)
	if code == "" {
		code = errors.ErrCodeInternal
	}

	var details map[string]any
	var se *errors.StructuredError
	if stderrors.As(err, &se) && len(se.Context) > 0 {
		details = se.Context
	}
	WriteError(w, r, status, string(code), err.Error(), retryable, details)
}

func statusFor(code errors.ErrorCode) (int, bool) {
	switch code {
	case errors.ErrCodeNotFound:
		return http.StatusNotFound, false
	case errors.ErrCodeInvalidRequest:
		return http.StatusBadRequest, false
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout, true
	case errors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable, true
	default:
		return http.StatusInternalServerError, true
	}
}
