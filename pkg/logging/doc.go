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

// Package logging configures the process wide slog logger.
//
// Every record is JSON on stderr and carries the module and version that
// emitted it. The level comes from the --log-level flag or, when that is
// not given, from LOG_LEVEL (debug, info, warn or error; unknown values
// mean info). Debug records also carry their source location.
//
//	logging.SetDefaultStructuredLogger("recipekit", version)
//	slog.Info("stage complete", "recipe", "libzip/1.7.3", "stage", "build")
//
// A record looks like:
//
//	{"time":"2025-01-15T10:30:00Z","level":"INFO","msg":"stage complete",
//	 "module":"recipekit","version":"v0.3.0","recipe":"libzip/1.7.3","stage":"build"}
//
// NewLogLogger adapts the default handler for APIs that still want a
// *log.Logger, such as http.Server.ErrorLog.
//
// Output from cmake and the compiler is logged line by line at debug level
// by pkg/command.
package logging
