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

package fetch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fetchBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipekit_fetch_bytes_total",
			Help: "Total number of archive bytes downloaded from remote sources",
		},
	)

	fetchCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipekit_fetch_cache_hits_total",
			Help: "Total number of source archives served from the local cache",
		},
	)
)
