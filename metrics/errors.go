// Copyright 2024-2025
// SPDX-License-Identifier: Apache-2.0
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

package metrics

import "errors"

var (
	ErrUnsortedSeries = errors.New("series periods must be strictly increasing")
	ErrNonFiniteValue = errors.New("series values must be finite")
	ErrMissingMetric  = errors.New("series requires a metric name")
	ErrBadThreshold   = errors.New("turning-point threshold must be non-negative")
	ErrBadTierBands   = errors.New("tier bands must satisfy floor <= medium <= high")
)
