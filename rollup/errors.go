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

package rollup

import "errors"

var (
	ErrOrphanCategory  = errors.New("level-2 row has no matching level-1 parent")
	ErrBadLevel        = errors.New("category level must be 1 or 2")
	ErrNegativeRevenue = errors.New("category revenue cannot be negative")
	ErrNonFiniteValue  = errors.New("category percentages and margins must be finite")
	ErrNoTotalRevenue  = errors.New("total company revenue must be positive")
	ErrMixedPeriods    = errors.New("all rows in a rollup must share one period and dimension")
	ErrBadTolerance    = errors.New("tolerances must be non-negative")
)
