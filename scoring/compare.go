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

package scoring

import (
	"math"
	"sort"
)

// CompanyMetric is one company's value for the metric being compared.
// An undefined value (NaN) is allowed and ranks last.
type CompanyMetric struct {
	Symbol string  `json:"symbol"`
	Value  float64 `json:"value"`
}

// Ranking is a company's position in a competitor comparison
type Ranking struct {
	Rank   int     `json:"rank"`
	Symbol string  `json:"symbol"`
	Value  float64 `json:"value"`
}

// CompareCompanies ranks companies on one metric, highest value first.
// Ordering is deterministic: ties and undefined values break by symbol.
func CompareCompanies(entries []CompanyMetric) []Ranking {
	sorted := make([]CompanyMetric, len(entries))
	copy(sorted, entries)

	sort.Slice(sorted, func(i, j int) bool {
		iNaN := math.IsNaN(sorted[i].Value)
		jNaN := math.IsNaN(sorted[j].Value)
		switch {
		case iNaN != jNaN:
			return jNaN
		case !iNaN && sorted[i].Value != sorted[j].Value:
			return sorted[i].Value > sorted[j].Value
		default:
			return sorted[i].Symbol < sorted[j].Symbol
		}
	})

	rankings := make([]Ranking, len(sorted))
	for idx, entry := range sorted {
		rankings[idx] = Ranking{
			Rank:   idx + 1,
			Symbol: entry.Symbol,
			Value:  entry.Value,
		}
	}
	return rankings
}
