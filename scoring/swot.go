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
	"fmt"
	"math"
)

// Impact rates a SWOT item's weight in its quadrant
type Impact string

const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
)

// impact weights: high counts 3, medium 2, low 1
var impactWeights = map[Impact]float64{
	ImpactHigh:   3,
	ImpactMedium: 2,
	ImpactLow:    1,
}

const maxImpactWeight = 3.0

// QuadrantItem is one tagged entry in a SWOT quadrant
type QuadrantItem struct {
	Title  string `json:"title"`
	Impact Impact `json:"impact"`
}

// QuadrantIndex scores one SWOT quadrant as round(100 * sum(weights) /
// (3 * n)). An empty quadrant scores exactly 0 -- SWOT defaults to zero on
// no data, unlike financial ratios which go undefined on missing
// denominators.
func QuadrantIndex(quadrant string, items []QuadrantItem) (Score, error) {
	score := Score{
		Name:       quadrant,
		Components: make([]Component, 0, len(items)),
	}

	if len(items) == 0 {
		return score, nil
	}

	sum := 0.0
	for _, item := range items {
		weight, ok := impactWeights[item.Impact]
		if !ok {
			return Score{}, fmt.Errorf("%w: %q on %q", ErrUnknownImpact, item.Impact, item.Title)
		}
		sum += weight
		score.Components = append(score.Components, Component{
			Name:   item.Title,
			Raw:    weight,
			Weight: 1 / float64(len(items)),
		})
	}

	score.Value = math.Round(100 * sum / (maxImpactWeight * float64(len(items))))
	return score, nil
}
