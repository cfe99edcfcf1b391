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

import (
	"math"
)

// yoyLag is the number of quarters between same-quarter observations
const yoyLag = 4

// GrowthSet carries period-over-period and year-over-year growth rates for
// a series. Both slices are parallel to the series points; entries are NaN
// where the rate is undefined (no prior period, zero base, or fewer than
// four prior quarters for YoY). Rates are fractions: 0.0714 is +7.14%.
type GrowthSet struct {
	QoQ []float64
	YoY []float64
}

// Growth computes QoQ and YoY rates for the whole series in one pass. The
// computation is a pure full recompute; calling it twice on the same series
// yields identical output.
func Growth(s *Series) *GrowthSet {
	n := s.Len()
	g := &GrowthSet{
		QoQ: make([]float64, n),
		YoY: make([]float64, n),
	}

	for idx := range s.Points {
		g.QoQ[idx] = changeRate(s, idx, 1)
		g.YoY[idx] = changeRate(s, idx, yoyLag)
	}

	return g
}

// changeRate computes the rate of change from the observation `lag` periods
// before idx. The base is taken in absolute value so that recovering from a
// negative base still reads as positive growth.
func changeRate(s *Series, idx, lag int) float64 {
	if idx < lag {
		return math.NaN()
	}

	prev := s.Points[idx-lag].Value
	if prev == 0 {
		return math.NaN()
	}

	return (s.Points[idx].Value - prev) / math.Abs(prev)
}
