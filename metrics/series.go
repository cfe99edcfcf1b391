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
	"fmt"
	"math"

	"github.com/finsight/fin-api/period"

	"github.com/rs/zerolog"
)

// Point is one (period, value) observation in a metric series
type Point struct {
	Period period.Period `json:"period"`
	Value  float64       `json:"value"`
}

// Series is an ordered sequence of observations for one named metric of one
// company. The constructor enforces strictly increasing periods and finite
// values; the detector and growth functions assume both.
type Series struct {
	Symbol string  `json:"symbol"`
	Metric string  `json:"metric"`
	Points []Point `json:"points"`
}

// NewSeries validates and builds a Series. Bad input is surfaced as a typed
// error, never silently reordered or coerced.
func NewSeries(symbol, metric string, points []Point) (*Series, error) {
	if metric == "" {
		return nil, ErrMissingMetric
	}

	for idx, pt := range points {
		if math.IsNaN(pt.Value) || math.IsInf(pt.Value, 0) {
			return nil, fmt.Errorf("%w: %s at %s", ErrNonFiniteValue, metric, pt.Period)
		}
		if idx > 0 && !points[idx-1].Period.Before(pt.Period) {
			return nil, fmt.Errorf("%w: %s follows %s", ErrUnsortedSeries, pt.Period, points[idx-1].Period)
		}
	}

	return &Series{Symbol: symbol, Metric: metric, Points: points}, nil
}

// Len returns the number of observations
func (s *Series) Len() int {
	return len(s.Points)
}

// Values returns the raw value vector in period order
func (s *Series) Values() []float64 {
	vals := make([]float64, len(s.Points))
	for idx, pt := range s.Points {
		vals[idx] = pt.Value
	}
	return vals
}

// MarshalZerologObject implement the log marshaller interface for zerolog
func (s *Series) MarshalZerologObject(e *zerolog.Event) {
	e.Str("Symbol", s.Symbol).Str("Metric", s.Metric).Int("NumPoints", len(s.Points))
}
