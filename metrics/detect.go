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

	"github.com/finsight/fin-api/period"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Significance tiers a turning point by the magnitude of its change
type Significance string

const (
	SignificanceHigh   Significance = "high"
	SignificanceMedium Significance = "medium"
	SignificanceLow    Significance = "low"
)

// TurningPoint flags a period where a metric's QoQ change crossed the
// detection floor. Turning points are never mutated after creation; a new
// detection pass regenerates the whole set. EventIDs is filled by the event
// correlator on copies, never in place.
type TurningPoint struct {
	Period       period.Period `json:"period"`
	Metric       string        `json:"metric"`
	Value        float64       `json:"value"`
	Previous     float64       `json:"previous"`
	Change       float64       `json:"change"`
	Significance Significance  `json:"significance"`
	EventIDs     []uuid.UUID   `json:"eventIds,omitempty"`
}

// DetectorConfig holds the detection floor and tier bands. All values are
// fractions of change. They are deliberately injected per call rather than
// kept as package constants so each metric's sensitivity can be tuned and
// tested in isolation.
type DetectorConfig struct {
	// Floor is the minimum |change| that registers a turning point
	Floor float64

	// MetricFloors overrides Floor for specific metrics
	MetricFloors map[string]float64

	// MediumBand and HighBand partition turning points into tiers; a
	// |change| exactly on a boundary lands in the higher tier
	MediumBand float64
	HighBand   float64
}

// DefaultDetectorConfig returns the standard 2%/5%/10% bands
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		Floor:      0.02,
		MediumBand: 0.05,
		HighBand:   0.10,
	}
}

// Validate rejects configurations that could never classify consistently.
// Configuration errors are fatal at setup, not detection time.
func (cfg *DetectorConfig) Validate() error {
	if cfg.Floor < 0 {
		return ErrBadThreshold
	}
	for _, floor := range cfg.MetricFloors {
		if floor < 0 {
			return ErrBadThreshold
		}
	}
	if cfg.Floor > cfg.MediumBand || cfg.MediumBand > cfg.HighBand {
		return ErrBadTierBands
	}
	return nil
}

// floorFor resolves the detection floor for a metric
func (cfg *DetectorConfig) floorFor(metric string) float64 {
	if floor, ok := cfg.MetricFloors[metric]; ok {
		return floor
	}
	return cfg.Floor
}

// tier classifies |change| into a significance band; boundary values round
// to the higher tier
func (cfg *DetectorConfig) tier(change float64) Significance {
	mag := math.Abs(change)
	switch {
	case mag >= cfg.HighBand:
		return SignificanceHigh
	case mag >= cfg.MediumBand:
		return SignificanceMedium
	default:
		return SignificanceLow
	}
}

// DetectTurningPoints scans the series and emits a turning point for every
// period whose |QoQ change| reaches the configured floor. The scan is a
// stateless full recompute: the result is reproducible from the series and
// config alone. A series shorter than two points yields an empty set.
func DetectTurningPoints(s *Series, cfg DetectorConfig) ([]TurningPoint, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	points := []TurningPoint{}
	if s.Len() < 2 {
		return points, nil
	}

	floor := cfg.floorFor(s.Metric)
	growth := Growth(s)

	for idx, rate := range growth.QoQ {
		if math.IsNaN(rate) || math.Abs(rate) < floor {
			continue
		}

		points = append(points, TurningPoint{
			Period:       s.Points[idx].Period,
			Metric:       s.Metric,
			Value:        s.Points[idx].Value,
			Previous:     s.Points[idx-1].Value,
			Change:       rate,
			Significance: cfg.tier(rate),
		})
	}

	log.Debug().Object("Series", s).Int("NumTurningPoints", len(points)).Msg("detected turning points")
	return points, nil
}
