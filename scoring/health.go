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

// Package scoring combines normalized metric inputs into audited composite
// scores. Every score carries its raw components next to the final number;
// a bare scalar is never returned. Display concerns (tier colors and the
// like) live entirely in the presentation layer.
package scoring

import (
	"math"

	"github.com/rs/zerolog/log"
)

// Formula names accepted by Config. The choice of formula and its weights
// is explicit caller configuration, never a hidden constant.
const (
	FormulaRuleOf40 = "rule_of_40"
	FormulaWeighted = "weighted"
)

// Component is one audited input to a composite score
type Component struct {
	Name   string  `json:"name"`
	Raw    float64 `json:"raw"`
	Weight float64 `json:"weight"`
}

// Score is a named 0-100 composite with full provenance
type Score struct {
	Name       string      `json:"name"`
	Value      float64     `json:"value"`
	Tier       string      `json:"tier"`
	Components []Component `json:"components"`
}

// Config selects the health-score formula. For the weighted blend both
// weights must be set; for rule-of-40 they are ignored.
type Config struct {
	Formula      string
	GrowthWeight float64
	MarginWeight float64

	// HealthyFloor is the score at or above which a company grades
	// healthy; scores at or above half the floor grade watch
	HealthyFloor float64
}

// DefaultConfig returns the conventional rule-of-40 setup
func DefaultConfig() Config {
	return Config{
		Formula:      FormulaRuleOf40,
		HealthyFloor: 40,
	}
}

// Validate rejects unknown formulas and degenerate weights at setup time
func (cfg *Config) Validate() error {
	switch cfg.Formula {
	case FormulaRuleOf40:
	case FormulaWeighted:
		if cfg.GrowthWeight < 0 || cfg.MarginWeight < 0 || cfg.GrowthWeight+cfg.MarginWeight <= 0 {
			return ErrBadWeights
		}
	default:
		return ErrUnknownFormula
	}
	if cfg.HealthyFloor < 0 || cfg.HealthyFloor > 100 {
		return ErrBadWeights
	}
	return nil
}

// HealthScore computes the SaaS health composite from a growth rate and a
// profit margin, both expressed in percentage points (25 means 25%). The
// rule-of-40 formula is the plain sum; the weighted formula is a blend.
// Either way the result is clamped to [0, 100].
func HealthScore(cfg Config, growthPct, marginPct float64) (Score, error) {
	if err := cfg.Validate(); err != nil {
		return Score{}, err
	}
	if !finite(growthPct) || !finite(marginPct) {
		return Score{}, ErrNonFiniteInput
	}

	var value float64
	components := []Component{}

	switch cfg.Formula {
	case FormulaRuleOf40:
		value = growthPct + marginPct
		components = append(components,
			Component{Name: "growth_rate", Raw: growthPct, Weight: 1},
			Component{Name: "profit_margin", Raw: marginPct, Weight: 1},
		)
	case FormulaWeighted:
		total := cfg.GrowthWeight + cfg.MarginWeight
		value = (cfg.GrowthWeight*growthPct + cfg.MarginWeight*marginPct) / total
		components = append(components,
			Component{Name: "growth_rate", Raw: growthPct, Weight: cfg.GrowthWeight / total},
			Component{Name: "profit_margin", Raw: marginPct, Weight: cfg.MarginWeight / total},
		)
	}

	score := Score{
		Name:       cfg.Formula,
		Value:      clamp(value, 0, 100),
		Components: components,
	}
	score.Tier = cfg.grade(score.Value)

	log.Debug().Str("Formula", cfg.Formula).Float64("Value", score.Value).Msg("computed health score")
	return score, nil
}

// grade maps a score value to a tier label; color mapping belongs to the
// presentation layer
func (cfg *Config) grade(value float64) string {
	switch {
	case value >= cfg.HealthyFloor:
		return "healthy"
	case value >= cfg.HealthyFloor/2:
		return "watch"
	default:
		return "at_risk"
	}
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
