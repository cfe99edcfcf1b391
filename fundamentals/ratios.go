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

package fundamentals

import (
	"math"

	"github.com/goccy/go-json"
)

// RatioSet holds the ratios derived from a single FinancialFact. Every value
// is a fraction (0.285, not 28.5); formatting as a percentage happens at the
// presentation layer. Undefined ratios -- zero or absent denominator -- are
// NaN, never 0. Callers must check Defined before treating a value as a
// number.
//
// A RatioSet is never stored; it is recomputed from its fact on demand.
type RatioSet struct {
	GrossMargin     float64
	NetMargin       float64
	OperatingMargin float64
	FCFMargin       float64
	ROA             float64
	ROE             float64
	DebtToAssets    float64
	CashRatio       float64
	AssetTurnover   float64
}

// Defined reports whether a ratio value carries actual data. NaN marks a
// ratio whose denominator was missing; it must never be read as 0%.
func Defined(x float64) bool {
	return !math.IsNaN(x)
}

// ratio divides two minor-unit amounts, yielding NaN when the denominator
// is zero (zero means unreported)
func ratio(num, den int64) float64 {
	if den == 0 {
		return math.NaN()
	}
	return float64(num) / float64(den)
}

// Ratios derives the full ratio set for one fact. The only error condition
// is a malformed fact; missing denominators degrade individual ratios to
// NaN and never fail the whole computation.
func Ratios(fact *FinancialFact) (RatioSet, error) {
	if err := fact.Validate(); err != nil {
		return RatioSet{}, err
	}

	return RatioSet{
		GrossMargin:     ratio(fact.GrossProfit, fact.Revenue),
		NetMargin:       ratio(fact.NetIncome, fact.Revenue),
		OperatingMargin: ratio(fact.OperatingIncome, fact.Revenue),
		FCFMargin:       ratio(fact.FreeCashFlow, fact.Revenue),
		ROA:             ratio(fact.NetIncome, fact.TotalAssets),
		ROE:             ratio(fact.NetIncome, fact.TotalEquity),
		DebtToAssets:    ratio(fact.TotalDebt, fact.TotalAssets),
		CashRatio:       ratio(fact.Cash, fact.CurrentLiabilities),
		AssetTurnover:   ratio(fact.Revenue, fact.TotalAssets),
	}, nil
}

// optional converts an undefined ratio to a nil pointer so JSON carries
// null rather than an unencodable NaN
func optional(x float64) *float64 {
	if math.IsNaN(x) {
		return nil
	}
	return &x
}

type ratioSetJSON struct {
	GrossMargin     *float64 `json:"grossMargin"`
	NetMargin       *float64 `json:"netMargin"`
	OperatingMargin *float64 `json:"operatingMargin"`
	FCFMargin       *float64 `json:"fcfMargin"`
	ROA             *float64 `json:"roa"`
	ROE             *float64 `json:"roe"`
	DebtToAssets    *float64 `json:"debtToAssets"`
	CashRatio       *float64 `json:"cashRatio"`
	AssetTurnover   *float64 `json:"assetTurnover"`
}

// MarshalJSON encodes undefined ratios as null so the presentation layer
// can render a dash instead of a zero
func (r RatioSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(ratioSetJSON{
		GrossMargin:     optional(r.GrossMargin),
		NetMargin:       optional(r.NetMargin),
		OperatingMargin: optional(r.OperatingMargin),
		FCFMargin:       optional(r.FCFMargin),
		ROA:             optional(r.ROA),
		ROE:             optional(r.ROE),
		DebtToAssets:    optional(r.DebtToAssets),
		CashRatio:       optional(r.CashRatio),
		AssetTurnover:   optional(r.AssetTurnover),
	})
}

// UnmarshalJSON restores null values to NaN
func (r *RatioSet) UnmarshalJSON(data []byte) error {
	var raw ratioSetJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	restore := func(p *float64) float64 {
		if p == nil {
			return math.NaN()
		}
		return *p
	}

	r.GrossMargin = restore(raw.GrossMargin)
	r.NetMargin = restore(raw.NetMargin)
	r.OperatingMargin = restore(raw.OperatingMargin)
	r.FCFMargin = restore(raw.FCFMargin)
	r.ROA = restore(raw.ROA)
	r.ROE = restore(raw.ROE)
	r.DebtToAssets = restore(raw.DebtToAssets)
	r.CashRatio = restore(raw.CashRatio)
	r.AssetTurnover = restore(raw.AssetTurnover)
	return nil
}
