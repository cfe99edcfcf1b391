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

// Package report runs the full analytics pipeline for one company and
// assembles the result object the presentation layer consumes. Everything
// in here is a pure function of the raw rows passed in; running it twice
// over the same rows produces the same report (modulo GeneratedAt).
package report

import (
	"math"
	"sort"
	"time"

	"github.com/finsight/fin-api/events"
	"github.com/finsight/fin-api/fundamentals"
	"github.com/finsight/fin-api/metrics"
	"github.com/finsight/fin-api/period"
	"github.com/finsight/fin-api/rollup"
	"github.com/finsight/fin-api/scoring"

	"github.com/rs/zerolog/log"
)

// metric names used for turning-point detection
const (
	MetricRevenue   = "revenue"
	MetricNetIncome = "net_income"
)

// Config aggregates the per-component configuration for one pipeline run
type Config struct {
	Detector    metrics.DetectorConfig
	Rollup      rollup.Config
	Health      scoring.Config
	EventWindow time.Duration
}

// DefaultConfig returns the standard thresholds for every component
func DefaultConfig() Config {
	return Config{
		Detector:    metrics.DefaultDetectorConfig(),
		Rollup:      rollup.DefaultConfig(),
		Health:      scoring.DefaultConfig(),
		EventWindow: events.DefaultWindow,
	}
}

// PeriodRatios pairs one period with its derived ratio set
type PeriodRatios struct {
	Period period.Period        `json:"period"`
	Ratios fundamentals.RatioSet `json:"ratios"`
}

// MetricReport is one metric's series annotated with growth rates and
// turning points. Growth entries are nil where undefined.
type MetricReport struct {
	Metric        string                 `json:"metric"`
	Points        []metrics.Point        `json:"points"`
	QoQ           []*float64             `json:"qoq"`
	YoY           []*float64             `json:"yoy"`
	TurningPoints []metrics.TurningPoint `json:"turningPoints"`
}

// HierarchyReport is one validated rollup tree with its tolerance warnings
type HierarchyReport struct {
	Tree     *rollup.Tree     `json:"tree"`
	Warnings []rollup.Warning `json:"warnings"`
}

// Report is the full analytics output for one company
type Report struct {
	Symbol      string            `json:"symbol"`
	GeneratedAt time.Time         `json:"generatedAt"`
	Ratios      []PeriodRatios    `json:"ratios"`
	Metrics     []MetricReport    `json:"metrics"`
	Hierarchies []HierarchyReport `json:"hierarchies"`
	Scores      []scoring.Score   `json:"scores"`
}

// Build runs ratios, growth, turning-point detection, event correlation,
// hierarchy rollups, and health scoring over the raw rows for one company
func Build(facts []fundamentals.FinancialFact, segments []rollup.Row, evts []events.MilestoneEvent, cfg Config) (*Report, error) {
	if err := cfg.Detector.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Rollup.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Health.Validate(); err != nil {
		return nil, err
	}

	ordered := make([]fundamentals.FinancialFact, len(facts))
	copy(ordered, facts)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Period.Before(ordered[j].Period)
	})

	rpt := &Report{
		GeneratedAt: time.Now(),
		Ratios:      make([]PeriodRatios, 0, len(ordered)),
		Metrics:     make([]MetricReport, 0, 2),
		Hierarchies: make([]HierarchyReport, 0, 4),
		Scores:      make([]scoring.Score, 0, 1),
	}
	if len(ordered) > 0 {
		rpt.Symbol = ordered[0].Symbol
	}

	for idx := range ordered {
		ratios, err := fundamentals.Ratios(&ordered[idx])
		if err != nil {
			return nil, err
		}
		rpt.Ratios = append(rpt.Ratios, PeriodRatios{Period: ordered[idx].Period, Ratios: ratios})
	}

	for _, metric := range []string{MetricRevenue, MetricNetIncome} {
		mr, err := buildMetricReport(ordered, metric, evts, cfg)
		if err != nil {
			return nil, err
		}
		rpt.Metrics = append(rpt.Metrics, *mr)
	}

	hierarchies, err := buildHierarchies(ordered, segments, cfg)
	if err != nil {
		return nil, err
	}
	rpt.Hierarchies = hierarchies

	if score, ok := healthScore(rpt, cfg); ok {
		rpt.Scores = append(rpt.Scores, score)
	}

	log.Info().Str("Symbol", rpt.Symbol).Int("NumPeriods", len(rpt.Ratios)).
		Int("NumHierarchies", len(rpt.Hierarchies)).Msg("built analysis report")
	return rpt, nil
}

func buildMetricReport(facts []fundamentals.FinancialFact, metric string, evts []events.MilestoneEvent, cfg Config) (*MetricReport, error) {
	points := make([]metrics.Point, len(facts))
	for idx, fact := range facts {
		val := fact.Revenue
		if metric == MetricNetIncome {
			val = fact.NetIncome
		}
		points[idx] = metrics.Point{Period: fact.Period, Value: float64(val)}
	}

	symbol := ""
	if len(facts) > 0 {
		symbol = facts[0].Symbol
	}

	series, err := metrics.NewSeries(symbol, metric, points)
	if err != nil {
		return nil, err
	}

	growth := metrics.Growth(series)
	turningPoints, err := metrics.DetectTurningPoints(series, cfg.Detector)
	if err != nil {
		return nil, err
	}
	turningPoints = events.Correlate(turningPoints, evts, cfg.EventWindow)

	return &MetricReport{
		Metric:        metric,
		Points:        points,
		QoQ:           optionalSlice(growth.QoQ),
		YoY:           optionalSlice(growth.YoY),
		TurningPoints: turningPoints,
	}, nil
}

// buildHierarchies groups segment rows by period and dimension and builds
// one tree per group, using the matching fact's revenue as the company
// total. Groups without a matching fact are skipped with a warning -- the
// crawler delivered segment rows for a period it has no financials for.
func buildHierarchies(facts []fundamentals.FinancialFact, segments []rollup.Row, cfg Config) ([]HierarchyReport, error) {
	revenueByPeriod := make(map[period.Period]int64, len(facts))
	for _, fact := range facts {
		revenueByPeriod[fact.Period] = fact.Revenue
	}

	type groupKey struct {
		period    period.Period
		dimension rollup.Dimension
	}
	groups := make(map[groupKey][]rollup.Row)
	keys := []groupKey{}
	for _, row := range segments {
		key := groupKey{period: row.Period, dimension: row.Dimension}
		if _, ok := groups[key]; !ok {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], row)
	}

	// stable report ordering regardless of input row order
	sort.Slice(keys, func(i, j int) bool {
		if !keys[i].period.Equal(keys[j].period) {
			return keys[i].period.Before(keys[j].period)
		}
		return keys[i].dimension < keys[j].dimension
	})

	reports := make([]HierarchyReport, 0, len(keys))
	for _, key := range keys {
		total, ok := revenueByPeriod[key.period]
		if !ok || total <= 0 {
			log.Warn().Object("Period", key.period).Str("Dimension", string(key.dimension)).
				Msg("no financial fact for segment rows; skipping rollup")
			continue
		}

		tree, warnings, err := rollup.Build(groups[key], total, cfg.Rollup)
		if err != nil {
			return nil, err
		}
		reports = append(reports, HierarchyReport{Tree: tree, Warnings: warnings})
	}
	return reports, nil
}

// healthScore computes the SaaS health composite from the latest period
// with a defined YoY revenue growth and net margin. Undefined inputs mean
// no score, not a zero score.
func healthScore(rpt *Report, cfg Config) (scoring.Score, bool) {
	var revenue *MetricReport
	for idx := range rpt.Metrics {
		if rpt.Metrics[idx].Metric == MetricRevenue {
			revenue = &rpt.Metrics[idx]
		}
	}
	if revenue == nil || len(revenue.YoY) == 0 {
		return scoring.Score{}, false
	}

	for idx := len(revenue.YoY) - 1; idx >= 0; idx-- {
		if revenue.YoY[idx] == nil {
			continue
		}
		netMargin := rpt.Ratios[idx].Ratios.NetMargin
		if !fundamentals.Defined(netMargin) {
			continue
		}

		score, err := scoring.HealthScore(cfg.Health, *revenue.YoY[idx]*100, netMargin*100)
		if err != nil {
			log.Warn().Err(err).Msg("could not compute health score")
			return scoring.Score{}, false
		}
		return score, true
	}
	return scoring.Score{}, false
}

func optionalSlice(vals []float64) []*float64 {
	out := make([]*float64, len(vals))
	for idx, val := range vals {
		if !math.IsNaN(val) {
			v := val
			out[idx] = &v
		}
	}
	return out
}
