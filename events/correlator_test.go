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

package events_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/google/uuid"

	"github.com/finsight/fin-api/events"
	"github.com/finsight/fin-api/metrics"
	"github.com/finsight/fin-api/period"
)

var _ = Describe("Correlate", func() {
	var (
		q3     period.Period
		points []metrics.TurningPoint
		launch events.MilestoneEvent
		recall events.MilestoneEvent
	)

	BeforeEach(func() {
		q3, _ = period.New(2024, 3)

		points = []metrics.TurningPoint{
			{
				Period:       q3,
				Metric:       "revenue",
				Value:        162,
				Previous:     155,
				Significance: metrics.SignificanceLow,
			},
		}

		// Q3-2024 ends September 30
		launch = events.MilestoneEvent{
			ID:             uuid.New(),
			Symbol:         "NTGR",
			Date:           time.Date(2024, 10, 8, 0, 0, 0, 0, time.UTC),
			Type:           "product_launch",
			Title:          "Orbi 970 launch",
			Impact:         events.ImpactPositive,
			ImpactLevel:    4,
			RelatedMetrics: []string{"Revenue", "gross_margin"},
		}
		recall = events.MilestoneEvent{
			ID:             uuid.New(),
			Symbol:         "NTGR",
			Date:           time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			Type:           "recall",
			Title:          "Power adapter recall",
			Impact:         events.ImpactNegative,
			ImpactLevel:    2,
			RelatedMetrics: []string{"revenue"},
		}
	})

	It("attaches events inside the window that mention the metric", func() {
		out := events.Correlate(points, []events.MilestoneEvent{launch, recall}, events.DefaultWindow)

		Expect(out).To(HaveLen(1))
		Expect(out[0].EventIDs).To(ConsistOf(launch.ID))
	})

	It("matches metric names case-insensitively", func() {
		launch.RelatedMetrics = []string{"REVENUE"}
		out := events.Correlate(points, []events.MilestoneEvent{launch}, events.DefaultWindow)
		Expect(out[0].EventIDs).To(ConsistOf(launch.ID))
	})

	It("skips events that never mention the metric", func() {
		launch.RelatedMetrics = []string{"gross_margin"}
		out := events.Correlate(points, []events.MilestoneEvent{launch}, events.DefaultWindow)
		Expect(out[0].EventIDs).To(BeEmpty())
	})

	It("skips events outside the window on either side", func() {
		launch.Date = time.Date(2024, 10, 15, 0, 0, 0, 0, time.UTC)
		out := events.Correlate(points, []events.MilestoneEvent{launch}, events.DefaultWindow)
		Expect(out[0].EventIDs).To(BeEmpty())

		launch.Date = time.Date(2024, 9, 16, 0, 0, 0, 0, time.UTC)
		out = events.Correlate(points, []events.MilestoneEvent{launch}, events.DefaultWindow)
		Expect(out[0].EventIDs).To(ConsistOf(launch.ID))
	})

	It("keeps an event exactly on the window boundary", func() {
		launch.Date = points[0].Period.End().Add(events.DefaultWindow)
		out := events.Correlate(points, []events.MilestoneEvent{launch}, events.DefaultWindow)
		Expect(out[0].EventIDs).To(ConsistOf(launch.ID))
	})

	It("falls back to the default window when given a zero duration", func() {
		out := events.Correlate(points, []events.MilestoneEvent{launch}, 0)
		Expect(out[0].EventIDs).To(ConsistOf(launch.ID))
	})

	It("leaves the input turning points untouched", func() {
		events.Correlate(points, []events.MilestoneEvent{launch}, events.DefaultWindow)
		Expect(points[0].EventIDs).To(BeNil())
	})

	It("returns empty associations when no events exist", func() {
		out := events.Correlate(points, nil, events.DefaultWindow)
		Expect(out).To(HaveLen(1))
		Expect(out[0].EventIDs).To(BeEmpty())
	})
})

var _ = Describe("MilestoneEvent", func() {
	Describe("Validate", func() {
		It("accepts a well-formed event", func() {
			evt := events.MilestoneEvent{Title: "Orbi 970 launch", ImpactLevel: 4}
			Expect(evt.Validate()).To(BeNil())
		})

		It("rejects a missing title", func() {
			evt := events.MilestoneEvent{ImpactLevel: 3}
			Expect(evt.Validate()).To(MatchError(events.ErrMissingTitle))
		})

		It("rejects an out-of-range impact level", func() {
			evt := events.MilestoneEvent{Title: "x", ImpactLevel: 0}
			Expect(evt.Validate()).To(MatchError(events.ErrBadImpactLevel))

			evt.ImpactLevel = 6
			Expect(evt.Validate()).To(MatchError(events.ErrBadImpactLevel))
		})
	})
})
