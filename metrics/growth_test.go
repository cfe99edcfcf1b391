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

package metrics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/finsight/fin-api/metrics"
	"github.com/finsight/fin-api/period"
)

// seriesFromValues builds a quarterly series starting at Q1-2024
func seriesFromValues(metric string, values []float64) *metrics.Series {
	start, err := period.New(2024, 1)
	Expect(err).To(BeNil())

	points := make([]metrics.Point, len(values))
	for idx, val := range values {
		points[idx] = metrics.Point{Period: start.AddQuarters(idx), Value: val}
	}

	series, err := metrics.NewSeries("NTGR", metric, points)
	Expect(err).To(BeNil())
	return series
}

var _ = Describe("Growth", func() {
	Describe("when computing QoQ rates", func() {
		Context("with the reference revenue fixture", func() {
			It("matches hand-computed growth", func() {
				// revenue in $M over Q1..Q4-2024
				series := seriesFromValues("revenue", []float64{140, 150, 155, 162})
				growth := metrics.Growth(series)

				Expect(math.IsNaN(growth.QoQ[0])).To(BeTrue())
				Expect(growth.QoQ[1]).To(BeNumerically("~", 0.0714, 1e-4))
				Expect(growth.QoQ[2]).To(BeNumerically("~", 0.0333, 1e-4))
				Expect(growth.QoQ[3]).To(BeNumerically("~", 0.0452, 1e-4))
			})
		})

		Context("with a zero base value", func() {
			It("leaves the rate undefined rather than infinite", func() {
				series := seriesFromValues("revenue", []float64{0, 100, 110})
				growth := metrics.Growth(series)

				Expect(math.IsNaN(growth.QoQ[1])).To(BeTrue())
				Expect(growth.QoQ[2]).To(BeNumerically("~", 0.10, 1e-9))
			})
		})

		Context("with a negative base value", func() {
			It("reads recovery from a loss as positive growth", func() {
				series := seriesFromValues("net_income", []float64{-100, 50})
				growth := metrics.Growth(series)

				Expect(growth.QoQ[1]).To(BeNumerically("~", 1.5, 1e-9))
			})
		})
	})

	Describe("when computing YoY rates", func() {
		It("compares against the same quarter one year back", func() {
			series := seriesFromValues("revenue", []float64{100, 110, 120, 130, 125, 121})
			growth := metrics.Growth(series)

			for idx := 0; idx < 4; idx++ {
				Expect(math.IsNaN(growth.YoY[idx])).To(BeTrue())
			}
			Expect(growth.YoY[4]).To(BeNumerically("~", 0.25, 1e-9))
			Expect(growth.YoY[5]).To(BeNumerically("~", 0.10, 1e-9))
		})
	})

	Describe("when the series is too short", func() {
		It("yields only undefined rates", func() {
			series := seriesFromValues("revenue", []float64{140})
			growth := metrics.Growth(series)

			Expect(growth.QoQ).To(HaveLen(1))
			Expect(math.IsNaN(growth.QoQ[0])).To(BeTrue())
			Expect(math.IsNaN(growth.YoY[0])).To(BeTrue())
		})
	})
})

var _ = Describe("Series", func() {
	Describe("when constructing from raw points", func() {
		It("rejects non-increasing periods", func() {
			q1, _ := period.New(2024, 1)
			points := []metrics.Point{
				{Period: q1.Next(), Value: 1},
				{Period: q1, Value: 2},
			}
			_, err := metrics.NewSeries("NTGR", "revenue", points)
			Expect(err).To(MatchError(metrics.ErrUnsortedSeries))
		})

		It("rejects duplicate periods", func() {
			q1, _ := period.New(2024, 1)
			points := []metrics.Point{
				{Period: q1, Value: 1},
				{Period: q1, Value: 2},
			}
			_, err := metrics.NewSeries("NTGR", "revenue", points)
			Expect(err).To(MatchError(metrics.ErrUnsortedSeries))
		})

		It("rejects NaN and infinite values", func() {
			q1, _ := period.New(2024, 1)

			_, err := metrics.NewSeries("NTGR", "revenue", []metrics.Point{{Period: q1, Value: math.NaN()}})
			Expect(err).To(MatchError(metrics.ErrNonFiniteValue))

			_, err = metrics.NewSeries("NTGR", "revenue", []metrics.Point{{Period: q1, Value: math.Inf(1)}})
			Expect(err).To(MatchError(metrics.ErrNonFiniteValue))
		})

		It("rejects an empty metric name", func() {
			_, err := metrics.NewSeries("NTGR", "", nil)
			Expect(err).To(MatchError(metrics.ErrMissingMetric))
		})
	})
})
