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

package period_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/finsight/fin-api/period"
)

var _ = Describe("Period", func() {
	Describe("when parsing period strings", func() {
		Context("with well-formed input", func() {
			It("round-trips through String", func() {
				for _, str := range []string{"Q1-2024", "Q2-2023", "Q3-2025", "Q4-1999"} {
					p, err := period.Parse(str)
					Expect(err).To(BeNil())
					Expect(p.String()).To(Equal(str))
				}
			})
		})

		Context("with malformed input", func() {
			It("rejects bad quarter numbers", func() {
				_, err := period.Parse("Q5-2024")
				Expect(err).To(MatchError(period.ErrInvalidPeriod))
			})

			It("rejects missing separators", func() {
				_, err := period.Parse("Q12024")
				Expect(err).To(MatchError(period.ErrInvalidPeriod))
			})

			It("rejects empty strings", func() {
				_, err := period.Parse("")
				Expect(err).To(MatchError(period.ErrInvalidPeriod))
			})
		})
	})

	Describe("when comparing and offsetting periods", func() {
		var q4 period.Period

		BeforeEach(func() {
			var err error
			q4, err = period.New(2024, 4)
			Expect(err).To(BeNil())
		})

		It("orders periods chronologically", func() {
			q1, _ := period.New(2025, 1)
			Expect(q4.Before(q1)).To(BeTrue())
			Expect(q1.After(q4)).To(BeTrue())
		})

		It("wraps the year when advancing", func() {
			next := q4.Next()
			Expect(next.Year).To(Equal(2025))
			Expect(next.Quarter).To(Equal(1))
		})

		It("offsets backwards across years", func() {
			prior := q4.AddQuarters(-4)
			Expect(prior.Year).To(Equal(2023))
			Expect(prior.Quarter).To(Equal(4))
		})

		It("counts quarters between periods", func() {
			q2, _ := period.New(2025, 2)
			Expect(q4.QuartersBetween(q2)).To(Equal(2))
			Expect(q2.QuartersBetween(q4)).To(Equal(-2))
		})
	})

	Describe("when computing the period end date", func() {
		It("lands on the calendar quarter boundary", func() {
			p, _ := period.New(2024, 1)
			Expect(p.End()).To(Equal(time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)))

			p, _ = period.New(2024, 2)
			Expect(p.End()).To(Equal(time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)))

			p, _ = period.New(2024, 3)
			Expect(p.End()).To(Equal(time.Date(2024, 9, 30, 0, 0, 0, 0, time.UTC)))

			p, _ = period.New(2024, 4)
			Expect(p.End()).To(Equal(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)))
		})
	})

	Describe("when marshalling as text", func() {
		It("round-trips", func() {
			p, _ := period.New(2024, 3)
			raw, err := p.MarshalText()
			Expect(err).To(BeNil())
			Expect(string(raw)).To(Equal("Q3-2024"))

			var p2 period.Period
			Expect(p2.UnmarshalText(raw)).To(Succeed())
			Expect(p2.Equal(p)).To(BeTrue())
		})
	})
})
