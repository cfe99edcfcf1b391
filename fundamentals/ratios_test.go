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

package fundamentals_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/goccy/go-json"

	"github.com/finsight/fin-api/fundamentals"
	"github.com/finsight/fin-api/period"
)

var _ = Describe("Ratios", func() {
	var fact *fundamentals.FinancialFact

	BeforeEach(func() {
		p, err := period.Parse("Q1-2025")
		Expect(err).To(BeNil())

		// amounts in cents
		fact = &fundamentals.FinancialFact{
			Symbol:             "NTGR",
			Period:             p,
			Revenue:            16_200_000_000,
			GrossProfit:        4_617_000_000,
			NetIncome:          810_000_000,
			OperatingIncome:    972_000_000,
			TotalAssets:        81_000_000_000,
			TotalEquity:        40_500_000_000,
			TotalDebt:          8_100_000_000,
			Cash:               20_250_000_000,
			CurrentLiabilities: 13_500_000_000,
			FreeCashFlow:       1_620_000_000,
		}
	})

	Describe("when computing ratios from a complete fact", func() {
		It("derives each ratio as a fraction", func() {
			ratios, err := fundamentals.Ratios(fact)
			Expect(err).To(BeNil())

			Expect(ratios.GrossMargin).To(BeNumerically("~", 0.285, 1e-9))
			Expect(ratios.NetMargin).To(BeNumerically("~", 0.05, 1e-9))
			Expect(ratios.OperatingMargin).To(BeNumerically("~", 0.06, 1e-9))
			Expect(ratios.FCFMargin).To(BeNumerically("~", 0.10, 1e-9))
			Expect(ratios.ROA).To(BeNumerically("~", 0.01, 1e-9))
			Expect(ratios.ROE).To(BeNumerically("~", 0.02, 1e-9))
			Expect(ratios.DebtToAssets).To(BeNumerically("~", 0.10, 1e-9))
			Expect(ratios.CashRatio).To(BeNumerically("~", 1.5, 1e-9))
			Expect(ratios.AssetTurnover).To(BeNumerically("~", 0.20, 1e-9))
		})
	})

	Describe("when denominators are missing", func() {
		It("reports margins as undefined for zero revenue, not zero", func() {
			fact.Revenue = 0
			fact.GrossProfit = 0

			ratios, err := fundamentals.Ratios(fact)
			Expect(err).To(BeNil())

			Expect(fundamentals.Defined(ratios.GrossMargin)).To(BeFalse())
			Expect(fundamentals.Defined(ratios.NetMargin)).To(BeFalse())
			Expect(fundamentals.Defined(ratios.AssetTurnover)).To(BeTrue())
		})

		It("leaves the other ratios intact", func() {
			fact.TotalEquity = 0

			ratios, err := fundamentals.Ratios(fact)
			Expect(err).To(BeNil())

			Expect(fundamentals.Defined(ratios.ROE)).To(BeFalse())
			Expect(fundamentals.Defined(ratios.ROA)).To(BeTrue())
			Expect(fundamentals.Defined(ratios.GrossMargin)).To(BeTrue())
		})
	})

	Describe("when the fact is malformed", func() {
		It("rejects negative revenue", func() {
			fact.Revenue = -1
			_, err := fundamentals.Ratios(fact)
			Expect(err).To(MatchError(fundamentals.ErrNegativeRevenue))
		})

		It("rejects a missing symbol", func() {
			fact.Symbol = ""
			_, err := fundamentals.Ratios(fact)
			Expect(err).To(MatchError(fundamentals.ErrMissingSymbol))
		})
	})

	Describe("when serializing a ratio set", func() {
		It("encodes undefined ratios as null and restores them as NaN", func() {
			fact.Revenue = 0
			fact.GrossProfit = 0
			ratios, err := fundamentals.Ratios(fact)
			Expect(err).To(BeNil())

			raw, err := json.Marshal(ratios)
			Expect(err).To(BeNil())
			Expect(string(raw)).To(ContainSubstring(`"grossMargin":null`))

			var restored fundamentals.RatioSet
			Expect(json.Unmarshal(raw, &restored)).To(Succeed())
			Expect(fundamentals.Defined(restored.GrossMargin)).To(BeFalse())
			Expect(restored.ROA).To(BeNumerically("~", ratios.ROA, 1e-12))
		})
	})
})
