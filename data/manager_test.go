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

package data_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock"

	"github.com/finsight/fin-api/data"
	"github.com/finsight/fin-api/data/database"
	"github.com/finsight/fin-api/events"
	"github.com/finsight/fin-api/rollup"
)

var factColumns = []string{
	"period", "revenue", "gross_profit", "net_income", "operating_income",
	"total_assets", "total_equity", "total_debt", "cash", "current_liabilities",
	"operating_cash_flow", "free_cash_flow", "shares_outstanding",
}

func mockFactRows() *pgxmock.Rows {
	return pgxmock.NewRows(factColumns).
		AddRow("Q2-2024", int64(16_200_000_000), int64(4_617_000_000), int64(810_000_000),
			int64(972_000_000), int64(81_000_000_000), int64(40_500_000_000), int64(8_100_000_000),
			int64(20_250_000_000), int64(13_500_000_000), int64(1_944_000_000), int64(1_620_000_000),
			int64(28_800_000)).
		AddRow("Q3-2024", int64(17_500_000_000), int64(5_075_000_000), int64(875_000_000),
			int64(1_050_000_000), int64(82_000_000_000), int64(41_000_000_000), int64(8_000_000_000),
			int64(21_000_000_000), int64(13_000_000_000), int64(2_100_000_000), int64(1_750_000_000),
			int64(28_800_000))
}

var _ = Describe("Manager", func() {
	var (
		ctx     context.Context
		dbPool  pgxmock.PgxConnIface
		manager *data.Manager
	)

	BeforeEach(func() {
		var err error
		ctx = context.Background()

		dbPool, err = pgxmock.NewConn()
		Expect(err).To(BeNil())
		database.SetPool(dbPool)

		manager = data.NewManager()
		manager.DisableCache = true
	})

	Describe("GetFacts", func() {
		It("loads quarterly financials ordered by period", func() {
			dbPool.ExpectBegin()
			dbPool.ExpectQuery("SELECT period, revenue, gross_profit").
				WithArgs("NTGR").WillReturnRows(mockFactRows())
			dbPool.ExpectCommit()

			facts, err := manager.GetFacts(ctx, "NTGR")
			Expect(err).To(BeNil())
			Expect(facts).To(HaveLen(2))

			Expect(facts[0].Symbol).To(Equal("NTGR"))
			Expect(facts[0].Period.String()).To(Equal("Q2-2024"))
			Expect(facts[0].Revenue).To(Equal(int64(16_200_000_000)))
			Expect(facts[1].Period.String()).To(Equal("Q3-2024"))
			Expect(dbPool.ExpectationsWereMet()).To(BeNil())
		})

		It("returns ErrNotFound for an unknown symbol", func() {
			dbPool.ExpectBegin()
			dbPool.ExpectQuery("SELECT period, revenue, gross_profit").
				WithArgs("ZZZZ").WillReturnRows(pgxmock.NewRows(factColumns))
			dbPool.ExpectRollback()

			_, err := manager.GetFacts(ctx, "ZZZZ")
			Expect(err).To(MatchError(data.ErrNotFound))
			Expect(dbPool.ExpectationsWereMet()).To(BeNil())
		})

		It("rejects an empty symbol without touching the database", func() {
			_, err := manager.GetFacts(ctx, "")
			Expect(err).To(MatchError(data.ErrEmptySymbol))
			Expect(dbPool.ExpectationsWereMet()).To(BeNil())
		})

		It("fails on a malformed period value", func() {
			rows := pgxmock.NewRows(factColumns).
				AddRow("2024-06-30", int64(1), int64(1), int64(1), int64(1), int64(1), int64(1),
					int64(1), int64(1), int64(1), int64(1), int64(1), int64(1))

			dbPool.ExpectBegin()
			dbPool.ExpectQuery("SELECT period, revenue, gross_profit").
				WithArgs("NTGR").WillReturnRows(rows)
			dbPool.ExpectRollback()

			_, err := manager.GetFacts(ctx, "NTGR")
			Expect(err).ToNot(BeNil())
			Expect(dbPool.ExpectationsWereMet()).To(BeNil())
		})

		It("serves repeated loads from the cache", func() {
			manager.DisableCache = false

			// one round trip only; the second load must not hit the pool
			dbPool.ExpectBegin()
			dbPool.ExpectQuery("SELECT period, revenue, gross_profit").
				WithArgs("CACHE").WillReturnRows(mockFactRows())
			dbPool.ExpectCommit()

			first, err := manager.GetFacts(ctx, "CACHE")
			Expect(err).To(BeNil())

			second, err := manager.GetFacts(ctx, "CACHE")
			Expect(err).To(BeNil())
			Expect(second).To(Equal(first))
			Expect(dbPool.ExpectationsWereMet()).To(BeNil())
		})
	})

	Describe("GetSegmentRows", func() {
		segmentColumns := []string{
			"period", "category_level", "category_name", "parent_category",
			"revenue", "revenue_percentage", "gross_margin", "yoy_growth", "qoq_growth",
		}

		It("loads product line rows from the product table", func() {
			rows := pgxmock.NewRows(segmentColumns).
				AddRow("Q3-2024", 1, "Connected Home", "", int64(10_500_000_000), 60.0, 30.0, 8.5, 2.1).
				AddRow("Q3-2024", 2, "WiFi Routers", "Connected Home", int64(6_300_000_000), 36.0, 28.0, 5.0, 1.2)

			dbPool.ExpectBegin()
			dbPool.ExpectQuery("FROM product_line_revenue").
				WithArgs("NTGR").WillReturnRows(rows)
			dbPool.ExpectCommit()

			segs, err := manager.GetSegmentRows(ctx, "NTGR", rollup.DimensionProduct)
			Expect(err).To(BeNil())
			Expect(segs).To(HaveLen(2))
			Expect(segs[0].Dimension).To(Equal(rollup.DimensionProduct))
			Expect(segs[0].Name).To(Equal("Connected Home"))
			Expect(segs[1].Parent).To(Equal("Connected Home"))
			Expect(segs[1].Level).To(Equal(2))
			Expect(dbPool.ExpectationsWereMet()).To(BeNil())
		})

		It("loads geographic rows from the geography table", func() {
			rows := pgxmock.NewRows(segmentColumns).
				AddRow("Q3-2024", 1, "Americas", "", int64(11_375_000_000), 65.0, 29.0, 4.0, 1.0)

			dbPool.ExpectBegin()
			dbPool.ExpectQuery("FROM geographic_distribution").
				WithArgs("NTGR").WillReturnRows(rows)
			dbPool.ExpectCommit()

			segs, err := manager.GetSegmentRows(ctx, "NTGR", rollup.DimensionGeography)
			Expect(err).To(BeNil())
			Expect(segs).To(HaveLen(1))
			Expect(segs[0].Dimension).To(Equal(rollup.DimensionGeography))
			Expect(dbPool.ExpectationsWereMet()).To(BeNil())
		})

		It("rejects an unknown dimension", func() {
			_, err := manager.GetSegmentRows(ctx, "NTGR", rollup.Dimension("channel"))
			Expect(err).To(MatchError(data.ErrUnknownDimension))
		})

		It("returns an empty slice when no segments exist", func() {
			dbPool.ExpectBegin()
			dbPool.ExpectQuery("FROM product_line_revenue").
				WithArgs("NTGR").WillReturnRows(pgxmock.NewRows(segmentColumns))
			dbPool.ExpectCommit()

			segs, err := manager.GetSegmentRows(ctx, "NTGR", rollup.DimensionProduct)
			Expect(err).To(BeNil())
			Expect(segs).To(BeEmpty())
			Expect(dbPool.ExpectationsWereMet()).To(BeNil())
		})
	})

	Describe("GetEvents", func() {
		eventColumns := []string{
			"id", "event_date", "event_type", "title", "description",
			"impact_type", "impact_level", "estimated_revenue_impact",
			"related_metrics", "affected_product_lines", "affected_regions",
		}

		It("loads milestone events ordered by date", func() {
			launchID := uuid.New()
			rows := pgxmock.NewRows(eventColumns).
				AddRow(launchID, time.Date(2024, 10, 8, 0, 0, 0, 0, time.UTC), "product_launch",
					"Orbi 970 launch", "Flagship mesh system refresh", "positive", 4,
					int64(500_000_000), []string{"revenue", "gross_margin"},
					[]string{"Mesh Systems"}, []string{"Americas", "EMEA"})

			dbPool.ExpectBegin()
			dbPool.ExpectQuery("FROM milestone_events").
				WithArgs("NTGR").WillReturnRows(rows)
			dbPool.ExpectCommit()

			evts, err := manager.GetEvents(ctx, "NTGR")
			Expect(err).To(BeNil())
			Expect(evts).To(HaveLen(1))

			Expect(evts[0].ID).To(Equal(launchID))
			Expect(evts[0].Symbol).To(Equal("NTGR"))
			Expect(evts[0].Impact).To(Equal(events.ImpactPositive))
			Expect(evts[0].ImpactLevel).To(Equal(4))
			Expect(evts[0].RelatedMetrics).To(ConsistOf("revenue", "gross_margin"))
			Expect(dbPool.ExpectationsWereMet()).To(BeNil())
		})

		It("returns an empty slice when no events exist", func() {
			dbPool.ExpectBegin()
			dbPool.ExpectQuery("FROM milestone_events").
				WithArgs("NTGR").WillReturnRows(pgxmock.NewRows(eventColumns))
			dbPool.ExpectCommit()

			evts, err := manager.GetEvents(ctx, "NTGR")
			Expect(err).To(BeNil())
			Expect(evts).To(BeEmpty())
			Expect(dbPool.ExpectationsWereMet()).To(BeNil())
		})
	})
})
