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

package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/finsight/fin-api/common"
	"github.com/finsight/fin-api/data"
	"github.com/finsight/fin-api/data/database"
	"github.com/finsight/fin-api/events"
	"github.com/finsight/fin-api/fundamentals"
	"github.com/finsight/fin-api/metrics"
	"github.com/finsight/fin-api/report"
	"github.com/finsight/fin-api/rollup"
	"github.com/finsight/fin-api/scoring"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var jsonOutput bool

func init() {
	analyzeCmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the report as JSON instead of tables")
	rootCmd.AddCommand(analyzeCmd)
}

// analyticsConfig assembles the pipeline configuration from viper settings
// so every threshold is visible, overridable configuration
func analyticsConfig() report.Config {
	return report.Config{
		Detector: metrics.DetectorConfig{
			Floor:      viper.GetFloat64("analytics.turning_point_floor"),
			MediumBand: viper.GetFloat64("analytics.medium_band"),
			HighBand:   viper.GetFloat64("analytics.high_band"),
		},
		Rollup: rollup.Config{
			PctTolerance:     viper.GetFloat64("analytics.pct_tolerance"),
			RevenueTolerance: viper.GetFloat64("analytics.revenue_tolerance"),
		},
		Health: scoring.Config{
			Formula:      viper.GetString("analytics.health_formula"),
			GrowthWeight: viper.GetFloat64("analytics.growth_weight"),
			MarginWeight: viper.GetFloat64("analytics.margin_weight"),
			HealthyFloor: viper.GetFloat64("analytics.healthy_floor"),
		},
		EventWindow: time.Duration(viper.GetInt("analytics.event_window_days")) * 24 * time.Hour,
	}
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [symbol]",
	Args:  cobra.ExactArgs(1),
	Short: "Run the full analytics pipeline for a company",
	Long:  `Load quarterly financials, segment rows, and milestone events for the given company symbol, then compute ratios, growth, turning points, rollups, and composite scores.`,
	Run: func(cmd *cobra.Command, args []string) {
		common.SetupLogging()
		common.SetupCache()
		log.Info().Msg("Initialized logging")

		ctx := context.Background()
		if err := database.Connect(ctx); err != nil {
			log.Fatal().Err(err).Msg("could not connect to database")
		}

		symbol := args[0]
		manager := data.NewManager()

		facts, err := manager.GetFacts(ctx, symbol)
		if err != nil {
			log.Fatal().Err(err).Str("Symbol", symbol).Msg("could not load financial facts")
		}

		segments := []rollup.Row{}
		for _, dim := range []rollup.Dimension{rollup.DimensionProduct, rollup.DimensionGeography} {
			rows, err := manager.GetSegmentRows(ctx, symbol, dim)
			if err != nil {
				log.Fatal().Err(err).Str("Symbol", symbol).Str("Dimension", string(dim)).Msg("could not load segment rows")
			}
			segments = append(segments, rows...)
		}

		evts, err := manager.GetEvents(ctx, symbol)
		if err != nil {
			log.Fatal().Err(err).Str("Symbol", symbol).Msg("could not load milestone events")
		}

		rpt, err := buildReport(facts, segments, evts)
		if err != nil {
			log.Fatal().Err(err).Str("Symbol", symbol).Msg("could not build report")
		}

		if jsonOutput {
			raw, err := rpt.JSON()
			if err != nil {
				log.Fatal().Err(err).Msg("could not serialize report")
			}
			fmt.Println(string(raw))
		} else {
			rpt.RenderTables(os.Stdout)
		}
	},
}

func buildReport(facts []fundamentals.FinancialFact, segments []rollup.Row, evts []events.MilestoneEvent) (*report.Report, error) {
	return report.Build(facts, segments, evts, analyticsConfig())
}
