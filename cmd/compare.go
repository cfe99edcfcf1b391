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
	"math"
	"os"

	"github.com/finsight/fin-api/common"
	"github.com/finsight/fin-api/data"
	"github.com/finsight/fin-api/data/database"
	"github.com/finsight/fin-api/fundamentals"
	"github.com/finsight/fin-api/scoring"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var compareMetric string

func init() {
	compareCmd.Flags().StringVar(&compareMetric, "metric", "net_margin", "Ratio to rank on: gross_margin, net_margin, roa, roe")
	rootCmd.AddCommand(compareCmd)
}

var compareCmd = &cobra.Command{
	Use:   "compare [symbol]...",
	Args:  cobra.MinimumNArgs(2),
	Short: "Rank companies on a ratio from their latest reported quarter",
	Run: func(cmd *cobra.Command, args []string) {
		common.SetupLogging()
		common.SetupCache()

		ctx := context.Background()
		if err := database.Connect(ctx); err != nil {
			log.Fatal().Err(err).Msg("could not connect to database")
		}

		manager := data.NewManager()
		entries := make([]scoring.CompanyMetric, 0, len(args))
		for _, symbol := range args {
			facts, err := manager.GetFacts(ctx, symbol)
			if err != nil {
				log.Fatal().Err(err).Str("Symbol", symbol).Msg("could not load financial facts")
			}

			latest := &facts[len(facts)-1]
			ratios, err := fundamentals.Ratios(latest)
			if err != nil {
				log.Fatal().Err(err).Str("Symbol", symbol).Msg("could not compute ratios")
			}

			entries = append(entries, scoring.CompanyMetric{
				Symbol: symbol,
				Value:  ratioByName(&ratios, compareMetric),
			})
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Rank", "Symbol", compareMetric})
		for _, ranking := range scoring.CompareCompanies(entries) {
			val := "-"
			if fundamentals.Defined(ranking.Value) {
				val = fmt.Sprintf("%.2f%%", ranking.Value*100)
			}
			table.Append([]string{fmt.Sprintf("%d", ranking.Rank), ranking.Symbol, val})
		}
		table.Render()
	},
}

func ratioByName(r *fundamentals.RatioSet, name string) float64 {
	switch name {
	case "gross_margin":
		return r.GrossMargin
	case "net_margin":
		return r.NetMargin
	case "roa":
		return r.ROA
	case "roe":
		return r.ROE
	default:
		log.Warn().Str("Metric", name).Msg("unknown comparison metric")
		return math.NaN()
	}
}
