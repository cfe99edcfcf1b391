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
	"fmt"
	"os"

	"github.com/finsight/fin-api/common"
	"github.com/finsight/fin-api/scoring"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// quadrants in presentation order
var swotQuadrants = []string{"strengths", "weaknesses", "opportunities", "threats"}

func init() {
	rootCmd.AddCommand(swotCmd)
}

var swotCmd = &cobra.Command{
	Use:   "swot",
	Short: "Score the SWOT quadrants configured under [swot] in the config file",
	Long: `Each quadrant holds analyst-maintained items tagged with a high, medium, or
low impact. The quadrant index weights impacts 3/2/1 and normalizes to 0-100;
a quadrant with no items scores 0.`,
	Run: func(cmd *cobra.Command, args []string) {
		common.SetupLogging()

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Quadrant", "Index", "Items"})

		for _, quadrant := range swotQuadrants {
			var items []scoring.QuadrantItem
			if err := viper.UnmarshalKey(fmt.Sprintf("swot.%s", quadrant), &items); err != nil {
				log.Fatal().Err(err).Str("Quadrant", quadrant).Msg("could not read quadrant items from config")
			}

			score, err := scoring.QuadrantIndex(quadrant, items)
			if err != nil {
				log.Fatal().Err(err).Str("Quadrant", quadrant).Msg("could not score quadrant")
			}

			table.Append([]string{quadrant, fmt.Sprintf("%.0f", score.Value), fmt.Sprintf("%d", len(items))})
		}

		table.Render()
	},
}
