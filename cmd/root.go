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

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Database
	viper.BindEnv("database.url", "DATABASE_URL")
	rootCmd.PersistentFlags().String("database-url", "", "PostgreSQL connection string")
	viper.BindPFlag("database.url", rootCmd.PersistentFlags().Lookup("database-url"))

	// Logging configuration
	viper.BindEnv("log.level", "FIN_LOG_LEVEL")
	rootCmd.PersistentFlags().String("log-level", "warning", "Logging level")
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	viper.BindEnv("log.report_caller", "FIN_LOG_REPORT_CALLER")
	rootCmd.PersistentFlags().Bool("log-report-caller", false, "Log function name that called log statement")
	viper.BindPFlag("log.report_caller", rootCmd.PersistentFlags().Lookup("log-report-caller"))

	viper.BindEnv("log.output", "FIN_LOG_OUTPUT")
	rootCmd.PersistentFlags().String("log-output", "stdout", "Write logs to specified output one of: file path, `stdout`, or `stderr`")
	viper.BindPFlag("log.output", rootCmd.PersistentFlags().Lookup("log-output"))

	rootCmd.PersistentFlags().Bool("log-pretty", false, "Print logs in human readable format")
	viper.BindPFlag("log.pretty", rootCmd.PersistentFlags().Lookup("log-pretty"))

	// Cache
	viper.BindEnv("cache.local_size", "FIN_CACHE_LOCAL_SIZE")
	rootCmd.PersistentFlags().Int("cache-local-size", 256, "Number of row sets to keep in the local LRU cache")
	viper.BindPFlag("cache.local_size", rootCmd.PersistentFlags().Lookup("cache-local-size"))

	// Analytics thresholds; all tunable so formulas stay swappable
	viper.SetDefault("analytics.turning_point_floor", 0.02)
	viper.SetDefault("analytics.medium_band", 0.05)
	viper.SetDefault("analytics.high_band", 0.10)
	viper.SetDefault("analytics.pct_tolerance", 0.5)
	viper.SetDefault("analytics.revenue_tolerance", 0.005)
	viper.SetDefault("analytics.health_formula", "rule_of_40")
	viper.SetDefault("analytics.healthy_floor", 40)
	viper.SetDefault("analytics.event_window_days", 14)
}

var rootCmd = &cobra.Command{
	Use:     "finapi",
	Version: common.CurrentVersion.String(),
	Short:   "Finsight analyzes quarterly company financials",
	Long:    `A financial analytics engine that derives ratios, growth rates, turning points, segment rollups, and composite health scores from raw quarterly data.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
