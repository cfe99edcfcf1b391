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

package report

import (
	"fmt"
	"io"

	"github.com/finsight/fin-api/fundamentals"
	"github.com/finsight/fin-api/rollup"

	"github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
)

// JSON serializes the report for the presentation layer; undefined values
// come out as null
func (rpt *Report) JSON() ([]byte, error) {
	return json.MarshalIndent(rpt, "", "  ")
}

// RenderTables writes human-readable summary tables, one per report
// section, to w. Undefined values render as a dash, never as zero.
func (rpt *Report) RenderTables(w io.Writer) {
	rpt.renderRatios(w)
	rpt.renderTurningPoints(w)
	rpt.renderHierarchies(w)
	rpt.renderScores(w)
}

func (rpt *Report) renderRatios(w io.Writer) {
	fmt.Fprintf(w, "\nFinancial ratios: %s\n", rpt.Symbol)
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Period", "Gross Margin", "Net Margin", "ROA", "ROE", "Debt/Assets", "Asset Turnover"})
	for _, pr := range rpt.Ratios {
		table.Append([]string{
			pr.Period.String(),
			pct(pr.Ratios.GrossMargin),
			pct(pr.Ratios.NetMargin),
			pct(pr.Ratios.ROA),
			pct(pr.Ratios.ROE),
			pct(pr.Ratios.DebtToAssets),
			frac(pr.Ratios.AssetTurnover),
		})
	}
	table.Render()
}

func (rpt *Report) renderTurningPoints(w io.Writer) {
	for _, mr := range rpt.Metrics {
		if len(mr.TurningPoints) == 0 {
			continue
		}
		fmt.Fprintf(w, "\nTurning points: %s\n", mr.Metric)
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"Period", "Change", "Significance", "Linked Events"})
		for _, tp := range mr.TurningPoints {
			table.Append([]string{
				tp.Period.String(),
				pct(tp.Change),
				string(tp.Significance),
				fmt.Sprintf("%d", len(tp.EventIDs)),
			})
		}
		table.Render()
	}
}

func (rpt *Report) renderHierarchies(w io.Writer) {
	for _, hr := range rpt.Hierarchies {
		fmt.Fprintf(w, "\nSegments: %s %s (%d warnings)\n", hr.Tree.Dimension, hr.Tree.Period, len(hr.Warnings))
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"Category", "Level", "Revenue", "Pct", "Gross Margin"})
		for _, node := range hr.Tree.Nodes {
			appendNodeRows(table, node)
		}
		table.Render()
	}
}

func appendNodeRows(table *tablewriter.Table, node *rollup.Node) {
	table.Append([]string{
		node.Name,
		fmt.Sprintf("%d", node.Level),
		fmt.Sprintf("%.1fM", float64(node.Revenue)/1e8),
		fmt.Sprintf("%.1f%%", node.Pct),
		fmt.Sprintf("%.1f%%", node.GrossMargin),
	})
	for _, child := range node.Children {
		appendNodeRows(table, child)
	}
}

func (rpt *Report) renderScores(w io.Writer) {
	if len(rpt.Scores) == 0 {
		return
	}
	fmt.Fprintf(w, "\nComposite scores\n")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Score", "Value", "Tier", "Components"})
	for _, score := range rpt.Scores {
		components := ""
		for idx, c := range score.Components {
			if idx > 0 {
				components += ", "
			}
			components += fmt.Sprintf("%s=%.1f", c.Name, c.Raw)
		}
		table.Append([]string{score.Name, fmt.Sprintf("%.0f", score.Value), score.Tier, components})
	}
	table.Render()
}

func pct(x float64) string {
	if !fundamentals.Defined(x) {
		return "-"
	}
	return fmt.Sprintf("%.2f%%", x*100)
}

func frac(x float64) string {
	if !fundamentals.Defined(x) {
		return "-"
	}
	return fmt.Sprintf("%.2f", x)
}
