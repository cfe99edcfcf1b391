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

// Package rollup builds validated two-level category trees from the flat
// segment rows the crawler delivers (product lines and geographic regions
// share the same shape). Stored percentages are advisory; recomputed values
// are authoritative, and disagreements beyond tolerance come back as
// warnings next to the best-effort tree rather than failing the build.
package rollup

import (
	"fmt"
	"math"
	"sort"

	"github.com/finsight/fin-api/period"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/floats"
)

// Dimension names which segment table a tree was built from
type Dimension string

const (
	DimensionProduct   Dimension = "product"
	DimensionGeography Dimension = "geography"
)

// Row is the flat input shape: one category observation for one period.
// Level-2 rows declare their parent by category name. StoredPct, margins,
// and growth rates arrive in percentage points (28.5 means 28.5%), the way
// the segment tables record them.
type Row struct {
	Symbol      string        `json:"symbol"`
	Period      period.Period `json:"period"`
	Dimension   Dimension     `json:"dimension"`
	Level       int           `json:"level"`
	Name        string        `json:"name"`
	Parent      string        `json:"parent,omitempty"`
	Revenue     int64         `json:"revenue"`
	StoredPct   float64       `json:"storedPct"`
	GrossMargin float64       `json:"grossMargin"`
	YoYGrowth   float64       `json:"yoyGrowth"`
	QoQGrowth   float64       `json:"qoqGrowth"`
}

// Node is one category in the built tree. Level-1 nodes own their children
// directly -- the two-level shape is structural, not a matter of id lookups.
type Node struct {
	Name        string  `json:"name"`
	Level       int     `json:"level"`
	Revenue     int64   `json:"revenue"`
	Pct         float64 `json:"pct"`
	GrossMargin float64 `json:"grossMargin"`
	YoYGrowth   float64 `json:"yoyGrowth"`
	QoQGrowth   float64 `json:"qoqGrowth"`
	Children    []*Node `json:"children,omitempty"`
}

// Tree is a validated rollup for one (company, period, dimension)
type Tree struct {
	Symbol       string        `json:"symbol"`
	Period       period.Period `json:"period"`
	Dimension    Dimension     `json:"dimension"`
	TotalRevenue int64         `json:"totalRevenue"`
	Nodes        []*Node       `json:"nodes"`
}

// Warning records a tolerance violation. Warnings accompany the computed
// tree; the caller decides whether to accept or reject it.
type Warning struct {
	Category string  `json:"category"`
	Field    string  `json:"field"`
	Stored   float64 `json:"stored"`
	Computed float64 `json:"computed"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s stored=%.2f computed=%.2f", w.Category, w.Field, w.Stored, w.Computed)
}

// Config carries the rollup tolerances. PctTolerance is in percentage
// points; RevenueTolerance is the allowed child-sum overshoot as a fraction
// of parent revenue.
type Config struct {
	PctTolerance     float64
	RevenueTolerance float64
}

// DefaultConfig returns the standard half-point tolerances
func DefaultConfig() Config {
	return Config{
		PctTolerance:     0.5,
		RevenueTolerance: 0.005,
	}
}

func (cfg *Config) Validate() error {
	if cfg.PctTolerance < 0 || cfg.RevenueTolerance < 0 {
		return ErrBadTolerance
	}
	return nil
}

// Build assembles the two-level tree from flat rows and validates it against
// totalRevenue (the company's reported revenue for the period, minor units).
// Orphan level-2 rows are an error; tolerance drift produces warnings and
// the recomputed value wins.
func Build(rows []Row, totalRevenue int64, cfg Config) (*Tree, []Warning, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	if totalRevenue <= 0 {
		return nil, nil, ErrNoTotalRevenue
	}
	if len(rows) == 0 {
		return &Tree{}, []Warning{}, nil
	}

	first := rows[0]
	for _, row := range rows {
		if err := validateRow(&row); err != nil {
			return nil, nil, err
		}
		if !row.Period.Equal(first.Period) || row.Dimension != first.Dimension || row.Symbol != first.Symbol {
			return nil, nil, ErrMixedPeriods
		}
	}

	warnings := []Warning{}
	tree := &Tree{
		Symbol:       first.Symbol,
		Period:       first.Period,
		Dimension:    first.Dimension,
		TotalRevenue: totalRevenue,
		Nodes:        make([]*Node, 0, len(rows)),
	}

	parents := make(map[string]*Node)
	for _, row := range rows {
		if row.Level != 1 {
			continue
		}
		node := newNode(&row, totalRevenue, cfg, &warnings)
		parents[row.Name] = node
		tree.Nodes = append(tree.Nodes, node)
	}

	for _, row := range rows {
		if row.Level != 2 {
			continue
		}
		parent, ok := parents[row.Parent]
		if !ok {
			return nil, nil, fmt.Errorf("%w: %q declares parent %q", ErrOrphanCategory, row.Name, row.Parent)
		}
		parent.Children = append(parent.Children, newNode(&row, totalRevenue, cfg, &warnings))
	}

	for _, parent := range tree.Nodes {
		rollUpParent(parent, cfg, &warnings)
	}

	checkLevelOnePct(tree, cfg, &warnings)
	sortNodes(tree.Nodes)
	for _, parent := range tree.Nodes {
		sortNodes(parent.Children)
	}

	if len(warnings) > 0 {
		log.Warn().Str("Symbol", tree.Symbol).Object("Period", tree.Period).
			Int("NumWarnings", len(warnings)).Msg("rollup tolerances exceeded")
	}

	return tree, warnings, nil
}

func validateRow(row *Row) error {
	if row.Level != 1 && row.Level != 2 {
		return fmt.Errorf("%w: %q has level %d", ErrBadLevel, row.Name, row.Level)
	}
	if row.Revenue < 0 {
		return fmt.Errorf("%w: %q", ErrNegativeRevenue, row.Name)
	}
	for _, val := range []float64{row.StoredPct, row.GrossMargin, row.YoYGrowth, row.QoQGrowth} {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return fmt.Errorf("%w: %q", ErrNonFiniteValue, row.Name)
		}
	}
	return nil
}

// newNode recomputes the node percentage from revenue and flags stored
// values that drift past tolerance
func newNode(row *Row, totalRevenue int64, cfg Config, warnings *[]Warning) *Node {
	pct := 100 * float64(row.Revenue) / float64(totalRevenue)
	if row.StoredPct != 0 && math.Abs(row.StoredPct-pct) > cfg.PctTolerance {
		*warnings = append(*warnings, Warning{
			Category: row.Name,
			Field:    "revenue_percentage",
			Stored:   row.StoredPct,
			Computed: pct,
		})
	}

	return &Node{
		Name:        row.Name,
		Level:       row.Level,
		Revenue:     row.Revenue,
		Pct:         pct,
		GrossMargin: row.GrossMargin,
		YoYGrowth:   row.YoYGrowth,
		QoQGrowth:   row.QoQGrowth,
	}
}

// rollUpParent recomputes the parent's margin as the revenue-weighted mean
// of its children and checks the child revenue sum against the parent
func rollUpParent(parent *Node, cfg Config, warnings *[]Warning) {
	if len(parent.Children) == 0 {
		return
	}

	revs := make([]float64, len(parent.Children))
	margins := make([]float64, len(parent.Children))
	for idx, child := range parent.Children {
		revs[idx] = float64(child.Revenue)
		margins[idx] = child.GrossMargin
	}

	childSum := floats.Sum(revs)
	if childSum > 0 {
		parent.GrossMargin = floats.Dot(revs, margins) / childSum
	}

	overshoot := childSum - float64(parent.Revenue)
	if overshoot > cfg.RevenueTolerance*float64(parent.Revenue) {
		*warnings = append(*warnings, Warning{
			Category: parent.Name,
			Field:    "child_revenue_sum",
			Stored:   childSum,
			Computed: float64(parent.Revenue),
		})
	}
}

// checkLevelOnePct verifies the level-1 percentages cover the company total
func checkLevelOnePct(tree *Tree, cfg Config, warnings *[]Warning) {
	if len(tree.Nodes) == 0 {
		return
	}

	sum := 0.0
	for _, node := range tree.Nodes {
		sum += node.Pct
	}

	if math.Abs(sum-100) > cfg.PctTolerance {
		*warnings = append(*warnings, Warning{
			Category: "total",
			Field:    "level1_percentage_sum",
			Stored:   sum,
			Computed: 100,
		})
	}
}

// sortNodes orders by revenue descending, ties by name, for stable output
func sortNodes(nodes []*Node) {
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Revenue != nodes[j].Revenue {
			return nodes[i].Revenue > nodes[j].Revenue
		}
		return nodes[i].Name < nodes[j].Name
	})
}

// Flatten is the inverse of Build: it emits the tree as flat rows with the
// recomputed percentages, suitable for re-ingestion. Build(Flatten(t)) is
// idempotent within tolerance.
func (t *Tree) Flatten() []Row {
	rows := make([]Row, 0, len(t.Nodes)*2)
	for _, parent := range t.Nodes {
		rows = append(rows, nodeRow(t, parent, ""))
		for _, child := range parent.Children {
			rows = append(rows, nodeRow(t, child, parent.Name))
		}
	}
	return rows
}

func nodeRow(t *Tree, node *Node, parent string) Row {
	return Row{
		Symbol:      t.Symbol,
		Period:      t.Period,
		Dimension:   t.Dimension,
		Level:       node.Level,
		Name:        node.Name,
		Parent:      parent,
		Revenue:     node.Revenue,
		StoredPct:   node.Pct,
		GrossMargin: node.GrossMargin,
		YoYGrowth:   node.YoYGrowth,
		QoQGrowth:   node.QoQGrowth,
	}
}
