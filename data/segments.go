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

package data

import (
	"context"
	"fmt"

	"github.com/finsight/fin-api/data/database"
	"github.com/finsight/fin-api/period"
	"github.com/finsight/fin-api/rollup"

	"github.com/rs/zerolog/log"
)

// both segment tables share one column layout; only the table name differs
const segmentsSQLFmt = `SELECT period, category_level, category_name,
	COALESCE(parent_category, ''), revenue, revenue_percentage, gross_margin,
	COALESCE(yoy_growth, 0), COALESCE(qoq_growth, 0)
FROM %s WHERE symbol=$1 ORDER BY fiscal_year, fiscal_quarter, category_level, revenue DESC`

func querySegmentRows(ctx context.Context, symbol, table string, dim rollup.Dimension) ([]rollup.Row, error) {
	subLog := log.With().Str("Symbol", symbol).Str("Table", table).Logger()

	trx, err := database.Trx(ctx)
	if err != nil {
		subLog.Error().Stack().Err(err).Msg("could not get transaction when querying segment rows")
		return nil, err
	}

	rows, err := trx.Query(ctx, fmt.Sprintf(segmentsSQLFmt, table), symbol)
	if err != nil {
		subLog.Error().Stack().Err(err).Msg("could not query segment rows")
		if err := trx.Rollback(ctx); err != nil {
			subLog.Error().Stack().Err(err).Msg("could not rollback transaction")
		}
		return nil, err
	}

	res := make([]rollup.Row, 0, 10)
	for rows.Next() {
		var periodStr string
		row := rollup.Row{Symbol: symbol, Dimension: dim}

		err = rows.Scan(&periodStr, &row.Level, &row.Name, &row.Parent, &row.Revenue,
			&row.StoredPct, &row.GrossMargin, &row.YoYGrowth, &row.QoQGrowth)
		if err != nil {
			subLog.Error().Stack().Err(err).Msg("could not scan segment row")
			if err := trx.Rollback(ctx); err != nil {
				subLog.Error().Stack().Err(err).Msg("could not rollback transaction")
			}
			return nil, err
		}

		row.Period, err = period.Parse(periodStr)
		if err != nil {
			subLog.Error().Stack().Err(err).Str("Period", periodStr).Msg("segment row has malformed period")
			if err := trx.Rollback(ctx); err != nil {
				subLog.Error().Stack().Err(err).Msg("could not rollback transaction")
			}
			return nil, err
		}

		res = append(res, row)
	}

	if err := trx.Commit(ctx); err != nil {
		subLog.Warn().Stack().Err(err).Msg("could not commit transaction")
	}
	return res, nil
}
