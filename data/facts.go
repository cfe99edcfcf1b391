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

	"github.com/finsight/fin-api/data/database"
	"github.com/finsight/fin-api/fundamentals"
	"github.com/finsight/fin-api/period"

	"github.com/rs/zerolog/log"
)

const factsSQL = `SELECT period, revenue, gross_profit, net_income, operating_income,
	total_assets, total_equity, total_debt, cash, current_liabilities,
	operating_cash_flow, free_cash_flow, shares_outstanding
FROM quarterly_financials WHERE symbol=$1 ORDER BY fiscal_year, fiscal_quarter`

func queryFacts(ctx context.Context, symbol string) ([]fundamentals.FinancialFact, error) {
	subLog := log.With().Str("Symbol", symbol).Logger()

	trx, err := database.Trx(ctx)
	if err != nil {
		subLog.Error().Stack().Err(err).Msg("could not get transaction when querying facts")
		return nil, err
	}

	rows, err := trx.Query(ctx, factsSQL, symbol)
	if err != nil {
		subLog.Error().Stack().Err(err).Msg("could not query quarterly financials")
		if err := trx.Rollback(ctx); err != nil {
			subLog.Error().Stack().Err(err).Msg("could not rollback transaction")
		}
		return nil, err
	}

	facts := make([]fundamentals.FinancialFact, 0, 20)
	for rows.Next() {
		var periodStr string
		fact := fundamentals.FinancialFact{Symbol: symbol}

		err = rows.Scan(&periodStr, &fact.Revenue, &fact.GrossProfit, &fact.NetIncome,
			&fact.OperatingIncome, &fact.TotalAssets, &fact.TotalEquity, &fact.TotalDebt,
			&fact.Cash, &fact.CurrentLiabilities, &fact.OperatingCashFlow,
			&fact.FreeCashFlow, &fact.SharesOutstanding)
		if err != nil {
			subLog.Error().Stack().Err(err).Msg("could not scan fact row")
			if err := trx.Rollback(ctx); err != nil {
				subLog.Error().Stack().Err(err).Msg("could not rollback transaction")
			}
			return nil, err
		}

		fact.Period, err = period.Parse(periodStr)
		if err != nil {
			subLog.Error().Stack().Err(err).Str("Period", periodStr).Msg("fact row has malformed period")
			if err := trx.Rollback(ctx); err != nil {
				subLog.Error().Stack().Err(err).Msg("could not rollback transaction")
			}
			return nil, err
		}

		facts = append(facts, fact)
	}

	if len(facts) == 0 {
		if err := trx.Rollback(ctx); err != nil {
			subLog.Error().Stack().Err(err).Msg("could not rollback transaction")
		}
		return nil, ErrNotFound
	}

	if err := trx.Commit(ctx); err != nil {
		subLog.Warn().Stack().Err(err).Msg("could not commit transaction")
	}
	return facts, nil
}
