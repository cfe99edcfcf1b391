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

package fundamentals

import (
	"github.com/finsight/fin-api/period"

	"github.com/rs/zerolog"
)

// FinancialFact is one company-period observation as reported. All currency
// amounts are int64 in a fixed minor unit (cents); there are no floating
// currency fields anywhere in the system. Facts are immutable once ingested
// and identified by (Symbol, Period). A zero denominator field means the
// value was not reported; ratios over it come back undefined.
type FinancialFact struct {
	Symbol string        `json:"symbol"`
	Period period.Period `json:"period"`

	Revenue            int64 `json:"revenue"`
	GrossProfit        int64 `json:"grossProfit"`
	NetIncome          int64 `json:"netIncome"`
	OperatingIncome    int64 `json:"operatingIncome"`
	TotalAssets        int64 `json:"totalAssets"`
	TotalEquity        int64 `json:"totalEquity"`
	TotalDebt          int64 `json:"totalDebt"`
	Cash               int64 `json:"cash"`
	CurrentLiabilities int64 `json:"currentLiabilities"`
	OperatingCashFlow  int64 `json:"operatingCashFlow"`
	FreeCashFlow       int64 `json:"freeCashFlow"`
	SharesOutstanding  int64 `json:"sharesOutstanding"`
}

// Validate reports whether the fact is well-formed enough to compute from.
// Malformed facts are surfaced, never corrected.
func (f *FinancialFact) Validate() error {
	if f.Symbol == "" {
		return ErrMissingSymbol
	}
	if f.Revenue < 0 {
		return ErrNegativeRevenue
	}
	return nil
}

// MarshalZerologObject implement the log marshaller interface for zerolog
func (f *FinancialFact) MarshalZerologObject(e *zerolog.Event) {
	e.Str("Symbol", f.Symbol).Object("Period", f.Period).Int64("Revenue", f.Revenue)
}
