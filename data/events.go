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
	"github.com/finsight/fin-api/events"

	"github.com/rs/zerolog/log"
)

const eventsSQL = `SELECT id, event_date, event_type, title, COALESCE(description, ''),
	impact_type, impact_level, COALESCE(estimated_revenue_impact, 0),
	related_metrics, affected_product_lines, affected_regions
FROM milestone_events WHERE symbol=$1 ORDER BY event_date`

func queryEvents(ctx context.Context, symbol string) ([]events.MilestoneEvent, error) {
	subLog := log.With().Str("Symbol", symbol).Logger()

	trx, err := database.Trx(ctx)
	if err != nil {
		subLog.Error().Stack().Err(err).Msg("could not get transaction when querying events")
		return nil, err
	}

	rows, err := trx.Query(ctx, eventsSQL, symbol)
	if err != nil {
		subLog.Error().Stack().Err(err).Msg("could not query milestone events")
		if err := trx.Rollback(ctx); err != nil {
			subLog.Error().Stack().Err(err).Msg("could not rollback transaction")
		}
		return nil, err
	}

	evts := make([]events.MilestoneEvent, 0, 10)
	for rows.Next() {
		var impact string
		evt := events.MilestoneEvent{Symbol: symbol}

		err = rows.Scan(&evt.ID, &evt.Date, &evt.Type, &evt.Title, &evt.Description,
			&impact, &evt.ImpactLevel, &evt.EstRevenueImpact, &evt.RelatedMetrics,
			&evt.AffectedProductLines, &evt.AffectedRegions)
		if err != nil {
			subLog.Error().Stack().Err(err).Msg("could not scan event row")
			if err := trx.Rollback(ctx); err != nil {
				subLog.Error().Stack().Err(err).Msg("could not rollback transaction")
			}
			return nil, err
		}

		evt.Impact = events.ImpactDirection(impact)
		evts = append(evts, evt)
	}

	if err := trx.Commit(ctx); err != nil {
		subLog.Warn().Stack().Err(err).Msg("could not commit transaction")
	}
	return evts, nil
}
