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

package events

import (
	"strings"
	"time"

	"github.com/finsight/fin-api/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DefaultWindow is how far an event date may sit from a turning point's
// period end and still be considered related
const DefaultWindow = 14 * 24 * time.Hour

// Correlate associates turning points with milestone events whose date
// falls within the window around the point's period end and whose related
// metrics mention the point's metric. The association is advisory: the
// returned slice holds copies with EventIDs filled in, the inputs are
// untouched, and an empty association list is a normal outcome.
func Correlate(points []metrics.TurningPoint, evts []MilestoneEvent, window time.Duration) []metrics.TurningPoint {
	if window <= 0 {
		window = DefaultWindow
	}

	out := make([]metrics.TurningPoint, len(points))
	for idx, point := range points {
		out[idx] = point
		out[idx].EventIDs = matchEvents(&point, evts, window)
	}
	return out
}

func matchEvents(point *metrics.TurningPoint, evts []MilestoneEvent, window time.Duration) []uuid.UUID {
	var ids []uuid.UUID

	periodEnd := point.Period.End()
	for _, evt := range evts {
		gap := evt.Date.Sub(periodEnd)
		if gap < 0 {
			gap = -gap
		}
		if gap > window {
			continue
		}
		if !mentionsMetric(&evt, point.Metric) {
			continue
		}
		ids = append(ids, evt.ID)
	}

	if len(ids) > 0 {
		log.Debug().Object("Period", point.Period).Str("Metric", point.Metric).
			Int("NumEvents", len(ids)).Msg("correlated turning point with events")
	}
	return ids
}

func mentionsMetric(evt *MilestoneEvent, metric string) bool {
	for _, related := range evt.RelatedMetrics {
		if strings.EqualFold(related, metric) {
			return true
		}
	}
	return false
}
