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

// Package data loads the raw rows the analytics engine computes over. It is
// the storage collaborator the core depends on: facts, segment rows, and
// milestone events come out of PostgreSQL exactly as the external crawler
// wrote them. Nothing here derives values; derivation is the job of the
// fundamentals, metrics, rollup, scoring, and events packages.
package data

import (
	"context"
	"fmt"

	"github.com/finsight/fin-api/common"
	"github.com/finsight/fin-api/events"
	"github.com/finsight/fin-api/fundamentals"
	"github.com/finsight/fin-api/rollup"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

// Manager loads raw rows keyed by company symbol. Because facts are
// immutable once reported, loaded rows are cached in the process-local LRU;
// a cache hit returns the same rows a query would.
type Manager struct {
	// DisableCache bypasses the LRU, mainly for tests
	DisableCache bool
}

func NewManager() *Manager {
	return &Manager{}
}

// GetFacts returns all quarterly financial facts for a company ordered by
// period
func (m *Manager) GetFacts(ctx context.Context, symbol string) ([]fundamentals.FinancialFact, error) {
	if symbol == "" {
		return nil, ErrEmptySymbol
	}

	cacheKey := fmt.Sprintf("facts:%s", symbol)
	if !m.DisableCache {
		var facts []fundamentals.FinancialFact
		if ok := cacheLookup(cacheKey, &facts); ok {
			return facts, nil
		}
	}

	facts, err := queryFacts(ctx, symbol)
	if err != nil {
		return nil, err
	}

	if !m.DisableCache {
		cacheStore(cacheKey, facts)
	}
	return facts, nil
}

// GetSegmentRows returns the flat category rows for one company, period and
// dimension, ready for the rollup engine
func (m *Manager) GetSegmentRows(ctx context.Context, symbol string, dim rollup.Dimension) ([]rollup.Row, error) {
	if symbol == "" {
		return nil, ErrEmptySymbol
	}

	var table string
	switch dim {
	case rollup.DimensionProduct:
		table = "product_line_revenue"
	case rollup.DimensionGeography:
		table = "geographic_distribution"
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDimension, dim)
	}

	cacheKey := fmt.Sprintf("segments:%s:%s", symbol, dim)
	if !m.DisableCache {
		var rows []rollup.Row
		if ok := cacheLookup(cacheKey, &rows); ok {
			return rows, nil
		}
	}

	rows, err := querySegmentRows(ctx, symbol, table, dim)
	if err != nil {
		return nil, err
	}

	if !m.DisableCache {
		cacheStore(cacheKey, rows)
	}
	return rows, nil
}

// GetEvents returns the milestone events recorded for a company ordered by
// event date
func (m *Manager) GetEvents(ctx context.Context, symbol string) ([]events.MilestoneEvent, error) {
	if symbol == "" {
		return nil, ErrEmptySymbol
	}

	cacheKey := fmt.Sprintf("events:%s", symbol)
	if !m.DisableCache {
		var evts []events.MilestoneEvent
		if ok := cacheLookup(cacheKey, &evts); ok {
			return evts, nil
		}
	}

	evts, err := queryEvents(ctx, symbol)
	if err != nil {
		return nil, err
	}

	if !m.DisableCache {
		cacheStore(cacheKey, evts)
	}
	return evts, nil
}

func cacheLookup(key string, dest any) bool {
	raw, err := common.CacheGet(key)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		log.Warn().Err(err).Str("Key", key).Msg("could not decode cached rows")
		return false
	}
	return true
}

func cacheStore(key string, val any) {
	raw, err := json.Marshal(val)
	if err != nil {
		log.Warn().Err(err).Str("Key", key).Msg("could not encode rows for cache")
		return
	}
	if err := common.CacheSet(key, raw); err != nil {
		log.Warn().Err(err).Str("Key", key).Msg("could not cache rows")
	}
}
