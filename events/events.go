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
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrBadImpactLevel = errors.New("impact level must be between 1 and 5")
	ErrMissingTitle   = errors.New("milestone event requires a title")
)

// ImpactDirection says which way an event is expected to move the business
type ImpactDirection string

const (
	ImpactPositive ImpactDirection = "positive"
	ImpactNegative ImpactDirection = "negative"
	ImpactNeutral  ImpactDirection = "neutral"
)

// MilestoneEvent is a dated, externally sourced record -- earnings guidance,
// a product launch, an acquisition. Its lifecycle is owned by the external
// data layer; the correlator only reads it.
type MilestoneEvent struct {
	ID                   uuid.UUID       `json:"id"`
	Symbol               string          `json:"symbol"`
	Date                 time.Time       `json:"date"`
	Type                 string          `json:"type"`
	Title                string          `json:"title"`
	Description          string          `json:"description,omitempty"`
	Impact               ImpactDirection `json:"impact"`
	ImpactLevel          int             `json:"impactLevel"`
	EstRevenueImpact     int64           `json:"estRevenueImpact,omitempty"`
	RelatedMetrics       []string        `json:"relatedMetrics,omitempty"`
	AffectedProductLines []string        `json:"affectedProductLines,omitempty"`
	AffectedRegions      []string        `json:"affectedRegions,omitempty"`
}

// Validate checks the fields the correlator relies on
func (e *MilestoneEvent) Validate() error {
	if e.Title == "" {
		return ErrMissingTitle
	}
	if e.ImpactLevel < 1 || e.ImpactLevel > 5 {
		return ErrBadImpactLevel
	}
	return nil
}

// MarshalZerologObject implement the log marshaller interface for zerolog
func (e *MilestoneEvent) MarshalZerologObject(ev *zerolog.Event) {
	ev.Str("ID", e.ID.String()).Str("Symbol", e.Symbol).Time("Date", e.Date).Str("Title", e.Title)
}
