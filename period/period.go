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

package period

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var (
	ErrInvalidPeriod = errors.New("period must be of the form Q<1-4>-<year>")
)

// Period identifies one fiscal quarter, e.g. Q3-2024. The zero value is not
// a valid period; construct via Parse or New.
type Period struct {
	Year    int
	Quarter int
}

// New builds a period, validating the quarter number
func New(year, quarter int) (Period, error) {
	if quarter < 1 || quarter > 4 || year < 1000 || year > 9999 {
		return Period{}, ErrInvalidPeriod
	}
	return Period{Year: year, Quarter: quarter}, nil
}

// Parse converts a period string of the form Q<1-4>-<year> into a Period
func Parse(s string) (Period, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 || len(parts[0]) != 2 || parts[0][0] != 'Q' {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}

	quarter, err := strconv.Atoi(parts[0][1:])
	if err != nil {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}

	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}

	p, err := New(year, quarter)
	if err != nil {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	return p, nil
}

func (p Period) String() string {
	return fmt.Sprintf("Q%d-%d", p.Quarter, p.Year)
}

// index positions quarters on a single monotonic axis so periods can be
// compared and offset with plain integer math
func (p Period) index() int {
	return p.Year*4 + p.Quarter - 1
}

func (p Period) Equal(other Period) bool {
	return p.Year == other.Year && p.Quarter == other.Quarter
}

func (p Period) Before(other Period) bool {
	return p.index() < other.index()
}

func (p Period) After(other Period) bool {
	return p.index() > other.index()
}

// Next returns the quarter immediately following p
func (p Period) Next() Period {
	return p.AddQuarters(1)
}

// AddQuarters offsets p by n quarters; n may be negative
func (p Period) AddQuarters(n int) Period {
	idx := p.index() + n
	return Period{Year: idx / 4, Quarter: idx%4 + 1}
}

// QuartersBetween returns the number of quarters from p to other
// (positive when other is later)
func (p Period) QuartersBetween(other Period) int {
	return other.index() - p.index()
}

// End returns the last calendar day of the quarter in UTC. Fiscal calendars
// that deviate from the calendar quarter are the upstream crawler's problem;
// rows arrive already tagged with calendar quarters.
func (p Period) End() time.Time {
	month := time.Month(p.Quarter * 3)
	day := 31
	switch month {
	case time.June, time.September:
		day = 30
	}
	return time.Date(p.Year, month, day, 0, 0, 0, 0, time.UTC)
}

// MarshalText implements encoding.TextMarshaler so periods serialize as
// their Q<q>-<year> form
func (p Period) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *Period) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// MarshalZerologObject implement the log marshaller interface for zerolog
func (p Period) MarshalZerologObject(e *zerolog.Event) {
	e.Int("Year", p.Year).Int("Quarter", p.Quarter)
}
