// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package weather

import (
	"fmt"
	"time"
)

// Date is a calendar day without a time component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the calendar date of t in t's location.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// String returns the date in ISO 8601 notation.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// MarshalText encodes the date in ISO 8601 notation, so that JSON output carries "2025-06-01"
// instead of the struct fields.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText parses a date in ISO 8601 notation.
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := time.Parse(time.DateOnly, string(text))
	if err != nil {
		return fmt.Errorf("failed to parse date: %w", err)
	}
	*d = NewDate(parsed)
	return nil
}

// DailyEntry is the representative forecast Sample for one calendar date.
type DailyEntry struct {
	Sample
	Date Date `json:"date"`
}

// Daily reduces a chronological series of samples to one entry per calendar date. The date of
// each sample is computed in loc (time.Local if nil). The first sample seen for a date is kept
// and all later samples of that date are dropped, so the result keeps the order of first
// occurrence. No values are aggregated.
func Daily(samples []Sample, loc *time.Location) []DailyEntry {
	entries := make([]DailyEntry, 0, len(samples)/8+1)
	seen := make(map[Date]struct{}, len(samples)/8+1)
	for _, sample := range samples {
		date := NewDate(sample.Time(loc))
		if _, ok := seen[date]; ok {
			continue
		}
		seen[date] = struct{}{}
		entries = append(entries, DailyEntry{Sample: sample, Date: date})
	}
	return entries
}
