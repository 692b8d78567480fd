// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package weather

import (
	"context"
	"time"
)

// Provider is implemented by each weather API backend.
type Provider interface {
	Name() string
	Current(ctx context.Context, city string) (Current, error)
	Forecast(ctx context.Context, city string) ([]Sample, error)
}

// Current holds the current conditions for a city as reported by a Provider. Temperature is
// in °C, Humidity in %, Pressure in hPa, WindSpeed in m/s, Visibility in meters. Sunrise and
// Sunset are Unix seconds.
type Current struct {
	City        string  `json:"city"`
	Temperature float64 `json:"temperature"`
	Description string  `json:"description"`
	Humidity    float64 `json:"humidity"`
	Pressure    float64 `json:"pressure"`
	WindSpeed   float64 `json:"wind_speed"`
	Icon        string  `json:"icon"`
	Sunrise     int64   `json:"sunrise"`
	Sunset      int64   `json:"sunset"`
	Visibility  float64 `json:"visibility"`
}

// SunriseTime returns the sunrise as time.Time in the given location.
func (c Current) SunriseTime(loc *time.Location) time.Time {
	return unixIn(c.Sunrise, loc)
}

// SunsetTime returns the sunset as time.Time in the given location.
func (c Current) SunsetTime(loc *time.Location) time.Time {
	return unixIn(c.Sunset, loc)
}

// Sample is a single point of a forecast time series.
type Sample struct {
	Timestamp   int64   `json:"timestamp"`
	Temperature float64 `json:"temperature"`
	Icon        string  `json:"icon"`
	Description string  `json:"description"`
}

// Time returns the sample timestamp in the given location.
func (s Sample) Time(loc *time.Location) time.Time {
	return unixIn(s.Timestamp, loc)
}

func unixIn(sec int64, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(sec, 0).In(loc)
}
