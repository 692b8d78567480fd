// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package search

import (
	"errors"
	"fmt"
)

// ErrEmptyCity is returned for a search without a city name.
var ErrEmptyCity = errors.New("city name must not be empty")

// WeatherFetchError is returned when the current weather for a city could not be fetched.
type WeatherFetchError struct {
	City string
	Err  error
}

func (e *WeatherFetchError) Error() string {
	return fmt.Sprintf("failed to fetch current weather for %q: %s", e.City, e.Err)
}

func (e *WeatherFetchError) Unwrap() error {
	return e.Err
}

// ForecastFetchError is returned when the current weather was fetched but the forecast was not.
type ForecastFetchError struct {
	City string
	Err  error
}

func (e *ForecastFetchError) Error() string {
	return fmt.Sprintf("failed to fetch forecast for %q: %s", e.City, e.Err)
}

func (e *ForecastFetchError) Unwrap() error {
	return e.Err
}
