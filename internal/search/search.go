// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package search chains the current weather and forecast requests for a city into one payload.
package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/wneessen/cityweather/internal/logger"
	"github.com/wneessen/cityweather/internal/result"
	"github.com/wneessen/cityweather/internal/weather"
)

// Payload is the combined outcome of a successful search.
type Payload struct {
	ID       uuid.UUID
	Current  weather.Current
	Forecast []weather.Sample
}

// Orchestrator runs searches against a weather.Provider.
type Orchestrator struct {
	provider weather.Provider
	logger   *logger.Logger
}

// New returns an Orchestrator for the given provider.
func New(provider weather.Provider, log *logger.Logger) (*Orchestrator, error) {
	if provider == nil {
		return nil, fmt.Errorf("weather provider is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Orchestrator{provider: provider, logger: log}, nil
}

// Search fetches the current weather for city and, only if that succeeded, the forecast for the
// same city. A failure of the first request yields a *WeatherFetchError and the forecast is never
// requested. A failure of the second request yields a *ForecastFetchError and the current weather
// already fetched is dropped. Requests are not retried, and concurrent searches are independent
// of each other.
func (o *Orchestrator) Search(ctx context.Context, city string) result.Result[Payload] {
	id := uuid.New()
	log := o.logger.With(slog.String("search_id", id.String()), slog.String("city", city),
		slog.String("provider", o.provider.Name()))

	if strings.TrimSpace(city) == "" {
		return result.Fail[Payload](&WeatherFetchError{City: city, Err: ErrEmptyCity})
	}

	log.Debug("fetching current weather")
	current := o.fetchCurrent(ctx, city)
	res := result.Then(ctx, current, func(ctx context.Context, cur weather.Current) result.Result[Payload] {
		log.Debug("current weather received, fetching forecast", slog.String("resolved_city", cur.City))
		return result.Then(ctx, o.fetchForecast(ctx, city), func(_ context.Context, samples []weather.Sample) result.Result[Payload] {
			return result.Ok(Payload{ID: id, Current: cur, Forecast: samples})
		})
	})
	if err := res.Err(); err != nil {
		// Then only fails without calling the next step if the context is done, which can
		// only happen once the current weather is known.
		var weatherErr *WeatherFetchError
		var forecastErr *ForecastFetchError
		if !errors.As(err, &weatherErr) && !errors.As(err, &forecastErr) {
			res = result.Fail[Payload](&ForecastFetchError{City: city, Err: err})
		}
		log.Error("search failed", logger.Err(res.Err()))
		return res
	}

	log.Debug("search completed", slog.Int("samples", len(res.Value().Forecast)))
	return res
}

func (o *Orchestrator) fetchCurrent(ctx context.Context, city string) result.Result[weather.Current] {
	current, err := o.provider.Current(ctx, city)
	if err != nil {
		return result.Fail[weather.Current](&WeatherFetchError{City: city, Err: err})
	}
	return result.Ok(current)
}

func (o *Orchestrator) fetchForecast(ctx context.Context, city string) result.Result[[]weather.Sample] {
	samples, err := o.provider.Forecast(ctx, city)
	if err != nil {
		return result.Fail[[]weather.Sample](&ForecastFetchError{City: city, Err: err})
	}
	return result.Ok(samples)
}
