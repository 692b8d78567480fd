// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package openweathermap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	whttp "github.com/wneessen/cityweather/internal/http"
	"github.com/wneessen/cityweather/internal/logger"
	"github.com/wneessen/cityweather/internal/weather"
)

const (
	name            = "openweathermap"
	DefaultEndpoint = "https://api.openweathermap.org/data/2.5"
)

var ErrNoAPIKey = errors.New("no OpenWeatherMap API key configured")

// OpenWeatherMap queries the OpenWeatherMap 2.5 API by city name.
type OpenWeatherMap struct {
	apiKey   string
	endpoint string
	timeout  time.Duration
	units    string
	log      *logger.Logger
	http     *whttp.Client
}

type condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// apiError is the document OWM returns for failed requests. Cod and message change their JSON
// type between endpoints (the forecast endpoint sends "message": 0 on success), so only a string
// message is evaluated.
type apiError struct {
	Message json.RawMessage `json:"message"`
}

type currentResponse struct {
	apiError
	Name    string      `json:"name"`
	Weather []condition `json:"weather"`
	Main    struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
		Pressure float64 `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Sys struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
	Visibility float64 `json:"visibility"`
}

type forecastResponse struct {
	apiError
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []condition `json:"weather"`
	} `json:"list"`
}

// New returns an OpenWeatherMap provider. An empty endpoint selects DefaultEndpoint and a
// zero timeout selects the HTTP client default. A missing API key is not an error here; the
// API rejects the request and the fetch fails.
func New(http *whttp.Client, log *logger.Logger, apiKey, endpoint, units string, timeout time.Duration) (*OpenWeatherMap, error) {
	if http == nil {
		return nil, fmt.Errorf("http client is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if units == "" {
		units = "metric"
	}

	return &OpenWeatherMap{
		apiKey:   apiKey,
		endpoint: strings.TrimRight(endpoint, "/"),
		timeout:  timeout,
		units:    strings.ToLower(units),
		log:      log,
		http:     http,
	}, nil
}

func (o *OpenWeatherMap) Name() string {
	return name
}

// Current fetches the current weather for city.
func (o *OpenWeatherMap) Current(ctx context.Context, city string) (weather.Current, error) {
	res := new(currentResponse)
	if err := o.get(ctx, "weather", city, res); err != nil {
		return weather.Current{}, err
	}

	current := weather.Current{
		City:        res.Name,
		Temperature: res.Main.Temp,
		Humidity:    res.Main.Humidity,
		Pressure:    res.Main.Pressure,
		WindSpeed:   res.Wind.Speed,
		Sunrise:     res.Sys.Sunrise,
		Sunset:      res.Sys.Sunset,
		Visibility:  res.Visibility,
	}
	if len(res.Weather) > 0 {
		current.Description = res.Weather[0].Description
		current.Icon = res.Weather[0].Icon
	}
	return current, nil
}

// Forecast fetches the 5 day / 3 hour forecast for city. The samples keep the order of the
// API response, which is chronological.
func (o *OpenWeatherMap) Forecast(ctx context.Context, city string) ([]weather.Sample, error) {
	res := new(forecastResponse)
	if err := o.get(ctx, "forecast", city, res); err != nil {
		return nil, err
	}

	samples := make([]weather.Sample, 0, len(res.List))
	for _, item := range res.List {
		sample := weather.Sample{
			Timestamp:   item.Dt,
			Temperature: item.Main.Temp,
		}
		if len(item.Weather) > 0 {
			sample.Description = item.Weather[0].Description
			sample.Icon = item.Weather[0].Icon
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

// get performs a query against the given API path and decodes the result into target, which
// must embed apiError.
func (o *OpenWeatherMap) get(ctx context.Context, path, city string, target interface{ message() string }) error {
	query := url.Values{}
	query.Set("q", city)
	query.Set("appid", o.apiKey)
	query.Set("units", o.units)

	code, err := o.http.GetJSON(ctx, o.endpoint+"/"+path, query, target, o.timeout)
	if err != nil {
		return fmt.Errorf("failed to retrieve %s data from OpenWeatherMap API: %w", path, err)
	}
	if code != http.StatusOK {
		msg := target.message()
		if msg == "" {
			msg = http.StatusText(code)
		}
		if o.apiKey == "" {
			return fmt.Errorf("OpenWeatherMap API returned non-positive response code %d (%s): %w", code, msg,
				ErrNoAPIKey)
		}
		return fmt.Errorf("OpenWeatherMap API returned non-positive response code %d: %s", code, msg)
	}
	return nil
}

func (e *apiError) message() string {
	var msg string
	if err := json.Unmarshal(e.Message, &msg); err != nil {
		return ""
	}
	return msg
}
