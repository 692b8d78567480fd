// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package navigation carries a search payload from the home view to the detail view as a set of
// text route parameters.
package navigation

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/wneessen/cityweather/internal/search"
	"github.com/wneessen/cityweather/internal/weather"
)

// Route parameter keys
const (
	KeyCity        = "city"
	KeyTemperature = "temp"
	KeyDescription = "description"
	KeyHumidity    = "humidity"
	KeyPressure    = "pressure"
	KeyWindSpeed   = "windSpeed"
	KeyIcon        = "icon"
	KeySunrise     = "sunrise"
	KeySunset      = "sunset"
	KeyVisibility  = "visibility"
	KeyForecast    = "forecast"
)

// Params are the route parameters handed to the detail view. All values are text.
type Params map[string]string

// Details is what the detail view shows after decoding Params.
type Details struct {
	Current  weather.Current      `json:"current"`
	Forecast []weather.DailyEntry `json:"forecast"`
}

// MalformedPayloadError is returned by Decode when the forecast parameter is not valid JSON. The
// Details returned alongside it are still usable and carry an empty forecast.
type MalformedPayloadError struct {
	Err error
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("malformed forecast payload: %s", e.Err)
}

func (e *MalformedPayloadError) Unwrap() error {
	return e.Err
}

// listItem mirrors an entry of the OWM forecast list, which is what the forecast parameter holds.
type listItem struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []listCondition `json:"weather"`
}

type listCondition struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Encode turns a search payload into route parameters. The forecast samples are serialized as a
// JSON list.
func Encode(payload search.Payload) (Params, error) {
	items := make([]listItem, 0, len(payload.Forecast))
	for _, sample := range payload.Forecast {
		item := listItem{Dt: sample.Timestamp}
		item.Main.Temp = sample.Temperature
		item.Weather = []listCondition{{Description: sample.Description, Icon: sample.Icon}}
		items = append(items, item)
	}
	forecast, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize forecast: %w", err)
	}

	cur := payload.Current
	return Params{
		KeyCity:        cur.City,
		KeyTemperature: formatFloat(cur.Temperature),
		KeyDescription: cur.Description,
		KeyHumidity:    formatFloat(cur.Humidity),
		KeyPressure:    formatFloat(cur.Pressure),
		KeyWindSpeed:   formatFloat(cur.WindSpeed),
		KeyIcon:        cur.Icon,
		KeySunrise:     strconv.FormatInt(cur.Sunrise, 10),
		KeySunset:      strconv.FormatInt(cur.Sunset, 10),
		KeyVisibility:  formatFloat(cur.Visibility),
		KeyForecast:    string(forecast),
	}, nil
}

// Decode re-parses the route parameters into Details and reduces the forecast to one entry per
// calendar day in loc. A numeric parameter that does not parse is an error. A missing forecast
// yields an empty forecast, a malformed one additionally returns a *MalformedPayloadError.
func Decode(params Params, loc *time.Location) (Details, error) {
	details := Details{Forecast: make([]weather.DailyEntry, 0)}
	cur := weather.Current{
		City:        params[KeyCity],
		Description: params[KeyDescription],
		Icon:        params[KeyIcon],
	}

	floats := []struct {
		key    string
		target *float64
	}{
		{KeyTemperature, &cur.Temperature},
		{KeyHumidity, &cur.Humidity},
		{KeyPressure, &cur.Pressure},
		{KeyWindSpeed, &cur.WindSpeed},
		{KeyVisibility, &cur.Visibility},
	}
	for _, f := range floats {
		val, err := strconv.ParseFloat(params[f.key], 64)
		if err != nil {
			return details, fmt.Errorf("invalid %s parameter: %w", f.key, err)
		}
		*f.target = val
	}
	ints := []struct {
		key    string
		target *int64
	}{
		{KeySunrise, &cur.Sunrise},
		{KeySunset, &cur.Sunset},
	}
	for _, i := range ints {
		val, err := strconv.ParseInt(params[i.key], 10, 64)
		if err != nil {
			return details, fmt.Errorf("invalid %s parameter: %w", i.key, err)
		}
		*i.target = val
	}
	details.Current = cur

	blob, ok := params[KeyForecast]
	if !ok {
		return details, nil
	}
	var items []listItem
	if err := json.Unmarshal([]byte(blob), &items); err != nil {
		return details, &MalformedPayloadError{Err: err}
	}

	samples := make([]weather.Sample, 0, len(items))
	for _, item := range items {
		sample := weather.Sample{Timestamp: item.Dt, Temperature: item.Main.Temp}
		if len(item.Weather) > 0 {
			sample.Description = item.Weather[0].Description
			sample.Icon = item.Weather[0].Icon
		}
		samples = append(samples, sample)
	}
	details.Forecast = weather.Daily(samples, loc)

	return details, nil
}

func formatFloat(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}
