// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package app

import (
	"fmt"
	"strings"

	"github.com/wneessen/cityweather/internal/weather"
	"github.com/wneessen/cityweather/internal/weather/provider/openweathermap"
)

func (a *App) selectWeatherProvider() (provider weather.Provider, err error) {
	switch strings.ToLower(a.config.Weather.Provider) {
	case "openweathermap":
		provider, err = openweathermap.New(a.http, a.logger, a.config.APIKey, a.config.Weather.BaseURL,
			a.config.Units, a.config.Weather.Timeout)
		if err != nil {
			return provider, fmt.Errorf("failed to create OpenWeatherMap weather provider: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported weather provider: %s", a.config.Weather.Provider)
	}
	return provider, nil
}
