// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import "github.com/vorlif/spreak/localize"

// FallbackIcon is shown for condition codes not present in ConditionIcons.
const FallbackIcon = "🌈"

// ConditionIcons maps OpenWeatherMap icon codes to emoji. "d" codes are for day time, "n" codes
// for night time.
var ConditionIcons = map[string]string{
	// Clear sky
	"01d": "☀️",
	"01n": "🌙",
	// Few clouds
	"02d": "⛅",
	// Scattered clouds
	"03d": "☁️",
	"03n": "☁️",
	// Broken clouds
	"04d": "🌥️",
	"04n": "🌥️",
	// Shower rain
	"09d": "🌧️",
	"09n": "🌧️",
	// Rain
	"10d": "🌦️",
	"10n": "🌦️",
	// Thunderstorm
	"11d": "⛈️",
	"11n": "⛈️",
	// Snow
	"13d": "❄️",
	"13n": "❄️",
	// Mist
	"50d": "🌫️",
	"50n": "🌫️",
}

// MoonPhaseIcon is a map where moon phase names are keys and their corresponding emoji representations are values.
var MoonPhaseIcon = map[string]string{
	"New Moon":        "🌑",
	"Waxing Crescent": "🌒",
	"First Quarter":   "🌓",
	"Waxing Gibbous":  "🌔",
	"Full Moon":       "🌕",
	"Waning Gibbous":  "🌖",
	"Third Quarter":   "🌗",
	"Waning Crescent": "🌘",
}

// i18nVars holds the message IDs of all strings the templates may pass to loc.
var i18nVars = map[string]localize.MsgID{
	"Weather Details": "Weather Details",
	"City":            "City",
	"Temperature":     "Temperature",
	"Condition":       "Condition",
	"Humidity":        "Humidity",
	"Pressure":        "Pressure",
	"Wind speed":      "Wind speed",
	"Sunrise":         "Sunrise",
	"Sunset":          "Sunset",
	"Visibility":      "Visibility",
	"Moon phase":      "Moon phase",
	"5-Day Forecast":  "5-Day Forecast",
	"Monday":          "Monday",
	"Tuesday":         "Tuesday",
	"Wednesday":       "Wednesday",
	"Thursday":        "Thursday",
	"Friday":          "Friday",
	"Saturday":        "Saturday",
	"Sunday":          "Sunday",
	"New Moon":        "New Moon",
	"Waxing Crescent": "Waxing Crescent",
	"First Quarter":   "First Quarter",
	"Waxing Gibbous":  "Waxing Gibbous",
	"Full Moon":       "Full Moon",
	"Waning Gibbous":  "Waning Gibbous",
	"Third Quarter":   "Third Quarter",
	"Waning Crescent": "Waning Crescent",
	"Theme":           "Theme",
	"light":           "light",
	"dark":            "dark",
}

// Alert messages
const (
	AlertCityNotFound   localize.MsgID = "City not found. Please try again."
	AlertForecastFailed localize.MsgID = "Failed to fetch 5-day forecast. Please try again."
)

// ConditionIcon returns the emoji for an OpenWeatherMap icon code, or FallbackIcon for unknown
// codes.
func ConditionIcon(code string) string {
	if icon, ok := ConditionIcons[code]; ok {
		return icon
	}
	return FallbackIcon
}
