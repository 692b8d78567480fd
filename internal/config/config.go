// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kkyr/fig"
)

const (
	configEnv = "CITYWEATHER"
	// apiKeyEnv is the variable the API key is read from if no key is configured otherwise.
	apiKeyEnv = "WEATHER_API_KEY"
	// dotEnvFile is loaded into the environment before the config is read. Variables that are
	// already set are not overwritten.
	dotEnvFile = ".env"

	OutputText = "text"
	OutputJSON = "json"

	DefaultHomeTpl = "{{fg}}{{pad (icon .Current.Icon)}}{{.Current.City}}: {{.Current.Temperature}}{{.TempUnit}}{{reset}}\n" +
		"{{muted}}{{.Current.Description}}{{reset}}\n"
	DefaultDetailsTpl = "{{accent}}{{loc \"Weather Details\"}}{{reset}}\n" +
		"{{fg}}🌍 {{loc \"City\"}}: {{.Current.City}}\n" +
		"🌡️ {{loc \"Temperature\"}}: {{.Current.Temperature}}{{.TempUnit}}\n" +
		"☁️ {{loc \"Condition\"}}: {{.Current.Description}}\n" +
		"💧 {{loc \"Humidity\"}}: {{.Current.Humidity}}%\n" +
		"📊 {{loc \"Pressure\"}}: {{.Current.Pressure}} hPa\n" +
		"💨 {{loc \"Wind speed\"}}: {{.Current.WindSpeed}} {{.SpeedUnit}}\n" +
		"🌅 {{loc \"Sunrise\"}}: {{localizedTime .Sunrise}}\n" +
		"🌇 {{loc \"Sunset\"}}: {{localizedTime .Sunset}}\n" +
		"👀 {{loc \"Visibility\"}}: {{km .Current.Visibility}} km\n" +
		"{{pad .MoonPhaseIcon}}{{loc \"Moon phase\"}}: {{loc .MoonPhase}}\n" +
		"{{icon .Current.Icon}}{{reset}}\n\n" +
		"{{accent}}{{loc \"5-Day Forecast\"}}{{reset}}\n" +
		"{{range .Forecast}}{{template \"forecast_entry\" .}}{{end}}"
	DefaultForecastEntryTpl = "{{fg}}{{loc (weekday .When)}}, {{localizedDate .When}}: " +
		"{{.Temperature}}{{.TempUnit}} {{icon .Icon}}{{reset}}\n" +
		"{{muted}}  {{.Description}}{{reset}}\n"
)

// Config represents the application's configuration structure.
type Config struct {
	APIKey string `fig:"apikey"`
	// Allowed values: metric, imperial
	Units    string     `fig:"units" default:"metric"`
	Locale   string     `fig:"locale"`
	LogLevel slog.Level `fig:"loglevel" default:"0"`
	// City is searched when no city is given on the command line
	City string `fig:"city" default:"Kragujevac"`
	// Allowed values: light, dark
	Theme string `fig:"theme" default:"light"`
	// Allowed values: text, json
	Output string `fig:"output" default:"text"`

	Weather struct {
		// Allowed values: openweathermap
		Provider string `fig:"provider" default:"openweathermap"`
		BaseURL  string `fig:"base_url"`
		// Zero uses the HTTP client default
		Timeout time.Duration `fig:"timeout"`
	} `fig:"weather"`

	Templates struct {
		Home          string `fig:"home"`
		Details       string `fig:"details"`
		ForecastEntry string `fig:"forecast_entry"`
	} `fig:"templates"`
}

func NewFromFile(path, file string) (*Config, error) {
	conf := new(Config)
	_, err := os.Stat(filepath.Join(path, file))
	if err != nil {
		return conf, fmt.Errorf("failed to read Config: %w", err)
	}
	if err = loadDotEnv(); err != nil {
		return conf, err
	}
	if err = fig.Load(conf, fig.Dirs(path), fig.File(file), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

func New() (*Config, error) {
	conf := new(Config)
	if err := loadDotEnv(); err != nil {
		return conf, err
	}
	if err := fig.Load(conf, fig.AllowNoFile(), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

// Validate checks the config values and fills in defaults that cannot be expressed as struct
// tags. A missing API key is not a validation error.
func (c *Config) Validate() error {
	c.Units = strings.ToLower(c.Units)
	if c.Units != "metric" && c.Units != "imperial" {
		return fmt.Errorf("invalid units: %s", c.Units)
	}
	if c.Locale == "" {
		c.Locale = getLocale()
	}
	c.Theme = strings.ToLower(c.Theme)
	if c.Theme != "light" && c.Theme != "dark" {
		return fmt.Errorf("invalid theme: %s", c.Theme)
	}
	c.Output = strings.ToLower(c.Output)
	if c.Output != OutputText && c.Output != OutputJSON {
		return fmt.Errorf("invalid output: %s", c.Output)
	}
	if c.Weather.Timeout < 0 {
		return fmt.Errorf("invalid weather timeout: %s", c.Weather.Timeout)
	}
	if c.APIKey == "" {
		c.APIKey = os.Getenv(apiKeyEnv)
	}
	if c.Templates.Home == "" {
		c.Templates.Home = DefaultHomeTpl
	}
	if c.Templates.Details == "" {
		c.Templates.Details = DefaultDetailsTpl
	}
	if c.Templates.ForecastEntry == "" {
		c.Templates.ForecastEntry = DefaultForecastEntryTpl
	}

	return nil
}

func loadDotEnv() error {
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s file: %w", dotEnvFile, err)
	}
	return nil
}

func getLocale() string {
	locale := os.Getenv("LC_MESSAGES")
	if idx := strings.Index(locale, "."); idx != -1 {
		lang := locale[:idx]
		return strings.ReplaceAll(lang, "_", "-")
	}
	return locale
}
