// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/vorlif/humanize"
	"github.com/vorlif/spreak"
	"github.com/vorlif/spreak/localize"
	"github.com/wneessen/go-moonphase"

	"github.com/wneessen/cityweather/internal/config"
	"github.com/wneessen/cityweather/internal/i18n"
	"github.com/wneessen/cityweather/internal/navigation"
	"github.com/wneessen/cityweather/internal/theme"
	"github.com/wneessen/cityweather/internal/weather"
)

const forecastEntryTpl = "forecast_entry"

// HomeContext is the data the home template is rendered with.
type HomeContext struct {
	Current  weather.Current `json:"current"`
	TempUnit string          `json:"temp_unit"`
}

// ForecastView wraps a daily forecast entry with presentation-related fields.
type ForecastView struct {
	weather.DailyEntry

	When     time.Time `json:"time"`
	TempUnit string    `json:"temp_unit"`
}

// DetailsContext is the data the details template is rendered with.
type DetailsContext struct {
	Current       weather.Current `json:"current"`
	TempUnit      string          `json:"temp_unit"`
	SpeedUnit     string          `json:"speed_unit"`
	Sunrise       time.Time       `json:"sunrise"`
	Sunset        time.Time       `json:"sunset"`
	MoonPhase     string          `json:"moon_phase"`
	MoonPhaseIcon string          `json:"moon_phase_icon"`
	UpdateTime    time.Time       `json:"update_time"`
	Theme         string          `json:"theme"`
	Forecast      []ForecastView  `json:"forecast"`
}

// AlertDocument is written by Alert in JSON output mode.
type AlertDocument struct {
	Error string `json:"error"`
}

// NoticeDocument is written by Notice in JSON output mode.
type NoticeDocument struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Presenter renders the home and detail views.
type Presenter struct {
	clock     clockwork.Clock
	humanizer *humanize.Humanizer
	localizer *spreak.Localizer
	location  *time.Location
	output    string
	theme     *theme.Context
	units     string

	home    *template.Template
	details *template.Template
}

// New parses the templates from the config and renders each of them once with sample data, so
// that broken templates are reported at startup. A nil clock uses the real clock and a nil
// location uses time.Local.
func New(conf *config.Config, localizer *spreak.Localizer, th *theme.Context, clock clockwork.Clock,
	location *time.Location,
) (*Presenter, error) {
	if conf == nil || localizer == nil || th == nil {
		return nil, fmt.Errorf("config, localizer and theme are required")
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if location == nil {
		location = time.Local
	}
	p := &Presenter{
		clock:     clock,
		humanizer: i18n.NewHumanizer(localizer.Language()),
		localizer: localizer,
		location:  location,
		output:    conf.Output,
		theme:     th,
		units:     conf.Units,
	}

	var err error
	p.home, err = template.New("home").Funcs(p.templateFuncMap()).Parse(conf.Templates.Home)
	if err != nil {
		return nil, fmt.Errorf("failed to parse home template: %w", err)
	}
	p.details, err = template.New("details").Funcs(p.templateFuncMap()).Parse(conf.Templates.Details)
	if err != nil {
		return nil, fmt.Errorf("failed to parse details template: %w", err)
	}
	if _, err = p.details.New(forecastEntryTpl).Parse(conf.Templates.ForecastEntry); err != nil {
		return nil, fmt.Errorf("failed to parse forecast entry template: %w", err)
	}

	sample := sampleDetails()
	if err = p.Home(io.Discard, sample.Current); err != nil {
		return nil, err
	}
	if err = p.Details(io.Discard, sample); err != nil {
		return nil, err
	}

	return p, nil
}

// Home renders the one-line summary of the current weather.
func (p *Presenter) Home(w io.Writer, current weather.Current) error {
	if err := p.home.Execute(w, p.homeContext(current)); err != nil {
		return fmt.Errorf("failed to render home template: %w", err)
	}
	return nil
}

// Details renders the detail view.
func (p *Presenter) Details(w io.Writer, details navigation.Details) error {
	if err := p.details.Execute(w, p.DetailsContext(details)); err != nil {
		return fmt.Errorf("failed to render details template: %w", err)
	}
	return nil
}

// JSON writes the detail view data as a single line JSON document.
func (p *Presenter) JSON(w io.Writer, details navigation.Details) error {
	return p.encode(w, p.DetailsContext(details))
}

func (p *Presenter) encode(w io.Writer, doc any) error {
	if err := json.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("failed to encode JSON document: %w", err)
	}
	return nil
}

// Alert writes a localized error message. In JSON output mode the message is written as an
// AlertDocument.
func (p *Presenter) Alert(w io.Writer, msg localize.MsgID) error {
	if p.output == config.OutputJSON {
		return p.encode(w, AlertDocument{Error: p.localizer.Get(msg)})
	}
	palette := p.theme.Palette()
	_, err := fmt.Fprintf(w, "%s%s%s: %s\n", palette.Accent, p.localizer.Get("Error"), palette.Reset,
		p.localizer.Get(msg))
	return err
}

// Notice writes an informational line, such as the active theme after a toggle. In JSON output
// mode the line is written as a NoticeDocument.
func (p *Presenter) Notice(w io.Writer, label, value string) error {
	if p.output == config.OutputJSON {
		return p.encode(w, NoticeDocument{Label: p.loc(label), Value: p.loc(value)})
	}
	palette := p.theme.Palette()
	_, err := fmt.Fprintf(w, "%s%s: %s%s\n", palette.Muted, p.loc(label), p.loc(value), palette.Reset)
	return err
}

// DetailsContext builds the template data for the detail view.
func (p *Presenter) DetailsContext(details navigation.Details) DetailsContext {
	tempUnit, speedUnit := p.unitLabels()
	phase := moonphase.New(p.clock.Now()).PhaseName()
	ctx := DetailsContext{
		Current:       details.Current,
		TempUnit:      tempUnit,
		SpeedUnit:     speedUnit,
		Sunrise:       details.Current.SunriseTime(p.location),
		Sunset:        details.Current.SunsetTime(p.location),
		MoonPhase:     phase,
		MoonPhaseIcon: MoonPhaseIcon[phase],
		UpdateTime:    p.clock.Now().In(p.location),
		Theme:         p.theme.Mode(),
		Forecast:      make([]ForecastView, 0, len(details.Forecast)),
	}
	for _, entry := range details.Forecast {
		ctx.Forecast = append(ctx.Forecast, ForecastView{
			DailyEntry: entry,
			When:       entry.Sample.Time(p.location),
			TempUnit:   tempUnit,
		})
	}
	return ctx
}

func (p *Presenter) homeContext(current weather.Current) HomeContext {
	tempUnit, _ := p.unitLabels()
	return HomeContext{Current: current, TempUnit: tempUnit}
}

func (p *Presenter) unitLabels() (string, string) {
	if strings.EqualFold(p.units, "imperial") {
		return "°F", "mph"
	}
	return "°C", "m/s"
}

// sampleDetails is used to check the templates for execution errors.
func sampleDetails() navigation.Details {
	sample := weather.Sample{Timestamp: 1748790000, Temperature: 18.2, Icon: "02d", Description: "few clouds"}
	return navigation.Details{
		Current: weather.Current{
			City:        "Kragujevac",
			Temperature: 18.2,
			Description: "few clouds",
			Humidity:    64,
			Pressure:    1016,
			WindSpeed:   4.12,
			Icon:        "02d",
			Sunrise:     1748750400,
			Sunset:      1748806200,
			Visibility:  10000,
		},
		Forecast: []weather.DailyEntry{{Sample: sample, Date: weather.NewDate(sample.Time(time.UTC))}},
	}
}
