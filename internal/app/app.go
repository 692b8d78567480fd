// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package app wires the configuration, the weather provider, the search orchestrator and the
// presenter into the cityweather application.
package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/vorlif/spreak"

	"github.com/wneessen/cityweather/internal/config"
	"github.com/wneessen/cityweather/internal/http"
	"github.com/wneessen/cityweather/internal/logger"
	"github.com/wneessen/cityweather/internal/navigation"
	"github.com/wneessen/cityweather/internal/presenter"
	"github.com/wneessen/cityweather/internal/search"
	"github.com/wneessen/cityweather/internal/theme"
)

// noColorEnv disables the ANSI colors of the text output if set to any value.
const noColorEnv = "NO_COLOR"

// App is the cityweather application. It is safe to run several lookups concurrently.
type App struct {
	config       *config.Config
	http         *http.Client
	logger       *logger.Logger
	orchestrator *search.Orchestrator
	presenter    *presenter.Presenter
	theme        *theme.Context
	t            *spreak.Localizer

	clock    clockwork.Clock
	location *time.Location

	outLock sync.Mutex
	out     io.Writer

	currentLock sync.RWMutex
	current     *navigation.Details
	lastCity    string
}

// Option configures optional parts of the App.
type Option func(*App)

// WithClock sets the clock the presenter uses for the moon phase and the update time.
func WithClock(clock clockwork.Clock) Option {
	return func(a *App) {
		a.clock = clock
	}
}

// WithLocation sets the time zone that sunrise, sunset and the forecast days are computed in.
func WithLocation(location *time.Location) Option {
	return func(a *App) {
		a.location = location
	}
}

// New returns a fully wired App that writes its views to out.
func New(conf *config.Config, log *logger.Logger, t *spreak.Localizer, out io.Writer, opts ...Option) (*App, error) {
	if conf == nil {
		return nil, errors.New("config is required")
	}
	if log == nil {
		return nil, errors.New("logger is required")
	}
	if t == nil {
		return nil, errors.New("localizer is required")
	}
	if out == nil {
		out = os.Stdout
	}

	app := &App{
		config:   conf,
		http:     http.New(log),
		logger:   log,
		t:        t,
		clock:    clockwork.NewRealClock(),
		location: time.Local,
		out:      out,
	}
	for _, opt := range opts {
		opt(app)
	}

	var err error
	plain := conf.Output == config.OutputJSON || os.Getenv(noColorEnv) != ""
	if app.theme, err = theme.New(conf.Theme, plain); err != nil {
		return nil, fmt.Errorf("failed to initialize theme: %w", err)
	}

	provider, err := app.selectWeatherProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to create weather provider: %w", err)
	}
	if app.orchestrator, err = search.New(provider, log); err != nil {
		return nil, fmt.Errorf("failed to create search orchestrator: %w", err)
	}
	if app.presenter, err = presenter.New(conf, t, app.theme, app.clock, app.location); err != nil {
		return nil, fmt.Errorf("failed to initialize presenter: %w", err)
	}

	return app, nil
}

// Theme returns the theme context shared by all views.
func (a *App) Theme() *theme.Context {
	return a.theme
}

// Current returns the details of the search that completed last. The second return value is
// false if no search has completed yet.
func (a *App) Current() (navigation.Details, bool) {
	a.currentLock.RLock()
	defer a.currentLock.RUnlock()
	if a.current == nil {
		return navigation.Details{}, false
	}
	return *a.current, true
}

// LastCity returns the city of the most recently started lookup.
func (a *App) LastCity() string {
	a.currentLock.RLock()
	defer a.currentLock.RUnlock()
	return a.lastCity
}

// Lookup searches the weather for city and renders the home and the detail view. Fetch failures
// are shown to the user as an alert and do not return an error; the detail view is not shown in
// that case. Errors are only returned if the output could not be rendered or written, or if ctx
// was canceled.
func (a *App) Lookup(ctx context.Context, city string) error {
	a.setLastCity(city)
	return a.lookup(ctx, city)
}

func (a *App) lookup(ctx context.Context, city string) error {
	payload, err := a.orchestrator.Search(ctx, city).Unwrap()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return a.alert(err)
	}

	params, err := navigation.Encode(payload)
	if err != nil {
		return fmt.Errorf("failed to encode navigation parameters: %w", err)
	}
	details, err := navigation.Decode(params, a.location)
	var malformedErr *navigation.MalformedPayloadError
	switch {
	case errors.As(err, &malformedErr):
		a.logger.Warn("forecast could not be decoded, showing details without forecast",
			logger.Err(err), slog.String("search_id", payload.ID.String()))
	case err != nil:
		return fmt.Errorf("failed to decode navigation parameters: %w", err)
	}

	// Whichever search completes last owns the slot. Completions of overlapping searches are
	// not ordered.
	a.currentLock.Lock()
	a.current = &details
	a.currentLock.Unlock()

	buf := bytes.NewBuffer(nil)
	switch a.config.Output {
	case config.OutputJSON:
		err = a.presenter.JSON(buf, details)
	default:
		if err = a.presenter.Home(buf, payload.Current); err != nil {
			break
		}
		buf.WriteString("\n")
		err = a.presenter.Details(buf, details)
	}
	if err != nil {
		return err
	}
	return a.write(buf.Bytes())
}

// alert maps a search error to the message shown to the user. Search fails either in the current
// weather step or in the forecast step.
func (a *App) alert(err error) error {
	var forecastErr *search.ForecastFetchError
	msg := presenter.AlertCityNotFound
	if errors.As(err, &forecastErr) {
		msg = presenter.AlertForecastFailed
	}
	a.logger.Debug("showing alert", slog.String("alert", string(msg)), logger.Err(err))

	buf := bytes.NewBuffer(nil)
	if err = a.presenter.Alert(buf, msg); err != nil {
		return fmt.Errorf("failed to render alert: %w", err)
	}
	return a.write(buf.Bytes())
}

// toggleTheme flips the theme and tells the user about the new mode.
func (a *App) toggleTheme() error {
	a.theme.Toggle()
	a.logger.Debug("theme toggled", slog.String("theme", a.theme.Mode()))
	buf := bytes.NewBuffer(nil)
	if err := a.presenter.Notice(buf, "Theme", a.theme.Mode()); err != nil {
		return fmt.Errorf("failed to render notice: %w", err)
	}
	return a.write(buf.Bytes())
}

func (a *App) setLastCity(city string) {
	a.currentLock.Lock()
	a.lastCity = strings.TrimSpace(city)
	a.currentLock.Unlock()
}

// write writes p to the output in one piece, so that views of concurrent lookups do not
// interleave.
func (a *App) write(p []byte) error {
	a.outLock.Lock()
	defer a.outLock.Unlock()
	if _, err := a.out.Write(p); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
