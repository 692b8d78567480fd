// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package i18n

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/Xuanwo/go-locale"
	"github.com/vorlif/humanize"
	"github.com/vorlif/humanize/locale/de"
	"github.com/vorlif/humanize/locale/srLatn"
	"github.com/vorlif/spreak"
	"golang.org/x/text/language"
)

//go:embed locale/*
var locales embed.FS

// humanizers holds the locales available for date and time formatting. English is built in.
var humanizers = humanize.MustNew(humanize.WithLocale(de.New(), srLatn.New()))

// The Serbian catalog is written in Latin script.
var (
	serbianLatin = language.MustParse("sr-Latn")
	serbianBase  = language.MustParseBase("sr")
)

// New returns a Localizer for the given locale. An empty locale is detected from the
// environment and falls back to English.
func New(loc string) (*spreak.Localizer, error) {
	tag := language.Make(loc)
	var err error
	if loc == "" {
		tag, err = locale.Detect()
		if err != nil {
			tag = language.English // Unable to detect locale, fallback to English
		}
	}

	localeFS, err := fs.Sub(locales, "locale")
	if err != nil {
		return nil, fmt.Errorf("failed to load locales: %w", err)
	}

	bundle, err := spreak.NewBundle(
		spreak.WithSourceLanguage(language.English),
		spreak.WithFallbackLanguage(language.English),
		spreak.WithDomainFs(spreak.NoDomain, localeFS),
		spreak.WithLanguage(tag, language.German, language.Serbian),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create i18n bundle: %w", err)
	}
	return spreak.NewLocalizer(bundle, tag), nil
}

// NewHumanizer returns a Humanizer for localized dates and times in the given language. Serbian
// always uses the Latin script to match the labels.
func NewHumanizer(tag language.Tag) *humanize.Humanizer {
	if base, _ := tag.Base(); base == serbianBase {
		tag = serbianLatin
	}
	return humanizers.CreateHumanizer(tag)
}
