// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/vorlif/humanize"
)

// iconColumns is the width glyphs are padded to by pad.
const iconColumns = 3

func (p *Presenter) templateFuncMap() template.FuncMap {
	return template.FuncMap{
		"icon":          ConditionIcon,
		"loc":           p.loc,
		"weekday":       weekday,
		"timeFormat":    p.timeFormat,
		"localizedTime": p.localizedTime,
		"localizedDate": p.localizedDate,
		"floatFormat":   p.floatFormat,
		"km":            km,
		"pad":           pad,
		"lc":            strings.ToLower,
		"uc":            strings.ToUpper,
		"fg":            func() string { return p.theme.Palette().Text },
		"muted":         func() string { return p.theme.Palette().Muted },
		"accent":        func() string { return p.theme.Palette().Accent },
		"reset":         func() string { return p.theme.Palette().Reset },
	}
}

func (p *Presenter) loc(val string) string {
	if raw, ok := i18nVars[val]; ok {
		return p.localizer.Get(raw)
	}
	return val
}

func (p *Presenter) localizedTime(val time.Time) string {
	return p.humanizer.FormatTime(val.In(p.location), humanize.TimeFormat)
}

func (p *Presenter) localizedDate(val time.Time) string {
	return p.humanizer.FormatTime(val.In(p.location), humanize.DateFormat)
}

func (p *Presenter) timeFormat(val time.Time, fmt string) string {
	return val.In(p.location).Format(fmt)
}

func (p *Presenter) floatFormat(val float64, precision int) string {
	pow := math.Pow(10, float64(precision))
	return fmt.Sprintf("%.*f", precision, math.Trunc(val*pow)/pow)
}

func weekday(val time.Time) string {
	return val.Weekday().String()
}

// km converts meters to kilometers without trailing zeros.
func km(meters float64) string {
	return strconv.FormatFloat(meters/1000, 'f', -1, 64)
}

// pad appends spaces to a glyph so that the text following it starts in the same column,
// regardless of how wide the terminal renders the glyph.
func pad(glyph string) string {
	width := runewidth.StringWidth(glyph)
	return glyph + strings.Repeat(" ", max(1, iconColumns-width))
}
