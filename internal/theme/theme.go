// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package theme holds the application wide light/dark mode.
package theme

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// ANSI escape sequences used by the palettes
const (
	ansiReset    = "\x1b[0m"
	ansiBlack    = "\x1b[30m"
	ansiDarkGrey = "\x1b[90m"
	ansiGrey     = "\x1b[37m"
	ansiWhite    = "\x1b[97m"
	ansiGold     = "\x1b[38;5;220m"
)

const (
	Light = "light"
	Dark  = "dark"
)

// Palette is the set of colors the renderers use for one mode.
type Palette struct {
	Text   string
	Muted  string
	Accent string
	Reset  string
}

var (
	lightPalette = Palette{Text: ansiBlack, Muted: ansiDarkGrey, Accent: ansiBlack, Reset: ansiReset}
	darkPalette  = Palette{Text: ansiWhite, Muted: ansiGrey, Accent: ansiGold, Reset: ansiReset}
	plainPalette = Palette{}
)

// Context is the theme state shared by all views. It is safe for concurrent use. Views get it
// passed in and read it on every render.
type Context struct {
	dark  atomic.Bool
	plain bool
}

// New returns a Context in the given mode (light or dark). With plain set, palettes carry no
// escape sequences, which is what non-terminal outputs want.
func New(mode string, plain bool) (*Context, error) {
	ctx := &Context{plain: plain}
	switch strings.ToLower(mode) {
	case Light, "":
	case Dark:
		ctx.dark.Store(true)
	default:
		return nil, fmt.Errorf("unsupported theme: %s", mode)
	}
	return ctx, nil
}

// IsDark returns true if the dark mode is active.
func (c *Context) IsDark() bool {
	return c.dark.Load()
}

// Set switches to dark mode if dark is true and to light mode otherwise.
func (c *Context) Set(dark bool) {
	c.dark.Store(dark)
}

// Toggle flips the mode and returns true if the dark mode is active afterwards.
func (c *Context) Toggle() bool {
	for {
		old := c.dark.Load()
		if c.dark.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// Mode returns the name of the active mode.
func (c *Context) Mode() string {
	if c.IsDark() {
		return Dark
	}
	return Light
}

// Palette returns the colors for the active mode.
func (c *Context) Palette() Palette {
	if c.plain {
		return plainPalette
	}
	if c.IsDark() {
		return darkPalette
	}
	return lightPalette
}
