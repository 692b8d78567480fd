// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package app

import (
	"context"
	"os"

	"github.com/wneessen/cityweather/internal/logger"
)

// HandleThemeToggleSignal toggles the theme whenever a signal is received on sigChan.
func (a *App) HandleThemeToggleSignal(ctx context.Context, sigChan <-chan os.Signal) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sigChan:
			if err := a.toggleTheme(); err != nil {
				a.logger.Error("failed to toggle theme", logger.Err(err))
			}
		}
	}
}
