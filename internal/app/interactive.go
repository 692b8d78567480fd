// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/wneessen/cityweather/internal/logger"
)

// Interactive mode commands
const (
	CommandTheme     = ":theme"
	CommandQuit      = ":quit"
	CommandQuitShort = ":q"
)

// Interactive reads commands and city names line by line from in. Every city name starts a
// lookup in the background, so lookups may overlap. An empty line repeats the last lookup.
// Interactive returns when in is exhausted, a quit command is read or ctx is canceled, after all
// running lookups have finished.
func (a *App) Interactive(ctx context.Context, in io.Reader) error {
	// Stops the reader once we return. Running lookups are waited for before cancel is called.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	scanner := bufio.NewScanner(in)
	go func() {
		defer close(lines)
		for scanner.Scan() {
			select {
			case <-ctx.Done():
				return
			case lines <- scanner.Text():
			}
		}
	}()

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := scanner.Err(); err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}
				return nil
			}

			command := strings.TrimSpace(line)
			switch strings.ToLower(command) {
			case CommandQuit, CommandQuitShort:
				return nil
			case CommandTheme:
				if err := a.toggleTheme(); err != nil {
					a.logger.Error("failed to toggle theme", logger.Err(err))
				}
				continue
			case "":
				command = a.LastCity()
				if command == "" {
					continue
				}
			}

			city := command
			a.setLastCity(city)
			wg.Go(func() {
				if err := a.lookup(ctx, city); err != nil && !errors.Is(err, context.Canceled) {
					a.logger.Error("weather lookup failed", logger.Err(err), slog.String("city", city))
				}
			})
		}
	}
}
