// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

//go:build linux

// Package main implements the cityweather command line client.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/wneessen/cityweather/internal/app"
	"github.com/wneessen/cityweather/internal/config"
	"github.com/wneessen/cityweather/internal/i18n"
	"github.com/wneessen/cityweather/internal/logger"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGABRT, os.Interrupt)
	defer cancel()

	// Initialize Logger
	log := logger.New(slog.LevelError)

	confPath := flag.String("config", "", "path to the config file")
	city := flag.String("city", "", "city to look up, defaults to the configured city")
	interactive := flag.Bool("interactive", false, "read cities and commands from stdin")
	dark := flag.Bool("dark", false, "start with the dark theme")
	flag.Parse()

	conf, err := loadConfig(*confPath)
	if err != nil {
		log.Error("failed to load config", logger.Err(err))
		os.Exit(1)
	}

	log = logger.New(conf.LogLevel)
	t, err := i18n.New(conf.Locale)
	if err != nil {
		log.Error("failed to initialize localizer", logger.Err(err))
		os.Exit(1)
	}

	cw, err := app.New(conf, log, t, os.Stdout)
	if err != nil {
		log.Error("failed to initialize cityweather", logger.Err(err))
		os.Exit(1)
	}
	if *dark {
		cw.Theme().Set(true)
	}
	log.Debug("starting cityweather", slog.String("version", version), slog.String("commit", commit),
		slog.String("date", date))

	// SIGUSR1 toggles the theme
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGUSR1)
	defer signal.Stop(sigChan)
	go cw.HandleThemeToggleSignal(ctx, sigChan)

	lookupCity := conf.City
	if *city != "" {
		lookupCity = *city
	}
	if err = cw.Lookup(ctx, lookupCity); err != nil {
		log.Error("weather lookup failed", logger.Err(err))
		if !*interactive {
			os.Exit(1)
		}
	}
	if !*interactive {
		return
	}

	if err = cw.Interactive(ctx, os.Stdin); err != nil {
		log.Error("interactive mode failed", logger.Err(err))
		os.Exit(1)
	}
}

// loadConfig reads the config from confPath if given, from the default location if a config
// file exists there, or from the environment only.
func loadConfig(confPath string) (*config.Config, error) {
	if confPath != "" {
		return config.NewFromFile(filepath.Dir(confPath), filepath.Base(confPath))
	}
	if path, file := findConfigFile(); path != "" && file != "" {
		return config.NewFromFile(path, file)
	}
	return config.New()
}

func findConfigFile() (string, string) {
	homedir, err := os.UserHomeDir()
	if err != nil {
		return "", ""
	}
	exts := []string{"toml", "yaml", "yml", "json"}
	for _, ext := range exts {
		path := filepath.Join(homedir, ".config", "cityweather", "config."+ext)
		if _, err = os.Stat(path); err == nil {
			return filepath.Dir(path), filepath.Base(path)
		}
	}
	return "", ""
}
