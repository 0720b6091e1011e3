// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/fieldmap/internal/cli"
	"github.com/bureau-foundation/fieldmap/lib/clock"
	"github.com/bureau-foundation/fieldmap/lib/config"
	"github.com/bureau-foundation/fieldmap/lib/feed"
	"github.com/bureau-foundation/fieldmap/lib/snapshot"
)

// options holds the command-line flags. Flags that were set override
// the matching config values.
type options struct {
	configPath     string
	file           string
	socket         string
	webSocket      string
	replay         string
	record         string
	logOutput      string
	logLevel       string
	metricsAddress string
	version        bool
	help           bool
}

func (flags *options) flagSet() *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("fieldmap", pflag.ContinueOnError)
	flagSet.StringVar(&flags.configPath, "config", "", "config file (default: $"+config.EnvironmentVariable+")")
	flagSet.StringVar(&flags.file, "file", "", "snapshot file (.json, .jsonc, .yaml) to load, watch and save to")
	flagSet.StringVar(&flags.socket, "socket", "", "unix socket of a feed server")
	flagSet.StringVar(&flags.webSocket, "websocket", "", "ws:// or wss:// URL of a feed server")
	flagSet.StringVar(&flags.replay, "replay", "", "recording to replay")
	flagSet.StringVar(&flags.record, "record", "", "record received frames to this file (.zst, .lz4 or plain)")
	flagSet.StringVar(&flags.logOutput, "log-output", "", "write JSON log records to this file (in addition to the status bar)")
	flagSet.StringVar(&flags.logLevel, "log-level", "", "minimum level shown in the status bar: debug, info, warn, error")
	flagSet.StringVar(&flags.metricsAddress, "metrics-address", "", "host:port to serve Prometheus metrics on")
	flagSet.BoolVar(&flags.version, "version", false, "print version information and exit")
	flagSet.BoolVarP(&flags.help, "help", "h", false, "show help")
	flagSet.SortFlags = false
	return flagSet
}

// loadConfig loads the config file, applies the flags that were set,
// and validates the result.
func (flags *options) loadConfig(flagSet *pflag.FlagSet) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if flags.configPath != "" {
		cfg, err = config.LoadFile(flags.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, cli.Validation("%w", err).
			WithHint("Check the config file, or unset " + config.EnvironmentVariable + " to use the defaults.")
	}

	overrides := []struct {
		flag   string
		value  string
		target *string
	}{
		{"file", flags.file, &cfg.Feed.File},
		{"socket", flags.socket, &cfg.Feed.Socket},
		{"websocket", flags.webSocket, &cfg.Feed.WebSocket},
		{"replay", flags.replay, &cfg.Feed.Replay},
		{"record", flags.record, &cfg.Feed.Record},
		{"log-output", flags.logOutput, &cfg.Log.Output},
		{"log-level", flags.logLevel, &cfg.Log.Level},
		{"metrics-address", flags.metricsAddress, &cfg.Metrics.Address},
	}
	for _, override := range overrides {
		if flagSet.Changed(override.flag) {
			*override.target = override.value
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, cli.Validation("invalid configuration:\n%w", err)
	}
	return cfg, nil
}

// openSource starts the feed the config selects, or returns nil when
// none is configured.
func openSource(cfg *config.Config, logger *slog.Logger) (feed.Source, error) {
	initial, maximum := cfg.Backoff()
	streamOptions := feed.StreamOptions{
		Logger:         logger,
		InitialBackoff: initial,
		MaxBackoff:     maximum,
	}

	switch {
	case cfg.Feed.Socket != "":
		return feed.NewSocketSource(cfg.Feed.Socket, streamOptions), nil

	case cfg.Feed.WebSocket != "":
		return feed.NewWebSocketSource(cfg.Feed.WebSocket, streamOptions), nil

	case cfg.Feed.File != "":
		watcher, err := snapshot.Watch(cfg.Feed.File, snapshot.WatchOptions{Logger: logger})
		if errors.Is(err, fs.ErrNotExist) {
			return nil, cli.NotFound("snapshot file %s does not exist", cfg.Feed.File).
				WithHint("Create it first; an empty file is a valid empty field.")
		}
		if err != nil {
			return nil, cli.Validation("cannot watch %s: %w", cfg.Feed.File, err)
		}
		return watcher, nil

	case cfg.Feed.Replay != "":
		frames, err := feed.OpenRecording(cfg.Feed.Replay)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, cli.NotFound("recording %s does not exist", cfg.Feed.Replay)
		}
		if err != nil {
			return nil, cli.Validation("cannot read recording %s: %w", cfg.Feed.Replay, err)
		}
		return feed.NewReplaySource(frames, cfg.ReplayInterval(), clock.Real()), nil
	}
	return nil, nil
}
